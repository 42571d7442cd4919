package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/san-kum/physlab/internal/lab"
)

func timeline(t *testing.T, name string) *lab.Timeline {
	t.Helper()
	def, err := lab.NewRegistry().Get(name)
	if err != nil {
		t.Fatal(err)
	}
	l := lab.New(def, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return l.Sample(0.1, 1)
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	tl := timeline(t, "shm")
	runID, err := st.Save(tl)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Lab != "shm" {
		t.Errorf("expected lab 'shm', got '%s'", meta.Lab)
	}
	if meta.Params["k"] != 50 {
		t.Errorf("expected k 50, got %f", meta.Params["k"])
	}
	if _, ok := meta.Derived["period"]; !ok {
		t.Error("derived quantities should be stored")
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != len(tl.Rows) || len(times) != len(tl.Times) {
		t.Errorf("expected %d rows, got %d states and %d times", len(tl.Rows), len(states), len(times))
	}
	if len(states[0]) != len(meta.Labels) {
		t.Errorf("row width %d does not match labels %v", len(states[0]), meta.Labels)
	}

	xs, _, err := st.Column(runID, "x")
	if err != nil {
		t.Fatal(err)
	}
	if xs[0] != 1 {
		t.Errorf("shm starts at the amplitude, got %f", xs[0])
	}
	if _, _, err := st.Column(runID, "nope"); err == nil {
		t.Error("unknown column should fail")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	a, err := st.Save(timeline(t, "circular"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := st.Save(timeline(t, "circular"))
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two saves should get distinct ids")
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(t.TempDir() + "/absent").List()
	if err != nil || len(runs) != 0 {
		t.Errorf("missing dir should list nothing, got %v %v", runs, err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("ghost"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save(timeline(t, "friction"))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatal(err)
	}
	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Lab != "friction" || data.Steps != 1 || data.Derived["normal"] != 98 {
		t.Errorf("unexpected export: %+v", data)
	}
}
