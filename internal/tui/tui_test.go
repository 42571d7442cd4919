package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physlab/internal/clock"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/lab"
	"github.com/san-kum/physlab/internal/logging"
	"github.com/san-kum/physlab/internal/tutor"
)

type stubBackend struct{}

func (stubBackend) Chat(context.Context, string, []tutor.Message, string) (string, error) {
	return "Torque is force times lever arm.", nil
}

func (stubBackend) Quiz(context.Context, string) (string, error) { return "", nil }

func newTestModel(t *testing.T) model {
	t.Helper()
	log := logging.Discard()
	host := lab.NewHost(lab.NewRegistry(), log)
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	return New(context.Background(), Deps{
		Host:   host,
		Tutor:  tutor.NewService(stubBackend{}, tutor.Options{}, log),
		Config: cfg,
		Log:    log,
	}).(model)
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
)

func TestMenuOpensLab(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyEnter)
	if m.screen != screenLab {
		t.Fatalf("screen = %v, want lab", m.screen)
	}
	l, _ := m.deps.Host.Active()
	if l == nil || l.Name() != "vectors" {
		t.Fatalf("active lab = %v", l)
	}
	if !strings.Contains(m.View(), "Vector Addition") {
		t.Error("lab view missing title")
	}
}

func TestBackUnmountsAndDropsStaleFrames(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("2"))
	gen := m.lab.gen
	m = press(t, m, keyEsc)
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if l, _ := m.deps.Host.Active(); l != nil {
		t.Fatal("lab still mounted")
	}
	_, cmd := m.Update(frameMsg{gen: gen, at: time.Now()})
	if cmd != nil {
		t.Error("stale frame scheduled another tick")
	}
}

func TestFrameAdvancesRunningLab(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("4"))
	if m.lab.lab.Name() != "circular" {
		t.Fatalf("lab = %s", m.lab.lab.Name())
	}
	t0 := time.Now()
	next, _ := m.Update(frameMsg{gen: m.lab.gen, at: t0})
	m = next.(model)
	next, cmd := m.Update(frameMsg{gen: m.lab.gen, at: t0.Add(100 * time.Millisecond)})
	m = next.(model)
	if cmd == nil {
		t.Error("live frame did not schedule the next tick")
	}
	if got := m.lab.lab.Clock().Time; got < 0.099 || got > 0.101 {
		t.Errorf("time = %v, want 0.1", got)
	}
	if len(m.lab.history) == 0 {
		t.Error("no trace recorded")
	}
}

func TestLabKeys(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("2"))
	l := m.lab.lab

	m = press(t, m, keyRight)
	if got := l.Params().Get("speed"); got != 61 {
		t.Errorf("speed = %v, want 61", got)
	}
	m = press(t, m, keyDown, runes("L"))
	if got := l.Params().Get("angle"); got != 55 {
		t.Errorf("angle = %v, want 55", got)
	}
	m = press(t, m, keySpace)
	if l.Clock().Phase != clock.Running {
		t.Errorf("phase = %v, want running", l.Clock().Phase)
	}
	m = press(t, m, runes("R"))
	if got := l.Params().Get("speed"); got != 60 {
		t.Errorf("speed after defaults = %v", got)
	}
	_ = m
}

func TestSnapshotWritesSVG(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("6"), runes("x"))
	if !strings.HasPrefix(m.lab.flash, "wrote ") || !strings.HasSuffix(m.lab.flash, ".svg") {
		t.Errorf("flash = %q", m.lab.flash)
	}
}

func TestQuizFlow(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.openQuiz("Units")
	m = next.(model)
	if cmd == nil || m.quiz.phase != quizLoading {
		t.Fatalf("phase = %v", m.quiz.phase)
	}
	qs := []tutor.Question{
		{Question: "Unit of force?", Options: []string{"N", "J", "W", "Pa"}, CorrectAnswer: 0},
		{Question: "Unit of power?", Options: []string{"N", "J", "W", "Pa"}, CorrectAnswer: 2},
	}

	next, _ = m.Update(quizMsg{seq: m.quiz.seq - 1, questions: qs})
	m = next.(model)
	if m.quiz.phase != quizLoading {
		t.Fatal("stale quiz accepted")
	}

	next, _ = m.Update(quizMsg{seq: m.quiz.seq, questions: qs})
	m = next.(model)
	if m.quiz.phase != quizAsking {
		t.Fatalf("phase = %v, want asking", m.quiz.phase)
	}
	m = press(t, m, runes("1"), keyEnter, keyEnter, runes("1"), keyEnter, keyEnter)
	if m.quiz.phase != quizResults {
		t.Fatalf("phase = %v, want results", m.quiz.phase)
	}
	if m.quiz.session.Score() != 1 {
		t.Errorf("score = %d", m.quiz.session.Score())
	}
	if !strings.Contains(m.View(), "out of 2") {
		t.Error("results view missing score")
	}
}

func TestQuizFailureReturnsToTopic(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.openQuiz("Waves")
	m = next.(model)
	next, _ = m.Update(quizMsg{seq: m.quiz.seq})
	m = next.(model)
	if m.quiz.phase != quizChoose || m.quiz.note == "" {
		t.Errorf("phase = %v note = %q", m.quiz.phase, m.quiz.note)
	}
}

func TestChatReply(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.openChat("What is torque?")
	m = next.(model)
	if cmd == nil || !m.chat.waiting {
		t.Fatal("prompt not sent")
	}
	next, _ = m.Update(replyMsg{text: "Force times lever arm."})
	m = next.(model)
	msgs := m.chat.conv.Messages()
	if len(msgs) != 3 || msgs[2].Text != "Force times lever arm." || m.chat.waiting {
		t.Errorf("messages = %+v waiting = %v", msgs, m.chat.waiting)
	}
}

func TestSyllabusOpensLinkedLab(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenSyllabus
	m.syllabus.list.Select(4)
	m = press(t, m, keyEnter)
	if m.screen != screenLab || m.lab.lab.Name() != "circular" {
		t.Errorf("screen = %v", m.screen)
	}
}

func TestTrackedSeries(t *testing.T) {
	tests := []struct {
		labels []string
		want   string
		idx    int
	}{
		{[]string{"t", "x", "y", "vx", "vy"}, "y", 2},
		{[]string{"t", "x", "v", "a"}, "x", 1},
		{[]string{"t", "q"}, "q", 1},
		{[]string{"t"}, "", -1},
	}
	for _, tt := range tests {
		got, idx := trackedSeries(tt.labels)
		if got != tt.want || idx != tt.idx {
			t.Errorf("trackedSeries(%v) = %s, %d", tt.labels, got, idx)
		}
	}
}
