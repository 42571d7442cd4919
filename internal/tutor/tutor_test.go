package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/san-kum/physlab/internal/logging"
)

type fakeBackend struct {
	reply   string
	quiz    string
	err     error
	calls   int
	history []Message
	system  string
	prompt  string
	sleep   time.Duration
}

func (f *fakeBackend) Chat(ctx context.Context, system string, history []Message, message string) (string, error) {
	f.calls++
	f.system = system
	f.history = history
	if f.sleep > 0 {
		select {
		case <-time.After(f.sleep):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeBackend) Quiz(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.quiz, f.err
}

func newService(b Backend) *Service {
	return NewService(b, Options{Timeout: time.Second, MaxFailures: 2, Cooldown: time.Minute}, logging.Discard())
}

const validQuiz = `[
 {"question":"Unit of force?","options":["N","J","W","Pa"],"correctAnswer":0,"explanation":"Newton"},
 {"question":"Unit of power?","options":["N","J","W","Pa"],"correctAnswer":2,"explanation":"Watt"}
]`

func TestAsk(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{"answer", "Torque is a turning effect.", nil, "Torque is a turning effect."},
		{"empty answer", "  ", nil, EmptyReply},
		{"backend error", "", errors.New("dial tcp: refused"), Unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{reply: tt.reply, err: tt.err}
			got := newService(b).Ask(context.Background(), nil, "What is torque?")
			if got != tt.want {
				t.Errorf("Ask = %q, want %q", got, tt.want)
			}
			if b.system != SystemInstruction {
				t.Error("system instruction not passed")
			}
		})
	}
}

func TestAskNilBackend(t *testing.T) {
	if got := newService(nil).Ask(context.Background(), nil, "hi"); got != Unavailable {
		t.Errorf("Ask = %q", got)
	}
	if got := newService(nil).Quiz(context.Background(), "Waves"); got != nil {
		t.Errorf("Quiz = %v", got)
	}
}

func TestAskTimeout(t *testing.T) {
	b := &fakeBackend{reply: "late", sleep: time.Second}
	s := NewService(b, Options{Timeout: 10 * time.Millisecond}, logging.Discard())
	if got := s.Ask(context.Background(), nil, "hi"); got != Unavailable {
		t.Errorf("Ask = %q, want fallback", got)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	b := &fakeBackend{err: errors.New("boom")}
	s := newService(b)
	for i := 0; i < 2; i++ {
		s.Ask(context.Background(), nil, "hi")
	}
	if s.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", s.State())
	}
	b.err = nil
	b.reply = "ok"
	if got := s.Ask(context.Background(), nil, "hi"); got != Unavailable {
		t.Errorf("Ask with open breaker = %q", got)
	}
	if b.calls != 2 {
		t.Errorf("backend calls = %d, want 2", b.calls)
	}
}

func TestQuiz(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
		want int
	}{
		{"valid", validQuiz, nil, 2},
		{"fenced", "```json\n" + validQuiz + "\n```", nil, 2},
		{"empty", "", nil, 0},
		{"not json", "Here are your questions", nil, 0},
		{"three options", `[{"question":"q","options":["a","b","c"],"correctAnswer":0,"explanation":""}]`, nil, 0},
		{"backend error", "", errors.New("quota"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{quiz: tt.raw, err: tt.err}
			got := newService(b).Quiz(context.Background(), "Circular Motion")
			if len(got) != tt.want {
				t.Errorf("len(Quiz) = %d, want %d", len(got), tt.want)
			}
			if !strings.Contains(b.prompt, `"Circular Motion"`) || !strings.Contains(b.prompt, "Generate 5 ") {
				t.Errorf("prompt = %q", b.prompt)
			}
		})
	}
}

func TestParseQuizValidation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"index too large", `[{"question":"q","options":["a","b","c","d"],"correctAnswer":4}]`},
		{"negative index", `[{"question":"q","options":["a","b","c","d"],"correctAnswer":-1}]`},
		{"blank question", `[{"question":" ","options":["a","b","c","d"],"correctAnswer":1}]`},
		{"object", `{"question":"q"}`},
	}
	for _, tt := range tests {
		if _, err := ParseQuiz([]byte(tt.raw)); !errors.Is(err, ErrMalformedQuiz) {
			t.Errorf("%s: err = %v, want ErrMalformedQuiz", tt.name, err)
		}
	}
}

func TestSession(t *testing.T) {
	qs, err := ParseQuiz([]byte(validQuiz))
	if err != nil {
		t.Fatal(err)
	}
	s := NewSession("Units", qs)

	if _, ok := s.Check(); ok {
		t.Error("Check without selection succeeded")
	}
	s.Next()
	if s.Index() != 0 {
		t.Error("Next before Check moved on")
	}
	s.Select(0)
	if correct, ok := s.Check(); !ok || !correct {
		t.Errorf("Check = %v, %v", correct, ok)
	}
	if s.Select(1) {
		t.Error("Select after Check accepted")
	}
	if _, ok := s.Check(); ok {
		t.Error("second Check accepted")
	}
	s.Next()

	s.Select(1)
	if correct, _ := s.Check(); correct {
		t.Error("wrong answer marked correct")
	}
	s.Next()
	if !s.Done() || s.Score() != 1 || s.Passed() {
		t.Errorf("done=%v score=%d passed=%v", s.Done(), s.Score(), s.Passed())
	}
	if _, ok := s.Current(); ok {
		t.Error("Current after finish")
	}
}

func TestEmptySessionIsDone(t *testing.T) {
	s := NewSession("x", nil)
	if !s.Done() || s.Select(0) {
		t.Error("empty session should be finished")
	}
}

func TestConversation(t *testing.T) {
	b := &fakeBackend{reply: "Because gravity acts only vertically."}
	c := NewConversation(newService(b))
	if _, ok := c.Send(context.Background(), "   "); ok {
		t.Error("blank message sent")
	}
	reply, ok := c.Send(context.Background(), "Why parabolic?")
	if !ok || reply != b.reply {
		t.Errorf("Send = %q, %v", reply, ok)
	}
	msgs := c.Messages()
	if len(msgs) != 3 || msgs[0].Text != Greeting || msgs[1].Role != RoleUser || msgs[2].Role != RoleModel {
		t.Errorf("messages = %+v", msgs)
	}
	if len(b.history) != 1 || b.history[0].Text != Greeting {
		t.Errorf("history passed = %+v", b.history)
	}
}

func TestHistoryContents(t *testing.T) {
	got := historyContents([]Message{
		{RoleModel, Greeting},
		{RoleUser, "a"},
		{RoleModel, ""},
		{RoleModel, "b"},
	})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Role != "user" || got[1].Role != "model" {
		t.Errorf("roles = %s, %s", got[0].Role, got[1].Role)
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), "", "gemini-2.5-flash"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("err = %v", err)
	}
}
