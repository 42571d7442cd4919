package tutor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const OptionCount = 4

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: empty question", ErrMalformedQuiz)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: %d options", ErrMalformedQuiz, len(q.Options))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
		return fmt.Errorf("%w: answer index %d", ErrMalformedQuiz, q.CorrectAnswer)
	}
	return nil
}

// ParseQuiz decodes a JSON array of questions. Markdown code fences around
// the array are tolerated.
func ParseQuiz(data []byte) ([]Question, error) {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("```")) {
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			data = data[i+1:]
		}
		data = bytes.TrimSuffix(bytes.TrimSpace(data), []byte("```"))
	}
	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuiz, err)
	}
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return qs, nil
}

// Session walks a student through a quiz: select an option, check it, move
// on. A checked answer cannot be changed.
type Session struct {
	Topic     string
	questions []Question
	index     int
	selected  int
	checked   bool
	score     int
	done      bool
}

func NewSession(topic string, qs []Question) *Session {
	return &Session{Topic: topic, questions: qs, selected: -1, done: len(qs) == 0}
}

func (s *Session) Len() int      { return len(s.questions) }
func (s *Session) Index() int    { return s.index }
func (s *Session) Score() int    { return s.score }
func (s *Session) Done() bool    { return s.done }
func (s *Session) Checked() bool { return s.checked }
func (s *Session) Selected() int { return s.selected }
func (s *Session) Passed() bool  { return s.score*2 > len(s.questions) }

func (s *Session) Current() (Question, bool) {
	if s.done {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Select picks option i of the current question. It is ignored once the
// answer has been checked.
func (s *Session) Select(i int) bool {
	if s.done || s.checked || i < 0 || i >= len(s.questions[s.index].Options) {
		return false
	}
	s.selected = i
	return true
}

// Check locks in the selection and reports whether it was correct. ok is
// false when nothing is selected or the answer was already checked.
func (s *Session) Check() (correct, ok bool) {
	if s.done || s.checked || s.selected < 0 {
		return false, false
	}
	s.checked = true
	correct = s.selected == s.questions[s.index].CorrectAnswer
	if correct {
		s.score++
	}
	return correct, true
}

// Next moves to the following question, or finishes after the last one.
func (s *Session) Next() {
	if s.done || !s.checked {
		return
	}
	if s.index < len(s.questions)-1 {
		s.index++
		s.selected = -1
		s.checked = false
		return
	}
	s.done = true
}
