package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physlab/internal/tutor"
	"github.com/san-kum/physlab/internal/viz"
)

var defaultTopics = []string{
	"Measurements",
	"Vectors and Equilibrium",
	"Motion and Force",
	"Work and Energy",
	"Circular Motion",
	"Fluid Dynamics",
}

type quizPhase int

const (
	quizChoose quizPhase = iota
	quizLoading
	quizAsking
	quizResults
)

type quizMsg struct {
	seq       int
	questions []tutor.Question
}

type quizModel struct {
	phase   quizPhase
	cursor  int
	topic   string
	seq     int
	session *tutor.Session
	spinner spinner.Model
	note    string
}

func newQuiz() quizModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = viz.MetricValue
	return quizModel{spinner: s, cursor: 1}
}

func (qm quizModel) start(ctx context.Context, svc *tutor.Service, topic string) (quizModel, tea.Cmd) {
	qm.topic = topic
	qm.phase = quizLoading
	qm.note = ""
	qm.seq++
	seq := qm.seq
	gen := func() tea.Msg {
		return quizMsg{seq: seq, questions: svc.Quiz(ctx, topic)}
	}
	return qm, tea.Batch(gen, qm.spinner.Tick)
}

// receive accepts the questions for the latest request only.
func (qm quizModel) receive(msg quizMsg) quizModel {
	if msg.seq != qm.seq || qm.phase != quizLoading {
		return qm
	}
	if len(msg.questions) == 0 {
		qm.phase = quizChoose
		qm.note = "Could not generate a quiz. Check your connection and try again."
		return qm
	}
	qm.session = tutor.NewSession(qm.topic, msg.questions)
	qm.phase = quizAsking
	return qm
}

func (m model) updateQuiz(msg tea.Msg) (tea.Model, tea.Cmd) {
	q := &m.quiz
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if q.phase != quizLoading {
			return m, nil
		}
		var cmd tea.Cmd
		q.spinner, cmd = q.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "esc" {
			q.seq++
			return m.back()
		}
		switch q.phase {
		case quizChoose:
			switch key {
			case "up", "k":
				if q.cursor > 0 {
					q.cursor--
				}
			case "down", "j":
				if q.cursor < len(defaultTopics)-1 {
					q.cursor++
				}
			case "enter", " ":
				topic := q.topic
				if topic == "" {
					topic = defaultTopics[q.cursor]
				}
				var cmd tea.Cmd
				m.quiz, cmd = q.start(m.ctx, m.deps.Tutor, topic)
				return m, cmd
			}
		case quizAsking:
			s := q.session
			switch key {
			case "up", "k":
				s.Select(s.Selected() - 1)
			case "down", "j":
				if s.Selected() < 0 {
					s.Select(0)
				} else {
					s.Select(s.Selected() + 1)
				}
			case "1", "2", "3", "4":
				s.Select(int(key[0] - '1'))
			case "enter", " ":
				if s.Checked() {
					s.Next()
					if s.Done() {
						q.phase = quizResults
					}
				} else {
					s.Check()
				}
			}
		case quizResults:
			if key == "enter" || key == "r" {
				var cmd tea.Cmd
				m.quiz, cmd = q.start(m.ctx, m.deps.Tutor, q.topic)
				return m, cmd
			}
		}
	}
	return m, nil
}

func (qm quizModel) view(width int) string {
	var b strings.Builder
	b.WriteString("\n  " + viz.Title("Physics Quiz Zone") + "\n\n")

	switch qm.phase {
	case quizChoose:
		if qm.topic != "" {
			b.WriteString("  Topic selected: " + viz.MetricValue.Render(qm.topic) + "\n\n")
		} else {
			for i, t := range defaultTopics {
				if i == qm.cursor {
					b.WriteString("  " + viz.NeonGlow.Render("▸ "+t) + "\n")
				} else {
					b.WriteString("    " + viz.Subtle.Render(t) + "\n")
				}
			}
			b.WriteString("\n")
		}
		if qm.note != "" {
			b.WriteString("  " + viz.StatusFinished.Render(qm.note) + "\n\n")
		}
		b.WriteString("  " + viz.KeyHint.Render("↑↓ topic  enter start  q back"))

	case quizLoading:
		b.WriteString("  " + qm.spinner.View() + " Generating conceptual questions on " + viz.MetricValue.Render(qm.topic) + "...\n")

	case quizAsking:
		s := qm.session
		q, _ := s.Current()
		b.WriteString(viz.Subtle.Render(fmt.Sprintf("  Question %d of %d   score %d", s.Index()+1, s.Len(), s.Score())) + "\n\n")
		b.WriteString("  " + viz.HeaderStyle.Render(q.Question) + "\n\n")
		for i, opt := range q.Options {
			line := fmt.Sprintf("%d. %s", i+1, opt)
			switch {
			case s.Checked() && i == q.CorrectAnswer:
				line = viz.Correct.Render("✓ " + line)
			case s.Checked() && i == s.Selected():
				line = viz.Wrong.Render("✗ " + line)
			case i == s.Selected():
				line = viz.NeonGlow.Render("▸ " + line)
			default:
				line = "  " + line
			}
			b.WriteString("  " + line + "\n")
		}
		if s.Checked() {
			b.WriteString("\n  " + viz.MetricLabel.Render("Explanation") + "\n")
			b.WriteString("  " + viz.Subtle.Width(width-6).Render(q.Explanation) + "\n")
			b.WriteString("\n  " + viz.KeyHint.Render("enter next  q back"))
		} else {
			b.WriteString("\n  " + viz.KeyHint.Render("1-4 or ↑↓ choose  enter check  q back"))
		}

	case quizResults:
		s := qm.session
		icon := "📚"
		if s.Passed() {
			icon = "🏆"
		}
		b.WriteString(fmt.Sprintf("  %s You scored %s out of %d\n\n", icon, viz.MetricValue.Render(fmt.Sprint(s.Score())), s.Len()))
		frac := 0.0
		if s.Len() > 0 {
			frac = float64(s.Score()) / float64(s.Len())
		}
		filled := int(frac*30 + 0.5)
		b.WriteString("  " + viz.Correct.Render(strings.Repeat("█", filled)) + viz.Subtle.Render(strings.Repeat("░", 30-filled)) + "\n\n")
		b.WriteString("  " + viz.KeyHint.Render("enter retake  q back"))
	}
	return b.String()
}
