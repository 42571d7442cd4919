package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physlab/internal/tutor"
	"github.com/san-kum/physlab/internal/viz"
)

type replyMsg struct{ text string }

type chatModel struct {
	svc     *tutor.Service
	conv    *tutor.Conversation
	input   textinput.Model
	spinner spinner.Model
	waiting bool
	width   int
}

func newChat(svc *tutor.Service) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about a physics concept..."
	ti.CharLimit = 500
	ti.Width = 70

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = viz.MetricValue

	return chatModel{
		svc:     svc,
		conv:    tutor.NewConversation(svc),
		input:   ti,
		spinner: s,
		width:   100,
	}
}

func (cm *chatModel) resize(w int) {
	cm.width = w
	cm.input.Width = w - 8
}

// open focuses the input and, when prompt is set, sends it right away.
func (cm chatModel) open(ctx context.Context, prompt string) (chatModel, tea.Cmd) {
	focus := cm.input.Focus()
	if strings.TrimSpace(prompt) == "" || cm.waiting {
		return cm, tea.Batch(focus, textinput.Blink)
	}
	cm, send := cm.send(ctx, prompt)
	return cm, tea.Batch(focus, send)
}

func (cm chatModel) send(ctx context.Context, text string) (chatModel, tea.Cmd) {
	history := cm.conv.Messages()
	cm.conv.Append(tutor.RoleUser, text)
	cm.waiting = true
	svc := cm.svc
	ask := func() tea.Msg {
		return replyMsg{text: svc.Ask(ctx, history, text)}
	}
	return cm, tea.Batch(ask, cm.spinner.Tick)
}

func (cm chatModel) receive(msg replyMsg) chatModel {
	cm.conv.Append(tutor.RoleModel, msg.text)
	cm.waiting = false
	return cm
}

func (m model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.chat.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.chat.spinner, cmd = m.chat.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.chat.input.Blur()
			return m.back()
		case "enter":
			text := strings.TrimSpace(m.chat.input.Value())
			if text == "" || m.chat.waiting {
				return m, nil
			}
			m.chat.input.Reset()
			var cmd tea.Cmd
			m.chat, cmd = m.chat.send(m.ctx, text)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.chat.input, cmd = m.chat.input.Update(msg)
	return m, cmd
}

var (
	userBubble  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#0d9488")).Padding(0, 1)
	tutorBubble = lipgloss.NewStyle().Foreground(lipgloss.Color("#e2e8f0")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444466")).Padding(0, 1)
)

func (cm chatModel) view(width, height int) string {
	wrap := width * 4 / 5
	if wrap < 30 {
		wrap = 30
	}
	var blocks []string
	for _, msg := range cm.conv.Messages() {
		if msg.Role == tutor.RoleUser {
			blocks = append(blocks, lipgloss.PlaceHorizontal(width-2, lipgloss.Right, userBubble.Width(wrap/2).Render(msg.Text)))
		} else {
			blocks = append(blocks, tutorBubble.Width(wrap).Render(msg.Text))
		}
	}
	if cm.waiting {
		blocks = append(blocks, cm.spinner.View()+" "+viz.Subtle.Render("thinking..."))
	}

	transcript := strings.Join(blocks, "\n")
	lines := strings.Split(transcript, "\n")
	room := height - 7
	if room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	var b strings.Builder
	b.WriteString("\n  " + viz.Title("AI Physics Tutor") + "\n\n")
	b.WriteString(strings.Join(lines, "\n") + "\n\n")
	b.WriteString("  " + cm.input.View() + "\n")
	b.WriteString("  " + viz.KeyHint.Render("enter send  esc back"))
	return b.String()
}
