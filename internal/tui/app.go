// Package tui is the terminal front end: a menu of labs, the lab screen,
// the syllabus browser, the tutor chat and the quiz.
package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/lab"
	"github.com/san-kum/physlab/internal/storage"
	"github.com/san-kum/physlab/internal/tutor"
)

type screen int

const (
	screenMenu screen = iota
	screenLab
	screenSyllabus
	screenTutor
	screenQuiz
)

// Deps are the services the TUI drives.
type Deps struct {
	Host   *lab.Host
	Tutor  *tutor.Service
	Store  *storage.Store
	Config *config.Config
	Log    *slog.Logger
}

type model struct {
	ctx    context.Context
	deps   Deps
	screen screen
	width  int
	height int

	menu     menuModel
	lab      labModel
	syllabus syllabusModel
	chat     chatModel
	quiz     quizModel
}

// New builds the root model. ctx bounds tutor and quiz requests.
func New(ctx context.Context, deps Deps) tea.Model {
	if deps.Config == nil {
		deps.Config = config.DefaultConfig()
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	if deps.Tutor == nil {
		deps.Tutor = tutor.NewService(nil, tutor.Options{}, deps.Log)
	}
	return model{
		ctx:      ctx,
		deps:     deps,
		width:    100,
		height:   32,
		menu:     newMenu(deps.Host.Registry()),
		syllabus: newSyllabus(),
		chat:     newChat(deps.Tutor),
		quiz:     newQuiz(),
	}
}

// Run starts the program on the alternate screen. If startLab is set the
// program opens straight into that lab.
func Run(ctx context.Context, deps Deps, startLab string) error {
	m := New(ctx, deps).(model)
	if startLab != "" {
		var err error
		m, _, err = m.openLab(startLab)
		if err != nil {
			return err
		}
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	if m.screen == screenLab {
		return frameTick(m.lab.gen, m.fps())
	}
	return tea.SetWindowTitle("physlab")
}

func (m model) fps() int {
	if m.deps.Config.FPS > 0 {
		return m.deps.Config.FPS
	}
	return config.DefaultFPS
}

type frameMsg struct {
	gen uint64
	at  time.Time
}

// frameTick schedules one frame for the lab mounted as gen.
func frameTick(gen uint64, fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.syllabus.resize(msg.Width, msg.Height)
		m.chat.resize(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.deps.Host.Unmount()
			return m, tea.Quit
		}
	case frameMsg:
		return m.onFrame(msg)
	case replyMsg:
		m.chat = m.chat.receive(msg)
		return m, nil
	case quizMsg:
		m.quiz = m.quiz.receive(msg)
		return m, nil
	}

	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenLab:
		return m.updateLab(msg)
	case screenSyllabus:
		return m.updateSyllabus(msg)
	case screenTutor:
		return m.updateChat(msg)
	case screenQuiz:
		return m.updateQuiz(msg)
	}
	return m, nil
}

func (m model) View() string {
	switch m.screen {
	case screenLab:
		return m.lab.view(m.width, m.height)
	case screenSyllabus:
		return m.syllabus.view()
	case screenTutor:
		return m.chat.view(m.width, m.height)
	case screenQuiz:
		return m.quiz.view(m.width)
	}
	return m.menu.view()
}

func (m model) back() (tea.Model, tea.Cmd) {
	if m.screen == screenLab {
		m.deps.Host.Unmount()
		m.lab = labModel{}
	}
	m.screen = screenMenu
	return m, tea.ClearScreen
}

// openLab mounts name and switches to the lab screen. Parameters from the
// config file apply when it names the same lab.
func (m model) openLab(name string) (model, tea.Cmd, error) {
	l, gen, err := m.deps.Host.Mount(name)
	if err != nil {
		return m, nil, err
	}
	cfg := m.deps.Config
	if cfg.Lab == name && len(cfg.Params) > 0 {
		if err := l.Apply(cfg.Params); err != nil {
			m.deps.Log.Warn("config params rejected", "lab", name, "error", err)
		}
	}
	m.lab = newLabModel(l, gen, m.fps())
	m.screen = screenLab
	return m, tea.Batch(tea.ClearScreen, frameTick(gen, m.fps())), nil
}

func (m model) openChat(prompt string) (tea.Model, tea.Cmd) {
	if m.screen == screenLab {
		m.deps.Host.Unmount()
		m.lab = labModel{}
	}
	m.screen = screenTutor
	var cmd tea.Cmd
	m.chat, cmd = m.chat.open(m.ctx, prompt)
	return m, tea.Batch(tea.ClearScreen, cmd)
}

func (m model) openQuiz(topic string) (tea.Model, tea.Cmd) {
	m.screen = screenQuiz
	seq := m.quiz.seq
	m.quiz = newQuiz()
	m.quiz.seq = seq
	if topic == "" {
		return m, tea.ClearScreen
	}
	var cmd tea.Cmd
	m.quiz, cmd = m.quiz.start(m.ctx, m.deps.Tutor, topic)
	return m, tea.Batch(tea.ClearScreen, cmd)
}
