package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physlab/internal/lab"
	"github.com/san-kum/physlab/internal/viz"
)

type menuKind int

const (
	itemLab menuKind = iota
	itemSyllabus
	itemTutor
	itemQuiz
)

type menuItem struct {
	kind  menuKind
	name  string
	title string
	desc  string
}

type menuModel struct {
	items  []menuItem
	cursor int
	err    string
}

func newMenu(r *lab.Registry) menuModel {
	var items []menuItem
	for _, name := range r.Names() {
		d, err := r.Get(name)
		if err != nil {
			continue
		}
		items = append(items, menuItem{kind: itemLab, name: name, title: d.Title, desc: d.Summary})
	}
	items = append(items,
		menuItem{kind: itemSyllabus, name: "syllabus", title: "Syllabus", desc: "FSc Physics chapters, grade 11 and 12"},
		menuItem{kind: itemTutor, name: "tutor", title: "AI Tutor", desc: "Ask conceptual questions"},
		menuItem{kind: itemQuiz, name: "quiz", title: "Quiz", desc: "Generated multiple choice questions"},
	)
	return menuModel{items: items}
}

func (m model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
	case "down", "j":
		if m.menu.cursor < len(m.menu.items)-1 {
			m.menu.cursor++
		}
	case "t":
		viz.NextTheme()
	case "enter", " ":
		return m.selectMenu(m.menu.items[m.menu.cursor])
	default:
		if n := digit(key.String()); n > 0 && n <= len(m.menu.items) {
			m.menu.cursor = n - 1
			return m.selectMenu(m.menu.items[n-1])
		}
	}
	return m, nil
}

func (m model) selectMenu(it menuItem) (tea.Model, tea.Cmd) {
	m.menu.err = ""
	switch it.kind {
	case itemLab:
		next, cmd, err := m.openLab(it.name)
		if err != nil {
			m.menu.err = err.Error()
			return m, nil
		}
		return next, cmd
	case itemSyllabus:
		m.screen = screenSyllabus
		return m, tea.ClearScreen
	case itemTutor:
		return m.openChat("")
	case itemQuiz:
		return m.openQuiz("")
	}
	return m, nil
}

func digit(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '0')
	}
	return 0
}

func (mm menuModel) view() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(viz.Subtle.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + viz.Title("p h y s l a b") + "\n")
	b.WriteString(viz.Subtle.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	for i, it := range mm.items {
		if it.kind == itemSyllabus {
			b.WriteString("\n")
		}
		num := fmt.Sprintf("%d", i+1)
		if i == mm.cursor {
			b.WriteString("    " + viz.NeonGlow.Render("▸ "+num+" "+fmt.Sprintf("%-24s", it.title)) + " " + viz.Subtle.Render(it.desc) + "\n")
		} else {
			b.WriteString("      " + viz.Subtle.Render(num) + " " + fmt.Sprintf("%-24s", it.title) + " " + viz.Subtle.Render(it.desc) + "\n")
		}
	}

	if mm.err != "" {
		b.WriteString("\n    " + viz.StatusFinished.Render(mm.err) + "\n")
	}
	b.WriteString("\n" + viz.KeyHint.Render("    ↑↓ select   enter open   1-9 jump   t theme   q quit") + "\n")
	return b.String()
}
