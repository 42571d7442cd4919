package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physlab/internal/syllabus"
	"github.com/san-kum/physlab/internal/viz"
)

type chapterItem struct{ ch syllabus.Chapter }

func (i chapterItem) Title() string { return fmt.Sprintf("%2d. %s", i.ch.ID, i.ch.Title) }

func (i chapterItem) Description() string {
	d := fmt.Sprintf("Grade %d  %s", i.ch.Grade, i.ch.Description)
	if i.ch.HasLab() {
		d = fmt.Sprintf("Grade %d  [%s]  %s", i.ch.Grade, i.ch.LabLabel, i.ch.Description)
	}
	return d
}

func (i chapterItem) FilterValue() string { return i.ch.Title }

type syllabusModel struct {
	list list.Model
	err  string
}

func newSyllabus() syllabusModel {
	chapters, err := syllabus.Chapters()
	items := make([]list.Item, len(chapters))
	for i, c := range chapters {
		items[i] = chapterItem{ch: c}
	}
	l := list.New(items, list.NewDefaultDelegate(), 100, 30)
	l.Title = "FSc Physics Syllabus"
	l.Styles.Title = viz.GradientTitle
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	sm := syllabusModel{list: l}
	if err != nil {
		sm.err = err.Error()
	}
	return sm
}

func (sm *syllabusModel) resize(w, h int) {
	sm.list.SetSize(w, h-2)
}

func (sm syllabusModel) selected() (syllabus.Chapter, bool) {
	it, ok := sm.list.SelectedItem().(chapterItem)
	return it.ch, ok
}

func (m model) updateSyllabus(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.syllabus.list.FilterState() != list.Filtering {
		c, has := m.syllabus.selected()
		switch key.String() {
		case "q", "esc":
			if m.syllabus.list.FilterState() == list.FilterApplied {
				m.syllabus.list.ResetFilter()
				return m, nil
			}
			return m.back()
		case "enter":
			if has && c.HasLab() {
				next, cmd, err := m.openLab(c.Lab)
				if err != nil {
					m.syllabus.err = err.Error()
					return m, nil
				}
				return next, cmd
			}
			m.syllabus.err = "no interactive lab for this chapter"
			return m, nil
		case "z":
			if has {
				return m.openQuiz(c.Title)
			}
		case "e":
			if has {
				return m.openChat(c.ExplainPrompt())
			}
		}
	}
	var cmd tea.Cmd
	m.syllabus.list, cmd = m.syllabus.list.Update(msg)
	return m, cmd
}

func (sm syllabusModel) view() string {
	s := sm.list.View() + "\n"
	if sm.err != "" {
		s += "  " + viz.StatusFinished.Render(sm.err) + "\n"
	}
	return s + "  " + viz.KeyHint.Render("enter open lab  z quiz  e explain  / filter  q back")
}
