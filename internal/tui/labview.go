package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/physlab/internal/clock"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/lab"
	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/syllabus"
	"github.com/san-kum/physlab/internal/viz"
)

const (
	viewWidth   = 700
	viewHeight  = 400
	panelWidth  = 46
	historySize = 120
)

type labModel struct {
	lab    *lab.Lab
	gen    uint64
	cursor int
	last   time.Time
	gauges *gauges

	track    string
	trackIdx int
	history  []float64
	lastTime float64

	flash string
}

func newLabModel(l *lab.Lab, gen uint64, fps int) labModel {
	lm := labModel{lab: l, gen: gen, trackIdx: -1}
	lm.gauges = newGauges(fps, len(l.Params().Specs()))
	lm.gauges.snap(lm.fractions())
	if d, ok := l.Model().(physics.Dynamic); ok {
		lm.track, lm.trackIdx = trackedSeries(d.Labels())
	}
	return lm
}

// trackedSeries picks the state column plotted under the lab: vertical
// position if there is one, else horizontal.
func trackedSeries(labels []string) (string, int) {
	for _, want := range []string{"y", "x"} {
		for i, l := range labels {
			if l == want {
				return l, i
			}
		}
	}
	if len(labels) > 1 {
		return labels[1], 1
	}
	return "", -1
}

func (lm labModel) fractions() []float64 {
	specs := lm.lab.Params().Specs()
	out := make([]float64, len(specs))
	for i, sp := range specs {
		out[i] = sp.Fraction(lm.lab.Params().Get(sp.Name))
	}
	return out
}

func (m model) onFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenLab || msg.gen != m.lab.gen {
		return m, nil
	}
	elapsed := 0.0
	if !m.lab.last.IsZero() {
		elapsed = msg.at.Sub(m.lab.last).Seconds()
	}
	m.lab.last = msg.at
	if !m.deps.Host.Frame(msg.gen, elapsed) {
		return m, nil
	}
	m.lab.gauges.step(m.lab.fractions())
	m.lab.record()
	return m, frameTick(msg.gen, m.fps())
}

func (lm *labModel) record() {
	if lm.trackIdx < 0 {
		return
	}
	st := lm.lab.Clock()
	if st.Time < lm.lastTime || st.Time == 0 {
		lm.history = lm.history[:0]
	}
	if st.Time == lm.lastTime && len(lm.history) > 0 {
		return
	}
	lm.lastTime = st.Time
	vals := lm.lab.Frame().State.Values()
	if lm.trackIdx >= len(vals) {
		return
	}
	lm.history = append(lm.history, vals[lm.trackIdx])
	if len(lm.history) > historySize {
		lm.history = lm.history[len(lm.history)-historySize:]
	}
}

func (m model) updateLab(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	l := m.lab.lab
	specs := l.Params().Specs()
	m.lab.flash = ""

	switch key.String() {
	case "q", "esc":
		return m.back()
	case " ", "p":
		l.Command(clock.Toggle)
	case "r":
		l.Command(clock.Reset)
		m.lab.history = m.lab.history[:0]
	case "R":
		l.Reset()
		m.lab.history = m.lab.history[:0]
	case "tab", "down", "j":
		if len(specs) > 0 {
			m.lab.cursor = (m.lab.cursor + 1) % len(specs)
		}
	case "shift+tab", "up", "k":
		if len(specs) > 0 {
			m.lab.cursor = (m.lab.cursor + len(specs) - 1) % len(specs)
		}
	case "left", "h":
		m.nudge(specs, -1)
	case "right", "l":
		m.nudge(specs, 1)
	case "shift+left", "H":
		m.nudge(specs, -10)
	case "shift+right", "L":
		m.nudge(specs, 10)
	case "t":
		viz.NextTheme()
	case "s":
		m.lab.flash = m.saveRun()
	case "x":
		m.lab.flash = m.snapshot()
	case "a":
		chapters, _ := syllabus.ForLab(l.Name())
		if len(chapters) > 0 {
			return m.openChat(chapters[0].ExplainPrompt())
		}
		return m.openChat(fmt.Sprintf("Explain %s to me simply.", l.Definition().Title))
	}
	return m, nil
}

func (m *model) nudge(specs []params.Spec, steps int) {
	if len(specs) == 0 {
		return
	}
	if _, err := m.lab.lab.Nudge(specs[m.lab.cursor].Name, steps); err != nil {
		m.lab.flash = err.Error()
	}
}

func (m model) saveRun() string {
	if m.deps.Store == nil {
		return "no data directory"
	}
	if err := m.deps.Store.Init(); err != nil {
		return err.Error()
	}
	cfg := m.deps.Config
	tl := m.lab.lab.Sample(cfg.Dt, cfg.Duration)
	id, err := m.deps.Store.Save(tl)
	if err != nil {
		m.deps.Log.Warn("save run failed", "lab", m.lab.lab.Name(), "error", err)
		return err.Error()
	}
	return "saved run " + id
}

func (m model) snapshot() string {
	dir := m.deps.Config.DataDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err.Error()
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%d.svg", m.lab.lab.Name(), time.Now().Unix()))
	svg := export.NewSVG(viewWidth, viewHeight)
	m.lab.lab.Draw(svg)
	if err := os.WriteFile(path, []byte(svg.String()), 0644); err != nil {
		return err.Error()
	}
	return "wrote " + path
}

func (lm labModel) view(width, height int) string {
	if lm.lab == nil {
		return ""
	}
	l := lm.lab
	cw := width - panelWidth - 4
	if cw < 40 {
		cw = 40
	}
	ch := height - 14
	if ch < 12 {
		ch = 12
	}
	canvas := viz.NewCanvas(cw, ch)
	canvas.SetView(viewWidth, viewHeight)
	l.Draw(canvas)

	var b strings.Builder
	st := l.Clock()
	b.WriteString("\n  " + viz.Title(l.Definition().Title))
	if !l.Static() {
		b.WriteString("  " + phaseStyle(st.Phase).Render(st.Phase.String()))
		b.WriteString("  " + viz.Subtle.Render(fmt.Sprintf("t = %.2f s", st.Time)))
	}
	b.WriteString("\n  " + viz.Subtle.Render(l.Definition().Summary) + "\n\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		viz.GlassPanel.Render(strings.TrimRight(canvas.Render(), "\n")),
		" ",
		lm.panel(),
	)
	b.WriteString(body + "\n")

	if len(lm.history) > 1 {
		w := cw
		if w > 80 {
			w = 80
		}
		plot := asciigraph.Plot(lm.history,
			asciigraph.Height(5),
			asciigraph.Width(w),
			asciigraph.Precision(2),
			asciigraph.Caption(lm.track+" vs t"))
		b.WriteString(indent(plot, "  ") + "\n")
	}

	if lm.flash != "" {
		b.WriteString("  " + viz.MetricValue.Render(lm.flash) + "\n")
	}
	hint := "↑↓ param  ←→ adjust  ⇧←→ ×10  R defaults  s save  x svg  a ask tutor  t theme  q back"
	if !l.Static() {
		hint = "space start/pause  r reset clock  " + hint
	}
	b.WriteString("  " + viz.KeyHint.Render(hint) + "\n")
	return b.String()
}

func (lm labModel) panel() string {
	l := lm.lab
	var b strings.Builder
	b.WriteString(viz.HeaderStyle.Render("Parameters") + "\n")
	for i, sp := range l.Params().Specs() {
		v := l.Params().Get(sp.Name)
		label := fmt.Sprintf("%-18s", sp.Label)
		if i == lm.cursor {
			label = viz.NeonGlow.Render(label)
		} else {
			label = viz.Subtle.Render(label)
		}
		b.WriteString(label + " " + viz.MetricValue.Render(sp.Format(v)) + "\n")
		b.WriteString(viz.Gauge(lm.gauges.at(i), 30) + "\n")
	}

	b.WriteString("\n" + viz.HeaderStyle.Render("Results") + "\n")
	for _, q := range l.Derived() {
		val := "undefined"
		if q.Defined {
			val = strings.TrimSpace(fmt.Sprintf("%.2f %s", q.Value, q.Unit))
		}
		b.WriteString(viz.MetricLabel.Render(q.Label) + viz.MetricValue.Render(val) + "\n")
	}
	return viz.GlassPanel.Width(panelWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func phaseStyle(p clock.Phase) lipgloss.Style {
	switch p {
	case clock.Running:
		return viz.StatusRunning
	case clock.Paused:
		return viz.StatusPaused
	case clock.Terminal:
		return viz.StatusFinished
	}
	return viz.Subtle
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
