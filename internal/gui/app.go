// Package gui is the desktop window for the labs, drawn with raylib.
package gui

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/physlab/internal/clock"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/lab"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/viz"
)

const (
	windowW = 1280
	windowH = 720
	panelW  = 360
)

var (
	ColBg      = viz.Hex("#0b1120")
	ColText    = viz.Hex("#cbd5e1")
	ColTextDim = viz.Hex("#64748b")
	ColSelect  = viz.Hex("#f8fafc")
	ColAccent  = viz.Hex("#22d3ee")
)

type App struct {
	host     *lab.Host
	names    []string
	cfg      *config.Config
	log      *slog.Logger
	selected int
	paramSel int
	surface  *Surface
	lab      *lab.Lab
	gen      uint64
	quit     bool
}

func NewApp(host *lab.Host, cfg *config.Config, log *slog.Logger) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = slog.Default()
	}
	return &App{
		host:    host,
		names:   host.Registry().Names(),
		cfg:     cfg,
		log:     log,
		surface: NewSurface(20, 60, windowW-panelW-40, windowH-100),
	}
}

// Run opens the window and blocks until it is closed. startLab, if set, is
// mounted immediately.
func Run(host *lab.Host, cfg *config.Config, startLab string, log *slog.Logger) error {
	a := NewApp(host, cfg, log)
	if startLab != "" {
		if err := a.mount(startLab); err != nil {
			return err
		}
	}

	rl.InitWindow(windowW, windowH, "physlab")
	defer rl.CloseWindow()
	fps := a.cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)

	for !rl.WindowShouldClose() && !a.quit {
		a.Update(float64(rl.GetFrameTime()))
		a.Draw()
	}
	a.host.Unmount()
	return nil
}

func (a *App) mount(name string) error {
	l, gen, err := a.host.Mount(name)
	if err != nil {
		return err
	}
	if a.cfg.Lab == name && len(a.cfg.Params) > 0 {
		if err := l.Apply(a.cfg.Params); err != nil {
			a.log.Warn("config params rejected", "lab", name, "error", err)
		}
	}
	a.lab, a.gen, a.paramSel = l, gen, 0
	return nil
}

func (a *App) unmount() {
	a.host.Unmount()
	a.lab = nil
}

func (a *App) Update(elapsed float64) {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	for i, name := range a.names {
		if i < 9 && rl.IsKeyPressed(rl.KeyOne+int32(i)) {
			if err := a.mount(name); err != nil {
				a.log.Warn("mount failed", "lab", name, "error", err)
			}
		}
	}

	if a.lab == nil {
		a.updateMenu()
		return
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.unmount()
		return
	}
	a.updateLab()
	if !a.host.Frame(a.gen, elapsed) {
		a.lab = nil
	}
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.selected = (a.selected + 1) % len(a.names)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.selected = (a.selected + len(a.names) - 1) % len(a.names)
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		if err := a.mount(a.names[a.selected]); err != nil {
			a.log.Warn("mount failed", "lab", a.names[a.selected], "error", err)
		}
	}
}

func (a *App) updateLab() {
	l := a.lab
	specs := l.Params().Specs()

	if rl.IsKeyPressed(rl.KeySpace) {
		l.Command(clock.Toggle)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if rl.IsKeyDown(rl.KeyLeftShift) {
			l.Reset()
		} else {
			l.Command(clock.Reset)
		}
	}
	if len(specs) == 0 {
		return
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyTab) {
		a.paramSel = (a.paramSel + 1) % len(specs)
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		a.paramSel = (a.paramSel + len(specs) - 1) % len(specs)
	}
	steps := 1
	if rl.IsKeyDown(rl.KeyLeftShift) {
		steps = 10
	}
	name := specs[a.paramSel].Name
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressedRepeat(rl.KeyRight) {
		l.Nudge(name, steps)
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressedRepeat(rl.KeyLeft) {
		l.Nudge(name, -steps)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(ColBg)

	if a.lab == nil {
		a.drawMenu()
		return
	}
	l := a.lab
	rl.DrawText(l.Definition().Title, 20, 18, 28, ColSelect)
	a.lab.Draw(a.surface)
	a.drawPanel(windowW-panelW, 60)
	rl.DrawText("space start/pause   r reset   shift+r defaults   up/down param   left/right adjust   esc menu   q quit",
		20, windowH-30, 16, ColTextDim)
}

func (a *App) drawMenu() {
	rl.DrawText("physlab", 60, 60, 48, ColAccent)
	y := int32(150)
	for i, name := range a.names {
		d, err := a.host.Registry().Get(name)
		if err != nil {
			continue
		}
		col := ColText
		prefix := "  "
		if i == a.selected {
			col = ColSelect
			prefix = "> "
		}
		rl.DrawText(fmt.Sprintf("%s%d  %s", prefix, i+1, d.Title), 60, y, 26, col)
		rl.DrawText(d.Summary, 420, y+6, 16, ColTextDim)
		y += 44
	}
	rl.DrawText("up/down select   enter or 1-9 open   q quit", 60, windowH-60, 18, ColTextDim)
}

func (a *App) drawPanel(x, y int32) {
	l := a.lab
	st := l.Clock()
	if !l.Static() {
		rl.DrawText(fmt.Sprintf("%s   t = %.2f s", st.Phase, st.Time), x, y, 20, phaseColor(st.Phase))
		y += 36
	}

	rl.DrawText("PARAMETERS", x, y, 16, ColTextDim)
	y += 24
	for i, sp := range l.Params().Specs() {
		col := ColText
		if i == a.paramSel {
			col = ColAccent
		}
		v := l.Params().Get(sp.Name)
		rl.DrawText(fmt.Sprintf("%-16s %s", sp.Label, sp.Format(v)), x, y, 18, col)
		frac := sp.Fraction(v)
		rl.DrawRectangle(x, y+22, panelW-40, 4, ColTextDim)
		rl.DrawRectangle(x, y+22, int32(frac*float64(panelW-40)), 4, col)
		y += 40
	}

	y += 12
	rl.DrawText("RESULTS", x, y, 16, ColTextDim)
	y += 24
	for _, q := range l.Derived() {
		val := "undefined"
		if q.Defined {
			val = strings.TrimSpace(fmt.Sprintf("%.2f %s", q.Value, q.Unit))
		}
		rl.DrawText(q.Label, x, y, 16, ColText)
		rl.DrawText(val, x+200, y, 16, render.Cyan)
		y += 24
	}
}

func phaseColor(p clock.Phase) color.RGBA {
	switch p {
	case clock.Running:
		return render.Green
	case clock.Paused:
		return render.Amber
	case clock.Terminal:
		return render.Red
	}
	return ColTextDim
}
