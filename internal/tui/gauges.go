package tui

import "github.com/charmbracelet/harmonica"

// gauges eases each parameter bar toward its value so nudges slide rather
// than jump.
type gauges struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newGauges(fps, n int) *gauges {
	return &gauges{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.9),
		pos:    make([]float64, n),
		vel:    make([]float64, n),
	}
}

// snap jumps every bar to its target.
func (g *gauges) snap(targets []float64) {
	for i := range g.pos {
		if i < len(targets) {
			g.pos[i] = targets[i]
			g.vel[i] = 0
		}
	}
}

func (g *gauges) step(targets []float64) {
	for i := range g.pos {
		if i >= len(targets) {
			break
		}
		g.pos[i], g.vel[i] = g.spring.Update(g.pos[i], g.vel[i], targets[i])
	}
}

func (g *gauges) at(i int) float64 {
	if g == nil || i < 0 || i >= len(g.pos) {
		return 0
	}
	return g.pos[i]
}
