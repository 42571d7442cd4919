package lab

import (
	"context"
	"time"

	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/viz"
)

// Loop drives a mounted lab from a ticker until the context ends or the lab
// is unmounted.
type Loop struct {
	Host    *Host
	FPS     int
	Surface viz.Surface
	// OnFrame, if set, sees every frame after it is drawn.
	OnFrame func(render.Frame)
}

func (lp *Loop) Run(ctx context.Context) error {
	l, gen := lp.Host.Active()
	if l == nil {
		return ErrNotMounted
	}
	fps := lp.FPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			if !lp.Host.Frame(gen, elapsed) {
				return ErrNotMounted
			}
			frame := l.Frame()
			if lp.Surface != nil {
				render.Draw(lp.Surface, l.Definition().Renderer, frame)
			}
			if lp.OnFrame != nil {
				lp.OnFrame(frame)
			}
		}
	}
}
