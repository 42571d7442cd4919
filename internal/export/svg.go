package export

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/viz"
)

// SVG is a viz.Surface that records drawing calls as an SVG document.
type SVG struct {
	viz.Path
	width, height float64

	body    strings.Builder
	stroke  color.RGBA
	lineW   float64
	fill    color.RGBA
	dashOn  float64
	dashOff float64
}

func NewSVG(width, height float64) *SVG {
	return &SVG{width: width, height: height, lineW: 1}
}

func (s *SVG) Size() (float64, float64) { return s.width, s.height }

func (s *SVG) Clear(bg color.RGBA) {
	s.body.Reset()
	s.Take()
	s.body.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>
`, viz.CSS(bg)))
}

func (s *SVG) SetStroke(c color.RGBA, width float64) {
	s.stroke = c
	s.lineW = width
}

func (s *SVG) SetFill(c color.RGBA) { s.fill = c }

func (s *SVG) SetDash(on, off float64) { s.dashOn, s.dashOff = on, off }

func pathData(subs []viz.Subpath) string {
	var d strings.Builder
	for _, sub := range subs {
		for i, p := range sub.Points {
			if i == 0 {
				d.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X, p.Y))
			} else {
				d.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		if sub.Closed {
			d.WriteString(" Z")
		}
	}
	return d.String()
}

func (s *SVG) Stroke() {
	d := pathData(s.Take())
	if d == "" {
		return
	}
	dash := ""
	if s.dashOn > 0 {
		dash = fmt.Sprintf(` stroke-dasharray="%.1f %.1f"`, s.dashOn, s.dashOff)
	}
	s.body.WriteString(fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round"%s/>
`, d, viz.CSS(s.stroke), s.lineW, dash))
}

func (s *SVG) Fill() {
	d := pathData(s.Take())
	if d == "" {
		return
	}
	s.body.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" fill-rule="evenodd"/>
`, d, viz.CSS(s.fill)))
}

func (s *SVG) Text(p geom.Point, text string, size float64) {
	s.body.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%.0f" font-family="sans-serif" fill="%s">%s</text>
`, p.X, p.Y, size, viz.CSS(s.fill), html.EscapeString(text)))
}

func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, s.width, s.height, s.width, s.height))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// SeriesToSVG plots ys against xs as a single polyline, padded by 10% on
// each axis.
func SeriesToSVG(xs, ys []float64, width, height int, strokeColor string) string {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n < 2 {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 0; i < n; i++ {
		minX, maxX = min(minX, xs[i]), max(maxX, xs[i])
		minY, maxY = min(minY, ys[i]), max(maxY, ys[i])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0f172a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := 0; i < n; i++ {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
