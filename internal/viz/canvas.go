package viz

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physlab/internal/geom"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type label struct {
	row, col int
	text     string
	color    color.RGBA
}

// Canvas is a Braille terminal canvas implementing Surface. It exposes a
// logical view (700x400 by default for labs) that is scaled down onto the
// Width*2 x Height*4 dot grid.
type Canvas struct {
	Path
	Width, Height int
	Grid          [][]rune

	colors [][]color.RGBA
	labels []label

	viewW, viewH float64
	stroke       color.RGBA
	fill         color.RGBA
	dashOn       float64
	dashOff      float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		colors: make([][]color.RGBA, h),
		viewW:  float64(w * 2),
		viewH:  float64(h * 4),
		stroke: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.colors[i] = make([]color.RGBA, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// SetView sets the logical size reported by Size.
func (c *Canvas) SetView(w, h float64) {
	if w > 0 && h > 0 {
		c.viewW, c.viewH = w, h
	}
}

func (c *Canvas) Size() (float64, float64) { return c.viewW, c.viewH }

func (c *Canvas) scale() (sx, sy float64) {
	return float64(c.Width*2) / c.viewW, float64(c.Height*4) / c.viewH
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.colors[row][col] = c.stroke
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Clear resets the canvas. The background colour is the terminal's own.
func (c *Canvas) Clear(color.RGBA) {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.colors[i][j] = color.RGBA{}
		}
	}
	c.labels = c.labels[:0]
	c.Take()
}

func (c *Canvas) SetStroke(col color.RGBA, _ float64) { c.stroke = col }

func (c *Canvas) SetFill(col color.RGBA) { c.fill = col }

func (c *Canvas) SetDash(on, off float64) { c.dashOn, c.dashOff = on, off }

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.dashedLine(x0, y0, x1, y1, 0, 0, new(int))
}

func (c *Canvas) dashedLine(x0, y0, x1, y1, on, off int, walked *int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		if on <= 0 || *walked%(on+off) < on {
			c.Set(x0, y0)
		}
		*walked++
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) Stroke() {
	sx, sy := c.scale()
	on := int(math.Round(c.dashOn * sx))
	off := int(math.Round(c.dashOff * sx))
	if c.dashOn > 0 && on < 1 {
		on = 1
	}
	if c.dashOff > 0 && off < 1 {
		off = 1
	}
	walked := 0
	for _, sub := range c.Take() {
		if len(sub.Points) == 1 {
			p := sub.Points[0]
			c.Set(int(p.X*sx), int(p.Y*sy))
			continue
		}
		for _, seg := range sub.Segments() {
			a, b, ok := geom.ClipSegment(seg[0], seg[1], c.viewW, c.viewH)
			if !ok {
				continue
			}
			c.dashedLine(int(a.X*sx), int(a.Y*sy), int(b.X*sx), int(b.Y*sy), on, off, &walked)
		}
	}
}

// Fill paints the even-odd interior of the current path, scanline by
// scanline in dot space.
func (c *Canvas) Fill() {
	subs := c.Take()
	sx, sy := c.scale()
	saved := c.stroke
	c.stroke = c.fill
	defer func() { c.stroke = saved }()

	var edges [][2]geom.Point
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, sub := range subs {
		sub.Closed = true
		for _, e := range sub.Segments() {
			a := geom.P(e[0].X*sx, e[0].Y*sy)
			b := geom.P(e[1].X*sx, e[1].Y*sy)
			edges = append(edges, [2]geom.Point{a, b})
			minY = math.Min(minY, math.Min(a.Y, b.Y))
			maxY = math.Max(maxY, math.Max(a.Y, b.Y))
		}
	}
	if len(edges) == 0 {
		return
	}

	y0 := int(math.Max(0, math.Floor(minY)))
	y1 := int(math.Min(float64(c.Height*4-1), math.Ceil(maxY)))
	painted := false
	var xs []float64
	for y := y0; y <= y1; y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]
		for _, e := range edges {
			a, b := e[0], e[1]
			if (a.Y <= cy) == (b.Y <= cy) {
				continue
			}
			xs = append(xs, a.X+(cy-a.Y)/(b.Y-a.Y)*(b.X-a.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			from := int(math.Ceil(xs[i] - 0.5))
			to := int(math.Floor(xs[i+1] - 0.5))
			for x := from; x <= to; x++ {
				c.Set(x, y)
				painted = true
			}
		}
	}
	// shapes smaller than a dot still show up
	if !painted {
		e := edges[0][0]
		c.Set(int(e.X), int(e.Y))
	}
}

func (c *Canvas) Text(p geom.Point, s string, _ float64) {
	sx, sy := c.scale()
	row := int(p.Y * sy / 4)
	col := int(p.X * sx / 2)
	if row < 0 || row >= c.Height || s == "" {
		return
	}
	c.labels = append(c.labels, label{row: row, col: col, text: s, color: c.fill})
}

// cells returns the grid with text labels written over it.
func (c *Canvas) cells() ([][]rune, [][]color.RGBA) {
	grid := make([][]rune, c.Height)
	cols := make([][]color.RGBA, c.Height)
	for i := range c.Grid {
		grid[i] = append([]rune(nil), c.Grid[i]...)
		cols[i] = append([]color.RGBA(nil), c.colors[i]...)
	}
	for _, l := range c.labels {
		for i, r := range []rune(l.text) {
			col := l.col + i
			if col < 0 || col >= c.Width {
				continue
			}
			grid[l.row][col] = r
			cols[l.row][col] = l.color
		}
	}
	return grid, cols
}

func (c *Canvas) String() string {
	grid, _ := c.cells()
	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with per-cell colours applied through lipgloss.
func (c *Canvas) Render() string {
	grid, cols := c.cells()
	var b strings.Builder
	for i, row := range grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && cols[i][j] == cols[i][start] {
				continue
			}
			run := string(row[start:j])
			if cols[i][start].A == 0 {
				b.WriteString(run)
			} else {
				style := lipgloss.NewStyle().Foreground(lipgloss.Color(HexString(cols[i][start])))
				b.WriteString(style.Render(run))
			}
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
