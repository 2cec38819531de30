package termview

import (
	"math"

	"github.com/phanxgames/evergreen"
)

// Virtual pixel size of one cell. The overlay draws in these pixels.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// fadeFloor drops cells once Fade has dimmed them below this level.
const fadeFloor = 0.05

// Canvas implements evergreen.Canvas on a cell grid. Shapes are sampled at
// cell centers; strokes become runs of block glyphs.
type Canvas struct {
	grid *Grid
}

var _ evergreen.Canvas = (*Canvas)(nil)

// NewCanvas creates a canvas covering cols×rows cells.
func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{grid: NewGrid(cols, rows)}
}

// Grid returns the overlay cells.
func (c *Canvas) Grid() *Grid { return c.grid }

// Resize reallocates the canvas.
func (c *Canvas) Resize(cols, rows int) { c.grid.Resize(cols, rows) }

// Size implements evergreen.Canvas.
func (c *Canvas) Size() (w, h float64) {
	return float64(c.grid.W) * CellWidth, float64(c.grid.H) * CellHeight
}

func cellOf(p evergreen.Vec2) (int, int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

func cellCenter(x, y int) evergreen.Vec2 {
	return evergreen.Vec2{X: (float64(x) + 0.5) * CellWidth, Y: (float64(y) + 0.5) * CellHeight}
}

// Fade dims every cell by the alpha of col, leaving a fading afterimage.
func (c *Canvas) Fade(col evergreen.Color) {
	keep := 1 - min(max(col.A, 0), 1)
	for i := range c.grid.Cells {
		cell := &c.grid.Cells[i]
		if cell.Rune == 0 {
			continue
		}
		cell.Level *= keep
		if cell.Level < fadeFloor {
			*cell = Cell{}
		}
	}
}

// StrokeCurve implements evergreen.Canvas. The curve is drawn as straight
// segments; a cell grid cannot show the smoothing.
func (c *Canvas) StrokeCurve(pts []evergreen.Vec2, width float64, paint evergreen.Gradient, _ evergreen.Color) {
	if len(pts) < 2 {
		return
	}
	total := polylineLength(pts)
	done := 0.0
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := a.Sub(b).Len()
		c.segment(a, b, width, func(t float64) evergreen.Color {
			if total == 0 {
				return paint.At(0)
			}
			return paint.At((done + seg*t) / total)
		})
		done += seg
	}
}

// StrokePolyline implements evergreen.Canvas.
func (c *Canvas) StrokePolyline(pts []evergreen.Vec2, width float64, col evergreen.Color) {
	for i := 1; i < len(pts); i++ {
		c.segment(pts[i-1], pts[i], width, func(float64) evergreen.Color { return col })
	}
}

func polylineLength(pts []evergreen.Vec2) float64 {
	n := 0.0
	for i := 1; i < len(pts); i++ {
		n += pts[i].Sub(pts[i-1]).Len()
	}
	return n
}

// segment plots cells along a→b, half a cell apart.
func (c *Canvas) segment(a, b evergreen.Vec2, width float64, paint func(t float64) evergreen.Color) {
	glyph := '·'
	if width >= CellWidth/2 {
		glyph = '█'
	} else if width >= 2 {
		glyph = '•'
	}
	d := b.Sub(a)
	steps := max(1, int(math.Ceil(math.Max(math.Abs(d.X)/CellWidth, math.Abs(d.Y)/CellHeight)*2)))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := cellOf(evergreen.Vec2{X: a.X + d.X*t, Y: a.Y + d.Y*t})
		col := paint(t)
		c.grid.Set(x, y, glyph, col.WithAlpha(1), col.A, false)
	}
}

// FillCircle implements evergreen.Canvas. Glow widens the disc by one cell.
func (c *Canvas) FillCircle(center evergreen.Vec2, r float64, col evergreen.Color, glow float64) {
	c.disc(center, r, '●', func(float64) evergreen.Color { return col })
	if glow > 0 {
		c.disc(center, r+CellWidth, '░', func(float64) evergreen.Color { return col.WithAlpha(col.A * 0.3) })
	}
}

// FillRadial implements evergreen.Canvas.
func (c *Canvas) FillRadial(center evergreen.Vec2, r float64, stops []evergreen.GradientStop) {
	g := evergreen.Gradient{Stops: stops}
	c.disc(center, r, '•', g.At)
}

// disc fills every cell whose center lies within r of center, or the
// center cell when the disc is smaller than a cell. Cells already drawn
// brighter are kept.
func (c *Canvas) disc(center evergreen.Vec2, r float64, glyph rune, paint func(t float64) evergreen.Color) {
	x0, y0 := cellOf(evergreen.Vec2{X: center.X - r, Y: center.Y - r})
	x1, y1 := cellOf(evergreen.Vec2{X: center.X + r, Y: center.Y + r})
	hit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := cellCenter(x, y).Sub(center).Len()
			if d > r {
				continue
			}
			t := 0.0
			if r > 0 {
				t = d / r
			}
			col := paint(t)
			c.grid.Set(x, y, glyph, col.WithAlpha(1), col.A, true)
			hit = true
		}
	}
	if !hit {
		x, y := cellOf(center)
		col := paint(0)
		c.grid.Set(x, y, glyph, col.WithAlpha(1), col.A, true)
	}
}

// FillStar implements evergreen.Canvas. A star is one glyph.
func (c *Canvas) FillStar(center evergreen.Vec2, r, _ float64, _ int, _ float64, col evergreen.Color, _ float64) {
	glyph := '✦'
	if r >= CellWidth {
		glyph = '★'
	}
	x, y := cellOf(center)
	c.grid.Set(x, y, glyph, col.WithAlpha(1), col.A, true)
}

// FillRoundRect implements evergreen.Canvas. The gradient is sampled along
// its axis at each cell center.
func (c *Canvas) FillRoundRect(x, y, w, h, _ float64, paint evergreen.Gradient) {
	x0, y0 := cellOf(evergreen.Vec2{X: x, Y: y})
	x1, y1 := cellOf(evergreen.Vec2{X: x + w - 1e-9, Y: y + h - 1e-9})
	ax, ay := paint.X1-paint.X0, paint.Y1-paint.Y0
	l2 := ax*ax + ay*ay
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			t := 0.0
			if l2 > 0 {
				p := cellCenter(cx, cy)
				t = ((p.X-paint.X0)*ax + (p.Y-paint.Y0)*ay) / l2
			}
			col := paint.At(t)
			c.grid.Set(cx, cy, '█', col.WithAlpha(1), col.A, false)
		}
	}
}

// DrawText implements evergreen.Canvas. Size is ignored; terminals have one
// font size.
func (c *Canvas) DrawText(s string, x, y, _ float64, col evergreen.Color, align evergreen.Align) {
	n := float64(len([]rune(s))) * CellWidth
	switch align {
	case evergreen.AlignCenter:
		x -= n / 2
	case evergreen.AlignRight:
		x -= n
	}
	cx, cy := cellOf(evergreen.Vec2{X: x + CellWidth/2, Y: y})
	c.grid.Text(cx, cy, s, col.WithAlpha(1), col.A)
}
