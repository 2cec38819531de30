// Package ggcanvas implements evergreen.Canvas on a gogpu/gg software
// context, and renders billboard textures with the same context.
package ggcanvas

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/evergreen"
)

// glowRings is the number of translucent halos drawn to fake a blur.
const glowRings = 3

// Canvas draws the overlay into an offscreen RGBA image. It is not safe for
// concurrent use.
type Canvas struct {
	dc    *gg.Context
	fonts *text.FontSource
	faces map[float64]text.Face
}

var _ evergreen.Canvas = (*Canvas)(nil)

// New creates a w×h transparent canvas. Text uses the Go Regular font.
func New(w, h int) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("ggcanvas: invalid size %dx%d", w, h)
	}
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("ggcanvas: load font: %w", err)
	}
	return &Canvas{
		dc:    gg.NewContext(w, h),
		fonts: src,
		faces: make(map[float64]text.Face),
	}, nil
}

// Context exposes the underlying gg context.
func (c *Canvas) Context() *gg.Context { return c.dc }

// Image returns a copy of the current pixels.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// Resize reallocates the surface. The contents are cleared.
func (c *Canvas) Resize(w, h int) error {
	if err := c.dc.Resize(w, h); err != nil {
		return fmt.Errorf("ggcanvas: %w", err)
	}
	return nil
}

// Clear makes every pixel transparent.
func (c *Canvas) Clear() { c.dc.Clear() }

// Close releases the context.
func (c *Canvas) Close() error { return c.dc.Close() }

// Size implements evergreen.Canvas.
func (c *Canvas) Size() (w, h float64) {
	return float64(c.dc.Width()), float64(c.dc.Height())
}

// Fade implements evergreen.Canvas.
func (c *Canvas) Fade(col evergreen.Color) {
	c.dc.SetFillBrush(gg.Solid(rgba(col)))
	c.dc.DrawRectangle(0, 0, float64(c.dc.Width()), float64(c.dc.Height()))
	_ = c.dc.Fill()
}

// StrokeCurve implements evergreen.Canvas. The curve passes through the
// midpoints of consecutive points with the points themselves as control
// points.
func (c *Canvas) StrokeCurve(pts []evergreen.Vec2, width float64, paint evergreen.Gradient, glow evergreen.Color) {
	if len(pts) < 2 {
		return
	}
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)
	if glow.A > 0 {
		for i := glowRings; i >= 1; i-- {
			c.curvePath(pts)
			c.dc.SetStrokeBrush(gg.Solid(rgba(glow.WithAlpha(glow.A * 0.12))))
			c.dc.SetLineWidth(width + float64(i)*width*0.8)
			_ = c.dc.Stroke()
		}
	}
	c.curvePath(pts)
	c.dc.SetStrokeBrush(brush(paint))
	c.dc.SetLineWidth(width)
	_ = c.dc.Stroke()
}

func (c *Canvas) curvePath(pts []evergreen.Vec2) {
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for i := 1; i < len(pts)-1; i++ {
		mx := (pts[i].X + pts[i+1].X) / 2
		my := (pts[i].Y + pts[i+1].Y) / 2
		c.dc.QuadraticTo(pts[i].X, pts[i].Y, mx, my)
	}
	last := pts[len(pts)-1]
	c.dc.LineTo(last.X, last.Y)
}

// StrokePolyline implements evergreen.Canvas.
func (c *Canvas) StrokePolyline(pts []evergreen.Vec2, width float64, col evergreen.Color) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineWidth(width)
	c.dc.SetStrokeBrush(gg.Solid(rgba(col)))
	_ = c.dc.Stroke()
}

// FillCircle implements evergreen.Canvas.
func (c *Canvas) FillCircle(center evergreen.Vec2, r float64, col evergreen.Color, glow float64) {
	if r <= 0 {
		return
	}
	c.halo(center, r, col, glow)
	c.dc.DrawCircle(center.X, center.Y, r)
	c.dc.SetFillBrush(gg.Solid(rgba(col)))
	_ = c.dc.Fill()
}

// halo draws translucent rings out to r+glow.
func (c *Canvas) halo(center evergreen.Vec2, r float64, col evergreen.Color, glow float64) {
	if glow <= 0 || col.A <= 0 {
		return
	}
	for i := glowRings; i >= 1; i-- {
		c.dc.DrawCircle(center.X, center.Y, r+glow*float64(i)/glowRings)
		c.dc.SetFillBrush(gg.Solid(rgba(col.WithAlpha(col.A * 0.1))))
		_ = c.dc.Fill()
	}
}

// FillRadial implements evergreen.Canvas.
func (c *Canvas) FillRadial(center evergreen.Vec2, r float64, stops []evergreen.GradientStop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	b := gg.NewRadialGradientBrush(center.X, center.Y, 0, r)
	for _, s := range stops {
		b.AddColorStop(s.Offset, rgba(s.Color))
	}
	c.dc.DrawCircle(center.X, center.Y, r)
	c.dc.SetFillBrush(b)
	_ = c.dc.Fill()
}

// FillStar implements evergreen.Canvas.
func (c *Canvas) FillStar(center evergreen.Vec2, r, rotation float64, points int, inner float64, col evergreen.Color, glow float64) {
	if r <= 0 || points < 2 {
		return
	}
	c.halo(center, r*inner, col, glow)
	starPath(c.dc, center.X, center.Y, r, rotation, points, inner)
	c.dc.SetFillBrush(gg.Solid(rgba(col)))
	_ = c.dc.Fill()
}

func starPath(dc *gg.Context, cx, cy, r, rotation float64, points int, inner float64) {
	n := points * 2
	for i := range n {
		rad := r
		if i%2 == 1 {
			rad = r * inner
		}
		a := rotation + float64(i)*math.Pi/float64(points) - math.Pi/2
		x, y := cx+math.Cos(a)*rad, cy+math.Sin(a)*rad
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

// FillRoundRect implements evergreen.Canvas.
func (c *Canvas) FillRoundRect(x, y, w, h, radius float64, paint evergreen.Gradient) {
	if w <= 0 || h <= 0 {
		return
	}
	c.dc.DrawRoundedRectangle(x, y, w, h, math.Min(radius, math.Min(w, h)/2))
	c.dc.SetFillBrush(brush(paint))
	_ = c.dc.Fill()
}

// DrawText implements evergreen.Canvas. y is the baseline.
func (c *Canvas) DrawText(s string, x, y, size float64, col evergreen.Color, align evergreen.Align) {
	if s == "" || size <= 0 {
		return
	}
	c.dc.SetFont(c.face(size))
	c.dc.SetFillBrush(gg.Solid(rgba(col)))
	var ax float64
	switch align {
	case evergreen.AlignCenter:
		ax = 0.5
	case evergreen.AlignRight:
		ax = 1
	}
	c.dc.DrawStringAnchored(s, x, y, ax, 0)
}

func (c *Canvas) face(size float64) text.Face {
	f, ok := c.faces[size]
	if !ok {
		f = c.fonts.Face(size)
		c.faces[size] = f
	}
	return f
}

func rgba(c evergreen.Color) gg.RGBA {
	c = c.Clamped()
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// brush converts a gradient to a gg brush. Single-stop gradients become
// solid brushes.
func brush(g evergreen.Gradient) gg.Brush {
	switch len(g.Stops) {
	case 0:
		return gg.Solid(gg.RGBA{})
	case 1:
		return gg.Solid(rgba(g.Stops[0].Color))
	}
	b := gg.NewLinearGradientBrush(g.X0, g.Y0, g.X1, g.Y1)
	for _, s := range g.Stops {
		b.AddColorStop(s.Offset, rgba(s.Color))
	}
	return b
}

// SavePNG writes the current pixels to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("ggcanvas: save %s: %w", path, err)
	}
	return nil
}
