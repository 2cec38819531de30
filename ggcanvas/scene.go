package ggcanvas

import (
	"math"
	"slices"

	"github.com/gogpu/gg"

	"github.com/phanxgames/evergreen"
)

// pointScale matches the size convention of the GPU backends: a point of
// size s covers s·pointScale world units.
const pointScale = 0.5

// Background fills the whole surface with col, replacing what was there.
func (c *Canvas) Background(col evergreen.Color) {
	c.dc.ClearWithColor(rgba(col))
}

// DrawScene paints the state recorded by a headless renderer through cam.
// Clouds become filled discs and billboards flat shapes, drawn in layer
// order. It is meant for offline frames, not real-time use.
func (c *Canvas) DrawScene(r *evergreen.HeadlessRenderer, cam evergreen.Camera) {
	type item struct {
		layer int
		cloud *evergreen.HeadlessCloud
		bb    *evergreen.HeadlessBillboard
	}
	items := make([]item, 0, len(r.Clouds)+len(r.Billboards))
	for _, cl := range r.Clouds {
		items = append(items, item{layer: cl.Spec.Layer, cloud: cl})
	}
	for _, b := range r.Billboards {
		items = append(items, item{layer: b.Spec.Layer, bb: b})
	}
	slices.SortStableFunc(items, func(a, b item) int { return a.layer - b.layer })

	for _, it := range items {
		if it.cloud != nil {
			c.drawCloud(it.cloud, cam)
		} else {
			c.drawBillboard(it.bb, cam)
		}
	}
}

func (c *Canvas) drawCloud(cl *evergreen.HeadlessCloud, cam evergreen.Camera) {
	if !cl.Visible || cl.Opacity <= 0 {
		return
	}
	tint := cl.Spec.Tint
	if tint == (evergreen.Color{}) {
		tint = evergreen.ColorWhite
	}
	for i, p := range cl.Positions {
		x, y, k, ok := cam.Project(evergreen.RotateY(p, cl.RotationY, cl.Scale))
		if !ok || cl.Sizes[i] <= 0 {
			continue
		}
		col := cl.Colors[i]
		col = evergreen.Color{R: col.R * tint.R, G: col.G * tint.G, B: col.B * tint.B, A: col.A * tint.A * cl.Opacity}
		r := math.Max(0.5, cl.Sizes[i]*pointScale*k*cl.Scale)
		c.FillCircle(evergreen.Vec2{X: x, Y: y}, r, col, 0)
	}
}

func (c *Canvas) drawBillboard(b *evergreen.HeadlessBillboard, cam evergreen.Camera) {
	if !b.Visible || b.Opacity <= 0 || b.Scale <= 0 {
		return
	}
	x, y, k, ok := cam.Project(b.Position)
	if !ok {
		return
	}
	w := b.Spec.Width * b.Scale * k
	h := b.Spec.Height * b.Scale * k
	at := evergreen.Vec2{X: x, Y: y}
	switch b.Spec.Content {
	case evergreen.ContentText:
		c.DrawText(b.Spec.Text, x, y+h*0.2, h*0.6, b.Spec.Color.WithAlpha(b.Opacity), evergreen.AlignCenter)
	case evergreen.ContentStar:
		c.FillStar(at, math.Min(w, h)*0.32, -b.RotationZ, 5, 0.45, b.Spec.Color.WithAlpha(b.Opacity), math.Min(w, h)*0.2)
	case evergreen.ContentImage:
		c.FillRoundRect(x-w/2, y-h/2, w, h, w*0.04, evergreen.Solid(evergreen.ColorWhite.WithAlpha(b.Opacity)))
	}
}

// Composite draws src over the canvas at the given opacity, stretched to
// the canvas size.
func (c *Canvas) Composite(src *Canvas, opacity float64) {
	if opacity <= 0 {
		return
	}
	w, h := c.Size()
	c.dc.DrawImageEx(gg.ImageBufFromImage(src.Image()), gg.DrawImageOptions{
		DstWidth:  w,
		DstHeight: h,
		Opacity:   min(opacity, 1),
	})
}
