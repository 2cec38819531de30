package ggcanvas

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/phanxgames/evergreen"
)

// BillboardTexture renders the content of a billboard at pxPerUnit pixels
// per world unit. Text gets a soft glow, stars a halo, and images a white
// card border. A nil image renders a placeholder card.
func BillboardTexture(spec evergreen.BillboardSpec, pxPerUnit float64) (image.Image, error) {
	w := max(1, int(math.Ceil(spec.Width*pxPerUnit)))
	h := max(1, int(math.Ceil(spec.Height*pxPerUnit)))
	c, err := New(w, h)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	fw, fh := float64(w), float64(h)
	switch spec.Content {
	case evergreen.ContentText:
		size := fh * 0.6
		base := fh*0.5 + size*0.35
		if spec.Glow.A > 0 {
			for _, off := range [][2]float64{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
				c.DrawText(spec.Text, fw/2+off[0], base+off[1], size, spec.Glow.WithAlpha(0.35), evergreen.AlignCenter)
			}
		}
		c.DrawText(spec.Text, fw/2, base, size, spec.Color, evergreen.AlignCenter)

	case evergreen.ContentStar:
		r := math.Min(fw, fh) * 0.32
		center := evergreen.Vec2{X: fw / 2, Y: fh / 2}
		if spec.Glow.A > 0 {
			c.FillRadial(center, math.Min(fw, fh)/2, []evergreen.GradientStop{
				{Offset: 0, Color: spec.Glow.WithAlpha(0.6)},
				{Offset: 1, Color: spec.Glow.WithAlpha(0)},
			})
		}
		c.FillStar(center, r, 0, 5, 0.45, spec.Color, 0)

	case evergreen.ContentImage:
		border := math.Max(1, fw*0.04)
		c.FillRoundRect(0, 0, fw, fh, border, evergreen.Solid(evergreen.ColorWhite))
		if spec.Image == nil {
			c.FillRoundRect(border, border, fw-2*border, fh-2*border, 0, evergreen.Gradient{
				X0: 0, Y0: 0, X1: fw, Y1: fh,
				Stops: []evergreen.GradientStop{
					{Offset: 0, Color: evergreen.MustHex("#2E4A3A")},
					{Offset: 1, Color: evergreen.MustHex("#7A1F2B")},
				},
			})
			c.FillStar(evergreen.Vec2{X: fw / 2, Y: fh / 2}, fh*0.2, 0, 5, 0.45, evergreen.MustHex("#FFD700"), 0)
			break
		}
		c.dc.DrawImageEx(gg.ImageBufFromImage(spec.Image), gg.DrawImageOptions{
			X:         border,
			Y:         border,
			DstWidth:  fw - 2*border,
			DstHeight: fh - 2*border,
			Opacity:   1,
		})

	default:
		return nil, fmt.Errorf("ggcanvas: unknown billboard content %d", spec.Content)
	}
	return c.Image(), nil
}

// SpriteTexture renders a px×px white point sprite. Backends tint it with
// the per-point color.
func SpriteTexture(s evergreen.Sprite, px int) (image.Image, error) {
	c, err := New(px, px)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	r := float64(px) / 2
	center := evergreen.Vec2{X: r, Y: r}
	white := evergreen.ColorWhite
	switch s {
	case evergreen.SpriteBulb:
		c.FillRadial(center, r, []evergreen.GradientStop{
			{Offset: 0, Color: white},
			{Offset: 0.3, Color: white.WithAlpha(0.9)},
			{Offset: 1, Color: white.WithAlpha(0)},
		})
	case evergreen.SpriteStar:
		c.FillRadial(center, r*0.5, []evergreen.GradientStop{
			{Offset: 0, Color: white.WithAlpha(0.8)},
			{Offset: 1, Color: white.WithAlpha(0)},
		})
		c.FillStar(center, r, 0, 4, 0.25, white, 0)
	case evergreen.SpriteSnowflake:
		c.FillRadial(center, r, []evergreen.GradientStop{
			{Offset: 0, Color: white},
			{Offset: 0.4, Color: white.WithAlpha(0.6)},
			{Offset: 1, Color: white.WithAlpha(0)},
		})
	case evergreen.SpriteBauble:
		c.FillCircle(center, r*0.85, white.Scale(0.8), 0)
		c.FillRadial(evergreen.Vec2{X: r * 0.7, Y: r * 0.7}, r*0.45, []evergreen.GradientStop{
			{Offset: 0, Color: white},
			{Offset: 1, Color: white.WithAlpha(0)},
		})
	default:
		c.FillRadial(center, r, []evergreen.GradientStop{
			{Offset: 0, Color: white},
			{Offset: 0.5, Color: white.WithAlpha(0.5)},
			{Offset: 1, Color: white.WithAlpha(0)},
		})
	}
	return c.Image(), nil
}
