package ebitenview

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/evergreen"
	"github.com/phanxgames/evergreen/ggcanvas"
)

// texelsPerUnit is the billboard texture resolution in pixels per world
// unit.
const texelsPerUnit = 8.0

// billboard is the backend side of an evergreen.Billboard. Its texture is
// rendered with gg on first draw.
type billboard struct {
	spec    evergreen.BillboardSpec
	pos     evergreen.Vec3
	scale   float64
	rotZ    float64
	opacity float64
	visible bool

	tex    *ebiten.Image
	texErr bool
}

func newBillboard(spec evergreen.BillboardSpec) *billboard {
	return &billboard{spec: spec, scale: 1, opacity: 1, visible: true}
}

func (b *billboard) SetTransform(pos evergreen.Vec3, scale, rotZ float64) {
	b.pos, b.scale, b.rotZ = pos, scale, rotZ
}
func (b *billboard) SetOpacity(opacity float64) { b.opacity = opacity }
func (b *billboard) SetVisible(visible bool)    { b.visible = visible }

func (b *billboard) texture() *ebiten.Image {
	if b.tex != nil || b.texErr {
		return b.tex
	}
	img, err := ggcanvas.BillboardTexture(b.spec, texelsPerUnit)
	if err != nil {
		b.texErr = true
		evergreen.Logger().Warn("billboard texture", slog.String("name", b.spec.Name), slog.Any("err", err))
		return nil
	}
	b.tex = ebiten.NewImageFromImage(img)
	return b.tex
}

// geoM returns the transform that places a texW×texH texture on screen.
// ok is false when the billboard is behind the camera.
func (b *billboard) geoM(cam evergreen.Camera, texW, texH float64) (m ebiten.GeoM, ok bool) {
	sx, sy, k, ok := cam.Project(b.pos)
	if !ok {
		return m, false
	}
	m.Translate(-texW/2, -texH/2)
	m.Scale(b.spec.Width*b.scale*k/texW, b.spec.Height*b.scale*k/texH)
	m.Rotate(-b.rotZ)
	m.Translate(sx, sy)
	return m, true
}

func (b *billboard) draw(dst *ebiten.Image, cam evergreen.Camera) {
	if !b.visible || b.opacity <= 0 || b.scale <= 0 {
		return
	}
	tex := b.texture()
	if tex == nil {
		return
	}
	bounds := tex.Bounds()
	m, ok := b.geoM(cam, float64(bounds.Dx()), float64(bounds.Dy()))
	if !ok {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM = m
	op.ColorScale.ScaleAlpha(float32(b.opacity))
	op.Blend = blend(b.spec.Blend)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(tex, &op)
}
