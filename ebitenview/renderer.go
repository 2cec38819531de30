// Package ebitenview draws an evergreen scene and its gesture overlay in an
// Ebitengine window.
package ebitenview

import (
	"log/slog"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/evergreen"
	"github.com/phanxgames/evergreen/ggcanvas"
)

// spriteSize is the edge length of the point sprite textures.
const spriteSize = 64

// Renderer implements evergreen.Renderer with a perspective camera. Point
// clouds become batched sprite quads and billboards textured planes.
type Renderer struct {
	cam        evergreen.Camera
	clouds     []*cloud
	billboards []*billboard
	order      []drawable
	sorted     bool

	sprites map[evergreen.Sprite]*ebiten.Image

	verts []ebiten.Vertex
	inds  []uint32
}

var (
	_ evergreen.Renderer       = (*Renderer)(nil)
	_ evergreen.ViewportSetter = (*Renderer)(nil)
)

// drawable is a cloud or a billboard in layer order.
type drawable struct {
	layer int
	cloud *cloud
	bb    *billboard
}

// NewRenderer creates a renderer for a w×h viewport.
func NewRenderer(w, h int) *Renderer {
	return &Renderer{
		cam:     evergreen.NewCamera(float64(w), float64(h)),
		sprites: make(map[evergreen.Sprite]*ebiten.Image),
	}
}

// Camera returns the projection in use.
func (r *Renderer) Camera() evergreen.Camera { return r.cam }

// NewPointCloud implements evergreen.Renderer.
func (r *Renderer) NewPointCloud(spec evergreen.PointCloudSpec) evergreen.PointCloud {
	c := newCloud(spec)
	r.clouds = append(r.clouds, c)
	r.order = append(r.order, drawable{layer: spec.Layer, cloud: c})
	r.sorted = false
	return c
}

// NewBillboard implements evergreen.Renderer.
func (r *Renderer) NewBillboard(spec evergreen.BillboardSpec) evergreen.Billboard {
	b := newBillboard(spec)
	r.billboards = append(r.billboards, b)
	r.order = append(r.order, drawable{layer: spec.Layer, bb: b})
	r.sorted = false
	return b
}

// SetViewport implements evergreen.ViewportSetter.
func (r *Renderer) SetViewport(w, h int) {
	r.cam.Width, r.cam.Height = float64(w), float64(h)
}

// Draw renders every visible object onto dst in layer order.
func (r *Renderer) Draw(dst *ebiten.Image) {
	for _, d := range r.drawOrder() {
		if d.cloud != nil {
			r.drawCloud(dst, d.cloud)
			continue
		}
		d.bb.draw(dst, r.cam)
	}
}

// drawOrder returns the drawables sorted by layer. Objects on the same
// layer keep their creation order.
func (r *Renderer) drawOrder() []drawable {
	if !r.sorted {
		slices.SortStableFunc(r.order, func(a, b drawable) int { return a.layer - b.layer })
		r.sorted = true
	}
	return r.order
}

func (r *Renderer) drawCloud(dst *ebiten.Image, c *cloud) {
	if !c.visible || c.opacity <= 0 || len(c.pos) == 0 {
		return
	}
	img := r.sprite(c.spec.Sprite)
	if img == nil {
		return
	}
	b := img.Bounds()
	r.verts, r.inds = c.appendQuads(r.verts[:0], r.inds[:0], r.cam, float32(b.Dx()), float32(b.Dy()))
	if len(r.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = blend(c.spec.Blend)
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles32(r.verts, r.inds, img, &op)
}

func (r *Renderer) sprite(s evergreen.Sprite) *ebiten.Image {
	if img, ok := r.sprites[s]; ok {
		return img
	}
	src, err := ggcanvas.SpriteTexture(s, spriteSize)
	if err != nil {
		evergreen.Logger().Warn("sprite texture", slog.Int("sprite", int(s)), slog.Any("err", err))
		r.sprites[s] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	r.sprites[s] = img
	return img
}
