package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/evergreen"
)

// pointScale converts a point size to world units on screen. Sizes follow
// the convention of size-attenuated point sprites.
const pointScale = 0.5

// cloud is the backend side of an evergreen.PointCloud.
type cloud struct {
	spec    evergreen.PointCloudSpec
	pos     []evergreen.Vec3
	sizes   []float64
	colors  []evergreen.Color
	rotY    float64
	scale   float64
	opacity float64
	visible bool
}

func newCloud(spec evergreen.PointCloudSpec) *cloud {
	return &cloud{
		spec:    spec,
		pos:     make([]evergreen.Vec3, 0, spec.Capacity),
		sizes:   make([]float64, 0, spec.Capacity),
		colors:  make([]evergreen.Color, 0, spec.Capacity),
		scale:   1,
		opacity: 1,
		visible: true,
	}
}

func (c *cloud) SetPoints(pos []evergreen.Vec3, sizes []float64, colors []evergreen.Color) {
	c.pos = append(c.pos[:0], pos...)
	c.sizes = append(c.sizes[:0], sizes...)
	c.colors = append(c.colors[:0], colors...)
}

func (c *cloud) SetTransform(rotY, scale float64) { c.rotY, c.scale = rotY, scale }
func (c *cloud) SetOpacity(opacity float64)       { c.opacity = opacity }
func (c *cloud) SetVisible(visible bool)          { c.visible = visible }

// appendQuads projects every point and appends one camera-facing quad per
// point, sampling the whole srcW×srcH sprite. Colors are premultiplied.
// Points behind the camera or with no size are skipped.
func (c *cloud) appendQuads(verts []ebiten.Vertex, inds []uint32, cam evergreen.Camera, srcW, srcH float32) ([]ebiten.Vertex, []uint32) {
	tint := c.spec.Tint
	if tint == (evergreen.Color{}) {
		tint = evergreen.ColorWhite
	}
	for i, p := range c.pos {
		size := c.sizes[i]
		if size <= 0 {
			continue
		}
		sx, sy, k, ok := cam.Project(evergreen.RotateY(p, c.rotY, c.scale))
		if !ok {
			continue
		}
		half := float32(size * pointScale * k * c.scale)
		col := c.colors[i]
		a := float32(col.A * tint.A * c.opacity)
		r := float32(col.R*tint.R) * a
		g := float32(col.G*tint.G) * a
		b := float32(col.B*tint.B) * a

		x, y := float32(sx), float32(sy)
		base := uint32(len(verts))
		verts = append(verts,
			ebiten.Vertex{DstX: x - half, DstY: y - half, SrcX: 0, SrcY: 0, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
			ebiten.Vertex{DstX: x + half, DstY: y - half, SrcX: srcW, SrcY: 0, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
			ebiten.Vertex{DstX: x - half, DstY: y + half, SrcX: 0, SrcY: srcH, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
			ebiten.Vertex{DstX: x + half, DstY: y + half, SrcX: srcW, SrcY: srcH, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		)
		inds = append(inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	return verts, inds
}

// blend maps an evergreen blend mode to ebiten.
func blend(b evergreen.BlendMode) ebiten.Blend {
	if b == evergreen.BlendAdd {
		return ebiten.BlendLighter
	}
	return ebiten.BlendSourceOver
}
