package termview

import (
	"math"
	"slices"

	"github.com/phanxgames/evergreen"
)

const (
	cameraZ  = 100.0
	halfFOV  = math.Pi / 6
	nearZ    = 0.1
	minLevel = 0.08
	// cellAspect is the height of a terminal cell over its width.
	cellAspect = 2.0
)

// glyphs per sprite, from faint to bright.
var glyphs = map[evergreen.Sprite][]rune{
	evergreen.SpriteGlow:      []rune(".:+"),
	evergreen.SpriteBulb:      []rune(".oO"),
	evergreen.SpriteStar:      []rune(".+*"),
	evergreen.SpriteSnowflake: []rune(".·*"),
	evergreen.SpriteBauble:    []rune(".o@"),
}

// Renderer implements evergreen.Renderer on a cell grid.
type Renderer struct {
	grid       *Grid
	clouds     []*cloud
	billboards []*billboard
	order      []any
	layers     []int
	sorted     bool
}

var (
	_ evergreen.Renderer       = (*Renderer)(nil)
	_ evergreen.ViewportSetter = (*Renderer)(nil)
)

// NewRenderer creates a renderer for a terminal of cols×rows cells.
func NewRenderer(cols, rows int) *Renderer {
	return &Renderer{grid: NewGrid(cols, rows)}
}

// Grid returns the scene cells of the last Render.
func (r *Renderer) Grid() *Grid { return r.grid }

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

func (c *cloud) SetPoints(pos []evergreen.Vec3, sizes []float64, colors []evergreen.Color) {
	c.pos = append(c.pos[:0], pos...)
	c.sizes = append(c.sizes[:0], sizes...)
	c.colors = append(c.colors[:0], colors...)
}
func (c *cloud) SetTransform(rotY, scale float64) { c.rotY, c.scale = rotY, scale }
func (c *cloud) SetOpacity(opacity float64)       { c.opacity = opacity }
func (c *cloud) SetVisible(visible bool)          { c.visible = visible }

type billboard struct {
	spec    evergreen.BillboardSpec
	pos     evergreen.Vec3
	scale   float64
	opacity float64
	visible bool
}

func (b *billboard) SetTransform(pos evergreen.Vec3, scale, _ float64) { b.pos, b.scale = pos, scale }
func (b *billboard) SetOpacity(opacity float64)                        { b.opacity = opacity }
func (b *billboard) SetVisible(visible bool)                           { b.visible = visible }

// NewPointCloud implements evergreen.Renderer.
func (r *Renderer) NewPointCloud(spec evergreen.PointCloudSpec) evergreen.PointCloud {
	c := &cloud{spec: spec, scale: 1, opacity: 1, visible: true}
	r.clouds = append(r.clouds, c)
	r.add(c, spec.Layer)
	return c
}

// NewBillboard implements evergreen.Renderer.
func (r *Renderer) NewBillboard(spec evergreen.BillboardSpec) evergreen.Billboard {
	b := &billboard{spec: spec, scale: 1, opacity: 1, visible: true}
	r.billboards = append(r.billboards, b)
	r.add(b, spec.Layer)
	return b
}

func (r *Renderer) add(d any, layer int) {
	r.order = append(r.order, d)
	r.layers = append(r.layers, layer)
	r.sorted = false
}

// SetViewport implements evergreen.ViewportSetter. The size is in cells.
func (r *Renderer) SetViewport(w, h int) {
	r.grid.Resize(w, h)
}

// project maps a world point to a cell. k is cells per world unit
// horizontally at that depth.
func (r *Renderer) project(p evergreen.Vec3) (x, y int, k float64, ok bool) {
	depth := cameraZ - p.Z
	if depth <= nearZ {
		return 0, 0, 0, false
	}
	rows := float64(r.grid.H)
	focal := (rows / 2) / math.Tan(halfFOV)
	k = focal / depth
	fx := float64(r.grid.W)/2 + p.X*k*cellAspect
	fy := rows/2 - p.Y*k
	return int(math.Floor(fx)), int(math.Floor(fy)), k * cellAspect, true
}

func (r *Renderer) drawOrder() []any {
	if !r.sorted {
		idx := make([]int, len(r.order))
		for i := range idx {
			idx[i] = i
		}
		slices.SortStableFunc(idx, func(a, b int) int { return r.layers[a] - r.layers[b] })
		order := make([]any, len(idx))
		layers := make([]int, len(idx))
		for i, j := range idx {
			order[i], layers[i] = r.order[j], r.layers[j]
		}
		r.order, r.layers = order, layers
		r.sorted = true
	}
	return r.order
}

// Render redraws the scene into the grid.
func (r *Renderer) Render() {
	r.grid.Clear()
	for _, d := range r.drawOrder() {
		switch d := d.(type) {
		case *cloud:
			r.drawCloud(d)
		case *billboard:
			r.drawBillboard(d)
		}
	}
}

func (r *Renderer) drawCloud(c *cloud) {
	if !c.visible || c.opacity <= 0 {
		return
	}
	g := glyphs[c.spec.Sprite]
	if g == nil {
		g = glyphs[evergreen.SpriteGlow]
	}
	tint := c.spec.Tint
	if tint == (evergreen.Color{}) {
		tint = evergreen.ColorWhite
	}
	add := c.spec.Blend == evergreen.BlendAdd
	for i, p := range c.pos {
		x, y, k, ok := r.project(evergreen.RotateY(p, c.rotY, c.scale))
		if !ok || c.sizes[i] <= 0 {
			continue
		}
		col := c.colors[i]
		level := col.A * tint.A * c.opacity
		if level < minLevel {
			continue
		}
		// Apparent size picks the glyph weight.
		w := min(int(c.sizes[i]*k*c.scale), len(g)-1)
		r.grid.Set(x, y, g[w], evergreen.Color{R: col.R * tint.R, G: col.G * tint.G, B: col.B * tint.B, A: 1}, level, add)
	}
}

func (r *Renderer) drawBillboard(b *billboard) {
	if !b.visible || b.opacity < minLevel || b.scale <= 0 {
		return
	}
	x, y, k, ok := r.project(b.pos)
	if !ok {
		return
	}
	switch b.spec.Content {
	case evergreen.ContentText:
		s := b.spec.Text
		r.grid.Text(x-len([]rune(s))/2, y, s, b.spec.Color, b.opacity)
	case evergreen.ContentStar:
		r.grid.Set(x, y, '★', b.spec.Color, b.opacity, false)
	case evergreen.ContentImage:
		hw := max(1, int(b.spec.Width*b.scale*k/2))
		hh := max(1, int(b.spec.Height*b.scale*k/cellAspect/2))
		r.frame(x-hw, y-hh, x+hw, y+hh, b.spec.Color, b.opacity)
	}
}

// frame draws a box outline.
func (r *Renderer) frame(x0, y0, x1, y1 int, c evergreen.Color, level float64) {
	for x := x0 + 1; x < x1; x++ {
		r.grid.Set(x, y0, '─', c, level, false)
		r.grid.Set(x, y1, '─', c, level, false)
	}
	for y := y0 + 1; y < y1; y++ {
		r.grid.Set(x0, y, '│', c, level, false)
		r.grid.Set(x1, y, '│', c, level, false)
	}
	r.grid.Set(x0, y0, '┌', c, level, false)
	r.grid.Set(x1, y0, '┐', c, level, false)
	r.grid.Set(x0, y1, '└', c, level, false)
	r.grid.Set(x1, y1, '┘', c, level, false)
}
