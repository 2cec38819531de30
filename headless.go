package evergreen

// HeadlessRenderer is a Renderer that keeps the most recent state pushed to
// each object. It draws nothing and is used by tests and offline tools.
type HeadlessRenderer struct {
	Clouds     []*HeadlessCloud
	Billboards []*HeadlessBillboard
	Width      int
	Height     int
}

// NewHeadlessRenderer creates an empty recorder.
func NewHeadlessRenderer() *HeadlessRenderer {
	return &HeadlessRenderer{}
}

// NewPointCloud implements Renderer.
func (r *HeadlessRenderer) NewPointCloud(spec PointCloudSpec) PointCloud {
	c := &HeadlessCloud{Spec: spec, Scale: 1, Opacity: 1, Visible: true}
	r.Clouds = append(r.Clouds, c)
	return c
}

// NewBillboard implements Renderer.
func (r *HeadlessRenderer) NewBillboard(spec BillboardSpec) Billboard {
	b := &HeadlessBillboard{Spec: spec, Scale: 1, Opacity: 1, Visible: true}
	r.Billboards = append(r.Billboards, b)
	return b
}

// SetViewport implements ViewportSetter.
func (r *HeadlessRenderer) SetViewport(w, h int) {
	r.Width, r.Height = w, h
}

// Cloud returns the cloud created with the given name, or nil.
func (r *HeadlessRenderer) Cloud(name string) *HeadlessCloud {
	for _, c := range r.Clouds {
		if c.Spec.Name == name {
			return c
		}
	}
	return nil
}

// Billboard returns the billboard created with the given name, or nil.
func (r *HeadlessRenderer) Billboard(name string) *HeadlessBillboard {
	for _, b := range r.Billboards {
		if b.Spec.Name == name {
			return b
		}
	}
	return nil
}

// HeadlessCloud records the buffers of a point cloud.
type HeadlessCloud struct {
	Spec      PointCloudSpec
	Positions []Vec3
	Sizes     []float64
	Colors    []Color
	RotationY float64
	Scale     float64
	Opacity   float64
	Visible   bool
	// Uploads counts SetPoints calls.
	Uploads int
}

// SetPoints implements PointCloud. The buffers are copied.
func (c *HeadlessCloud) SetPoints(pos []Vec3, sizes []float64, colors []Color) {
	c.Positions = append(c.Positions[:0], pos...)
	c.Sizes = append(c.Sizes[:0], sizes...)
	c.Colors = append(c.Colors[:0], colors...)
	c.Uploads++
}

// SetTransform implements PointCloud.
func (c *HeadlessCloud) SetTransform(rotY, scale float64) {
	c.RotationY, c.Scale = rotY, scale
}

// SetOpacity implements PointCloud.
func (c *HeadlessCloud) SetOpacity(opacity float64) { c.Opacity = opacity }

// SetVisible implements PointCloud.
func (c *HeadlessCloud) SetVisible(visible bool) { c.Visible = visible }

// HeadlessBillboard records the state of a billboard.
type HeadlessBillboard struct {
	Spec      BillboardSpec
	Position  Vec3
	Scale     float64
	RotationZ float64
	Opacity   float64
	Visible   bool
}

// SetTransform implements Billboard.
func (b *HeadlessBillboard) SetTransform(pos Vec3, scale, rotZ float64) {
	b.Position, b.Scale, b.RotationZ = pos, scale, rotZ
}

// SetOpacity implements Billboard.
func (b *HeadlessBillboard) SetOpacity(opacity float64) { b.Opacity = opacity }

// SetVisible implements Billboard.
func (b *HeadlessBillboard) SetVisible(visible bool) { b.Visible = visible }
