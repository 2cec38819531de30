package evergreen

import (
	"errors"
	"image"
)

// ErrNoRenderer is returned by NewEngine when no rendering backend is
// available.
var ErrNoRenderer = errors.New("evergreen: no renderer available")

// Sprite selects the point shape a backend draws for each entity of a cloud.
type Sprite uint8

const (
	SpriteGlow      Sprite = iota // soft radial glow
	SpriteBulb                    // round light bulb with hot center
	SpriteStar                    // four-pointed star
	SpriteSnowflake               // soft flake with a highlight
	SpriteBauble                  // shaded ornament ball
)

// PointCloudSpec describes a point cloud to create.
type PointCloudSpec struct {
	Name     string
	Capacity int
	Blend    BlendMode
	Sprite   Sprite
	// Tint multiplies every point color. Zero means white.
	Tint Color
	// Layer orders clouds and billboards; higher layers draw later.
	Layer int
}

// PointCloud is a backend-owned set of points with per-entity position,
// size and color buffers.
type PointCloud interface {
	// SetPoints replaces the buffers. The slices have equal length and are
	// only valid for the duration of the call.
	SetPoints(pos []Vec3, sizes []float64, colors []Color)
	// SetTransform sets the rotation about the vertical axis and a uniform
	// scale applied around the origin.
	SetTransform(rotY, scale float64)
	SetOpacity(opacity float64)
	SetVisible(visible bool)
}

// BillboardContent selects what a billboard shows.
type BillboardContent uint8

const (
	ContentText  BillboardContent = iota // a line of glowing text
	ContentStar                          // a five-pointed star
	ContentImage                         // a photo or other image
)

// BillboardSpec describes a textured plane facing the camera.
type BillboardSpec struct {
	Name    string
	Content BillboardContent
	// Width and Height are the plane size in world units at scale 1.
	Width, Height float64
	Text          string
	Color         Color
	Glow          Color
	// Image is used for ContentImage. A nil image draws a placeholder card.
	Image image.Image
	Blend BlendMode
	Layer int
}

// Billboard is a backend-owned textured plane.
type Billboard interface {
	SetTransform(pos Vec3, scale, rotZ float64)
	SetOpacity(opacity float64)
	SetVisible(visible bool)
}

// Renderer creates drawable objects. Backends own the objects and draw them
// however they like; the engine only pushes state.
type Renderer interface {
	NewPointCloud(spec PointCloudSpec) PointCloud
	NewBillboard(spec BillboardSpec) Billboard
}

// ViewportSetter is implemented by renderers that react to viewport size
// changes. The engine calls it after the resize debounce.
type ViewportSetter interface {
	SetViewport(w, h int)
}
