package evergreen

import "math"

const (
	defaultFOV     = 60.0
	defaultCameraZ = 100.0
	nearPlane      = 0.1
)

// Camera is a perspective camera on the +z axis looking at the origin.
// Backends that draw the scene in 2D share it so points land in the same
// place everywhere.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Z is the camera distance from the origin.
	Z float64
	// Width and Height are the viewport size in pixels.
	Width, Height float64
}

// NewCamera returns the stock camera for a w×h viewport.
func NewCamera(w, h float64) Camera {
	return Camera{FOV: defaultFOV, Z: defaultCameraZ, Width: w, Height: h}
}

// Focal returns the focal length in pixels.
func (c Camera) Focal() float64 {
	return (c.Height / 2) / math.Tan(c.FOV*math.Pi/360)
}

// Project maps a world point to screen pixels. scale is the number of
// pixels per world unit at that depth. ok is false for points behind the
// near plane.
func (c Camera) Project(p Vec3) (x, y, scale float64, ok bool) {
	depth := c.Z - p.Z
	if depth <= nearPlane {
		return 0, 0, 0, false
	}
	scale = c.Focal() / depth
	return c.Width/2 + p.X*scale, c.Height/2 - p.Y*scale, scale, true
}

// RotateY rotates p about the vertical axis by angle radians, then scales
// it uniformly about the origin. This is the transform PointCloud.SetTransform
// describes.
func RotateY(p Vec3, angle, scale float64) Vec3 {
	if angle == 0 && scale == 1 {
		return p
	}
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: (p.X*cos + p.Z*sin) * scale,
		Y: p.Y * scale,
		Z: (-p.X*sin + p.Z*cos) * scale,
	}
}
