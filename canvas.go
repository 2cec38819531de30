package evergreen

import "errors"

// ErrNoCanvas is returned by Overlay.Draw when no canvas is supplied.
var ErrNoCanvas = errors.New("evergreen: no canvas available")

// GradientStop is a color at an offset in [0,1] along a gradient.
type GradientStop struct {
	Offset float64
	Color  Color
}

// Gradient is a linear gradient from (X0,Y0) to (X1,Y1). A gradient with a
// single stop paints a flat color.
type Gradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []GradientStop
}

// Solid returns a gradient that paints c everywhere.
func Solid(c Color) Gradient {
	return Gradient{Stops: []GradientStop{{0, c}}}
}

// At returns the gradient color at offset t, clamped to [0,1].
func (g Gradient) At(t float64) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	t = clamp01(t)
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			k := (t - a.Offset) / span
			return Color{
				R: lerp(a.Color.R, b.Color.R, k),
				G: lerp(a.Color.G, b.Color.G, k),
				B: lerp(a.Color.B, b.Color.B, k),
				A: lerp(a.Color.A, b.Color.A, k),
			}
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

// Align is the horizontal text anchor.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Canvas is the immediate-mode 2D surface the overlay draws on. Coordinates
// are pixels with the origin at the top left. Glow is a blur radius in
// pixels; zero disables it.
type Canvas interface {
	Size() (w, h float64)
	// Fade paints c over the whole surface, leaving a fading afterimage of
	// earlier frames when c is translucent.
	Fade(c Color)
	// StrokeCurve strokes a smoothed curve through pts, bending through the
	// midpoints of consecutive points.
	StrokeCurve(pts []Vec2, width float64, paint Gradient, glow Color)
	StrokePolyline(pts []Vec2, width float64, c Color)
	FillCircle(center Vec2, r float64, c Color, glow float64)
	// FillRadial fills a disc whose color runs through stops from the center
	// outward.
	FillRadial(center Vec2, r float64, stops []GradientStop)
	// FillStar fills a star with the given number of points. inner is the
	// inner radius as a fraction of r.
	FillStar(center Vec2, r, rotation float64, points int, inner float64, c Color, glow float64)
	FillRoundRect(x, y, w, h, radius float64, paint Gradient)
	DrawText(s string, x, y, size float64, c Color, align Align)
}
