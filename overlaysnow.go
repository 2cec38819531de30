package evergreen

import (
	"math"
	"math/rand/v2"
)

const (
	overlayFlakesMax     = 100
	overlayFlakesPerPx   = 15.0
	overlayFlakeMargin   = 10.0
	overlayFlakeWobbleDx = 0.5
)

// Snowflake is one background flake on the overlay, in screen pixels.
type Snowflake struct {
	Pos         Vec2
	Size        float64
	Speed       float64
	Wobble      float64
	WobbleSpeed float64
	Opacity     float64
}

// OverlaySnow is the light snowfall behind the gesture trail.
type OverlaySnow struct {
	Flakes []Snowflake
	w, h   float64
	rng    *rand.Rand
}

// NewOverlaySnow scatters flakes over a w×h surface. The count scales with
// the width, capped at 100.
func NewOverlaySnow(w, h float64, rng *rand.Rand) *OverlaySnow {
	s := &OverlaySnow{rng: rng}
	s.Resize(w, h)
	return s
}

// Resize reseeds the flakes for a new surface size.
func (s *OverlaySnow) Resize(w, h float64) {
	s.w, s.h = w, h
	n := min(overlayFlakesMax, int(math.Floor(w/overlayFlakesPerPx)))
	if n < 0 {
		n = 0
	}
	s.Flakes = s.Flakes[:0]
	for range n {
		s.Flakes = append(s.Flakes, Snowflake{
			Pos:         Vec2{s.rng.Float64() * w, s.rng.Float64() * h},
			Size:        1 + s.rng.Float64()*3,
			Speed:       0.3 + s.rng.Float64()*0.7,
			Wobble:      s.rng.Float64() * 2 * math.Pi,
			WobbleSpeed: 0.02 + s.rng.Float64()*0.03,
			Opacity:     0.3 + s.rng.Float64()*0.5,
		})
	}
}

// Update moves the flakes by the given number of 60 Hz frames, wrapping
// them around the surface edges.
func (s *OverlaySnow) Update(frames float64) {
	for i := range s.Flakes {
		f := &s.Flakes[i]
		f.Pos.Y += f.Speed * frames
		f.Wobble += f.WobbleSpeed * frames
		f.Pos.X += math.Sin(f.Wobble) * overlayFlakeWobbleDx * frames

		if f.Pos.Y > s.h+overlayFlakeMargin {
			f.Pos.Y = -overlayFlakeMargin
			f.Pos.X = s.rng.Float64() * s.w
		}
		if f.Pos.X < -overlayFlakeMargin {
			f.Pos.X = s.w + overlayFlakeMargin
		}
		if f.Pos.X > s.w+overlayFlakeMargin {
			f.Pos.X = -overlayFlakeMargin
		}
	}
}
