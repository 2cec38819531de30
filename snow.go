package evergreen

import (
	"math"
	"math/rand/v2"
)

const (
	snowFloor    = -80.0
	snowMaxX     = 180.0
	snowMinZ     = -50.0
	snowMaxZ     = 180.0
	snowSpreadX  = 300.0
	snowSpreadZ  = 200.0
	snowOffsetZ  = 30.0
	snowSwayAmp  = 0.03
	snowWindAmpX = 0.15
	snowWindAmpZ = 0.1
)

// Snow is a field of falling flakes that drifts with a slowly changing
// wind. It ignores the display state.
type Snow struct {
	Positions []Vec3
	Sizes     []float64
	Colors    []Color
	Visible   bool

	speeds []float64
	wind   []float64
	rng    *rand.Rand
}

// NewSnow scatters count flakes through the view volume.
func NewSnow(count int, rng *rand.Rand) *Snow {
	if count < 0 {
		count = 0
	}
	s := &Snow{
		Positions: make([]Vec3, count),
		Sizes:     make([]float64, count),
		Colors:    make([]Color, count),
		Visible:   true,
		speeds:    make([]float64, count),
		wind:      make([]float64, count),
		rng:       rng,
	}
	for i := range count {
		s.Positions[i] = Vec3{
			(rng.Float64() - 0.5) * snowSpreadX,
			rng.Float64()*200 - 50,
			(rng.Float64()-0.5)*snowSpreadZ + snowOffsetZ,
		}
		// Half the flakes are small, a third medium, the rest large.
		switch u := rng.Float64(); {
		case u < 0.5:
			s.Sizes[i] = 0.8 + rng.Float64()*1.2
		case u < 0.85:
			s.Sizes[i] = 2 + rng.Float64()*2
		default:
			s.Sizes[i] = 4 + rng.Float64()*3
		}
		s.speeds[i] = 0.1 + rng.Float64()*0.3 + s.Sizes[i]*0.05
		s.wind[i] = rng.Float64() * 2 * math.Pi
		s.Colors[i] = ColorWhite
	}
	return s
}

// Len returns the number of flakes.
func (s *Snow) Len() int {
	return len(s.Positions)
}

// Update advances the flakes. t is the scene time in seconds and frames the
// number of 60 Hz frames the step represents.
func (s *Snow) Update(t, frames float64) {
	windX := math.Sin(t*0.2)*0.8 + math.Sin(t*0.7)*0.3
	windZ := math.Cos(t*0.15) * 0.4
	for i := range s.Positions {
		p := &s.Positions[i]
		size := s.Sizes[i]
		w := s.wind[i]
		factor := 1 / (size*0.5 + 0.5)

		p.Y -= s.speeds[i] * frames
		p.X += windX * math.Sin(t*0.5+w) * snowWindAmpX * factor * frames
		p.Z += windZ * math.Cos(t*0.4+w) * snowWindAmpZ * factor * frames
		p.X += math.Sin(t*2+w) * snowSwayAmp * frames

		if p.Y < snowFloor {
			p.X = (s.rng.Float64() - 0.5) * snowSpreadX
			p.Y = 150 + s.rng.Float64()*50
			p.Z = (s.rng.Float64()-0.5)*snowSpreadZ + snowOffsetZ
		}
		if math.Abs(p.X) > snowMaxX {
			p.X = -p.X * 0.5
		}
		if p.Z < snowMinZ || p.Z > snowMaxZ {
			p.Z = (s.rng.Float64()-0.5)*snowSpreadZ + snowOffsetZ
		}
	}
}
