package evergreen

import (
	"math"
	"math/rand/v2"
)

// Palette names a family of festive colors sparkles draw from.
type Palette uint8

const (
	PaletteAny Palette = iota // one of gold, red, green, white at random
	PaletteGold
	PaletteRed
	PaletteGreen
	PaletteWhite
	PaletteBlue
)

var palettes = map[Palette][]Color{
	PaletteGold:  {MustHex("#FFD700"), MustHex("#FFC125"), MustHex("#FFB90F"), MustHex("#FFEC8B")},
	PaletteRed:   {MustHex("#FF0000"), MustHex("#DC143C"), MustHex("#B22222"), MustHex("#FF6347")},
	PaletteGreen: {MustHex("#00FF00"), MustHex("#32CD32"), MustHex("#228B22"), MustHex("#7CFC00")},
	PaletteWhite: {MustHex("#FFFFFF"), MustHex("#F0F8FF"), MustHex("#FFFAFA"), MustHex("#F5F5F5")},
	PaletteBlue:  {MustHex("#00BFFF"), MustHex("#87CEEB"), MustHex("#ADD8E6"), MustHex("#B0E0E6")},
}

var anyPalettes = []Palette{PaletteGold, PaletteRed, PaletteGreen, PaletteWhite}

// Pick returns a random color from the palette.
func (p Palette) Pick(rng *rand.Rand) Color {
	if p == PaletteAny {
		p = anyPalettes[rng.IntN(len(anyPalettes))]
	}
	colors, ok := palettes[p]
	if !ok {
		colors = palettes[PaletteGold]
	}
	return colors[rng.IntN(len(colors))]
}

// SparkleShape selects how a sparkle is drawn.
type SparkleShape uint8

const (
	ShapeAny    SparkleShape = iota // star or circle at random
	ShapeStar                       // four-pointed star
	ShapeCircle                     // round dot
)

// sparkleTrailLen is the number of previous positions a sparkle remembers.
const sparkleTrailLen = 5

const (
	sparkleGravity = 0.15
	sparkleDrag    = 0.99
)

// Sparkle is a short-lived screen-space particle on the overlay.
type Sparkle struct {
	Pos      Vec2
	Vel      Vec2
	Size     float64
	Color    Color
	Life     float64
	Decay    float64
	Rotation float64
	Spin     float64
	Shape    SparkleShape

	trail [sparkleTrailLen]Vec2
	head  int
	n     int
}

// Trail appends the remembered positions, oldest first, to dst.
func (s *Sparkle) Trail(dst []Vec2) []Vec2 {
	start := (s.head - s.n + sparkleTrailLen) % sparkleTrailLen
	for i := range s.n {
		dst = append(dst, s.trail[(start+i)%sparkleTrailLen])
	}
	return dst
}

func (s *Sparkle) remember(p Vec2) {
	s.trail[s.head] = p
	s.head = (s.head + 1) % sparkleTrailLen
	if s.n < sparkleTrailLen {
		s.n++
	}
}

// SparkleOptions overrides the random defaults of a new sparkle. Zero
// fields keep the defaults.
type SparkleOptions struct {
	// Vel is added to a small random velocity.
	Vel     Vec2
	Size    float64
	Decay   float64
	Palette Palette
	Shape   SparkleShape
}

// SparklePool holds live sparkles up to a cap. Spawning past the cap evicts
// the oldest sparkles.
type SparklePool struct {
	sparkles []Sparkle
	cap      int
	rng      *rand.Rand
}

// NewSparklePool creates a pool holding at most capacity sparkles.
func NewSparklePool(capacity int, rng *rand.Rand) *SparklePool {
	if capacity <= 0 {
		capacity = 1
	}
	return &SparklePool{
		sparkles: make([]Sparkle, 0, capacity),
		cap:      capacity,
		rng:      rng,
	}
}

// Spawn adds a sparkle at pos.
func (p *SparklePool) Spawn(pos Vec2, opt SparkleOptions) {
	rng := p.rng
	s := Sparkle{
		Pos: pos,
		Vel: Vec2{
			X: opt.Vel.X + (rng.Float64()-0.5)*6,
			Y: opt.Vel.Y + (rng.Float64()-0.5)*6 - 2,
		},
		Size:     opt.Size,
		Color:    opt.Palette.Pick(rng),
		Life:     1,
		Decay:    opt.Decay,
		Rotation: rng.Float64() * 2 * math.Pi,
		Spin:     (rng.Float64() - 0.5) * 0.4,
		Shape:    opt.Shape,
	}
	if s.Size <= 0 {
		s.Size = 2 + rng.Float64()*5
	}
	if s.Decay <= 0 {
		s.Decay = 0.015 + rng.Float64()*0.02
	}
	if s.Shape == ShapeAny {
		s.Shape = ShapeCircle
		if rng.Float64() > 0.5 {
			s.Shape = ShapeStar
		}
	}
	if len(p.sparkles) >= p.cap {
		over := len(p.sparkles) - p.cap + 1
		k := copy(p.sparkles, p.sparkles[over:])
		p.sparkles = p.sparkles[:k]
	}
	p.sparkles = append(p.sparkles, s)
}

// Update advances every sparkle by the given number of 60 Hz frames and
// drops the ones that have faded out. Survivors keep their order.
func (p *SparklePool) Update(frames float64) {
	drag := math.Pow(sparkleDrag, frames)
	w := 0
	for i := range p.sparkles {
		s := p.sparkles[i]
		s.remember(s.Pos)
		s.Pos = s.Pos.Add(s.Vel.Scale(frames))
		s.Vel.Y += sparkleGravity * frames
		s.Vel.X *= drag
		s.Life -= s.Decay * frames
		s.Rotation += s.Spin * frames
		if s.Life <= 0 {
			continue
		}
		p.sparkles[w] = s
		w++
	}
	clear(p.sparkles[w:])
	p.sparkles = p.sparkles[:w]
}

// Sparkles returns the live sparkles, oldest first.
func (p *SparklePool) Sparkles() []Sparkle {
	return p.sparkles
}

// Len returns the number of live sparkles.
func (p *SparklePool) Len() int {
	return len(p.sparkles)
}

// Cap returns the pool cap.
func (p *SparklePool) Cap() int {
	return p.cap
}

// Clear removes every sparkle.
func (p *SparklePool) Clear() {
	p.sparkles = p.sparkles[:0]
}
