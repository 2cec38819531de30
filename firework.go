package evergreen

import (
	"math"
	"math/rand/v2"
)

// spark holds per-spark simulation state. Unexported; managed by FireworkPool.
type spark struct {
	pos   Vec3
	vel   Vec3
	color Color
	size  float64
	life  float64 // remaining lifetime in seconds
}

const (
	sparkLifetime = 1.5
	sparkGravity  = 0.02
	sparkShrink   = 0.98
	sparkFade     = 1.5
)

var (
	sparkSpeed = Range{Min: 0.5, Max: 2.0}
	sparkSize  = Range{Min: 2.0, Max: 5.0}

	fireworkAccents = []Color{
		MustHex("#FF0000"),
		MustHex("#00FF00"),
		MustHex("#0000FF"),
		MustHex("#FF00FF"),
		MustHex("#00FFFF"),
	}
)

// FireworkPool is a fixed-capacity pool of burst sparks. Emit appends at the
// tail and silently truncates once the pool is full. Update integrates the
// live sparks and compacts survivors to the front, preserving their order.
type FireworkPool struct {
	sparks  []spark
	alive   int
	rng     *rand.Rand
	Visible bool
}

// NewFireworkPool creates a pool with room for capacity sparks.
func NewFireworkPool(capacity int, rng *rand.Rand) *FireworkPool {
	if capacity <= 0 {
		capacity = 500
	}
	return &FireworkPool{
		sparks:  make([]spark, capacity),
		rng:     rng,
		Visible: true,
	}
}

// Cap returns the pool capacity.
func (p *FireworkPool) Cap() int {
	return len(p.sparks)
}

// AliveCount returns the number of live sparks.
func (p *FireworkPool) AliveCount() int {
	return p.alive
}

// Reset kills all sparks.
func (p *FireworkPool) Reset() {
	p.alive = 0
}

// Emit launches up to count sparks from pos. Each spark picks its color from
// the given color plus the accent palette. It returns the number actually
// emitted, which is less than count when the pool fills up.
func (p *FireworkPool) Emit(pos Vec3, color Color, count int) int {
	n := min(count, len(p.sparks)-p.alive)
	if n <= 0 {
		return 0
	}
	for range n {
		s := &p.sparks[p.alive]
		theta := p.rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*p.rng.Float64() - 1)
		speed := sparkSpeed.Random(p.rng)

		s.pos = pos
		s.vel = Vec3{
			speed * math.Sin(phi) * math.Cos(theta),
			speed * math.Sin(phi) * math.Sin(theta),
			speed * math.Cos(phi),
		}
		if k := p.rng.IntN(len(fireworkAccents) + 1); k == 0 {
			s.color = color
		} else {
			s.color = fireworkAccents[k-1]
		}
		s.size = sparkSize.Random(p.rng)
		s.life = sparkLifetime
		p.alive++
	}
	return n
}

// Update advances the sparks by dt seconds and drops the dead ones.
func (p *FireworkPool) Update(dt float64) {
	if p.alive == 0 {
		return
	}
	frames := dt * 60
	w := 0
	for i := range p.alive {
		s := p.sparks[i]
		s.pos = s.pos.Add(s.vel.Scale(frames))
		s.vel.Y -= sparkGravity * frames
		s.life -= dt * sparkFade
		s.size *= math.Pow(sparkShrink, frames)
		fade := math.Max(0, s.life)
		s.color = s.color.Scale(fade)
		if s.life <= 0 {
			continue
		}
		p.sparks[w] = s
		w++
	}
	p.alive = w
}

// Buffers appends the live sparks' positions, sizes and colors to the given
// slices and returns them.
func (p *FireworkPool) Buffers(pos []Vec3, sizes []float64, colors []Color) ([]Vec3, []float64, []Color) {
	for i := range p.alive {
		s := &p.sparks[i]
		pos = append(pos, s.pos)
		sizes = append(sizes, s.size)
		colors = append(colors, s.color.Clamped())
	}
	return pos, sizes, colors
}
