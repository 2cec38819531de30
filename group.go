package evergreen

import (
	"math"
	"math/rand/v2"
)

// Base colors per particle kind.
var (
	colorGold = MustHex("#FFD700")
	colorRed  = MustHex("#FF0000")
	colorGift = MustHex("#FFFFFF")
)

// Base point sizes per particle kind.
const (
	sizeGold = 2.0
	sizeRed  = 3.5
	sizeGift = 3.0
)

const (
	heartScale   = 2.2
	heartLift    = 5.0
	heartDepth   = 8.0
	heartJitter  = 1.0
	heartFillExp = 0.3
	giftExplode  = 1.2
)

// ParticleGroup is a fixed-size set of points of one kind. Each point has a
// precomputed target per shape; only positions, sizes and colors change after
// construction.
type ParticleGroup struct {
	Kind      Kind
	BaseColor Color
	BaseSize  float64

	Positions []Vec3
	Sizes     []float64
	Colors    []Color
	Phases    []float64

	// Rotation is the group's rotation about the vertical axis in radians.
	Rotation float64
	Scale    float64
	Opacity  float64
	Visible  bool

	tree    []Vec3
	heart   []Vec3
	explode []Vec3
}

// NewParticleGroup generates count points of the given kind. A zero or
// negative count yields an empty group.
func NewParticleGroup(kind Kind, count int, baseSize float64, cfg SceneConfig, rng *rand.Rand) *ParticleGroup {
	if count < 0 {
		count = 0
	}
	g := &ParticleGroup{
		Kind:      kind,
		BaseColor: kindColor(kind),
		BaseSize:  baseSize,
		Positions: make([]Vec3, count),
		Sizes:     make([]float64, count),
		Colors:    make([]Color, count),
		Phases:    make([]float64, count),
		Scale:     1,
		Opacity:   1,
		Visible:   true,
		tree:      make([]Vec3, count),
		heart:     make([]Vec3, count),
		explode:   make([]Vec3, count),
	}
	for i := range count {
		g.tree[i] = treePoint(kind, cfg, rng)
		g.explode[i] = explodePoint(kind, cfg, rng)
		g.heart[i] = heartPoint(rng)

		g.Positions[i] = g.tree[i]
		g.Sizes[i] = baseSize
		g.Colors[i] = g.BaseColor
		g.Phases[i] = rng.Float64() * 2 * math.Pi
	}
	return g
}

// NewKindGroup generates a group with the stock base size for kind.
func NewKindGroup(kind Kind, count int, cfg SceneConfig, rng *rand.Rand) *ParticleGroup {
	return NewParticleGroup(kind, count, kindSize(kind), cfg, rng)
}

// Len returns the number of points in the group.
func (g *ParticleGroup) Len() int {
	return len(g.Positions)
}

// Targets returns the target layout for state s. PHOTO reuses the explode
// layout. The returned slice must not be modified.
func (g *ParticleGroup) Targets(s State) []Vec3 {
	switch s {
	case StateTree:
		return g.tree
	case StateHeart:
		return g.heart
	default:
		return g.explode
	}
}

// Blend reports the compositing mode used to draw the group.
func (g *ParticleGroup) Blend() BlendMode {
	if g.Kind == KindGift {
		return BlendNormal
	}
	return BlendAdd
}

// treePoint picks a point inside the cone. Gold is biased toward the axis,
// the other kinds toward the surface.
func treePoint(kind Kind, cfg SceneConfig, rng *rand.Rand) Vec3 {
	h := rng.Float64() * cfg.TreeHeight
	y := h - cfg.TreeHeight/2
	var ratio float64
	if kind == KindGold {
		ratio = math.Sqrt(rng.Float64())
	} else {
		ratio = 0.9 + rng.Float64()*0.1
	}
	maxR := (1 - h/cfg.TreeHeight) * cfg.TreeBaseRadius
	r := maxR * ratio
	theta := rng.Float64() * 2 * math.Pi
	return Vec3{r * math.Cos(theta), y, r * math.Sin(theta)}
}

// explodePoint picks a point uniformly inside the explode sphere.
func explodePoint(kind Kind, cfg SceneConfig, rng *rand.Rand) Vec3 {
	lam := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)
	mult := 1.0
	if kind == KindGift {
		mult = giftExplode
	}
	rad := cfg.ExplodeRadius * math.Cbrt(rng.Float64()) * mult
	return Vec3{
		rad * math.Sin(phi) * math.Cos(lam),
		rad * math.Sin(phi) * math.Sin(lam),
		rad * math.Cos(phi),
	}
}

// heartPoint picks a point on or inside the parametric heart curve, extruded
// in depth and lifted so it reads well on screen.
func heartPoint(rng *rand.Rand) Vec3 {
	t := rng.Float64() * 2 * math.Pi
	s := math.Sin(t)
	x := 16 * s * s * s
	y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)

	fill := math.Pow(rng.Float64(), heartFillExp)
	x *= fill
	y *= fill
	z := (rng.Float64() - 0.5) * heartDepth * fill

	x += (rng.Float64() - 0.5) * heartJitter
	y += (rng.Float64() - 0.5) * heartJitter
	z += (rng.Float64() - 0.5) * heartJitter

	return Vec3{x * heartScale, y*heartScale + heartLift, z}
}

func kindColor(k Kind) Color {
	switch k {
	case KindGold:
		return colorGold
	case KindRed:
		return colorRed
	default:
		return colorGift
	}
}

func kindSize(k Kind) float64 {
	switch k {
	case KindGold:
		return sizeGold
	case KindRed:
		return sizeRed
	default:
		return sizeGift
	}
}
