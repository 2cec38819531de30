package evergreen

import (
	"math"
	"math/rand/v2"
)

// DecorationKind identifies one of the tree-only decoration layers.
type DecorationKind uint8

const (
	DecorSpiralLights DecorationKind = iota
	DecorAura
	DecorTwinkleStars
	DecorOrnaments
)

var decorNames = [...]string{"spiral-lights", "aura", "twinkle-stars", "ornaments"}

func (k DecorationKind) String() string {
	if int(k) < len(decorNames) {
		return decorNames[k]
	}
	return "decoration"
}

const (
	spiralLightCount = 120
	spiralTurns      = 4
	auraCount        = 80
	twinkleCount     = 60
	ornamentCount    = 40
)

var (
	spiralPalette = []Color{
		RGB(1, 0, 0),
		RGB(0, 1, 0),
		RGB(0, 0.5, 1),
		RGB(1, 0.8, 0),
		RGB(1, 0, 1),
		RGB(0, 1, 1),
	}
	twinklePalette = []Color{
		MustHex("#FFFFFF"),
		MustHex("#FFD700"),
		MustHex("#FFF8DC"),
	}
	ornamentPalette = []Color{
		MustHex("#FF0000"),
		MustHex("#FFD700"),
		MustHex("#0066FF"),
		MustHex("#9400D3"),
		MustHex("#FF1493"),
		MustHex("#00CED1"),
	}
	auraColor = MustHex("#50FF70")
)

// Decoration is a single-layout point set that pulses in place. It is only
// shown while the tree is displayed and turns with the gold group.
type Decoration struct {
	Kind DecorationKind

	Positions  []Vec3
	BaseSizes  []float64
	Sizes      []float64
	BaseColors []Color
	Colors     []Color
	Phases     []float64

	Opacity  float64
	Rotation float64
	Visible  bool
}

func newDecoration(kind DecorationKind, n int) *Decoration {
	return &Decoration{
		Kind:       kind,
		Positions:  make([]Vec3, n),
		BaseSizes:  make([]float64, n),
		Sizes:      make([]float64, n),
		BaseColors: make([]Color, n),
		Colors:     make([]Color, n),
		Phases:     make([]float64, n),
		Opacity:    1,
		Visible:    true,
	}
}

// NewSpiralLights lays out a string of lights winding up the tree surface.
func NewSpiralLights(cfg SceneConfig) *Decoration {
	d := newDecoration(DecorSpiralLights, spiralLightCount)
	for i := range spiralLightCount {
		t := float64(i) / spiralLightCount
		h := t * cfg.TreeHeight * 0.95
		theta := t * 2 * math.Pi * spiralTurns
		r := (1-t)*cfg.TreeBaseRadius*1.08 + 1
		d.Positions[i] = Vec3{r * math.Cos(theta), h - cfg.TreeHeight/2, r * math.Sin(theta)}
		d.BaseColors[i] = spiralPalette[i%len(spiralPalette)]
		d.BaseSizes[i] = 4
		d.Phases[i] = float64(i) * 0.5
	}
	copy(d.Colors, d.BaseColors)
	copy(d.Sizes, d.BaseSizes)
	return d
}

// NewAura lays out a soft green glow shell just outside the tree.
func NewAura(cfg SceneConfig, rng *rand.Rand) *Decoration {
	d := newDecoration(DecorAura, auraCount)
	for i := range auraCount {
		t := rng.Float64()
		r := (1 - t) * cfg.TreeBaseRadius * 1.3
		theta := rng.Float64() * 2 * math.Pi
		d.Positions[i] = Vec3{r * math.Cos(theta), t*cfg.TreeHeight - cfg.TreeHeight/2, r * math.Sin(theta)}
		d.BaseSizes[i] = 8 + rng.Float64()*12
		d.BaseColors[i] = auraColor
		d.Phases[i] = rng.Float64() * 2 * math.Pi
	}
	copy(d.Colors, d.BaseColors)
	copy(d.Sizes, d.BaseSizes)
	d.Opacity = 0.8
	return d
}

// NewTwinkleStars scatters small stars through the tree.
func NewTwinkleStars(cfg SceneConfig, rng *rand.Rand) *Decoration {
	d := newDecoration(DecorTwinkleStars, twinkleCount)
	for i := range twinkleCount {
		t := rng.Float64()
		r := (1 - t) * cfg.TreeBaseRadius * 0.9
		theta := rng.Float64() * 2 * math.Pi
		d.Positions[i] = Vec3{
			r*math.Cos(theta) + (rng.Float64()-0.5)*5,
			t*cfg.TreeHeight - cfg.TreeHeight/2 + (rng.Float64()-0.5)*3,
			r*math.Sin(theta) + (rng.Float64()-0.5)*5,
		}
		d.BaseSizes[i] = 1.5 + rng.Float64()*2
		d.Phases[i] = rng.Float64() * 2 * math.Pi
		d.BaseColors[i] = twinklePalette[rng.IntN(len(twinklePalette))]
	}
	copy(d.Colors, d.BaseColors)
	copy(d.Sizes, d.BaseSizes)
	return d
}

// NewOrnaments hangs baubles between 10% and 90% of the tree height.
func NewOrnaments(cfg SceneConfig, rng *rand.Rand) *Decoration {
	d := newDecoration(DecorOrnaments, ornamentCount)
	for i := range ornamentCount {
		t := 0.1 + rng.Float64()*0.8
		r := (1 - t) * cfg.TreeBaseRadius * 0.85
		theta := rng.Float64() * 2 * math.Pi
		d.Positions[i] = Vec3{r * math.Cos(theta), t*cfg.TreeHeight - cfg.TreeHeight/2, r * math.Sin(theta)}
		d.BaseColors[i] = ornamentPalette[rng.IntN(len(ornamentPalette))]
		d.BaseSizes[i] = 3 + rng.Float64()*2
		d.Phases[i] = rng.Float64() * 2 * math.Pi
	}
	copy(d.Colors, d.BaseColors)
	copy(d.Sizes, d.BaseSizes)
	return d
}

// Update animates the decoration for scene time t (seconds). rng drives the
// twinkle spikes.
func (d *Decoration) Update(t float64, rng *rand.Rand) {
	switch d.Kind {
	case DecorSpiralLights:
		chase := t * 3
		for i, ph := range d.Phases {
			if math.Sin(chase-ph) > -0.3 {
				d.Sizes[i] = d.BaseSizes[i] * (0.8 + 0.4*math.Sin(t*6+ph))
				d.Colors[i] = d.BaseColors[i]
			} else {
				d.Sizes[i] = d.BaseSizes[i] * 0.3
				d.Colors[i] = d.BaseColors[i].Scale(0.2)
			}
		}
	case DecorAura:
		for i, ph := range d.Phases {
			d.Sizes[i] = d.BaseSizes[i] * (0.7 + 0.3*math.Sin(t*2+ph))
		}
		d.Opacity = 0.4 + 0.2*math.Sin(t*1.5)
	case DecorTwinkleStars:
		for i, ph := range d.Phases {
			k := 0.3 + 0.7*math.Sin(t*10+ph)
			if rng.Float64() > 0.95 {
				k = 2
			}
			d.Sizes[i] = d.BaseSizes[i] * k
		}
	case DecorOrnaments:
		for i, ph := range d.Phases {
			d.Sizes[i] = d.BaseSizes[i] * (0.9 + 0.1*math.Sin(t*3+ph))
		}
	}
}

// Blend reports the compositing mode used to draw the decoration.
func (d *Decoration) Blend() BlendMode {
	return BlendAdd
}
