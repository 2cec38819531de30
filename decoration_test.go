package evergreen

import (
	"math"
	"testing"
)

func TestDecorationLayouts(t *testing.T) {
	cfg := DefaultConfig().Scene
	rng := testRand()
	tests := []struct {
		d    *Decoration
		kind DecorationKind
		n    int
	}{
		{NewSpiralLights(cfg), DecorSpiralLights, spiralLightCount},
		{NewAura(cfg, rng), DecorAura, auraCount},
		{NewTwinkleStars(cfg, rng), DecorTwinkleStars, twinkleCount},
		{NewOrnaments(cfg, rng), DecorOrnaments, ornamentCount},
	}
	for _, tt := range tests {
		if tt.d.Kind != tt.kind || len(tt.d.Positions) != tt.n {
			t.Errorf("%v: kind %v with %d points, want %d", tt.kind, tt.d.Kind, len(tt.d.Positions), tt.n)
		}
		if tt.d.Blend() != BlendAdd {
			t.Errorf("%v should blend additively", tt.kind)
		}
	}
}

func TestOrnamentsWithinTreeBand(t *testing.T) {
	cfg := DefaultConfig().Scene
	d := NewOrnaments(cfg, testRand())
	lo := 0.1*cfg.TreeHeight - cfg.TreeHeight/2
	hi := 0.9*cfg.TreeHeight - cfg.TreeHeight/2
	for i, p := range d.Positions {
		if p.Y < lo || p.Y > hi {
			t.Errorf("ornament %d at y=%v outside [%v,%v]", i, p.Y, lo, hi)
		}
	}
}

func TestSpiralLightsChase(t *testing.T) {
	d := NewSpiralLights(DefaultConfig().Scene)
	d.Update(1.3, testRand())
	lit, dim := 0, 0
	for i := range d.Sizes {
		if d.Sizes[i] == d.BaseSizes[i]*0.3 {
			dim++
		} else {
			lit++
		}
	}
	if lit == 0 || dim == 0 {
		t.Errorf("lit=%d dim=%d, want a mix", lit, dim)
	}
}

func TestAuraPulse(t *testing.T) {
	d := NewAura(DefaultConfig().Scene, testRand())
	for _, tm := range []float64{0, 0.7, 2.1, 5} {
		d.Update(tm, testRand())
		if d.Opacity < 0.2-1e-9 || d.Opacity > 0.6+1e-9 {
			t.Errorf("aura opacity %v at t=%v", d.Opacity, tm)
		}
	}
}

func TestSnowStaysInBounds(t *testing.T) {
	s := NewSnow(300, testRand())
	for f := range 1500 {
		s.Update(float64(f)/60, 1)
	}
	for i, p := range s.Positions {
		if p.Y < snowFloor || math.Abs(p.X) > snowMaxX || p.Z < snowMinZ || p.Z > snowMaxZ {
			t.Fatalf("flake %d escaped: %v", i, p)
		}
	}
}

func TestSnowEmpty(t *testing.T) {
	s := NewSnow(-3, testRand())
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	s.Update(1, 1)
}
