package evergreen

import (
	"math"
	"testing"
)

func TestTreeTargetsInsideCone(t *testing.T) {
	cfg := DefaultConfig().Scene
	rng := testRand()
	for _, kind := range []Kind{KindGold, KindRed, KindGift} {
		g := NewKindGroup(kind, 500, cfg, rng)
		for i, p := range g.Targets(StateTree) {
			if p.Y < -cfg.TreeHeight/2 || p.Y >= cfg.TreeHeight/2 {
				t.Fatalf("%v[%d] y = %v outside tree height", kind, i, p.Y)
			}
			h := p.Y + cfg.TreeHeight/2
			maxR := (1 - h/cfg.TreeHeight) * cfg.TreeBaseRadius
			if r := math.Hypot(p.X, p.Z); r > maxR+1e-9 {
				t.Fatalf("%v[%d] radius %v exceeds cone radius %v", kind, i, r, maxR)
			}
		}
	}
}

func TestExplodeTargetsInsideSphere(t *testing.T) {
	cfg := DefaultConfig().Scene
	rng := testRand()
	tests := []struct {
		kind Kind
		max  float64
	}{
		{KindGold, cfg.ExplodeRadius},
		{KindRed, cfg.ExplodeRadius},
		{KindGift, cfg.ExplodeRadius * giftExplode},
	}
	for _, tt := range tests {
		g := NewKindGroup(tt.kind, 500, cfg, rng)
		for i, p := range g.Targets(StateExplode) {
			if p.Len() > tt.max+1e-9 {
				t.Fatalf("%v[%d] |p| = %v, want <= %v", tt.kind, i, p.Len(), tt.max)
			}
		}
	}
}

func TestPhotoReusesExplodeTargets(t *testing.T) {
	g := NewKindGroup(KindRed, 10, DefaultConfig().Scene, testRand())
	a, b := g.Targets(StatePhoto), g.Targets(StateExplode)
	if &a[0] != &b[0] {
		t.Error("PHOTO should share the EXPLODE layout")
	}
}

func TestEmptyGroup(t *testing.T) {
	cfg := DefaultConfig().Scene
	g := NewKindGroup(KindGold, 0, cfg, testRand())
	if g.Len() != 0 {
		t.Fatalf("Len = %d, want 0", g.Len())
	}
	g.Retarget(StateHeart, 0.5)
	g.Style(StateHeart, StyleInput{Time: 1, Frames: 1})

	neg := NewKindGroup(KindRed, -5, cfg, testRand())
	if neg.Len() != 0 {
		t.Errorf("negative count Len = %d, want 0", neg.Len())
	}
}

func TestGroupStartsAtTree(t *testing.T) {
	g := NewKindGroup(KindGold, 50, DefaultConfig().Scene, testRand())
	tree := g.Targets(StateTree)
	for i := range g.Positions {
		if g.Positions[i] != tree[i] {
			t.Fatalf("point %d starts at %v, want tree target %v", i, g.Positions[i], tree[i])
		}
	}
	if g.Sizes[0] != sizeGold || g.Colors[0] != colorGold {
		t.Errorf("base size/color = %v/%+v", g.Sizes[0], g.Colors[0])
	}
}

func TestRetargetConvergesWithoutOvershoot(t *testing.T) {
	g := NewKindGroup(KindRed, 100, DefaultConfig().Scene, testRand())
	targets := g.Targets(StateExplode)

	dist := func() []float64 {
		d := make([]float64, g.Len())
		for i := range g.Positions {
			d[i] = g.Positions[i].Sub(targets[i]).Len()
		}
		return d
	}
	prev := dist()
	for range 100 {
		g.Retarget(StateExplode, 0.08)
		cur := dist()
		for i := range cur {
			if cur[i] > prev[i]+1e-9 {
				t.Fatalf("point %d moved away from its target: %v > %v", i, cur[i], prev[i])
			}
		}
		prev = cur
	}
	for range 200 {
		g.Retarget(StateExplode, 0.08)
	}
	for i, d := range dist() {
		if d > 1e-4 {
			t.Errorf("point %d still %v from target after 300 steps", i, d)
		}
	}
}

func TestRetargetLeavesTargetsAlone(t *testing.T) {
	g := NewKindGroup(KindGift, 20, DefaultConfig().Scene, testRand())
	before := append([]Vec3(nil), g.Targets(StateHeart)...)
	for range 50 {
		g.Retarget(StateHeart, 0.5)
		g.Style(StateHeart, StyleInput{Time: 2, Frames: 1})
	}
	for i, p := range g.Targets(StateHeart) {
		if p != before[i] {
			t.Fatalf("heart target %d changed", i)
		}
	}
}

func TestStyleKeepsColorsInRange(t *testing.T) {
	cfg := DefaultConfig().Scene
	for _, s := range []State{StateTree, StateHeart, StateExplode} {
		for _, kind := range []Kind{KindGold, KindRed, KindGift} {
			g := NewKindGroup(kind, 50, cfg, testRand())
			for f := range 120 {
				g.Style(s, StyleInput{Time: float64(f) / 60, Frames: 1, HandRotation: 1})
			}
			for i, c := range g.Colors {
				for _, ch := range []float64{c.R, c.G, c.B, c.A} {
					if ch < 0 || ch > 1 {
						t.Fatalf("%v %v color %d = %+v out of range", s, kind, i, c)
					}
				}
			}
		}
	}
}

func TestExplodeRotationFollowsHand(t *testing.T) {
	g := NewKindGroup(KindGold, 10, DefaultConfig().Scene, testRand())
	for range 200 {
		g.Style(StateExplode, StyleInput{Frames: 1, HandRotation: 1.5})
	}
	if !approxEqual(g.Rotation, 1.5, 1e-3) {
		t.Errorf("Rotation = %v, want about 1.5", g.Rotation)
	}
}

func TestTreeResetsHeartbeatScale(t *testing.T) {
	g := NewKindGroup(KindRed, 10, DefaultConfig().Scene, testRand())
	g.Style(StateHeart, StyleInput{Time: 0.5, Frames: 1})
	if g.Scale <= 1 {
		t.Fatalf("HEART Scale = %v, want above 1", g.Scale)
	}
	g.Style(StateTree, StyleInput{Time: 0.6, Frames: 1})
	if g.Scale != 1 {
		t.Errorf("TREE Scale = %v, want 1", g.Scale)
	}
}

func TestBlendModes(t *testing.T) {
	cfg := DefaultConfig().Scene
	if NewKindGroup(KindGift, 1, cfg, testRand()).Blend() != BlendNormal {
		t.Error("gift should blend normally")
	}
	if NewKindGroup(KindGold, 1, cfg, testRand()).Blend() != BlendAdd {
		t.Error("gold should blend additively")
	}
}
