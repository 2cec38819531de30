package evergreen

import "math"

// Retarget moves every point toward its target for state s by
// position += (target - position) * speed. Points approach the target
// geometrically and never overshoot.
func (g *ParticleGroup) Retarget(s State, speed float64) {
	targets := g.Targets(s)
	speed = clamp01(speed)
	for i := range g.Positions {
		g.Positions[i] = g.Positions[i].Lerp(targets[i], speed)
	}
}

// StyleInput carries the per-frame values the styling rules read.
type StyleInput struct {
	// Time is the scene clock in seconds.
	Time float64
	// Frames is the number of 60 Hz frames the step represents.
	Frames float64
	// HandRotation is the target rotation for EXPLODE, in radians.
	HandRotation float64
}

// Style applies the per-state pulse, color and rotation rules. It is
// evaluated every frame after Retarget.
func (g *ParticleGroup) Style(s State, in StyleInput) {
	switch s {
	case StateTree:
		g.styleTree(in)
	case StateHeart:
		g.styleHeart(in)
	default:
		g.styleExplode(in)
	}
}

func (g *ParticleGroup) styleTree(in StyleInput) {
	t := in.Time
	g.Scale = 1
	g.Rotation += 0.003 * in.Frames
	hue := math.Sin(t*0.5) * 0.1
	for i, ph := range g.Phases {
		g.Sizes[i] = g.BaseSize * (1 + math.Sin(t*5+ph)*0.15)

		b := 1.0
		switch g.Kind {
		case KindRed:
			b = 0.6 + 0.4*math.Sin(t*3+ph)
		case KindGold:
			b = 0.85 + 0.35*math.Sin(t*10+ph)
		}
		g.Colors[i] = g.BaseColor.OffsetHSL(hue, 0, (b-1)*0.1).Clamped()
	}
	g.Opacity = 0.85 + math.Sin(t*2)*0.15
}

func (g *ParticleGroup) styleHeart(in StyleInput) {
	t := in.Time
	g.Rotation = 0
	g.Scale = 1 + math.Abs(math.Sin(t*3))*0.15
	light := (0.8 + math.Sin(t*3)*0.2) * 0.7
	pink := HSL(0.95, 0.8, light)
	for i, ph := range g.Phases {
		// Only every third point draws, leaving a sparse outline.
		if i%3 != 0 {
			g.Sizes[i] = 0
			continue
		}
		g.Sizes[i] = g.BaseSize * (1 + math.Sin(t*4+ph)*0.2)
		g.Colors[i] = pink
	}
	g.Opacity = 0.9 + math.Sin(t*3)*0.1
}

func (g *ParticleGroup) styleExplode(in StyleInput) {
	t := in.Time
	g.Scale = 1
	g.Rotation += (in.HandRotation - g.Rotation) * clamp01(0.1*in.Frames)
	for i, ph := range g.Phases {
		g.Sizes[i] = g.BaseSize * (1 + math.Sin(t*8+ph)*0.25)

		b := 1.0
		switch g.Kind {
		case KindGold, KindRed:
			b = 0.85 + 0.5*math.Sin(t*12+ph)
		case KindGift:
			b = 0.9 + 0.3*math.Sin(t*6+ph)
		}
		hue := math.Sin(t*1.5+ph*0.1) * 0.15
		g.Colors[i] = g.BaseColor.OffsetHSL(hue, 0, (b-1)*0.05).Clamped()
	}
	g.Opacity = 0.9 + math.Sin(t*4)*0.1
}
