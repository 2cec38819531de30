package evergreen

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#FFD700")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if !approxEqual(c.R, 1, 1e-6) || !approxEqual(c.G, 215.0/255, 1e-6) || c.B != 0 || c.A != 1 {
		t.Errorf("ParseHex(#FFD700) = %+v", c)
	}

	c2, err := ParseHex("00ff00")
	if err != nil {
		t.Fatalf("ParseHex without hash: %v", err)
	}
	if !approxEqual(c2.G, 1, 1e-9) || c2.R != 0 {
		t.Errorf("ParseHex(00ff00) = %+v", c2)
	}

	if _, err := ParseHex("#nothex"); err == nil {
		t.Error("expected error for malformed hex")
	}
}

func TestOffsetHSLWrapsHueAndClampsLightness(t *testing.T) {
	red := RGB(1, 0, 0)

	// A full turn of hue lands back on red.
	same := red.OffsetHSL(1, 0, 0)
	if !approxEqual(same.R, 1, 1e-6) || !approxEqual(same.G, 0, 1e-6) || !approxEqual(same.B, 0, 1e-6) {
		t.Errorf("OffsetHSL(1,0,0) = %+v, want red", same)
	}

	// A third of a turn is green.
	green := red.OffsetHSL(1.0/3, 0, 0)
	if !approxEqual(green.G, 1, 1e-6) || !approxEqual(green.R, 0, 1e-6) {
		t.Errorf("OffsetHSL(1/3,0,0) = %+v, want green", green)
	}

	white := red.OffsetHSL(0, 0, 5)
	if !approxEqual(white.R, 1, 1e-6) || !approxEqual(white.G, 1, 1e-6) || !approxEqual(white.B, 1, 1e-6) {
		t.Errorf("lightness +5 = %+v, want white", white)
	}

	half := red.WithAlpha(0.5).OffsetHSL(0.1, 0, 0)
	if half.A != 0.5 {
		t.Errorf("alpha = %v, want 0.5", half.A)
	}
}

func TestHSLStaysInRange(t *testing.T) {
	for _, h := range []float64{-0.5, 0, 0.95, 1.7} {
		c := HSL(h, 0.8, 0.56)
		for _, ch := range []float64{c.R, c.G, c.B} {
			if ch < 0 || ch > 1 {
				t.Errorf("HSL(%v) channel %v out of range", h, ch)
			}
		}
	}
}

func TestParseState(t *testing.T) {
	tests := []struct {
		in   string
		want State
	}{
		{"TREE", StateTree},
		{"heart", StateHeart},
		{"Explode", StateExplode},
		{"photo", StatePhoto},
	}
	for _, tt := range tests {
		got, err := ParseState(tt.in)
		if err != nil {
			t.Errorf("ParseState(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseState(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseState("SPIRAL"); !errors.Is(err, ErrUnknownState) {
		t.Errorf("ParseState(SPIRAL) err = %v, want ErrUnknownState", err)
	}
}

func TestStateString(t *testing.T) {
	if StateExplode.String() != "EXPLODE" {
		t.Errorf("String = %q, want EXPLODE", StateExplode.String())
	}
	if State(9).String() != "State(9)" {
		t.Errorf("String = %q, want State(9)", State(9).String())
	}
}

func TestRangeRandom(t *testing.T) {
	rng := testRand()
	r := Range{Min: 2, Max: 5}
	for range 1000 {
		v := r.Random(rng)
		if v < 2 || v >= 5 {
			t.Fatalf("Random() = %v, want [2,5)", v)
		}
	}
	if got := (Range{3, 3}).Random(rng); got != 3 {
		t.Errorf("Random() on empty range = %v, want 3", got)
	}
}

func TestColorClamped(t *testing.T) {
	c := Color{R: 1.4, G: -0.2, B: 0.5, A: 2}.Clamped()
	if c != (Color{1, 0, 0.5, 1}) {
		t.Errorf("Clamped = %+v", c)
	}
}
