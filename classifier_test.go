package evergreen

import (
	"testing"
	"time"
)

// vWaypoints is a V traced left to right with the bottom in the middle.
var vWaypoints = []Vec2{{0.1, 0.2}, {0.5, 0.6}, {0.9, 0.2}}

func toTrail(pts []Vec2, step time.Duration) []TrailPoint {
	out := make([]TrailPoint, len(pts))
	for i, p := range pts {
		out[i] = TrailPoint{X: p.X, Y: p.Y, At: time.Duration(i) * step}
	}
	return out
}

func TestClassifyV(t *testing.T) {
	cfg := DefaultConfig().Gesture
	c := Classify(toTrail(TracePoints(vWaypoints, 20), 40*time.Millisecond), cfg)
	if !c.Detected {
		t.Fatalf("V not detected: %+v", c)
	}
	if c.Confidence < cfg.Threshold {
		t.Errorf("Confidence = %v, want >= %v", c.Confidence, cfg.Threshold)
	}
	if c.Reason != ReasonDetected {
		t.Errorf("Reason = %q", c.Reason)
	}
	if c.Bottom < 4 || c.Bottom > 16 {
		t.Errorf("Bottom = %d, want near the middle", c.Bottom)
	}
}

func TestClassifyHorizontalLine(t *testing.T) {
	cfg := DefaultConfig().Gesture
	pts := TracePoints([]Vec2{{0.1, 0.5}, {0.9, 0.5}}, 20)
	c := Classify(toTrail(pts, 40*time.Millisecond), cfg)
	if c.Detected {
		t.Fatal("horizontal line detected as a V")
	}
	if c.Reason != ReasonDropRise {
		t.Errorf("Reason = %q, want %q", c.Reason, ReasonDropRise)
	}
	if !approxEqual(c.Confidence, 0.2, 1e-12) {
		t.Errorf("Confidence = %v, want 0.2", c.Confidence)
	}
}

func TestClassifyBottomOffCenter(t *testing.T) {
	cfg := DefaultConfig().Gesture
	pts := TracePoints([]Vec2{{0.1, 0.1}, {0.9, 0.9}}, 20)
	c := Classify(toTrail(pts, 40*time.Millisecond), cfg)
	if c.Detected || c.Reason != ReasonBottomOffCenter {
		t.Errorf("descending diagonal = %+v, want %q", c, ReasonBottomOffCenter)
	}
	if c.Confidence != offCenterConfidence {
		t.Errorf("Confidence = %v, want %v", c.Confidence, offCenterConfidence)
	}
}

func TestClassifyTooShort(t *testing.T) {
	cfg := DefaultConfig().Gesture
	c := Classify(toTrail(TracePoints(vWaypoints, 10), time.Millisecond), cfg)
	if c.Detected || c.Reason != ReasonNotEnoughPoints || c.Confidence != 0 {
		t.Errorf("short trail = %+v", c)
	}
	if c := Classify(nil, cfg); c.Reason != ReasonNotEnoughPoints {
		t.Errorf("empty trail reason = %q", c.Reason)
	}
}

func TestClassifyInvertedV(t *testing.T) {
	cfg := DefaultConfig().Gesture
	pts := TracePoints([]Vec2{{0.1, 0.6}, {0.5, 0.2}, {0.9, 0.6}}, 20)
	if c := Classify(toTrail(pts, time.Millisecond), cfg); c.Detected {
		t.Errorf("inverted V detected: %+v", c)
	}
}

func TestSmooth(t *testing.T) {
	pts := []TrailPoint{{X: 0}, {X: 3}, {X: 6}, {X: 9}}
	out := Smooth(pts, 1)
	want := []float64{1.5, 3, 6, 7.5}
	for i, w := range want {
		if !approxEqual(out[i].X, w, 1e-12) {
			t.Errorf("Smooth[%d].X = %v, want %v", i, out[i].X, w)
		}
	}
	short := pts[:2]
	if got := Smooth(short, 3); &got[0] != &short[0] {
		t.Error("trail shorter than the window should be returned unchanged")
	}
}

func TestLowestIndex(t *testing.T) {
	tests := []struct {
		name string
		ys   []float64
		want int
	}{
		{"empty", nil, -1},
		{"single max", []float64{0.1, 0.9, 0.3}, 1},
		{"flat", []float64{0.5, 0.5, 0.5, 0.5, 0.5}, 2},
		{"tie pair", []float64{0.2, 0.8, 0.8, 0.1}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := make([]TrailPoint, len(tt.ys))
			for i, y := range tt.ys {
				pts[i].Y = y
			}
			if got := LowestIndex(pts); got != tt.want {
				t.Errorf("LowestIndex = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTracePoints(t *testing.T) {
	pts := TracePoints(vWaypoints, 21)
	if len(pts) != 21 {
		t.Fatalf("len = %d, want 21", len(pts))
	}
	if pts[0] != vWaypoints[0] || !approxEqual(pts[20].X, 0.9, 1e-12) || !approxEqual(pts[20].Y, 0.2, 1e-12) {
		t.Errorf("endpoints = %v, %v", pts[0], pts[20])
	}
	if !approxEqual(pts[10].X, 0.5, 1e-12) || !approxEqual(pts[10].Y, 0.6, 1e-12) {
		t.Errorf("midpoint = %v, want the bottom", pts[10])
	}
	if TracePoints(nil, 5) != nil {
		t.Error("no waypoints should give nil")
	}
}
