package evergreen

import (
	"time"

	"github.com/tanema/gween/ease"
)

// EaseInOutCubic is the cubic ease-in-out curve used for every state
// transition. Its endpoints map 0 to 0, 0.5 to 0.5 and 1 to 1.
func EaseInOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return float64(ease.InOutCubic(float32(t), 0, 1, 1))
}

// Transition tracks a single morph from one state to another. Only one is
// active at a time; beginning a new one overwrites the old.
type Transition struct {
	Active   bool
	From     State
	To       State
	Progress float64
	Duration time.Duration
	Start    time.Duration
}

// Begin starts a transition at logical time now.
func (t *Transition) Begin(from, to State, now time.Duration) {
	t.Active = true
	t.From = from
	t.To = to
	t.Progress = 0
	t.Start = now
}

// Update recomputes progress for logical time now. Progress never decreases
// and the transition deactivates exactly when it reaches 1. It reports
// whether the transition finished during this call.
func (t *Transition) Update(now time.Duration) bool {
	if !t.Active {
		return false
	}
	p := 1.0
	if t.Duration > 0 {
		p = float64(now-t.Start) / float64(t.Duration)
	}
	p = clamp01(p)
	if p < t.Progress {
		p = t.Progress
	}
	t.Progress = p
	if p >= 1 {
		t.Progress = 1
		t.Active = false
		return true
	}
	return false
}

// Eased returns the eased progress, or 1 when no transition is active.
func (t Transition) Eased() float64 {
	if !t.Active {
		return 1
	}
	return EaseInOutCubic(t.Progress)
}

// SpeedFactor returns the multiplier applied to the morph speed. While a
// transition is active the morph starts slow and speeds up.
func (t Transition) SpeedFactor() float64 {
	if !t.Active {
		return 1
	}
	return 0.3 + 0.7*t.Eased()
}
