package evergreen

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates a single float64 from one value to another over a duration
// using a gween easing function. Call Update each frame; the current value
// is available from Value.
//
// There is no global animation manager; owners call Update themselves.
type Tween struct {
	tw    *gween.Tween
	value float64
	Done  bool
}

// NewTween creates a tween from `from` to `to` over d.
func NewTween(from, to float64, d time.Duration, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return &Tween{
		tw:    gween.New(float32(from), float32(to), float32(d.Seconds()), fn),
		value: from,
	}
}

// Update advances the tween by dt and returns the new value.
func (t *Tween) Update(dt time.Duration) float64 {
	if t.Done {
		return t.value
	}
	val, finished := t.tw.Update(float32(dt.Seconds()))
	t.value = float64(val)
	t.Done = finished
	return t.value
}

// Value returns the most recent value.
func (t *Tween) Value() float64 {
	return t.value
}
