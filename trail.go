package evergreen

import "time"

// TrailPoint is one sampled tracker position. X and Y are normalized to
// [0,1] with Y growing downward.
type TrailPoint struct {
	X, Y float64
	At   time.Duration
}

// Trail is a time-ordered window of recent tracker points, bounded by age
// and by count. The oldest points are dropped first.
type Trail struct {
	points []TrailPoint
	maxLen int
	maxAge time.Duration
}

// NewTrail creates a trail that keeps at most maxLen points no older than
// maxAge.
func NewTrail(maxLen int, maxAge time.Duration) *Trail {
	if maxLen <= 0 {
		maxLen = 1
	}
	return &Trail{
		points: make([]TrailPoint, 0, maxLen+1),
		maxLen: maxLen,
		maxAge: maxAge,
	}
}

// Add evicts points older than the age window, appends (x, y) at time now
// and then trims the front to the count bound. A timestamp earlier than the
// newest point is raised to it so the trail stays ordered.
func (t *Trail) Add(x, y float64, now time.Duration) {
	if n := len(t.points); n > 0 && now < t.points[n-1].At {
		now = t.points[n-1].At
	}
	drop := 0
	for drop < len(t.points) && now-t.points[drop].At > t.maxAge {
		drop++
	}
	t.shift(drop)

	t.points = append(t.points, TrailPoint{X: x, Y: y, At: now})

	if over := len(t.points) - t.maxLen; over > 0 {
		t.shift(over)
	}
}

// shift removes the first n points in place.
func (t *Trail) shift(n int) {
	if n <= 0 {
		return
	}
	k := copy(t.points, t.points[n:])
	t.points = t.points[:k]
}

// Points returns the current points, oldest first. The slice is reused by
// later calls and must not be retained.
func (t *Trail) Points() []TrailPoint {
	return t.points
}

// Len returns the number of points.
func (t *Trail) Len() int {
	return len(t.points)
}

// Clear drops every point.
func (t *Trail) Clear() {
	t.points = t.points[:0]
}
