package evergreen

// Classification reasons.
const (
	ReasonNotEnoughPoints = "not enough points"
	ReasonBottomOffCenter = "bottom not in middle"
	ReasonDropRise        = "insufficient drop/rise"
	ReasonDetected        = "v gesture detected"
)

// Score weights. They sum to classifierMaxScore.
const (
	weightDrop         = 30
	weightRise         = 30
	weightX            = 20
	weightShape        = 20
	classifierMaxScore = weightDrop + weightRise + weightX + weightShape

	offCenterConfidence = 0.2
)

// Classification is the result of scoring a trail as a V.
type Classification struct {
	Detected   bool
	Confidence float64
	Reason     string
	// Bottom is the index of the lowest smoothed point, or -1 when the trail
	// was too short to look for one.
	Bottom int
}

// Classify scores the trail as a V: a drop to a bottom near the middle,
// a rise back up, and net rightward travel. Too-short trails are reported
// as not detected rather than as an error.
func Classify(points []TrailPoint, cfg GestureConfig) Classification {
	if len(points) < cfg.MinPoints || len(points) == 0 {
		return Classification{Reason: ReasonNotEnoughPoints, Bottom: -1}
	}

	pts := Smooth(points, cfg.SmoothingWindow)
	n := len(pts)
	bottom := LowestIndex(pts)

	// The bottom must sit in the central 60% of the trail.
	if bottom < n*20/100 || bottom > n*80/100 {
		return Classification{Confidence: offCenterConfidence, Reason: ReasonBottomOffCenter, Bottom: bottom}
	}

	start, low, end := pts[0], pts[bottom], pts[n-1]
	drop := low.Y - start.Y
	rise := low.Y - end.Y
	dx := end.X - start.X

	score := 0
	switch {
	case drop > cfg.YMinDrop:
		score += weightDrop
	case drop > cfg.YMinDrop*0.5:
		score += weightDrop / 2
	}
	switch {
	case rise > cfg.YMinRise:
		score += weightRise
	case rise > cfg.YMinRise*0.5:
		score += weightRise / 2
	}
	switch {
	case dx > cfg.XMinMovement:
		score += weightX
	case dx > 0:
		score += weightX / 2
	}
	down := low.X-start.X > 0 && low.Y-start.Y > 0
	up := end.X-low.X > 0 && end.Y-low.Y < 0
	switch {
	case down && up:
		score += weightShape
	case down || up:
		score += weightShape / 2
	}

	c := Classification{
		Confidence: float64(score) / classifierMaxScore,
		Bottom:     bottom,
	}
	switch {
	case c.Confidence >= cfg.Threshold:
		c.Detected = true
		c.Reason = ReasonDetected
	default:
		c.Reason = ReasonDropRise
	}
	return c
}

// Smooth applies a symmetric moving average with the given half-window.
// Windows are truncated at the ends. Trails shorter than the half-window
// are returned unchanged.
func Smooth(points []TrailPoint, half int) []TrailPoint {
	if half <= 0 || len(points) < half {
		return points
	}
	out := make([]TrailPoint, len(points))
	for i := range points {
		lo := max(0, i-half)
		hi := min(len(points)-1, i+half)
		var sx, sy float64
		for j := lo; j <= hi; j++ {
			sx += points[j].X
			sy += points[j].Y
		}
		k := float64(hi - lo + 1)
		out[i] = TrailPoint{X: sx / k, Y: sy / k, At: points[i].At}
	}
	return out
}

// LowestIndex returns the index of the point with the largest Y (lowest on
// screen). When several points share the largest Y the middle one of them
// is returned, so a flat stretch has its bottom at its midpoint. It returns
// -1 for an empty slice.
func LowestIndex(points []TrailPoint) int {
	if len(points) == 0 {
		return -1
	}
	maxY := points[0].Y
	for _, p := range points[1:] {
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	var ties []int
	for i, p := range points {
		if p.Y == maxY {
			ties = append(ties, i)
		}
	}
	return ties[len(ties)/2]
}
