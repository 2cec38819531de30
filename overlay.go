package evergreen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

var (
	overlayFade   = Color{R: 10.0 / 255, G: 10.0 / 255, B: 26.0 / 255, A: 0.1}
	hexStart      = MustHex("#32CD32")
	hexBottom     = MustHex("#FF6347")
	hexCurrent    = MustHex("#FFD700")
	hexLowStart   = MustHex("#FF6B6B")
	hexGreen      = MustHex("#00FF00")
	hexCyan       = MustHex("#00FFFF")
	trackColor    = Color{1, 1, 1, 0.15}
	barBackground = Color{0, 0, 0, 0.6}
	statusColor   = Color{1, 1, 1, 0.8}
)

const (
	trailWidth    = 6.0
	barWidth      = 250.0
	barHeight     = 12.0
	barRadius     = 6.0
	barY          = 60.0
	barMinPercent = 5.0
	detectedDim   = 0.3
)

// Overlay draws the gesture trail, key points, progress bar, sparkles and
// background snow for a Recognizer onto a Canvas.
type Overlay struct {
	rec  *Recognizer
	snow *OverlaySnow
	w, h float64

	scratch []Vec2
}

// NewOverlay creates an overlay of size w×h bound to rec. The recognizer's
// viewport is set to match.
func NewOverlay(rec *Recognizer, w, h float64, rng *rand.Rand) *Overlay {
	if rng == nil {
		rng = newRand(0)
	}
	o := &Overlay{rec: rec, snow: NewOverlaySnow(w, h, rng), w: w, h: h}
	rec.SetViewport(w, h)
	return o
}

// Resize applies a new surface size and reseeds the snow.
func (o *Overlay) Resize(w, h float64) {
	o.w, o.h = w, h
	o.snow.Resize(w, h)
	o.rec.SetViewport(w, h)
}

// Snow returns the background snowfall.
func (o *Overlay) Snow() *OverlaySnow { return o.snow }

// Opacity is the alpha the backend should composite the overlay with.
func (o *Overlay) Opacity() float64 { return o.rec.Opacity() }

// Hidden reports whether the outro has fully faded the overlay out.
func (o *Overlay) Hidden() bool { return o.rec.Completed() && o.rec.Opacity() <= 0 }

// Update advances the background snow. Sparkles are advanced by the
// recognizer's own Update.
func (o *Overlay) Update(dt time.Duration) {
	if dt > 0 {
		o.snow.Update(dt.Seconds() * 60)
	}
}

// Draw renders one overlay frame.
func (o *Overlay) Draw(c Canvas) error {
	if c == nil {
		return ErrNoCanvas
	}
	c.Fade(overlayFade)
	o.drawSnow(c)

	trail := o.rec.Trail()
	if !o.rec.Detected() && len(trail) > 1 {
		o.drawTrail(c, trail)
		o.drawProgress(c)
	}

	for i := range o.rec.Sparkles().Sparkles() {
		o.drawSparkle(c, &o.rec.Sparkles().Sparkles()[i])
	}
	return nil
}

func (o *Overlay) drawSnow(c Canvas) {
	dim := 1.0
	if o.rec.Detected() {
		dim = detectedDim
	}
	for _, f := range o.snow.Flakes {
		c.FillCircle(f.Pos, f.Size, ColorWhite.WithAlpha(f.Opacity*dim), 5)
	}
}

func (o *Overlay) screen(p TrailPoint) Vec2 {
	return Vec2{p.X * o.w, p.Y * o.h}
}

func (o *Overlay) drawTrail(c Canvas, trail []TrailPoint) {
	pts := o.scratch[:0]
	for _, p := range trail {
		pts = append(pts, o.screen(p))
	}
	o.scratch = pts

	first, last := pts[0], pts[len(pts)-1]
	paint := Gradient{X0: first.X, Y0: first.Y, X1: last.X, Y1: last.Y}
	glow := hexCurrent
	if o.rec.Progress() < 50 {
		paint.Stops = []GradientStop{
			{0, RGB(1, 107.0/255, 107.0/255).WithAlpha(0.4)},
			{0.5, hexCurrent.WithAlpha(0.8)},
			{1, hexCurrent},
		}
	} else {
		glow = hexGreen
		paint.Stops = []GradientStop{
			{0, hexCurrent.WithAlpha(0.5)},
			{0.5, hexStart.WithAlpha(0.9)},
			{1, hexCyan},
		}
	}
	c.StrokeCurve(pts, trailWidth, paint, glow)

	if len(trail) < 3 {
		return
	}
	o.drawKeyPoint(c, pts[0], hexStart, 10, "START")
	if low := LowestIndex(trail); low > 2 && low < len(trail)-2 {
		o.drawKeyPoint(c, pts[low], hexBottom, 12, "V")
	}
	o.drawKeyPoint(c, last, hexCurrent, 14, "")
}

func (o *Overlay) drawKeyPoint(c Canvas, at Vec2, col Color, size float64, label string) {
	c.FillRadial(at, size*2, []GradientStop{
		{0, col},
		{0.5, col.WithAlpha(0.5)},
		{1, col.WithAlpha(0)},
	})
	c.FillCircle(at, size/2, col, 20)
	if label != "" {
		c.DrawText(label, at.X, at.Y-size-5, 11, ColorWhite, AlignCenter)
	}
}

// progressPaint returns the fill gradient for the progress bar at percent p.
func progressPaint(p, x0, x1 float64) Gradient {
	g := Gradient{X0: x0, X1: x1}
	switch {
	case p < 40:
		g.Stops = []GradientStop{{0, hexLowStart}, {1, hexCurrent}}
	case p < 70:
		g.Stops = []GradientStop{{0, hexCurrent}, {1, hexStart}}
	default:
		g.Stops = []GradientStop{{0, hexStart}, {0.5, hexCyan}, {1, hexCurrent}}
	}
	return g
}

// StatusText returns the hint shown under the progress bar at percent p.
func StatusText(p float64) string {
	switch {
	case p < 40:
		return "Keep drawing..."
	case p < 70:
		return "Almost there!"
	default:
		return "Perfect!"
	}
}

func (o *Overlay) drawProgress(c Canvas) {
	p := o.rec.Progress()
	if p < barMinPercent {
		return
	}
	cx := o.w / 2
	left := cx - barWidth/2

	c.FillRoundRect(left-4, barY-4, barWidth+8, barHeight+8, barRadius+2, Solid(barBackground))
	c.FillRoundRect(left, barY, barWidth, barHeight, barRadius, Solid(trackColor))
	fill := math.Max(p/100*barWidth, barRadius*2)
	c.FillRoundRect(left, barY, fill, barHeight, barRadius, progressPaint(p, left, left+barWidth))

	c.DrawText(fmt.Sprintf("%d%%", int(math.Round(p))), cx, barY+barHeight+22, 14, ColorWhite, AlignCenter)
	c.DrawText(StatusText(p), cx, barY+barHeight+40, 12, statusColor, AlignCenter)
}

func (o *Overlay) drawSparkle(c Canvas, s *Sparkle) {
	if tr := s.Trail(o.scratch[:0]); len(tr) > 1 {
		o.scratch = tr
		c.StrokePolyline(tr, s.Size*s.Life*0.5, s.Color.WithAlpha(s.Life*s.Life*50/255))
	}
	size := s.Size * s.Life
	col := s.Color.WithAlpha(s.Life)
	if s.Shape == ShapeStar {
		c.FillStar(s.Pos, size, s.Rotation, 4, 0.35, col, 15)
		return
	}
	c.FillCircle(s.Pos, size, col, 15)
}
