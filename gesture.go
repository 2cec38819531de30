package evergreen

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
)

// RecognizerState is the phase of the V-gesture recognizer.
type RecognizerState uint8

const (
	GestureIdle       RecognizerState = iota // no points yet
	GestureCollecting                        // building a trail
	GestureDetected                          // a V was accepted; sticky until Reset
)

var recognizerStateNames = [...]string{"IDLE", "COLLECTING", "DETECTED"}

func (s RecognizerState) String() string {
	if int(s) < len(recognizerStateNames) {
		return recognizerStateNames[s]
	}
	return "RecognizerState(?)"
}

const (
	trailSparkles       = 3
	trailSparkleSpread  = 20.0
	celebrationStars    = 200
	celebrationSpread   = 50.0
	fireworkSparks      = 80
	fireworkStagger     = 200 * time.Millisecond
	fireworkSparkDecay  = 0.012
	celebrationMinSpeed = 5.0
	celebrationMaxSpeed = 20.0
)

// celebrationFireworks are the delayed overlay fireworks, as fractions of the
// viewport, with their palettes.
var celebrationFireworks = []struct {
	x, y    float64
	palette Palette
}{
	{0.2, 0.3, PaletteGold},
	{0.8, 0.3, PaletteRed},
	{0.5, 0.2, PaletteGreen},
}

// RecognizerOption configures a Recognizer.
type RecognizerOption func(*Recognizer)

// OnComplete sets the callback invoked once, CompletionDelay after a V is
// detected.
func OnComplete(fn func()) RecognizerOption {
	return func(r *Recognizer) { r.onComplete = fn }
}

// WithGestureScheduler shares a scheduler with the recognizer. The owner of
// a shared scheduler is responsible for advancing it.
func WithGestureScheduler(s *Scheduler) RecognizerOption {
	return func(r *Recognizer) { r.sched = s }
}

// WithGestureRand replaces the recognizer's random source.
func WithGestureRand(rng *rand.Rand) RecognizerOption {
	return func(r *Recognizer) { r.rng = rng }
}

// WithGestureSink routes recognizer events to sink.
func WithGestureSink(sink EventSink) RecognizerOption {
	return func(r *Recognizer) { r.sink = sink }
}

// Recognizer turns a stream of normalized tracker points into a V-gesture
// detection. AddPoint is the only input. Once a V is accepted the
// recognizer stays detected until Reset.
type Recognizer struct {
	cfg      GestureConfig
	sched    *Scheduler
	ownClock bool
	rng      *rand.Rand
	sink     EventSink

	trail    *Trail
	sparkles *SparklePool

	detected    bool
	attempted   bool
	lastAttempt time.Duration
	last        Classification
	progress    float64

	onComplete func()
	completed  bool
	epoch      uint64

	width, height float64

	outro   *Tween
	opacity float64
}

// NewRecognizer creates a recognizer for cfg.
func NewRecognizer(cfg GestureConfig, opts ...RecognizerOption) *Recognizer {
	r := &Recognizer{
		cfg:     cfg,
		trail:   NewTrail(cfg.TrailLength, cfg.MaxTimeWindow),
		width:   1,
		height:  1,
		opacity: 1,
		last:    Classification{Reason: ReasonNotEnoughPoints, Bottom: -1},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sched == nil {
		r.sched = NewScheduler()
		r.ownClock = true
	}
	if r.rng == nil {
		r.rng = newRand(0)
	}
	r.sparkles = NewSparklePool(cfg.SparkleCount*4, r.rng)
	return r
}

// SetViewport sets the overlay size used to place screen-space effects.
func (r *Recognizer) SetViewport(w, h float64) {
	r.width, r.height = w, h
}

// Viewport returns the overlay size.
func (r *Recognizer) Viewport() (w, h float64) {
	return r.width, r.height
}

// Scheduler returns the recognizer's logical clock.
func (r *Recognizer) Scheduler() *Scheduler {
	return r.sched
}

// AddPoint feeds one normalized tracker position. It trims the trail, adds
// trail sparkles and, when not yet detected, enough points are present and
// the cooldown since the last attempt has elapsed, runs the classifier.
func (r *Recognizer) AddPoint(x, y float64) {
	now := r.sched.Now()
	r.trail.Add(x, y, now)

	sx, sy := x*r.width, y*r.height
	for range trailSparkles {
		r.sparkles.Spawn(Vec2{
			X: sx + (r.rng.Float64()-0.5)*trailSparkleSpread,
			Y: sy + (r.rng.Float64()-0.5)*trailSparkleSpread,
		}, SparkleOptions{})
	}

	if r.detected || r.trail.Len() < r.cfg.MinPoints {
		return
	}
	if r.attempted && now-r.lastAttempt < r.cfg.Cooldown {
		return
	}
	r.attempted = true
	r.lastAttempt = now

	c := Classify(r.trail.Points(), r.cfg)
	r.last = c
	r.progress = c.Confidence * 100
	if c.Detected {
		r.detect(c)
	}
}

func (r *Recognizer) detect(c Classification) {
	r.detected = true
	r.trail.Clear()
	Logger().Info("gesture detected", slog.Float64("confidence", c.Confidence))
	r.emit(Event{Type: EventGestureDetected, Confidence: c.Confidence})

	r.celebrate()

	epoch := r.epoch
	r.sched.After(r.cfg.CompletionDelay, func() {
		if epoch != r.epoch || r.completed {
			return
		}
		r.completed = true
		if r.onComplete != nil {
			r.onComplete()
		}
		r.emit(Event{Type: EventGestureComplete, Confidence: c.Confidence})
		r.outro = NewTween(1, 0, r.cfg.OutroDuration, ease.OutCubic)
	})
}

// celebrate sends a ring of stars out from the center and queues three
// staggered fireworks.
func (r *Recognizer) celebrate() {
	cx, cy := r.width/2, r.height/2
	for i := range celebrationStars {
		angle := float64(i) / celebrationStars * 2 * math.Pi
		speed := celebrationMinSpeed + r.rng.Float64()*(celebrationMaxSpeed-celebrationMinSpeed)
		dist := r.rng.Float64() * celebrationSpread
		r.sparkles.Spawn(Vec2{cx + math.Cos(angle)*dist, cy + math.Sin(angle)*dist}, SparkleOptions{
			Vel:   Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed},
			Size:  3 + r.rng.Float64()*6,
			Decay: 0.01 + r.rng.Float64()*0.01,
			Shape: ShapeStar,
		})
	}
	for idx, fw := range celebrationFireworks {
		r.sched.After(time.Duration(idx)*fireworkStagger, func() {
			r.firework(Vec2{fw.x * r.width, fw.y * r.height}, fw.palette)
		})
	}
}

func (r *Recognizer) firework(at Vec2, palette Palette) {
	for i := range fireworkSparks {
		angle := float64(i) / fireworkSparks * 2 * math.Pi
		speed := 3 + r.rng.Float64()*8
		r.sparkles.Spawn(at, SparkleOptions{
			Vel:     Vec2{math.Cos(angle) * speed, math.Sin(angle)*speed - 2},
			Size:    2 + r.rng.Float64()*4,
			Decay:   fireworkSparkDecay,
			Palette: palette,
			Shape:   ShapeStar,
		})
	}
}

// Update advances the sparkles and the outro fade by dt. When the
// recognizer owns its scheduler it also advances the clock.
func (r *Recognizer) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	if r.ownClock {
		r.sched.Advance(dt)
	}
	r.sparkles.Update(dt.Seconds() * 60)
	if r.outro != nil {
		r.opacity = r.outro.Update(dt)
	}
}

// Reset returns to IDLE: the trail, sparkles and progress are cleared, the
// overlay is restored and detection is possible again. A completion still
// pending from before the reset is dropped.
func (r *Recognizer) Reset() {
	r.detected = false
	r.completed = false
	r.attempted = false
	r.epoch++
	r.trail.Clear()
	r.sparkles.Clear()
	r.progress = 0
	r.last = Classification{Reason: ReasonNotEnoughPoints, Bottom: -1}
	r.outro = nil
	r.opacity = 1
	r.emit(Event{Type: EventGestureReset})
}

// State returns the recognizer phase.
func (r *Recognizer) State() RecognizerState {
	switch {
	case r.detected:
		return GestureDetected
	case r.trail.Len() > 0:
		return GestureCollecting
	default:
		return GestureIdle
	}
}

// Detected reports whether a V has been accepted since the last Reset.
func (r *Recognizer) Detected() bool { return r.detected }

// Completed reports whether the completion callback has run since the last
// Reset.
func (r *Recognizer) Completed() bool { return r.completed }

// Progress returns the confidence of the last attempt as a percentage.
func (r *Recognizer) Progress() float64 { return r.progress }

// Last returns the most recent classification.
func (r *Recognizer) Last() Classification { return r.last }

// Trail returns the current trail points, oldest first.
func (r *Recognizer) Trail() []TrailPoint { return r.trail.Points() }

// Sparkles returns the sparkle pool.
func (r *Recognizer) Sparkles() *SparklePool { return r.sparkles }

// Opacity returns the overlay opacity. It drops from 1 to 0 over the outro
// after completion.
func (r *Recognizer) Opacity() float64 { return r.opacity }

// Config returns the recognizer tuning.
func (r *Recognizer) Config() GestureConfig { return r.cfg }

func (r *Recognizer) emit(ev Event) {
	if r.sink == nil {
		return
	}
	ev.At = r.sched.Now()
	r.sink.EmitEvent(ev)
}
