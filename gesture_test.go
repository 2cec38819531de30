package evergreen

import (
	"testing"
	"time"
)

// feedV traces a V of n points spread evenly over d, advancing the
// recognizer's clock between points.
func feedV(r *Recognizer, n int, d time.Duration) {
	step := d / time.Duration(n-1)
	for i, p := range TracePoints(vWaypoints, n) {
		if i > 0 {
			r.Update(step)
		}
		r.AddPoint(p.X, p.Y)
	}
}

func newTestRecognizer(calls *int, log *EventLog) *Recognizer {
	r := NewRecognizer(DefaultConfig().Gesture,
		WithGestureRand(testRand()),
		WithGestureSink(log),
		OnComplete(func() { *calls++ }),
	)
	r.SetViewport(800, 600)
	return r
}

func TestRecognizerDetectsVAndCompletesOnce(t *testing.T) {
	var calls int
	log := &EventLog{}
	r := newTestRecognizer(&calls, log)

	if r.State() != GestureIdle {
		t.Fatalf("initial state = %v", r.State())
	}
	feedV(r, 20, 800*time.Millisecond)

	if !r.Detected() || r.State() != GestureDetected {
		t.Fatalf("V not detected, last = %+v", r.Last())
	}
	if r.Last().Confidence < r.Config().Threshold {
		t.Errorf("Confidence = %v, want >= %v", r.Last().Confidence, r.Config().Threshold)
	}
	if log.Count(EventGestureDetected) != 1 {
		t.Errorf("detected events = %d, want 1", log.Count(EventGestureDetected))
	}
	if calls != 0 {
		t.Fatalf("callback ran before the completion delay")
	}

	r.Update(800 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("calls = %d after completion delay, want 1", calls)
	}
	if !r.Completed() || log.Count(EventGestureComplete) != 1 {
		t.Error("completion not recorded")
	}

	// Detection is sticky: more strokes do not fire again.
	feedV(r, 20, 800*time.Millisecond)
	r.Update(2 * time.Second)
	if calls != 1 {
		t.Errorf("calls = %d after further strokes, want 1", calls)
	}
	if r.Opacity() > 1e-6 {
		t.Errorf("Opacity = %v after the outro, want 0", r.Opacity())
	}

	r.Reset()
	if r.State() != GestureIdle || r.Detected() || r.Progress() != 0 || r.Opacity() != 1 {
		t.Fatalf("Reset left state %v detected=%v progress=%v opacity=%v",
			r.State(), r.Detected(), r.Progress(), r.Opacity())
	}
	if r.Sparkles().Len() != 0 {
		t.Errorf("sparkles after Reset = %d", r.Sparkles().Len())
	}

	feedV(r, 20, 800*time.Millisecond)
	r.Update(time.Second)
	if calls != 2 {
		t.Errorf("calls = %d after second V, want 2", calls)
	}
}

func TestRecognizerResetDropsPendingCompletion(t *testing.T) {
	var calls int
	r := newTestRecognizer(&calls, &EventLog{})
	feedV(r, 20, 800*time.Millisecond)
	if !r.Detected() {
		t.Fatal("V not detected")
	}
	r.Reset()
	r.Update(2 * time.Second)
	if calls != 0 {
		t.Errorf("calls = %d, completion from before Reset should be dropped", calls)
	}
}

func TestRecognizerRejectsLine(t *testing.T) {
	var calls int
	r := newTestRecognizer(&calls, &EventLog{})
	step := 40 * time.Millisecond
	for i, p := range TracePoints([]Vec2{{0.1, 0.5}, {0.9, 0.5}}, 20) {
		if i > 0 {
			r.Update(step)
		}
		r.AddPoint(p.X, p.Y)
	}
	if r.Detected() {
		t.Fatal("line detected as a V")
	}
	if r.State() != GestureCollecting {
		t.Errorf("State = %v, want COLLECTING", r.State())
	}
	if r.Progress() > 30 {
		t.Errorf("Progress = %v, want low", r.Progress())
	}
	r.Update(2 * time.Second)
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestRecognizerCooldown(t *testing.T) {
	cfg := DefaultConfig().Gesture
	cfg.Cooldown = time.Second
	r := NewRecognizer(cfg, WithGestureRand(testRand()))

	step := 10 * time.Millisecond
	for i, p := range TracePoints([]Vec2{{0.1, 0.5}, {0.9, 0.5}}, cfg.MinPoints) {
		if i > 0 {
			r.Update(step)
		}
		r.AddPoint(p.X, p.Y)
	}
	first := r.Last()
	if first.Reason != ReasonDropRise {
		t.Fatalf("first attempt = %+v", first)
	}

	// Inside the cooldown no further attempt is made.
	for _, p := range TracePoints(vWaypoints, 20) {
		r.Update(step)
		r.AddPoint(p.X, p.Y)
	}
	if r.Detected() || r.Last() != first {
		t.Errorf("attempt made inside cooldown: %+v", r.Last())
	}
}

func TestRecognizerSparklesBounded(t *testing.T) {
	var calls int
	r := newTestRecognizer(&calls, &EventLog{})
	limit := r.Config().SparkleCount * 4
	for range 5 {
		feedV(r, 20, 800*time.Millisecond)
		if r.Sparkles().Len() > limit {
			t.Fatalf("sparkles = %d, cap %d", r.Sparkles().Len(), limit)
		}
		r.Update(100 * time.Millisecond)
		if r.Sparkles().Len() > limit {
			t.Fatalf("sparkles = %d after fireworks, cap %d", r.Sparkles().Len(), limit)
		}
		r.Reset()
	}
}

func TestRecognizerSharedScheduler(t *testing.T) {
	sched := NewScheduler()
	var calls int
	r := NewRecognizer(DefaultConfig().Gesture,
		WithGestureScheduler(sched),
		WithGestureRand(testRand()),
		OnComplete(func() { calls++ }),
	)
	step := 800 * time.Millisecond / 19
	for i, p := range TracePoints(vWaypoints, 20) {
		if i > 0 {
			sched.Advance(step)
		}
		r.AddPoint(p.X, p.Y)
	}
	// The recognizer does not advance a clock it does not own.
	r.Update(5 * time.Second)
	if calls != 0 {
		t.Fatal("recognizer advanced a shared scheduler")
	}
	sched.Advance(time.Second)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
