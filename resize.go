package evergreen

import "time"

// ResizeDebouncer collapses a burst of viewport size changes into a single
// apply call that fires once the sizes have been quiet for the delay.
type ResizeDebouncer struct {
	sched *Scheduler
	delay time.Duration
	apply func(w, h int)
	gen   uint64
}

// NewResizeDebouncer creates a debouncer driven by sched.
func NewResizeDebouncer(sched *Scheduler, delay time.Duration, apply func(w, h int)) *ResizeDebouncer {
	return &ResizeDebouncer{sched: sched, delay: delay, apply: apply}
}

// Request records a new viewport size. Earlier pending requests are
// superseded.
func (d *ResizeDebouncer) Request(w, h int) {
	d.gen++
	gen := d.gen
	d.sched.After(d.delay, func() {
		if gen != d.gen || d.apply == nil {
			return
		}
		d.apply(w, h)
	})
}
