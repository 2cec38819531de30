package evergreen

import (
	"container/heap"
	"time"
)

// Scheduler is a logical clock with a queue of delayed tasks. The owner
// advances it once per frame; tasks whose due time has been reached run
// synchronously inside Advance, ordered by due time and then by the order
// they were scheduled. There is no cancellation: a task that should no
// longer apply checks its own guard when it runs.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
}

type scheduledTask struct {
	due time.Duration
	seq uint64
	fn  func()
}

type taskQueue []scheduledTask

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}
func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *taskQueue) Push(x any)   { *q = append(*q, x.(scheduledTask)) }
func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = scheduledTask{}
	*q = old[:n-1]
	return t
}

// NewScheduler creates a scheduler whose clock starts at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current logical time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock has advanced by d. A non-positive
// d runs fn on the next Advance call.
func (s *Scheduler) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	s.seq++
	heap.Push(&s.queue, scheduledTask{due: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by dt and runs every task that has become
// due. Tasks scheduled by a running task with a due time inside the window
// also run before Advance returns.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	for len(s.queue) > 0 && s.queue[0].due <= s.now {
		t := heap.Pop(&s.queue).(scheduledTask)
		t.fn()
	}
}

// Pending returns the number of tasks not yet run.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}
