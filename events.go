package evergreen

import (
	"fmt"
	"time"
)

// EventType identifies the kind of scene or gesture event.
type EventType uint8

const (
	EventStateChange      EventType = iota // a transition began
	EventTransitionDone                    // the displayed state settled
	EventBurst                             // a firework burst was emitted
	EventResize                            // a debounced viewport size was applied
	EventGestureDetected                   // the recognizer accepted a V
	EventGestureComplete                   // the completion delay elapsed
	EventGestureReset                      // the recognizer was reset
)

var eventTypeNames = [...]string{
	"state-change",
	"transition-done",
	"burst",
	"resize",
	"gesture-detected",
	"gesture-complete",
	"gesture-reset",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", t)
}

// Event carries data for an engine or recognizer event. Fields not relevant
// to Type are zero.
type Event struct {
	Type EventType
	// At is the logical time the event happened.
	At time.Duration

	From State
	To   State

	// Burst fields. Count is the number of sparks actually emitted.
	Pos   Vec3
	Color Color
	Count int

	Width, Height int

	Confidence float64
}

// EventSink receives events as they happen. Implementations must not block;
// they run inside the frame update.
type EventSink interface {
	EmitEvent(event Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event Event) { f(event) }

// MultiSink fans events out to several sinks in order.
type MultiSink []EventSink

// EmitEvent forwards event to every non-nil sink.
func (m MultiSink) EmitEvent(event Event) {
	for _, s := range m {
		if s != nil {
			s.EmitEvent(event)
		}
	}
}

// EventLog is an EventSink that records every event. Useful in tests and
// tools.
type EventLog struct {
	Events []Event
}

// EmitEvent appends event.
func (l *EventLog) EmitEvent(event Event) {
	l.Events = append(l.Events, event)
}

// Count returns how many recorded events have type t.
func (l *EventLog) Count(t EventType) int {
	n := 0
	for _, e := range l.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}
