package ecs

import (
	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for evergreen scene and gesture
// events. Subscribe to this in your ECS systems to react to state changes,
// bursts and V-gesture detection.
var SceneEventType = events.NewEventType[evergreen.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) evergreen.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event evergreen.Event) {
	SceneEventType.Publish(s.world, event)
}
