// Package ecs bridges evergreen's event stream into an ECS world.
//
// [NewDonburiSink] publishes every engine and recognizer event (state
// changes, transition completion, bursts, resizes, gesture detection) into a
// [Donburi] world as typed events. Subscribe to [SceneEventType] in your
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	eng, err := evergreen.NewEngine(cfg, renderer, evergreen.WithEventSink(sink))
//	rec := evergreen.NewRecognizer(cfg.Gesture, evergreen.WithGestureSink(sink))
//
// Events are queued until SceneEventType.ProcessEvents(world) runs, usually
// once per frame from an ECS system.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
