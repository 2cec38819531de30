// Package evergreen animates a particle Christmas tree that morphs between
// a tree, a heart, an exploded photo orbit and a single photo, plus a
// "draw a V to unlock" gesture recognizer with its 2D overlay.
//
// The package draws nothing itself. Scene objects are pushed each frame to a
// [Renderer] (point clouds and billboards) and the overlay is drawn through a
// [Canvas]. Backends live in subpackages: ebitenview opens a window with
// [Ebitengine], termview draws into a terminal with tcell, and ggcanvas
// implements [Canvas] on a gogpu/gg software context and rasterizes a
// [HeadlessRenderer] frame to PNG. chime turns engine and gesture events
// into bell tones with beep.
//
// # Quick start
//
//	cfg := evergreen.DefaultConfig()
//	eng, err := evergreen.NewEngine(cfg, renderer)
//	if err != nil {
//		log.Fatal(err)
//	}
//	rec := evergreen.NewRecognizer(cfg.Gesture,
//		evergreen.WithGestureScheduler(eng.Scheduler()),
//		evergreen.OnComplete(func() { eng.SetState(evergreen.StateTree) }),
//	)
//
//	// every frame:
//	rec.AddPoint(x, y) // normalized tracker position, when one arrives
//	eng.Update(dt)
//	rec.Update(dt)
//
// # Time
//
// The simulation never reads the wall clock. [Engine.Update] advances a
// [Scheduler], a logical clock with a delayed-task queue, and staggered
// effects such as the three red bursts of TREE→EXPLODE are queued on it.
// Tests step the clock by hand and get the same frames every run.
//
// # Configuration
//
// [Config] is plain data with YAML tags. [LoadConfig] decodes a file over
// [DefaultConfig] and rejects unknown keys.
//
// # Logging
//
// The package is silent by default. Install a [log/slog] logger with
// [SetLogger] to see lifecycle and debug output.
//
// [Ebitengine]: https://ebitengine.org
package evergreen
