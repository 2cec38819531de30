package evergreen

import (
	"image"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// Option configures an Engine.
type Option func(*Engine)

// WithEventSink routes engine events to sink.
func WithEventSink(sink EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithPhotos supplies the photo card images. Missing entries draw as
// placeholder cards.
func WithPhotos(photos []image.Image) Option {
	return func(e *Engine) { e.photos = photos }
}

// WithRand replaces the engine's random source.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithScheduler shares an existing scheduler, typically with a Recognizer,
// so both run on one logical clock.
func WithScheduler(s *Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// Engine owns the particle scene: the groups, decorations, snow, fireworks
// and billboards, plus the state machine that morphs between shapes. It is
// not safe for concurrent use; drive it from one goroutine, once per frame.
type Engine struct {
	cfg    Config
	r      Renderer
	sched  *Scheduler
	rng    *rand.Rand
	sink   EventSink
	photos []image.Image

	desired   State
	displayed State
	tr        Transition
	handX     float64

	groups    [3]*ParticleGroup
	decor     [4]*Decoration
	snow      *Snow
	fireworks *FireworkPool
	bb        *billboardSet

	groupClouds  [3]PointCloud
	decorClouds  [4]PointCloud
	snowCloud    PointCloud
	fireworkView PointCloud

	resize        *ResizeDebouncer
	width, height int

	stats Stats

	sparkPos    []Vec3
	sparkSizes  []float64
	sparkColors []Color
}

// NewEngine builds the scene for cfg and creates its drawables on r. It
// returns ErrNoRenderer when r is nil.
func NewEngine(cfg Config, r Renderer, opts ...Option) (*Engine, error) {
	if r == nil {
		return nil, ErrNoRenderer
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:       cfg,
		r:         r,
		desired:   StateTree,
		displayed: StateTree,
		handX:     0.5,
	}
	e.tr.Duration = cfg.Scene.TransitionDuration
	e.tr.From, e.tr.To = StateTree, StateTree
	for _, opt := range opts {
		opt(e)
	}
	if e.sched == nil {
		e.sched = NewScheduler()
	}
	if e.rng == nil {
		e.rng = newRand(cfg.Seed)
	}

	sc := cfg.Scene
	counts := [3]int{sc.GoldCount, sc.RedCount, sc.GiftCount}
	for k := range e.groups {
		kind := Kind(k)
		g := NewKindGroup(kind, counts[k], sc, e.rng)
		e.groups[k] = g
		e.groupClouds[k] = r.NewPointCloud(PointCloudSpec{
			Name:     kind.String(),
			Capacity: g.Len(),
			Blend:    g.Blend(),
			Sprite:   kindSprite(kind),
			Layer:    1,
		})
	}

	e.decor = [4]*Decoration{
		NewSpiralLights(sc),
		NewAura(sc, e.rng),
		NewTwinkleStars(sc, e.rng),
		NewOrnaments(sc, e.rng),
	}
	decorSprites := [4]Sprite{SpriteBulb, SpriteGlow, SpriteStar, SpriteBauble}
	decorLayers := [4]int{5, 0, 3, 4}
	for i, d := range e.decor {
		e.decorClouds[i] = r.NewPointCloud(PointCloudSpec{
			Name:     d.Kind.String(),
			Capacity: len(d.Positions),
			Blend:    d.Blend(),
			Sprite:   decorSprites[i],
			Layer:    decorLayers[i],
		})
	}

	e.snow = NewSnow(sc.SnowCount, e.rng)
	e.snowCloud = r.NewPointCloud(PointCloudSpec{
		Name: "snow", Capacity: e.snow.Len(), Blend: BlendAdd,
		Sprite: SpriteSnowflake, Tint: ColorWhite.WithAlpha(0.95), Layer: 2,
	})

	e.fireworks = NewFireworkPool(sc.FireworkCapacity, e.rng)
	e.fireworkView = r.NewPointCloud(PointCloudSpec{
		Name: "fireworks", Capacity: e.fireworks.Cap(), Blend: BlendAdd,
		Sprite: SpriteGlow, Layer: 1,
	})

	e.bb = newBillboardSet(r, sc, e.photos)
	if n := len(e.photos); n < sc.PhotoCount {
		Logger().Warn("fewer photos than cards, using placeholders",
			slog.Int("photos", n), slog.Int("cards", sc.PhotoCount))
	}

	e.resize = NewResizeDebouncer(e.sched, sc.ResizeDebounce, e.applyResize)

	for _, g := range e.groups {
		e.stats.Particles += g.Len()
	}
	Logger().Info("engine created",
		slog.Int("particles", e.stats.Particles),
		slog.Int("snow", e.snow.Len()),
		slog.Int("photos", sc.PhotoCount))
	e.push()
	return e, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func kindSprite(k Kind) Sprite {
	if k == KindGift {
		return SpriteBauble
	}
	return SpriteGlow
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Scheduler returns the engine's logical clock.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// Now returns the engine's logical time.
func (e *Engine) Now() time.Duration { return e.sched.Now() }

// SetState sets the desired display state. The engine starts a transition
// toward it on the next Update.
func (e *Engine) SetState(s State) {
	if s > StatePhoto {
		return
	}
	e.desired = s
}

// State returns the desired display state.
func (e *Engine) State() State { return e.desired }

// Displayed returns the state the scene is showing or morphing toward.
func (e *Engine) Displayed() State { return e.displayed }

// Transition returns a copy of the current transition.
func (e *Engine) Transition() Transition { return e.tr }

// SetHandX sets the horizontal hand position in [0,1] that steers the
// rotation while exploded.
func (e *Engine) SetHandX(x float64) { e.handX = clamp01(x) }

// Selected returns the index of the photo card nearest the camera.
func (e *Engine) Selected() int { return e.bb.selected }

// Groups returns the particle groups in gold, red, gift order.
func (e *Engine) Groups() []*ParticleGroup { return e.groups[:] }

// Decorations returns the tree decoration layers.
func (e *Engine) Decorations() []*Decoration { return e.decor[:] }

// Fireworks returns the burst pool.
func (e *Engine) Fireworks() *FireworkPool { return e.fireworks }

// Snow returns the snow field.
func (e *Engine) Snow() *Snow { return e.snow }

// Photos returns the photo card states.
func (e *Engine) Photos() []BillboardState { return e.bb.photos }

// Stats returns the stats of the last frame.
func (e *Engine) Stats() Stats { return e.stats }

// Viewport returns the last applied viewport size.
func (e *Engine) Viewport() (w, h int) { return e.width, e.height }

// Burst emits a firework burst at pos immediately.
func (e *Engine) Burst(pos Vec3, color Color, count int) int {
	n := e.fireworks.Emit(pos, color, count)
	e.emit(Event{Type: EventBurst, Pos: pos, Color: color, Count: n})
	return n
}

// Resize requests a new viewport size. The size is applied once no further
// requests arrive within the configured debounce.
func (e *Engine) Resize(w, h int) {
	e.resize.Request(w, h)
}

func (e *Engine) applyResize(w, h int) {
	e.width, e.height = w, h
	if vs, ok := e.r.(ViewportSetter); ok {
		vs.SetViewport(w, h)
	}
	e.emit(Event{Type: EventResize, Width: w, Height: h})
}

// Update advances the scene by dt. The order within a frame is fixed:
// scheduled tasks, state change detection, transition progress, visibility,
// morphing and styling, effects, billboards, and finally the renderer push.
func (e *Engine) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	e.sched.Advance(dt)
	now := e.sched.Now()
	t := now.Seconds()
	frames := dt.Seconds() * 60

	if e.desired != e.displayed {
		from := e.displayed
		e.tr.Begin(from, e.desired, now)
		e.displayed = e.desired
		Logger().Info("state change", slog.String("from", from.String()), slog.String("to", e.desired.String()))
		e.emit(Event{Type: EventStateChange, From: from, To: e.desired})
		e.fireTransitionBursts(from, e.desired)
	}

	if e.tr.Update(now) {
		e.emit(Event{Type: EventTransitionDone, From: e.tr.From, To: e.tr.To})
	}

	photo := e.displayed == StatePhoto
	for _, g := range e.groups {
		g.Visible = !photo
	}
	e.snow.Visible = !photo
	e.fireworks.Visible = !photo
	tree := e.displayed == StateTree
	for _, d := range e.decor {
		d.Visible = tree
	}

	start := time.Now()
	if !photo {
		speed := e.cfg.Scene.MorphSpeed * e.tr.SpeedFactor()
		step := 1 - math.Pow(1-speed, frames)
		in := StyleInput{
			Time:         t,
			Frames:       frames,
			HandRotation: (e.handX - 0.5) * e.cfg.Scene.HandRotationRange,
		}
		for _, g := range e.groups {
			g.Retarget(e.displayed, step)
			g.Style(e.displayed, in)
		}
	}
	mid := time.Now()
	if !photo {
		e.fireworks.Update(dt.Seconds())
		e.snow.Update(t, frames)
		if tree {
			rot := e.groups[KindGold].Rotation
			for _, d := range e.decor {
				d.Update(t, e.rng)
				d.Rotation = rot
			}
		}
	}

	e.bb.update(fadeInput{
		state:   e.displayed,
		tr:      &e.tr,
		time:    t,
		frames:  frames,
		goldRot: e.groups[KindGold].Rotation,
		orbit:   e.cfg.Scene.PhotoOrbitRadius,
	})
	effects := time.Now()

	e.push()

	if e.cfg.Debug {
		e.stats.Frame++
		e.stats.MorphTime = mid.Sub(start)
		e.stats.EffectTime = effects.Sub(mid)
		e.stats.PushTime = time.Since(effects)
		e.stats.Sparks = e.fireworks.AliveCount()
		e.stats.Snowflakes = e.snow.Len()
		e.stats.Pending = e.sched.Pending()
		e.debugLog()
	}
}

// push copies the current state into the renderer's objects.
func (e *Engine) push() {
	for i, g := range e.groups {
		c := e.groupClouds[i]
		c.SetVisible(g.Visible)
		if !g.Visible {
			continue
		}
		c.SetPoints(g.Positions, g.Sizes, g.Colors)
		c.SetTransform(g.Rotation, g.Scale)
		c.SetOpacity(g.Opacity)
	}
	for i, d := range e.decor {
		c := e.decorClouds[i]
		c.SetVisible(d.Visible)
		if !d.Visible {
			continue
		}
		c.SetPoints(d.Positions, d.Sizes, d.Colors)
		c.SetTransform(d.Rotation, 1)
		c.SetOpacity(d.Opacity)
	}

	e.snowCloud.SetVisible(e.snow.Visible)
	if e.snow.Visible {
		e.snowCloud.SetPoints(e.snow.Positions, e.snow.Sizes, e.snow.Colors)
	}

	e.fireworkView.SetVisible(e.fireworks.Visible)
	if e.fireworks.Visible {
		e.sparkPos, e.sparkSizes, e.sparkColors = e.fireworks.Buffers(
			e.sparkPos[:0], e.sparkSizes[:0], e.sparkColors[:0])
		e.fireworkView.SetPoints(e.sparkPos, e.sparkSizes, e.sparkColors)
	}

	e.bb.push()
}

func (e *Engine) emit(ev Event) {
	if e.sink == nil {
		return
	}
	ev.At = e.sched.Now()
	e.sink.EmitEvent(ev)
}
