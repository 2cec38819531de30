package ebitenview

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/evergreen"
	"github.com/phanxgames/evergreen/ggcanvas"
)

// tick is the fixed update step at Ebitengine's default 60 TPS.
const tick = time.Second / 60

var clearColor = color.RGBA{0x05, 0x05, 0x0f, 0xff}

// Options configures a Game.
type Options struct {
	Width, Height int
	Photos        []image.Image
	// Script, when set, replaces mouse input with scripted tracker points.
	Script *evergreen.Script
	// ScreenshotDir receives screenshots requested by the script or the
	// P key. Defaults to "screenshots".
	ScreenshotDir string
	// ShowStats draws the FPS and scene counters.
	ShowStats bool
	Sink      evergreen.EventSink
}

// Game runs the greeting in an Ebitengine window. The scene plays behind
// the gesture overlay; drawing a V with the left mouse button unlocks it.
// Once unlocked, the mouse x steers the rotation, keys 1 to 4 pick a state
// and R locks the overlay again.
type Game struct {
	eng     *evergreen.Engine
	rec     *evergreen.Recognizer
	overlay *evergreen.Overlay
	view    *Renderer
	canvas  *ggcanvas.Canvas
	ovImg   *ebiten.Image
	rgba    *image.RGBA
	script  *evergreen.Script
	shots   screenshots
	stats   *statsWidget
	touches []ebiten.TouchID

	unlocked bool
	w, h     int
}

// NewGame builds the engine, recognizer and overlay for cfg.
func NewGame(cfg evergreen.Config, opts Options) (*Game, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.New("ebitenview: window size must be positive")
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	g := &Game{
		view:   NewRenderer(opts.Width, opts.Height),
		script: opts.Script,
		shots:  screenshots{dir: opts.ScreenshotDir},
		w:      opts.Width,
		h:      opts.Height,
	}
	var sink evergreen.EventSink = evergreen.EventSinkFunc(g.onEvent)
	if opts.Sink != nil {
		sink = evergreen.MultiSink{sink, opts.Sink}
	}

	eng, err := evergreen.NewEngine(cfg, g.view,
		evergreen.WithPhotos(opts.Photos),
		evergreen.WithEventSink(sink),
	)
	if err != nil {
		return nil, err
	}
	g.eng = eng
	g.rec = evergreen.NewRecognizer(cfg.Gesture,
		evergreen.WithGestureScheduler(eng.Scheduler()),
		evergreen.WithGestureSink(sink),
		evergreen.OnComplete(g.unlock),
	)
	g.overlay = evergreen.NewOverlay(g.rec, float64(opts.Width), float64(opts.Height), nil)

	g.canvas, err = ggcanvas.New(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	g.ovImg = ebiten.NewImage(opts.Width, opts.Height)
	if opts.ShowStats {
		g.stats = newStatsWidget()
	}
	return g, nil
}

// Engine returns the scene engine.
func (g *Game) Engine() *evergreen.Engine { return g.eng }

// Recognizer returns the gesture recognizer.
func (g *Game) Recognizer() *evergreen.Recognizer { return g.rec }

// Unlocked reports whether the gesture has been completed.
func (g *Game) Unlocked() bool { return g.unlocked }

func (g *Game) unlock() {
	g.unlocked = true
	evergreen.Logger().Info("greeting unlocked")
}

func (g *Game) onEvent(ev evergreen.Event) {
	if ev.Type == evergreen.EventGestureReset {
		g.unlocked = false
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.script != nil {
		g.script.Step(evergreen.ScriptHost{
			Recognizer: g.rec,
			Engine:     g.eng,
			Screenshot: g.shots.request,
		})
	} else {
		g.handleInput()
	}

	g.eng.Update(tick)
	g.rec.Update(tick)
	g.overlay.Update(tick)
	if g.stats != nil {
		g.stats.update(tick.Seconds(), g.eng)
	}
	return nil
}

// pointer returns the tracker position in [0,1] and whether it is pressed.
// The first active touch wins over the mouse.
func (g *Game) pointer() (x, y float64, down bool) {
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		tx, ty := ebiten.TouchPosition(g.touches[0])
		return float64(tx) / float64(g.w), float64(ty) / float64(g.h), true
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx) / float64(g.w), float64(my) / float64(g.h), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (g *Game) handleInput() {
	x, y, down := g.pointer()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.shots.request(g.eng.State().String())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.rec.Reset()
		g.eng.SetState(evergreen.StateTree)
		return
	}
	if !g.unlocked {
		if down {
			g.rec.AddPoint(x, y)
		}
		return
	}

	g.eng.SetHandX(x)
	keys := [...]struct {
		key   ebiten.Key
		state evergreen.State
	}{
		{ebiten.Key1, evergreen.StateTree},
		{ebiten.Key2, evergreen.StateHeart},
		{ebiten.Key3, evergreen.StateExplode},
		{ebiten.Key4, evergreen.StatePhoto},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			g.eng.SetState(k.state)
		}
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	g.view.Draw(screen)
	g.drawOverlay(screen)
	if g.stats != nil {
		g.stats.draw(screen)
	}
	g.shots.flush(screen)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	if g.overlay.Hidden() {
		return
	}
	if err := g.overlay.Draw(g.canvas); err != nil {
		evergreen.Logger().Error("overlay draw", slog.Any("err", err))
		return
	}
	g.rgba = toRGBA(g.canvas.Image(), g.rgba)
	g.ovImg.WritePixels(g.rgba.Pix)

	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleAlpha(float32(g.overlay.Opacity()))
	screen.DrawImage(g.ovImg, &op)
}

// toRGBA returns img as *image.RGBA, copying into dst when img has another
// type.
func toRGBA(img image.Image, dst *image.RGBA) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	if dst == nil || dst.Bounds() != img.Bounds() {
		dst = image.NewRGBA(img.Bounds())
	}
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

// Layout implements ebiten.Game. A new outside size resizes the scene
// viewport after the debounce and the overlay immediately.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		if err := g.canvas.Resize(outsideWidth, outsideHeight); err != nil {
			evergreen.Logger().Warn("overlay resize", slog.Any("err", err))
			return g.w, g.h
		}
		g.w, g.h = outsideWidth, outsideHeight
		g.eng.Resize(g.w, g.h)
		g.overlay.Resize(float64(g.w), float64(g.h))
		g.ovImg.Deallocate()
		g.ovImg = ebiten.NewImage(g.w, g.h)
	}
	return g.w, g.h
}

// Run opens a window and blocks until it is closed.
func Run(title string, g *Game) error {
	ebiten.SetWindowSize(g.w, g.h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
