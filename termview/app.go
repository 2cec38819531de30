package termview

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/evergreen"
)

const frame = time.Second / 60

// App runs the greeting on a tcell screen. The left mouse button traces
// the gesture; once unlocked the mouse x steers the rotation, keys 1 to 4
// pick a state, r locks again and q or Esc quits.
type App struct {
	screen  tcell.Screen
	eng     *evergreen.Engine
	rec     *evergreen.Recognizer
	overlay *evergreen.Overlay
	view    *Renderer
	canvas  *Canvas
	script  *evergreen.Script

	unlocked bool
	quit     bool
	cols     int
	rows     int
}

// NewApp builds the scene on screen, which must already be initialized.
func NewApp(screen tcell.Screen, cfg evergreen.Config, sink evergreen.EventSink) (*App, error) {
	cols, rows := screen.Size()
	a := &App{
		screen: screen,
		view:   NewRenderer(cols, rows),
		canvas: NewCanvas(cols, rows),
		cols:   cols,
		rows:   rows,
	}
	var s evergreen.EventSink = evergreen.EventSinkFunc(a.onEvent)
	if sink != nil {
		s = evergreen.MultiSink{s, sink}
	}
	eng, err := evergreen.NewEngine(cfg, a.view, evergreen.WithEventSink(s))
	if err != nil {
		return nil, err
	}
	a.eng = eng
	a.rec = evergreen.NewRecognizer(cfg.Gesture,
		evergreen.WithGestureScheduler(eng.Scheduler()),
		evergreen.WithGestureSink(s),
		evergreen.OnComplete(func() { a.unlocked = true }),
	)
	w, h := a.canvas.Size()
	a.overlay = evergreen.NewOverlay(a.rec, w, h, nil)
	screen.EnableMouse()
	return a, nil
}

// SetScript replaces mouse input with a tracker script.
func (a *App) SetScript(s *evergreen.Script) { a.script = s }

// Engine returns the scene engine.
func (a *App) Engine() *evergreen.Engine { return a.eng }

// Recognizer returns the gesture recognizer.
func (a *App) Recognizer() *evergreen.Recognizer { return a.rec }

// Unlocked reports whether the gesture has been completed.
func (a *App) Unlocked() bool { return a.unlocked }

func (a *App) onEvent(ev evergreen.Event) {
	if ev.Type == evergreen.EventGestureReset {
		a.unlocked = false
	}
}

// HandleEvent applies one tcell event. It reports false once the app
// should quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.resize(ev.Size())
		a.screen.Sync()
	}
	return !a.quit
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		a.quit = true
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case 'q':
		a.quit = true
	case 'r':
		a.rec.Reset()
		a.eng.SetState(evergreen.StateTree)
	case '1', '2', '3', '4':
		if a.unlocked {
			a.eng.SetState(evergreen.State(ev.Rune() - '1'))
		}
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	nx := (float64(x) + 0.5) / float64(max(a.cols, 1))
	ny := (float64(y) + 0.5) / float64(max(a.rows, 1))
	if a.unlocked {
		a.eng.SetHandX(nx)
		return
	}
	if ev.Buttons()&tcell.Button1 != 0 {
		a.rec.AddPoint(nx, ny)
	}
}

func (a *App) resize(cols, rows int) {
	if cols == a.cols && rows == a.rows {
		return
	}
	a.cols, a.rows = cols, rows
	a.canvas.Resize(cols, rows)
	w, h := a.canvas.Size()
	a.overlay.Resize(w, h)
	a.eng.Resize(cols, rows)
}

// Step advances one frame and draws it.
func (a *App) Step() {
	if a.script != nil {
		a.script.Step(evergreen.ScriptHost{Recognizer: a.rec, Engine: a.eng})
	}
	a.eng.Update(frame)
	a.rec.Update(frame)
	a.overlay.Update(frame)
	a.draw()
}

func (a *App) draw() {
	a.view.Render()
	a.screen.Clear()
	a.view.Grid().Flush(a.screen, true)
	if !a.overlay.Hidden() {
		if err := a.overlay.Draw(a.canvas); err != nil {
			evergreen.Logger().Error("overlay draw", slog.Any("err", err))
		}
		a.canvas.Grid().Flush(a.screen, false)
	}
	a.screen.Show()
}

// Run polls events and steps at 60 Hz until ctx is done or the user quits.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Step()
		}
	}
}
