package ebitenview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/evergreen"
)

// statsRefresh is how often the stats widget redraws, in seconds.
const statsRefresh = 0.5

// statsWidget shows FPS, TPS and scene counters in the top-left corner. The
// text is redrawn twice a second onto its own image.
type statsWidget struct {
	img   *ebiten.Image
	since float64
}

func newStatsWidget() *statsWidget {
	return &statsWidget{img: ebiten.NewImage(180, 64), since: statsRefresh}
}

func (w *statsWidget) update(dt float64, eng *evergreen.Engine) {
	w.since += dt
	if w.since < statsRefresh {
		return
	}
	w.since = 0
	w.img.Clear()
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, statsText(ebiten.ActualFPS(), ebiten.ActualTPS(), eng.State(), eng.Stats()))
}

func (w *statsWidget) draw(screen *ebiten.Image) {
	screen.DrawImage(w.img, nil)
}

func statsText(fps, tps float64, state evergreen.State, s evergreen.Stats) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nState: %s\nParticles: %d  Sparks: %d",
		fps, tps, state, s.Particles, s.Sparks)
}
