package evergreen

import (
	"log/slog"
	"time"
)

// Stats holds per-frame timing and entity counts. Only populated when
// Config.Debug is true.
type Stats struct {
	Frame      uint64
	MorphTime  time.Duration
	EffectTime time.Duration
	PushTime   time.Duration
	Particles  int
	Sparks     int
	Snowflakes int
	Pending    int
}

// Total returns the summed phase time.
func (s Stats) Total() time.Duration {
	return s.MorphTime + s.EffectTime + s.PushTime
}

// debugLogEvery throttles the per-frame stats line to once a second at 60 Hz.
const debugLogEvery = 60

func (e *Engine) debugLog() {
	if !e.cfg.Debug || e.stats.Frame%debugLogEvery != 0 {
		return
	}
	s := e.stats
	Logger().Debug("frame",
		slog.Uint64("frame", s.Frame),
		slog.Duration("morph", s.MorphTime),
		slog.Duration("effects", s.EffectTime),
		slog.Duration("push", s.PushTime),
		slog.Duration("total", s.Total()),
		slog.Int("particles", s.Particles),
		slog.Int("sparks", s.Sparks),
		slog.Int("snow", s.Snowflakes),
		slog.Int("pending", s.Pending),
	)
}
