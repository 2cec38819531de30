package chime

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// envelope fades a stream in over attack samples and exponentially out
// after that, the way a struck bell decays.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	total   int
	falloff float64
}

func newEnvelope(s beep.Streamer, d, attack time.Duration, rate beep.SampleRate) *envelope {
	total := rate.N(d)
	return &envelope{
		s:       s,
		attack:  rate.N(attack),
		total:   total,
		falloff: 5 / float64(max(total, 1)),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := range n {
		if e.pos >= e.total {
			return i, false
		}
		vol := math.Exp(-float64(e.pos-e.attack) * e.falloff)
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// bell is a sine at freq with an octave overtone, shaped by a bell
// envelope.
func bell(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	fund, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	over, err := generators.SineTone(rate, freq*2)
	if err != nil {
		return nil, err
	}
	n := rate.N(d)
	return newEnvelope(beep.Mix(
		volume(beep.Take(n, fund), 0.7),
		volume(beep.Take(n, over), 0.3),
	), d, 5*time.Millisecond, rate), nil
}

// volume scales s linearly. Zero or less is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// arpeggio plays bells one after another, step apart.
func arpeggio(rate beep.SampleRate, freqs []float64, step, ring time.Duration) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(freqs))
	for i, f := range freqs {
		b, err := bell(rate, f, ring)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Seq(beep.Silence(rate.N(step*time.Duration(i))), b))
	}
	total := rate.N(step*time.Duration(len(freqs)-1)) + rate.N(ring)
	return beep.Take(total, beep.Mix(parts...)), nil
}
