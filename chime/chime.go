// Package chime plays synthesized bell tones for evergreen events. A
// Player is an evergreen.EventSink; attach it with evergreen.WithEventSink
// or the recognizer's WithGestureSink.
package chime

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/evergreen"
)

// DefaultSampleRate is the speaker rate used by NewSpeaker.
const DefaultSampleRate = beep.SampleRate(44100)

// Pitches in Hz.
const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteA5 = 880.00
	noteC6 = 1046.50
)

var statePitch = map[evergreen.State]float64{
	evergreen.StateTree:    noteC5,
	evergreen.StateHeart:   noteE5,
	evergreen.StateExplode: noteG5,
	evergreen.StatePhoto:   noteA5,
}

// Player turns events into sounds and hands them to a play function. It is
// safe for concurrent use.
type Player struct {
	rate   beep.SampleRate
	volume float64
	play   func(beep.Streamer)

	mu        sync.Mutex
	lastBurst time.Duration
	bursts    int
}

var _ evergreen.EventSink = (*Player)(nil)

// New returns a player that passes every sound to play. play must not
// block.
func New(rate beep.SampleRate, play func(beep.Streamer)) *Player {
	return &Player{rate: rate, volume: 0.5, play: play}
}

// NewSpeaker initializes the system speaker and returns a player on it.
func NewSpeaker() (*Player, error) {
	if err := speaker.Init(DefaultSampleRate, DefaultSampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("chime: init speaker: %w", err)
	}
	return New(DefaultSampleRate, func(s beep.Streamer) { speaker.Play(s) }), nil
}

// SetVolume sets the linear output volume in [0,1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = min(max(v, 0), 1)
	p.mu.Unlock()
}

// EmitEvent implements evergreen.EventSink.
func (p *Player) EmitEvent(ev evergreen.Event) {
	s, err := p.Sound(ev)
	if err != nil {
		evergreen.Logger().Warn("chime", slog.String("event", ev.Type.String()), slog.Any("err", err))
		return
	}
	if s != nil && p.play != nil {
		p.play(s)
	}
}

// Sound returns the sound for ev, or nil for silent events. Bursts landing
// within 150ms of each other rise in pitch.
func (p *Player) Sound(ev evergreen.Event) (beep.Streamer, error) {
	p.mu.Lock()
	vol := p.volume
	var step int
	if ev.Type == evergreen.EventBurst {
		if p.bursts > 0 && ev.At-p.lastBurst <= 150*time.Millisecond {
			step = p.bursts
			p.bursts++
		} else {
			p.bursts = 1
		}
		p.lastBurst = ev.At
	}
	p.mu.Unlock()

	var (
		s   beep.Streamer
		err error
	)
	switch ev.Type {
	case evergreen.EventStateChange:
		s, err = bell(p.rate, statePitch[ev.To], 600*time.Millisecond)
	case evergreen.EventBurst:
		// Bigger bursts ring lower.
		f := noteC6 * math.Pow(2, float64(step)/12) * math.Pow(0.5, float64(ev.Count)/200)
		s, err = bell(p.rate, f, 300*time.Millisecond)
	case evergreen.EventGestureDetected:
		s, err = arpeggio(p.rate, []float64{noteC5, noteE5, noteG5}, 80*time.Millisecond, 400*time.Millisecond)
	case evergreen.EventGestureComplete:
		s, err = arpeggio(p.rate, []float64{noteC5, noteE5, noteG5, noteC6}, 0, time.Second)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return volume(s, vol), nil
}
