package evergreen

import (
	"encoding/json"
	"errors"
	"fmt"
)

// scriptStep is a single action in a tracker script.
type scriptStep struct {
	Action string       `json:"action"`
	Label  string       `json:"label,omitempty"`
	X      float64      `json:"x,omitempty"`
	Y      float64      `json:"y,omitempty"`
	Points [][2]float64 `json:"points,omitempty"`
	Frames int          `json:"frames,omitempty"`
	State  string       `json:"state,omitempty"`
}

// scriptFile is the top-level JSON structure of a tracker script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptHost is what a Script drives. Nil fields are skipped.
type ScriptHost struct {
	Recognizer *Recognizer
	Engine     *Engine
	// Screenshot is called for "screenshot" steps.
	Screenshot func(label string)
}

// Script feeds scripted tracker points and scene commands into a host, one
// frame at a time, so a run can be reproduced without a camera.
//
// Actions:
//
//	{"action":"point","x":0.5,"y":0.5}
//	{"action":"trace","points":[[0.1,0.2],[0.5,0.6],[0.9,0.2]],"frames":20}
//	{"action":"wait","frames":30}
//	{"action":"state","state":"HEART"}
//	{"action":"hand","x":0.3}
//	{"action":"reset"}
//	{"action":"screenshot","label":"unlocked"}
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	queue     []Vec2
	done      bool
}

// LoadScript parses a JSON tracker script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("evergreen: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("evergreen: parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "point", "wait", "hand", "reset", "screenshot":
		case "trace":
			if len(st.Points) < 2 {
				return nil, fmt.Errorf("evergreen: parse script: step %d: trace needs at least 2 points", i)
			}
		case "state":
			if _, err := ParseState(st.State); err != nil {
				return nil, fmt.Errorf("evergreen: parse script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("evergreen: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has run and every queued point has been
// delivered.
func (s *Script) Done() bool {
	return s.done
}

// Step advances the script by one frame. At most one queued tracker point
// is delivered per frame; new steps start only once the queue is empty.
func (s *Script) Step(h ScriptHost) {
	if s.done {
		return
	}
	if len(s.queue) > 0 {
		p := s.queue[0]
		s.queue = s.queue[1:]
		if h.Recognizer != nil {
			h.Recognizer.AddPoint(p.X, p.Y)
		}
		s.checkDone()
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		s.checkDone()
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "point":
		if h.Recognizer != nil {
			h.Recognizer.AddPoint(st.X, st.Y)
		}
	case "trace":
		way := make([]Vec2, len(st.Points))
		for i, p := range st.Points {
			way[i] = Vec2{p[0], p[1]}
		}
		n := st.Frames
		if n < len(way) {
			n = len(way)
		}
		pts := TracePoints(way, n)
		if h.Recognizer != nil {
			h.Recognizer.AddPoint(pts[0].X, pts[0].Y)
		}
		s.queue = append(s.queue, pts[1:]...)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "state":
		if h.Engine != nil {
			state, _ := ParseState(st.State)
			h.Engine.SetState(state)
		}
	case "hand":
		if h.Engine != nil {
			h.Engine.SetHandX(st.X)
		}
	case "reset":
		if h.Recognizer != nil {
			h.Recognizer.Reset()
		}
	case "screenshot":
		if h.Screenshot != nil {
			h.Screenshot(st.Label)
		}
	}
	s.checkDone()
}

func (s *Script) checkDone() {
	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(s.queue) == 0 {
		s.done = true
	}
}

// TracePoints samples n points along the polyline through way. Each segment
// gets an equal share of the samples; the first and last samples are the
// polyline's endpoints.
func TracePoints(way []Vec2, n int) []Vec2 {
	if len(way) == 0 || n <= 0 {
		return nil
	}
	if len(way) == 1 || n == 1 {
		out := make([]Vec2, n)
		for i := range out {
			out[i] = way[0]
		}
		return out
	}
	segs := len(way) - 1
	out := make([]Vec2, n)
	for i := range n {
		t := float64(i) / float64(n-1) * float64(segs)
		k := min(int(t), segs-1)
		u := t - float64(k)
		a, b := way[k], way[k+1]
		out[i] = Vec2{a.X + (b.X-a.X)*u, a.Y + (b.Y-a.Y)*u}
	}
	return out
}
