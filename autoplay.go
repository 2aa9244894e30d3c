package frameshow

import (
	"encoding/json"
	"errors"
	"fmt"
)

// autoplayStep is a single action in an autoplay script.
type autoplayStep struct {
	Action string  `json:"action"`
	Frame  int     `json:"frame,omitempty"`
	Ticks  int     `json:"ticks,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
}

// autoplayScript is the top-level JSON structure of an autoplay script.
type autoplayScript struct {
	Steps []autoplayStep `json:"steps"`
}

var autoplayActions = map[string]bool{
	"next": true, "prev": true, "goto": true, "wait": true,
	"present": true, "edit": true, "pointer": true, "save": true,
}

// Autoplay drives a scene from a script, one step per tick. Frame changes
// wait for a running transition to finish first, so a script of "next"
// steps plays a whole presentation. Attach it with Scene.SetAutoplay.
type Autoplay struct {
	// History, when set, receives a snapshot on every "save" step.
	History *History

	steps     []autoplayStep
	cursor    int
	waitCount int
	done      bool
}

// LoadAutoplayScript parses a JSON script:
//
//	{"steps": [{"action": "present"}, {"action": "next"}, {"action": "wait", "ticks": 30}]}
//
// Actions are next, prev, goto (frame), wait (ticks), present, edit,
// pointer (x, y in screen pixels) and save.
func LoadAutoplayScript(data []byte) (*Autoplay, error) {
	var script autoplayScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse autoplay script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse autoplay script: no steps")
	}
	for i, st := range script.Steps {
		if !autoplayActions[st.Action] {
			return nil, fmt.Errorf("parse autoplay script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Autoplay{steps: script.Steps}, nil
}

// Done reports whether every step has been executed.
func (a *Autoplay) Done() bool { return a.done }

// step advances the script by one tick. Called from Scene.Update.
func (a *Autoplay) step(s *Scene) {
	if a.done {
		return
	}
	if s.transition.Running() {
		return
	}
	if a.waitCount > 0 {
		a.waitCount--
		return
	}
	if a.cursor >= len(a.steps) {
		a.done = true
		return
	}

	st := a.steps[a.cursor]
	a.cursor++

	var err error
	switch st.Action {
	case "next":
		err = s.Next()
	case "prev":
		err = s.Prev()
	case "goto":
		err = s.GoTo(st.Frame)
	case "wait":
		if st.Ticks > 0 {
			a.waitCount = st.Ticks - 1 // this tick counts as one
		}
	case "present":
		s.SetPresenting(true)
	case "edit":
		s.SetPresenting(false)
	case "pointer":
		s.SetPointer(st.X, st.Y)
	case "save":
		if a.History != nil {
			_, err = a.History.Save(s)
		}
	}
	if err != nil {
		s.log.Warn().Err(err).Str("action", st.Action).Int("step", a.cursor-1).Msg("autoplay")
	}

	if a.cursor >= len(a.steps) && a.waitCount == 0 && !s.transition.Running() {
		a.done = true
	}
}
