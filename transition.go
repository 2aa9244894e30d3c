package frameshow

import "github.com/tanema/gween/ease"

// Transition drives playback from the current frame to a target frame over a
// number of logical ticks. It is idle or running; a Run while running is
// ignored rather than queued.
//
// Steps count ticks, not wall time: a driver ticking faster plays faster.
type Transition struct {
	// Ease maps linear progress to t_ease. Nil selects the logistic curve,
	// evaluated in float64.
	Ease ease.TweenFunc

	running    bool
	progress   int
	steps      int
	target     int
	tEase      float64
	onComplete func(target int)
}

// Run starts a transition to target lasting steps ticks. With steps <= 0 the
// transition completes synchronously: onComplete runs before Run returns and
// the controller never enters the running state. Run reports false when a
// transition is already in flight; nothing about it changes in that case.
func (tr *Transition) Run(steps, target int, onComplete func(target int)) bool {
	if tr.running {
		return false
	}
	if steps <= 0 {
		tr.progress, tr.steps, tr.target = 0, 0, target
		tr.tEase = 1
		if onComplete != nil {
			onComplete(target)
		}
		return true
	}
	tr.running = true
	tr.progress = 0
	tr.steps = steps
	tr.target = target
	tr.onComplete = onComplete
	tr.tEase = tr.ease(0)
	return true
}

// Tick advances progress by one logical step. When progress reaches the
// step count the controller goes idle and onComplete(target) is invoked.
func (tr *Transition) Tick() {
	if !tr.running {
		return
	}
	tr.progress++
	tr.tEase = tr.ease(float64(tr.progress) / float64(tr.steps))
	if tr.progress >= tr.steps {
		tr.complete()
	}
}

// Finish forces immediate completion of a running transition.
func (tr *Transition) Finish() {
	if !tr.running {
		return
	}
	tr.progress = tr.steps
	tr.tEase = tr.ease(1)
	tr.complete()
}

func (tr *Transition) complete() {
	tr.running = false
	cb := tr.onComplete
	tr.onComplete = nil
	if cb != nil {
		cb(tr.target)
	}
}

func (tr *Transition) ease(x float64) float64 {
	if tr.Ease == nil {
		return easeInOut(x)
	}
	return float64(tr.Ease(float32(x), 0, 1, 1))
}

// Running reports whether a transition is in flight.
func (tr *Transition) Running() bool { return tr.running }

// Progress returns the number of ticks taken so far.
func (tr *Transition) Progress() int { return tr.progress }

// Steps returns the tick count of the current or last transition.
func (tr *Transition) Steps() int { return tr.steps }

// Target returns the frame the current or last transition moves to.
func (tr *Transition) Target() int { return tr.target }

// TEase returns the eased progress for the current tick.
func (tr *Transition) TEase() float64 { return tr.tEase }
