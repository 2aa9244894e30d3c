package frameshow

import "time"

// tickStats holds per-tick timing and object counts.
// Timings are only populated when Scene.debug is true.
type tickStats struct {
	cameraTime time.Duration
	evalTime   time.Duration
	total      time.Duration
	objects    int
	renderable int
	removed    int
}

// debugLog writes timing and object stats at debug level.
func (s *Scene) debugLog(stats tickStats) {
	if !s.debug {
		return
	}
	ev := s.log.Debug().
		Int64("tick", s.ticks).
		Int("frame", s.frame).
		Dur("camera", stats.cameraTime).
		Dur("eval", stats.evalTime).
		Dur("total", stats.total).
		Int("objects", stats.objects).
		Int("renderable", stats.renderable)
	if stats.removed > 0 {
		ev = ev.Int("removed", stats.removed)
	}
	if s.transition.Running() {
		ev = ev.Int("progress", s.transition.Progress()).Int("steps", s.transition.Steps())
	}
	ev.Msg("tick")

	if budget := s.tickBudget(); stats.total > budget {
		s.log.Warn().Dur("total", stats.total).Dur("budget", budget).Msg("tick over budget")
	}
}
