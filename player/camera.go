package player

import (
	"math"

	"github.com/phanxgames/frameshow"
)

const (
	// orbitSpeed is radians of rotation per dragged pixel.
	orbitSpeed = 0.01
	// zoomStep is the zoom factor of one key press or wheel notch.
	zoomStep = 1.1
	// recenterTicks is the length of the Home key pan animation.
	recenterTicks = 20
)

// cameraLocked reports whether camera edits are ignored. The camera store
// is only edited while idle in edit mode.
func (g *Game) cameraLocked() bool {
	return g.scene.Presenting() || g.scene.Transition().Running()
}

// camera applies right-drag orbit, middle-drag pan and wheel zoom to the
// current frame. It reports whether a gesture ended this tick.
func (g *Game) camera(in *frameInput) bool {
	defer func() { g.lastCursor = in.cursor }()
	if g.cameraLocked() {
		return false
	}
	s := g.scene
	cam := s.Camera()
	frame := s.Frame()
	dx, dy := in.cursor.X-g.lastCursor.X, in.cursor.Y-g.lastCursor.Y

	var err error
	switch {
	case in.orbit && (dx != 0 || dy != 0):
		// Horizontal drag turns around the y axis, vertical around x.
		err = cam.Orbit(frame, dy*orbitSpeed, dx*orbitSpeed)
	case in.pan && (dx != 0 || dy != 0):
		err = cam.Pan(frame, dx, dy)
	}
	if err == nil && in.wheel != 0 {
		err = cam.Zoom(frame, math.Pow(zoomStep, in.wheel))
	}
	if err != nil {
		g.log.Warn().Err(err).Int("frame", frame).Msg("camera")
	}
	return in.cameraReleased || in.wheel != 0
}

// recenter animates the pan offset of the current frame back to zero.
func (g *Game) recenter() error {
	if g.cameraLocked() {
		return frameshow.ErrTransitionRunning
	}
	s := g.scene
	return s.Camera().PanTo(s.Frame(), 0, 0, recenterTicks, nil)
}

func (g *Game) zoomBy(factor float64) error {
	if g.cameraLocked() {
		return frameshow.ErrTransitionRunning
	}
	s := g.scene
	return s.Camera().Zoom(s.Frame(), factor)
}
