package player

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/frameshow"
)

// frameInput is the input state of one tick, decoupled from ebiten polling
// so the handling logic can run headless.
type frameInput struct {
	cursor frameshow.Vec2

	// Left mouse button edges and level.
	pressed  bool
	held     bool
	released bool

	keys        []ebiten.Key // just pressed this tick
	keyReleased bool
	shift       bool
	ctrl        bool

	// Camera gestures: right button orbits, middle button pans, the wheel
	// zooms.
	orbit          bool
	pan            bool
	cameraReleased bool
	wheel          float64
}

// pollInput reads the current ebiten input state into in, reusing its key buffer.
func pollInput(in *frameInput) {
	mx, my := ebiten.CursorPosition()
	in.cursor = frameshow.Vec2{X: float64(mx), Y: float64(my)}
	in.pressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.held = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.released = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	in.keyReleased = len(inpututil.AppendJustReleasedKeys(nil)) > 0
	in.shift = ebiten.IsKeyPressed(ebiten.KeyShift)
	in.ctrl = ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	in.orbit = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.pan = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	in.cameraReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) ||
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle)
	_, in.wheel = ebiten.Wheel()
}

type tool uint8

const (
	toolSelect tool = iota
	toolPen
)

// apply routes one tick of input to the scene. History is captured at
// settle points only: mouse release and key release.
func (g *Game) apply(in *frameInput) error {
	s := g.scene
	s.SetPointer(in.cursor.X, in.cursor.Y)
	s.Instant = in.shift

	for _, k := range in.keys {
		if err := g.key(k, in.ctrl); err != nil {
			return err
		}
	}
	g.mouse(in)
	cameraDone := g.camera(in)

	if in.released || in.keyReleased || cameraDone {
		g.settle()
	}
	return nil
}

func (g *Game) key(k ebiten.Key, ctrl bool) error {
	s := g.scene
	var err error
	switch {
	case k == ebiten.KeyQ && ctrl:
		return ebiten.Termination
	case k == ebiten.KeyZ && ctrl:
		_, err = g.history.Undo(s)
	case k == ebiten.KeyEnter && ctrl, k == ebiten.KeyP:
		s.SetPresenting(!s.Presenting())
	case k == ebiten.KeyArrowRight, k == ebiten.KeySpace, k == ebiten.KeyPageDown:
		err = s.Next()
	case k == ebiten.KeyArrowLeft, k == ebiten.KeyPageUp:
		err = s.Prev()
	case k == ebiten.KeyEscape:
		if s.Presenting() {
			s.SetPresenting(false)
		} else {
			s.ClearSelection()
			s.CopyMode = false
		}
	case k == ebiten.KeyDelete, k == ebiten.KeyBackspace:
		s.DeleteSelected()
	case k == ebiten.KeyC:
		s.CopyMode = true
	case k == ebiten.KeyI:
		err = s.InsertFrame()
	case k == ebiten.KeyN:
		if s.Transition().Running() {
			err = frameshow.ErrTransitionRunning
			break
		}
		err = s.TransitionTo(s.AppendFrame(), 0)
	case k == ebiten.KeyHome:
		err = g.recenter()
	case k == ebiten.KeyEqual, k == ebiten.KeyKPAdd:
		err = g.zoomBy(zoomStep)
	case k == ebiten.KeyMinus, k == ebiten.KeyKPSubtract:
		err = g.zoomBy(1 / zoomStep)
	case k == ebiten.KeyD:
		if g.tool == toolPen {
			g.tool = toolSelect
		} else {
			g.tool = toolPen
		}
	case k == ebiten.KeyX:
		s.Pen().Clear(s.Frame())
	case k == ebiten.KeyF12:
		g.queueScreenshot()
	}
	if errors.Is(err, frameshow.ErrTransitionRunning) {
		g.log.Debug().Str("key", k.String()).Msg("ignored while transitioning")
		return nil
	}
	if err != nil {
		g.log.Warn().Err(err).Str("key", k.String()).Msg("key action")
	}
	return nil
}

func (g *Game) mouse(in *frameInput) {
	s := g.scene
	switch {
	case in.pressed:
		g.dragging = true
		g.dragStart, g.dragEnd = in.cursor, in.cursor
		if g.tool == toolPen {
			s.Pen().Begin(s.Frame(), in.cursor)
		}
	case in.held && g.dragging:
		g.dragEnd = in.cursor
		if g.tool == toolPen {
			s.Pen().Extend(in.cursor)
		}
	case in.released && g.dragging:
		g.dragging = false
		g.dragEnd = in.cursor
		if g.tool == toolPen {
			s.Pen().End()
			return
		}
		s.SelectInRect(g.selectionRect())
	}
}

func (g *Game) selectionRect() frameshow.Rect {
	return frameshow.RectFromCorners(g.dragStart.X, g.dragStart.Y, g.dragEnd.X, g.dragEnd.Y)
}

// settle pushes a history entry and hands the new top to OnSettle.
func (g *Game) settle() {
	changed, err := g.history.Save(g.scene)
	if err != nil {
		g.log.Error().Err(err).Msg("save history")
		return
	}
	if changed && g.cfg.OnSettle != nil {
		g.cfg.OnSettle(g.history.Top())
	}
}
