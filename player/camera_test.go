package player

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/frameshow"
)

func cameraAt(t *testing.T, scene *frameshow.Scene) frameshow.Snapshot {
	t.Helper()
	s, err := scene.Camera().Properties.Get(scene.Frame())
	require.NoError(t, err)
	return s
}

func TestRightDragOrbits(t *testing.T) {
	g, scene := newTestGame(t)

	require.NoError(t, g.apply(&frameInput{cursor: frameshow.Vec2{X: 100, Y: 100}}))
	require.NoError(t, g.apply(&frameInput{cursor: frameshow.Vec2{X: 150, Y: 120}, orbit: true}))

	r := cameraAt(t, scene).Rotation()
	assert.InDelta(t, 20*orbitSpeed, r[0], 1e-9)
	assert.InDelta(t, 50*orbitSpeed, r[1], 1e-9)

	require.NoError(t, g.apply(&frameInput{cursor: frameshow.Vec2{X: 150, Y: 120}, cameraReleased: true}))
	assert.Equal(t, 2, g.history.Len(), "gesture end is a settle point")
}

func TestMiddleDragPans(t *testing.T) {
	g, scene := newTestGame(t)

	require.NoError(t, g.apply(&frameInput{cursor: frameshow.Vec2{X: 10, Y: 10}}))
	require.NoError(t, g.apply(&frameInput{cursor: frameshow.Vec2{X: 40, Y: 30}, pan: true}))

	assert.Equal(t, frameshow.Vec2{X: 30, Y: 20}, cameraAt(t, scene).P)
}

func TestWheelAndKeysZoom(t *testing.T) {
	g, scene := newTestGame(t)

	require.NoError(t, g.apply(&frameInput{wheel: 1}))
	assert.InDelta(t, zoomStep, cameraAt(t, scene).W, 1e-9)
	assert.Equal(t, 2, g.history.Len())

	require.NoError(t, g.apply(&frameInput{keys: []ebiten.Key{ebiten.KeyMinus}}))
	assert.InDelta(t, 1, cameraAt(t, scene).W, 1e-9)
	assert.InDelta(t, 1, cameraAt(t, scene).H, 1e-9)
}

func TestHomeRecentersThroughTween(t *testing.T) {
	g, scene := newTestGame(t)
	require.NoError(t, scene.Camera().Pan(1, 200, -100))
	g.settle()
	entries := g.history.Len()

	require.NoError(t, g.apply(&frameInput{keys: []ebiten.Key{ebiten.KeyHome}}))
	assert.True(t, scene.Camera().Panning())

	for i := 0; i < recenterTicks+1; i++ {
		scene.Update()
		g.settlePan()
	}
	assert.False(t, scene.Camera().Panning())
	assert.Equal(t, frameshow.Vec2{}, cameraAt(t, scene).P)
	assert.Equal(t, entries+1, g.history.Len(), "finished pan is recorded")
}

func TestCameraLockedWhilePresenting(t *testing.T) {
	g, scene := newTestGame(t)
	scene.SetPresenting(true)

	require.NoError(t, g.apply(&frameInput{wheel: 3}))
	require.NoError(t, g.apply(&frameInput{keys: []ebiten.Key{ebiten.KeyHome}}))

	assert.Equal(t, 1.0, cameraAt(t, scene).W)
	assert.False(t, scene.Camera().Panning())
}

func TestAppendFrameRejectedWhileRunning(t *testing.T) {
	g, scene := newTestGame(t)
	require.NoError(t, scene.TransitionTo(2, 10))

	require.NoError(t, g.apply(&frameInput{keys: []ebiten.Key{ebiten.KeyN}}))
	assert.Equal(t, 2, scene.NumFrames(), "no frame appended")
	assert.Equal(t, 2, scene.Transition().Target())
}
