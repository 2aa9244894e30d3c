package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/frameshow"
)

func TestTextOptionsApplyScaleAndColor(t *testing.T) {
	src, err := loadFont()
	require.NoError(t, err)

	at := frameshow.Vec2{X: 120, Y: 80}
	face, op := textOptions(src, at, 2, frameshow.Color{R: 1, G: 0.5, B: 0, A: 0.5})

	assert.Equal(t, 2.0*textSize, face.Size)
	x, y := op.GeoM.Apply(0, 0)
	assert.Equal(t, at.X, x)
	assert.Equal(t, at.Y, y)

	assert.InDelta(t, 0.5, op.ColorScale.R(), 1e-6)
	assert.InDelta(t, 0.25, op.ColorScale.G(), 1e-6)
	assert.InDelta(t, 0, op.ColorScale.B(), 1e-6)
	assert.InDelta(t, 0.5, op.ColorScale.A(), 1e-6)
}

func TestTextOptionsFadeFollowsAlpha(t *testing.T) {
	src, err := loadFont()
	require.NoError(t, err)

	var prev float32
	for _, a := range []float64{0.1, 0.4, 0.8, 1} {
		_, op := textOptions(src, frameshow.Vec2{}, 1, frameshow.Color{A: a})
		assert.Greater(t, op.ColorScale.A(), prev)
		prev = op.ColorScale.A()
	}
}

func TestNewGameLoadsFont(t *testing.T) {
	g, _ := newTestGame(t)
	assert.NotNil(t, g.surf.font)
}
