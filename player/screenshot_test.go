package player

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)
	assert.Equal(t, []byte{255, 127, 0, 128}, img.Pix[0:4])
	assert.Equal(t, []byte{10, 20, 30, 255}, img.Pix[4:8])
	assert.Equal(t, []byte{0, 0, 0, 0}, img.Pix[8:12])
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	img := unpremultiply([]byte{1, 2, 3, 255, 4, 5, 6, 255}, 2, 1)
	require.NoError(t, writePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Bounds().Dx())
	assert.Equal(t, 1, decoded.Bounds().Dy())
}

func TestQueueScreenshotNeedsDir(t *testing.T) {
	g, _ := newTestGame(t)
	g.queueScreenshot()
	assert.Empty(t, g.screenshotFrames)

	g.cfg.ScreenshotDir = t.TempDir()
	g.queueScreenshot()
	assert.Equal(t, []int{1}, g.screenshotFrames)
}
