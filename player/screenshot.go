package player

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// queueScreenshot asks for the next drawn frame to be written as a PNG.
func (g *Game) queueScreenshot() {
	if g.cfg.ScreenshotDir == "" {
		g.log.Debug().Msg("screenshot dir not set")
		return
	}
	g.screenshotFrames = append(g.screenshotFrames, g.scene.Frame())
}

// flushScreenshots captures screen once for every queued request. Called at
// the end of Draw.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotFrames) == 0 {
		return
	}
	defer func() { g.screenshotFrames = g.screenshotFrames[:0] }()

	if err := os.MkdirAll(g.cfg.ScreenshotDir, 0o755); err != nil {
		g.log.Error().Err(err).Str("dir", g.cfg.ScreenshotDir).Msg("screenshot")
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, frame := range g.screenshotFrames {
		path := filepath.Join(g.cfg.ScreenshotDir, fmt.Sprintf("%s_frame%03d.png", stamp, frame))
		if err := writePNG(path, img); err != nil {
			g.log.Error().Err(err).Msg("screenshot")
			continue
		}
		g.log.Info().Str("path", path).Int("frame", frame).Msg("screenshot saved")
	}
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
