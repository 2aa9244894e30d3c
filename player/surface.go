package player

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/frameshow"
)

// strokeWidth is the line width of every stroked path, in pixels.
const strokeWidth = 2

// glyphHeight is the line height of the debug font.
const glyphHeight = 16

// textSize is the font size of a text object at scale 1.
const textSize = 24

// surface draws scene objects onto an ebiten image.
type surface struct {
	dst *ebiten.Image
	// font renders text objects. When nil the debug font is used.
	font *text.GoTextFaceSource
}

// loadFont parses the bundled Go Regular face.
func loadFont() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("player: failed to parse font: %w", err)
	}
	return src, nil
}

var _ frameshow.Surface = (*surface)(nil)

func (s *surface) StrokePath(pts []frameshow.Vec2, c frameshow.Color, closed bool) {
	if len(pts) < 2 {
		return
	}
	clr := c.RGBA()
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), strokeWidth, clr, true)
	}
	if closed {
		a, b := pts[len(pts)-1], pts[0]
		vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), strokeWidth, clr, true)
	}
}

// DrawText draws a label left-aligned and vertically centered on at, sized
// by scale and tinted by c including its alpha.
func (s *surface) DrawText(str string, at frameshow.Vec2, scale float64, c frameshow.Color) {
	if str == "" || scale <= 0 || c.A <= 0 {
		return
	}
	if s.font == nil {
		ebitenutil.DebugPrintAt(s.dst, str, int(at.X), int(at.Y)-glyphHeight/2)
		return
	}
	face, op := textOptions(s.font, at, scale, c)
	text.Draw(s.dst, str, face, op)
}

// textOptions builds the face and draw options for one label. The color
// scale is premultiplied, as ebiten expects.
func textOptions(src *text.GoTextFaceSource, at frameshow.Vec2, scale float64, c frameshow.Color) (*text.GoTextFace, *text.DrawOptions) {
	face := &text.GoTextFace{Source: src, Size: textSize * scale}
	op := &text.DrawOptions{}
	op.GeoM.Translate(at.X, at.Y)
	op.PrimaryAlign = text.AlignStart
	op.SecondaryAlign = text.AlignCenter

	a := float32(clamp01(c.A))
	op.ColorScale.Scale(float32(clamp01(c.R))*a, float32(clamp01(c.G))*a, float32(clamp01(c.B))*a, a)
	return face, op
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// selectionColor is the outline of the rubber-band selection rectangle.
var selectionColor = frameshow.Color{R: 0.2, G: 0.5, B: 1, A: 0.8}

func (s *surface) strokeRect(r frameshow.Rect) {
	pts := []frameshow.Vec2{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
	s.StrokePath(pts, selectionColor, true)
}
