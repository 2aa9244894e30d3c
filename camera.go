package frameshow

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// axisExtent is the half length of the drawn axes and tick grid, in graph units.
const axisExtent = 10

// panAnim holds active pan tweens for the camera X and Y offsets.
type panAnim struct {
	frame  int
	to     Vec2
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

type batchEntry struct {
	buf  []Vec3
	used bool
}

// Camera is the animatable viewpoint of the scene. Its keyframes live in a
// PropertyStore like any object; the rotation matrix, projection affine and
// tick cache are derived from the displayed snapshot on every Update and are
// never persisted.
//
// Snapshot fields: P is the pan offset in pixels from the viewport center,
// W and H are per-axis zoom (multiplied by GridSize), RXYZ holds rotation
// angles in radians and Style picks 3d or flat projection.
type Camera struct {
	Properties *PropertyStore

	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect
	// GridSize is the number of pixels per graph unit at zoom 1.
	GridSize float64

	current   Snapshot
	style     CoordStyle
	nextStyle CoordStyle
	tEase     float64

	rot     mgl64.Mat3
	view    [6]float64
	invView [6]float64

	ticks   []Vec3
	gridBuf []Vec3
	axesBuf [7]Vec3

	batch map[int]*batchEntry
	pan   *panAnim
}

// DefaultCameraSnapshot is the frame 1 keyframe of a new camera.
func DefaultCameraSnapshot() Snapshot {
	return Snapshot{
		W:     1,
		H:     1,
		C:     ColorBlack,
		RXYZ:  &Vec3{},
		Style: Style3D,
	}
}

// NewCamera creates a camera with default keyframes for the given viewport.
func NewCamera(viewport Rect, gridSize float64) *Camera {
	return newCameraWithStore(viewport, gridSize, NewPropertyStore(1, DefaultCameraSnapshot()))
}

func newCameraWithStore(viewport Rect, gridSize float64, ps *PropertyStore) *Camera {
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}
	c := &Camera{
		Properties: ps,
		Viewport:   viewport,
		GridSize:   gridSize,
		ticks:      buildTicks(),
		batch:      make(map[int]*batchEntry),
	}
	c.current = DefaultCameraSnapshot()
	if s, err := ps.Get(1); err == nil {
		c.current = s
	}
	c.recompute()
	return c
}

// buildTicks lays out the tick grid on the z=0 plane: one segment per
// integer x from -extent to extent, then one per integer y.
func buildTicks() []Vec3 {
	n := 2*axisExtent + 1
	ticks := make([]Vec3, 0, 4*n)
	for i := -axisExtent; i <= axisExtent; i++ {
		ticks = append(ticks, Vec3{float64(i), -axisExtent, 0}, Vec3{float64(i), axisExtent, 0})
	}
	for i := -axisExtent; i <= axisExtent; i++ {
		ticks = append(ticks, Vec3{-axisExtent, float64(i), 0}, Vec3{axisExtent, float64(i), 0})
	}
	return ticks
}

// Update recomputes the displayed snapshot and derived state. While
// transitioning, the frames from and to are blended by tEase.
func (c *Camera) Update(from, to int, tEase float64, transitioning bool) error {
	c.advancePan()

	a, err := c.Properties.Get(from)
	if err != nil {
		return err
	}
	c.nextStyle = ""
	c.tEase = tEase
	if transitioning {
		if b, err := c.Properties.Get(to); err == nil {
			c.nextStyle = b.Style
			a = Interpolate(a, &b, tEase)
		}
	}
	c.current = a
	c.recompute()
	return nil
}

// recompute rebuilds R, the projection affine and the tick cache.
func (c *Camera) recompute() {
	r := finiteVec3(c.current.Rotation())
	c.rot = mgl64.Rotate3DX(r[0]).Mul3(mgl64.Rotate3DY(r[1])).Mul3(mgl64.Rotate3DZ(r[2]))

	c.style = c.current.Style
	if c.style == "" {
		c.style = Style3D
	}

	center := c.Viewport.Center()
	sx := finite(c.current.W) * c.GridSize
	sy := finite(c.current.H) * c.GridSize
	tx := center.X + finite(c.current.P.X)
	ty := center.Y + finite(c.current.P.Y)

	// Graph y points up, screen y points down.
	c.view = multiplyAffine([6]float64{1, 0, 0, 1, tx, ty}, [6]float64{sx, 0, 0, -sy, 0, 0})
	c.invView = invertAffine(c.view)

	c.gridBuf = c.gridBuf[:0]
	for j := 0; j+1 < len(c.ticks); j += 2 {
		// Skip the two segments that coincide with the x and y axes.
		if j == 2*axisExtent || j == 2*axisExtent+4*axisExtent+2 {
			continue
		}
		c.gridBuf = append(c.gridBuf, c.project(c.ticks[j]), c.project(c.ticks[j+1]))
	}

	c.axesBuf[0] = c.project(Vec3{})
	for i := range 3 {
		var v Vec3
		v[i] = axisExtent
		c.axesBuf[1+i] = c.project(v)
		v[i] = -axisExtent
		c.axesBuf[4+i] = c.project(v)
	}

	for k, e := range c.batch {
		if !e.used {
			delete(c.batch, k)
			continue
		}
		e.used = false
	}
}

func (c *Camera) project(v Vec3) Vec3 {
	v = finiteVec3(v)
	if c.style != StyleFlat {
		v = c.rot.Mul3x1(v)
	}
	x, y := transformPoint(c.view, v[0], v[1])
	return Vec3{x, y, v[2]}
}

// GraphToScreen projects one graph-space point. The z of the result is the
// rotated depth, useful for ordering.
func (c *Camera) GraphToScreen(x, y, z float64) Vec3 {
	return c.project(Vec3{x, y, z})
}

// GraphToScreenInto projects src into dst, which must be at least as long.
func (c *Camera) GraphToScreenInto(dst, src []Vec3) {
	for i, v := range src {
		dst[i] = c.project(v)
	}
}

// GraphToScreenBatch projects a batch of points into a buffer owned by the
// camera and keyed by batch length. The result is valid until the next batch
// of the same length is projected; buffers unused between two Updates are
// released.
func (c *Camera) GraphToScreenBatch(pts []Vec3) []Vec3 {
	e := c.batch[len(pts)]
	if e == nil {
		e = &batchEntry{buf: make([]Vec3, len(pts))}
		c.batch[len(pts)] = e
	}
	e.used = true
	c.GraphToScreenInto(e.buf, pts)
	return e.buf
}

// ScreenToGraph maps a screen point back to the z=0 graph plane. It is exact
// for the flat style. For 3d the rotation is ignored, which is only a rough
// approximation good enough for pointer feedback.
func (c *Camera) ScreenToGraph(sx, sy float64) Vec2 {
	x, y := transformPoint(c.invView, finite(sx), finite(sy))
	return Vec2{X: x, Y: y}
}

// Rotation returns the composite rotation matrix R = Rx·Ry·Rz.
func (c *Camera) Rotation() mgl64.Mat3 { return c.rot }

// Style returns the style of the displayed snapshot.
func (c *Camera) Style() CoordStyle { return c.style }

// Current returns the displayed (possibly interpolated) snapshot.
func (c *Camera) Current() Snapshot { return c.current }

// Axes returns the projected origin followed by the +x, +y, +z, -x, -y, -z
// axis endpoints. The slice is owned by the camera.
func (c *Camera) Axes() []Vec3 { return c.axesBuf[:] }

// GridLines returns projected tick grid segments as consecutive point pairs.
// The slice is owned by the camera and rebuilt on every Update.
func (c *Camera) GridLines() []Vec3 { return c.gridBuf }

// AxesBlend returns the style to draw the axes with and its opacity. When a
// transition changes style, the axes fade out, switch at the midpoint and
// fade back in.
func (c *Camera) AxesBlend() (CoordStyle, float64) {
	if c.nextStyle == "" || c.nextStyle == c.style {
		return c.style, 1
	}
	t := clamp01(c.tEase)
	alpha := math.Cos(t*2*math.Pi)/2 + 0.5
	if t >= 0.5 {
		return c.nextStyle, alpha
	}
	return c.style, alpha
}

// Pan moves the pan offset of frame by (dx, dy) pixels.
func (c *Camera) Pan(frame int, dx, dy float64) error {
	return c.Properties.Update(frame, func(s *Snapshot) {
		s.P.X += dx
		s.P.Y += dy
	})
}

// Zoom multiplies the zoom of frame by factor on both axes.
func (c *Camera) Zoom(frame int, factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil
	}
	return c.Properties.Update(frame, func(s *Snapshot) {
		s.W *= factor
		s.H *= factor
	})
}

// Orbit adds to the x and y rotation angles of frame.
func (c *Camera) Orbit(frame int, drx, dry float64) error {
	return c.Properties.Update(frame, func(s *Snapshot) {
		r := s.Rotation()
		r[0] += drx
		r[1] += dry
		s.RXYZ = &r
	})
}

// PanTo animates the pan offset of frame to (x, y) over ticks Updates.
func (c *Camera) PanTo(frame int, x, y float64, ticks int, fn ease.TweenFunc) error {
	s, err := c.Properties.Get(frame)
	if err != nil {
		return err
	}
	if fn == nil {
		fn = EaseLogistic
	}
	if ticks < 1 {
		ticks = 1
	}
	c.pan = &panAnim{
		frame:  frame,
		to:     Vec2{X: finite(x), Y: finite(y)},
		tweenX: gween.New(float32(s.P.X), float32(x), float32(ticks), fn),
		tweenY: gween.New(float32(s.P.Y), float32(y), float32(ticks), fn),
	}
	return nil
}

// Panning reports whether a PanTo animation is active.
func (c *Camera) Panning() bool { return c.pan != nil }

func (c *Camera) advancePan() {
	p := c.pan
	if p == nil {
		return
	}
	var x, y float32
	x, p.doneX = p.tweenX.Update(1)
	y, p.doneY = p.tweenY.Update(1)
	pos := Vec2{X: float64(x), Y: float64(y)}
	done := p.doneX && p.doneY
	if done {
		// Curves like the logistic one stop just short of the end value.
		pos = p.to
		c.pan = nil
	}
	_ = c.Properties.Update(p.frame, func(s *Snapshot) { s.P = pos })
}
