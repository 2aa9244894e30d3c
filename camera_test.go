package frameshow

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

func newTestCamera() *Camera {
	return NewCamera(Rect{Width: 1920, Height: 1080}, DefaultGridSize)
}

func assertVec(t *testing.T, name string, got Vec3, x, y float64) {
	t.Helper()
	assertNear(t, name+".x", got[0], x)
	assertNear(t, name+".y", got[1], y)
}

func setCamera(t *testing.T, c *Camera, frame int, fn func(s *Snapshot)) {
	t.Helper()
	if err := c.Properties.Update(frame, fn); err != nil {
		t.Fatal(err)
	}
	if err := c.Update(frame, frame, 0, false); err != nil {
		t.Fatal(err)
	}
}

func TestCameraDefaults(t *testing.T) {
	c := newTestCamera()
	if c.Style() != Style3D {
		t.Errorf("Style = %q", c.Style())
	}
	if c.Rotation() != mgl64.Ident3() {
		t.Errorf("Rotation = %v, want identity", c.Rotation())
	}
	if c.Properties.Len() != 1 {
		t.Error("camera store should hold the frame 1 baseline")
	}
}

func TestCameraOriginAtViewportCenter(t *testing.T) {
	c := newTestCamera()
	assertVec(t, "origin", c.GraphToScreen(0, 0, 0), 960, 540)
	assertVec(t, "+x", c.GraphToScreen(1, 0, 0), 960+DefaultGridSize, 540)
	assertVec(t, "+y", c.GraphToScreen(0, 1, 0), 960, 540-DefaultGridSize)
}

func TestCameraPanAndZoom(t *testing.T) {
	c := newTestCamera()
	if err := c.Pan(1, 10, -20); err != nil {
		t.Fatal(err)
	}
	if err := c.Zoom(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := c.Update(1, 1, 0, false); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "origin", c.GraphToScreen(0, 0, 0), 970, 520)
	assertVec(t, "+x", c.GraphToScreen(1, 0, 0), 970+2*DefaultGridSize, 520)

	// Invalid zoom factors are ignored.
	_ = c.Zoom(1, 0)
	_ = c.Zoom(1, math.NaN())
	s, _ := c.Properties.Get(1)
	if s.W != 2 || s.H != 2 {
		t.Errorf("zoom = %v, %v", s.W, s.H)
	}
}

func TestCameraRotationOrder(t *testing.T) {
	c := newTestCamera()
	setCamera(t, c, 1, func(s *Snapshot) { s.RXYZ = &Vec3{math.Pi / 2, math.Pi / 2, 0} })

	// R = Rx·Ry: +z goes to +x under Ry, and Rx leaves +x alone.
	assertVec(t, "+z", c.GraphToScreen(0, 0, 1), 960+DefaultGridSize, 540)

	want := mgl64.Rotate3DX(math.Pi / 2).Mul3(mgl64.Rotate3DY(math.Pi / 2))
	if !c.Rotation().ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("Rotation = %v, want %v", c.Rotation(), want)
	}
}

func TestCameraRotationZ(t *testing.T) {
	c := newTestCamera()
	setCamera(t, c, 1, func(s *Snapshot) { s.RXYZ = &Vec3{0, 0, math.Pi / 2} })
	assertVec(t, "+x", c.GraphToScreen(1, 0, 0), 960, 540-DefaultGridSize)
}

func TestCameraFlatIgnoresRotation(t *testing.T) {
	c := newTestCamera()
	setCamera(t, c, 1, func(s *Snapshot) {
		s.RXYZ = &Vec3{0.3, 0.4, 0.5}
		s.Style = StyleFlat
	})
	assertVec(t, "+x", c.GraphToScreen(1, 0, 0), 960+DefaultGridSize, 540)
}

func TestCameraFlatRoundTrip(t *testing.T) {
	c := newTestCamera()
	setCamera(t, c, 1, func(s *Snapshot) {
		s.Style = StyleFlat
		s.P = Vec2{X: 33, Y: -12}
		s.W, s.H = 1.5, 0.75
	})
	for _, p := range [][2]float64{{0, 0}, {2, -3}, {-7.5, 4.25}} {
		sp := c.GraphToScreen(p[0], p[1], 0)
		g := c.ScreenToGraph(sp[0], sp[1])
		assertNear(t, "x", g.X, p[0])
		assertNear(t, "y", g.Y, p[1])
	}
}

func TestCameraNonFiniteInputs(t *testing.T) {
	c := newTestCamera()
	setCamera(t, c, 1, func(s *Snapshot) {
		s.RXYZ = &Vec3{math.NaN(), math.Inf(1), 0}
		s.P = Vec2{X: math.NaN()}
	})
	if c.Rotation() != mgl64.Ident3() {
		t.Errorf("non-finite rotation not sanitized: %v", c.Rotation())
	}
	got := c.GraphToScreen(math.NaN(), 1, math.Inf(-1))
	assertVec(t, "point", got, 960, 540-DefaultGridSize)

	g := c.ScreenToGraph(math.NaN(), math.Inf(1))
	if math.IsNaN(g.X) || math.IsNaN(g.Y) || math.IsInf(g.X, 0) || math.IsInf(g.Y, 0) {
		t.Errorf("ScreenToGraph = %+v", g)
	}
}

func TestCameraBatchCache(t *testing.T) {
	c := newTestCamera()
	pts := []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}

	a := c.GraphToScreenBatch(pts)
	assertVec(t, "a[1]", a[1], 960+DefaultGridSize, 540)
	b := c.GraphToScreenBatch(pts[:3])
	if &a[0] != &b[0] {
		t.Error("same-length batches should share a buffer")
	}
	d := c.GraphToScreenBatch(pts[:2])
	if len(d) != 2 || len(c.batch) != 2 {
		t.Errorf("len(d)=%d cache=%d", len(d), len(c.batch))
	}

	// Used since the last Update: kept once, dropped after an idle Update.
	_ = c.Update(1, 1, 0, false)
	if len(c.batch) != 2 {
		t.Errorf("cache = %d after first Update, want 2", len(c.batch))
	}
	c.GraphToScreenBatch(pts)
	_ = c.Update(1, 1, 0, false)
	if len(c.batch) != 1 {
		t.Errorf("cache = %d, want only the reused length", len(c.batch))
	}
	_ = c.Update(1, 1, 0, false)
	if len(c.batch) != 0 {
		t.Errorf("cache = %d after idle Update, want 0", len(c.batch))
	}
}

func TestCameraGridAndAxes(t *testing.T) {
	c := newTestCamera()
	grid := c.GridLines()
	if len(grid) != 80 {
		t.Fatalf("grid points = %d, want 80", len(grid))
	}
	for i := 0; i < len(grid); i += 2 {
		if grid[i][0] == 960 && grid[i+1][0] == 960 {
			t.Error("grid contains the y axis line")
		}
		if grid[i][1] == 540 && grid[i+1][1] == 540 {
			t.Error("grid contains the x axis line")
		}
	}

	axes := c.Axes()
	if len(axes) != 7 {
		t.Fatalf("axes = %d", len(axes))
	}
	assertVec(t, "origin", axes[0], 960, 540)
	assertVec(t, "+x", axes[1], 960+10*DefaultGridSize, 540)
	assertVec(t, "-y", axes[5], 960, 540+10*DefaultGridSize)
}

func TestCameraTransitionBlend(t *testing.T) {
	c := newTestCamera()
	c.Properties.Set(2, Snapshot{P: Vec2{X: 100}, W: 2, H: 2, C: ColorBlack, RXYZ: &Vec3{}, Style: StyleFlat})

	if err := c.Update(1, 2, 0.5, true); err != nil {
		t.Fatal(err)
	}
	cur := c.Current()
	assertNear(t, "P.X", cur.P.X, 50)
	assertNear(t, "W", cur.W, 1.5)
	if c.Style() != Style3D {
		t.Errorf("Style mid-transition = %q, want source style", c.Style())
	}

	style, alpha := c.AxesBlend()
	if style != StyleFlat {
		t.Errorf("AxesBlend style at 0.5 = %q", style)
	}
	assertNear(t, "alpha at 0.5", alpha, 0)

	_ = c.Update(1, 2, 0.25, true)
	style, alpha = c.AxesBlend()
	if style != Style3D {
		t.Errorf("AxesBlend style at 0.25 = %q", style)
	}
	assertNear(t, "alpha at 0.25", alpha, 0.5)

	_ = c.Update(2, 2, 0, false)
	style, alpha = c.AxesBlend()
	if style != StyleFlat || alpha != 1 {
		t.Errorf("AxesBlend idle = %q %v", style, alpha)
	}
}

func TestCameraMissingBaseline(t *testing.T) {
	c := newCameraWithStore(Rect{Width: 100, Height: 100}, 0, NewPropertyStore(2, DefaultCameraSnapshot()))
	if c.GridSize != DefaultGridSize {
		t.Errorf("GridSize = %v", c.GridSize)
	}
	if err := c.Update(1, 1, 0, false); err == nil {
		t.Error("Update without a baseline succeeded")
	}
}

func TestCameraOrbit(t *testing.T) {
	c := newTestCamera()
	if err := c.Orbit(1, 0.1, 0.2); err != nil {
		t.Fatal(err)
	}
	s, _ := c.Properties.Get(1)
	if s.Rotation() != (Vec3{0.1, 0.2, 0}) {
		t.Errorf("rxyz = %v", s.Rotation())
	}
}

func TestCameraPanTo(t *testing.T) {
	c := newTestCamera()
	if err := c.PanTo(1, 90, -30, 3, ease.Linear); err != nil {
		t.Fatal(err)
	}
	if !c.Panning() {
		t.Fatal("Panning = false")
	}
	_ = c.Update(1, 1, 0, false)
	s, _ := c.Properties.Get(1)
	assertNear(t, "P.X after 1/3", s.P.X, 30)

	_ = c.Update(1, 1, 0, false)
	_ = c.Update(1, 1, 0, false)
	if c.Panning() {
		t.Error("still panning after the tween finished")
	}
	s, _ = c.Properties.Get(1)
	if math.Abs(s.P.X-90) > 1e-4 || math.Abs(s.P.Y+30) > 1e-4 {
		t.Errorf("P = %+v, want {90 -30}", s.P)
	}
	assertVec(t, "origin", c.GraphToScreen(0, 0, 0), 960+s.P.X, 540+s.P.Y)
}

func TestCameraPanToLandsOnTarget(t *testing.T) {
	c := newTestCamera()
	if err := c.PanTo(1, 200, -100, 5, nil); err != nil {
		t.Fatal(err)
	}
	for c.Panning() {
		_ = c.Update(1, 1, 0, false)
	}
	s, _ := c.Properties.Get(1)
	if s.P != (Vec2{X: 200, Y: -100}) {
		t.Errorf("P = %+v, want exactly {200 -100}", s.P)
	}
}
