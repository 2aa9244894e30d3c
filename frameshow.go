package frameshow

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// It is persisted as a four element array [r, g, b, a].
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the default stroke color for new objects.
var ColorBlack = Color{0, 0, 0, 1}

// MarshalJSON writes the color as [r, g, b, a].
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{c.R, c.G, c.B, c.A})
}

// UnmarshalJSON reads a [r, g, b, a] array. Exactly four components are required.
func (c *Color) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 4 {
		return fmt.Errorf("color: want 4 components, got %d", len(arr))
	}
	c.R, c.G, c.B, c.A = arr[0], arr[1], arr[2], arr[3]
	return nil
}

// RGBA converts to a premultiplied 8-bit color for drawing backends.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D point used for positions and path points.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 is a graph-space point or an rxyz rotation triple.
type Vec3 = mgl64.Vec3

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// RectFromCorners builds a normalized Rect from two arbitrary corners.
func RectFromCorners(x0, y0, x1, y1 float64) Rect {
	minX, maxX := math.Min(x0, x1), math.Max(x0, x1)
	minY, maxY := math.Min(y0, y1), math.Max(y0, y1)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ObjectKind distinguishes the closed set of drawable objects.
type ObjectKind uint8

const (
	KindShape  ObjectKind = iota // open or closed polyline, optionally an arrow
	KindCircle                   // circle or arc
	KindText                     // text label
)

var kindNames = [...]string{"Shape", "Circle", "Text"}

func (k ObjectKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ObjectKind(%d)", k)
}

// ParseObjectKind maps a persisted type tag to its kind.
func ParseObjectKind(s string) (ObjectKind, bool) {
	for i, name := range kindNames {
		if name == s {
			return ObjectKind(i), true
		}
	}
	return 0, false
}

// CoordStyle selects how the camera projects graph space.
type CoordStyle string

const (
	Style3D   CoordStyle = "3d"   // rotate by R, then orthographic projection
	StyleFlat CoordStyle = "flat" // scale and translate only
)

// Default layout: 45 pixels per graph unit, 50-tick transitions.
const (
	DefaultGridSize        = 45.0
	DefaultTransitionSteps = 50
	DefaultEditTPS         = 30
	DefaultPresentTPS      = 60
)

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// finite replaces NaN and ±Inf with 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func finiteVec3(v Vec3) Vec3 {
	return Vec3{finite(v[0]), finite(v[1]), finite(v[2])}
}
