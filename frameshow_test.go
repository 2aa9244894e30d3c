package frameshow

import (
	"encoding/json"
	"image/color"
	"math"
	"testing"
)

func TestColorJSONArray(t *testing.T) {
	data, err := json.Marshal(Color{R: 1, G: 0.5, B: 0, A: 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[1,0.5,0,1]" {
		t.Errorf("Marshal = %s, want [1,0.5,0,1]", data)
	}

	var c Color
	if err := json.Unmarshal([]byte("[0.1,0.2,0.3,0.4]"), &c); err != nil {
		t.Fatal(err)
	}
	if c != (Color{0.1, 0.2, 0.3, 0.4}) {
		t.Errorf("Unmarshal = %+v", c)
	}
}

func TestColorJSONWrongLength(t *testing.T) {
	var c Color
	if err := json.Unmarshal([]byte("[1,1,1]"), &c); err == nil {
		t.Error("expected error for 3 components")
	}
}

func TestColorRGBAPremultiplied(t *testing.T) {
	got := Color{R: 1, G: 0, B: 0, A: 0.5}.RGBA()
	want := color.RGBA{R: 128, G: 0, B: 0, A: 128}
	if got != want {
		t.Errorf("RGBA() = %v, want %v", got, want)
	}
	if got := (Color{R: 2, G: -1, B: 0, A: 1}).RGBA(); got.R != 255 || got.G != 0 {
		t.Errorf("RGBA() did not clamp: %v", got)
	}
}

func TestRectContainsEdges(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	for _, p := range [][2]float64{{10, 10}, {30, 30}, {20, 15}} {
		if !r.Contains(p[0], p[1]) {
			t.Errorf("Contains(%v) = false", p)
		}
	}
	if r.Contains(9.9, 15) || r.Contains(15, 30.1) {
		t.Error("Contains outside point = true")
	}
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(30, 5, 10, 25)
	if r != (Rect{X: 10, Y: 5, Width: 20, Height: 20}) {
		t.Errorf("RectFromCorners = %+v", r)
	}
	c := r.Center()
	if c.X != 20 || c.Y != 15 {
		t.Errorf("Center = %+v", c)
	}
}

func TestParseObjectKind(t *testing.T) {
	for _, k := range []ObjectKind{KindShape, KindCircle, KindText} {
		got, ok := ParseObjectKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseObjectKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseObjectKind("Hexagon"); ok {
		t.Error("ParseObjectKind(Hexagon) ok = true")
	}
}

func TestFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if finite(v) != 0 {
			t.Errorf("finite(%v) = %v, want 0", v, finite(v))
		}
	}
	if finite(2.5) != 2.5 {
		t.Error("finite changed a finite value")
	}
}

// --- Snapshot ---

func fullSnapshot() Snapshot {
	return Snapshot{
		P: Vec2{X: 1, Y: 2}, W: 3, H: 4, R: 0.5,
		C:     Color{0.1, 0.2, 0.3, 1},
		Path:  []Vec2{{X: 0, Y: 0}, {X: 5, Y: 5}},
		Text:  StringPtr("hi"),
		RXYZ:  &Vec3{0.1, 0.2, 0.3},
		Style: StyleFlat,
		AS:    FloatPtr(0),
		AE:    FloatPtr(math.Pi),
		V:     true,
	}
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	a := fullSnapshot()
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone not equal")
	}
	b.Path[0].X = 99
	*b.Text = "changed"
	b.RXYZ[0] = 9
	*b.AS = 1
	if a.Path[0].X != 0 || *a.Text != "hi" || a.RXYZ[0] != 0.1 || *a.AS != 0 {
		t.Error("clone shares memory with the original")
	}
}

func TestSnapshotEqualOptionalPresence(t *testing.T) {
	a := Snapshot{W: 1, H: 1}
	b := a
	b.Text = StringPtr("")
	if a.Equal(b) {
		t.Error("absent text equals empty text")
	}
	c := a
	c.Path = []Vec2{}
	if !a.Equal(c) {
		t.Error("nil path should equal empty path")
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	for _, s := range []Snapshot{fullSnapshot(), {W: 1, H: 1, C: ColorBlack}} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatal(err)
		}
		var got Snapshot
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatal(err)
		}
		if !got.Equal(s) {
			t.Errorf("round trip %s: got %+v", data, got)
		}
	}
}

func TestSnapshotDefaults(t *testing.T) {
	var s Snapshot
	if s.TextValue() != "" {
		t.Error("TextValue of absent text")
	}
	if s.Rotation() != (Vec3{}) {
		t.Error("Rotation of absent rxyz")
	}
	start, end := s.Arc()
	if start != 0 || end != 2*math.Pi {
		t.Errorf("Arc = %v, %v", start, end)
	}
}
