package frameshow

import "math"

const (
	fullTurn     = 2 * math.Pi
	circleRadius = 20.0 // local radius of a circle at w = h = 1, in pixels
	arcSegments  = 64
	arrowSize    = 10.0
)

// Surface is the drawing backend objects render onto. Coordinates are
// screen pixels; colors are straight (not premultiplied) alpha.
type Surface interface {
	StrokePath(pts []Vec2, c Color, closed bool)
	DrawText(text string, at Vec2, scale float64, c Color)
}

// Object is one drawable element of a scene. The set of kinds is closed;
// behavior that differs per kind is selected with a switch on Kind, and a
// capability a kind does not have is a no-op.
type Object struct {
	// ID is assigned by Scene.Add and is unique within the scene.
	ID   uint32
	Kind ObjectKind

	// Properties holds the keyframes of this object.
	Properties *PropertyStore

	// OnEval is an optional per-tick hook that may adjust the displayed
	// snapshot (for example from an expression evaluator).
	OnEval func(o *Object, s *Snapshot) error

	display    Snapshot
	renderable bool
	selected   bool
	deleted    bool

	pathBuf []Vec2 // reused transform buffer
}

func newObject(kind ObjectKind, s Snapshot) *Object {
	return &Object{
		Kind:       kind,
		Properties: NewPropertyStore(1, s),
		display:    s.Clone(),
		renderable: true,
	}
}

// NewShape creates a polyline through points. The first point becomes the
// object's position and the path is stored relative to it.
func NewShape(c Color, points []Vec2) *Object {
	var origin Vec2
	if len(points) > 0 {
		origin = points[0]
	}
	path := make([]Vec2, len(points))
	for i, p := range points {
		path[i] = Vec2{X: p.X - origin.X, Y: p.Y - origin.Y}
	}
	return newObject(KindShape, Snapshot{P: origin, W: 1, H: 1, C: c, Path: path})
}

// NewVector creates a shape drawn with an arrow head on its last segment.
func NewVector(c Color, points []Vec2) *Object {
	o := NewShape(c, points)
	_ = o.Properties.Update(1, func(s *Snapshot) { s.V = true })
	o.display.V = true
	return o
}

// NewCircle creates a full circle centered at center.
func NewCircle(c Color, center Vec2) *Object {
	return newObject(KindCircle, Snapshot{
		P: center, W: 1, H: 1, C: c,
		AS: FloatPtr(0), AE: FloatPtr(fullTurn),
	})
}

// NewText creates a text label anchored at pos.
func NewText(text string, pos Vec2) *Object {
	return newObject(KindText, Snapshot{P: pos, W: 1, H: 1, C: ColorBlack, Text: StringPtr(text)})
}

// newObjectOfKind builds an empty object for a persisted type tag.
func newObjectOfKind(kind ObjectKind, ps *PropertyStore) *Object {
	o := &Object{Kind: kind, Properties: ps, renderable: true}
	if s, err := ps.Get(1); err == nil {
		o.display = s
	}
	return o
}

// Display returns the snapshot computed for the current tick.
func (o *Object) Display() Snapshot { return o.display }

// Renderable reports whether the last tick produced a snapshot.
func (o *Object) Renderable() bool { return o.renderable }

// IsSelected reports the selection state.
func (o *Object) IsSelected() bool { return o.selected }

// Select marks the object selected.
func (o *Object) Select() { o.selected = true }

// Deselect clears the selection state.
func (o *Object) Deselect() { o.selected = false }

// Delete marks the object for removal at the end of the current tick.
func (o *Object) Delete() { o.deleted = true }

// Deleted reports whether the object is pending removal.
func (o *Object) Deleted() bool { return o.deleted }

// CopyProperties duplicates the keyframe at from into to.
func (o *Object) CopyProperties(from, to int) error {
	return o.Properties.Copy(from, to)
}

// Eval runs the optional per-tick hook against the displayed snapshot.
func (o *Object) Eval() error {
	if o.OnEval == nil || !o.renderable {
		return nil
	}
	return o.OnEval(o, &o.display)
}

// InRect updates the selection state from a screen-space rectangle and
// reports the new state. Shapes are selected when any point is inside;
// circles and text when their anchor is.
func (o *Object) InRect(r Rect) bool {
	if !o.renderable {
		o.selected = false
		return false
	}
	switch o.Kind {
	case KindShape:
		o.selected = false
		for _, p := range o.screenPath() {
			if r.Contains(p.X, p.Y) {
				o.selected = true
				break
			}
		}
	case KindCircle, KindText:
		o.selected = r.Contains(o.display.P.X, o.display.P.Y)
	}
	return o.selected
}

// Render draws the displayed snapshot. Fully transparent objects are skipped.
func (o *Object) Render(dst Surface) {
	if !o.renderable || o.display.C.A <= 0 {
		return
	}
	s := &o.display
	switch o.Kind {
	case KindShape:
		pts := o.screenPath()
		if len(pts) < 2 {
			return
		}
		dst.StrokePath(pts, s.C, false)
		if s.V {
			dst.StrokePath(arrowHead(pts[len(pts)-2], pts[len(pts)-1]), s.C, false)
		}
	case KindCircle:
		dst.StrokePath(o.arcPath(), s.C, false)
	case KindText:
		dst.DrawText(s.TextValue(), s.P, finite(s.W), s.C)
	}
}

// screenPath transforms the displayed path into the reused buffer.
func (o *Object) screenPath() []Vec2 {
	s := &o.display
	m := localTransform(s)
	o.pathBuf = o.pathBuf[:0]
	for _, p := range s.Path {
		x, y := transformPoint(m, p.X, p.Y)
		o.pathBuf = append(o.pathBuf, Vec2{X: x, Y: y})
	}
	return o.pathBuf
}

func (o *Object) arcPath() []Vec2 {
	s := &o.display
	m := localTransform(s)
	start, end := s.Arc()
	start, end = finite(start), finite(end)
	o.pathBuf = o.pathBuf[:0]
	for i := 0; i <= arcSegments; i++ {
		a := start + (end-start)*float64(i)/arcSegments
		sin, cos := math.Sincos(a)
		x, y := transformPoint(m, cos*circleRadius, sin*circleRadius)
		o.pathBuf = append(o.pathBuf, Vec2{X: x, Y: y})
	}
	return o.pathBuf
}

func arrowHead(from, to Vec2) []Vec2 {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	left := angle + math.Pi*5/6
	right := angle - math.Pi*5/6
	return []Vec2{
		{X: to.X + math.Cos(left)*arrowSize, Y: to.Y + math.Sin(left)*arrowSize},
		to,
		{X: to.X + math.Cos(right)*arrowSize, Y: to.Y + math.Sin(right)*arrowSize},
	}
}
