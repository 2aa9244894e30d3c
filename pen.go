package frameshow

// Stroke is one freehand drawing made during a presentation. Strokes belong
// to the frame they were drawn on and are not interpolated.
type Stroke struct {
	Frame int    `json:"frame"`
	C     Color  `json:"c"`
	Path  []Vec2 `json:"path"`
}

// Pen collects freehand strokes in screen space.
type Pen struct {
	Drawings []Stroke `json:"drawings"`

	// Color is used for new strokes.
	Color Color `json:"-"`

	active *Stroke
}

// NewPen creates an empty pen drawing in black.
func NewPen() *Pen {
	return &Pen{Drawings: []Stroke{}, Color: ColorBlack}
}

// Begin starts a stroke at p on frame.
func (p *Pen) Begin(frame int, at Vec2) {
	p.Drawings = append(p.Drawings, Stroke{Frame: frame, C: p.Color, Path: []Vec2{at}})
	p.active = &p.Drawings[len(p.Drawings)-1]
}

// Extend appends a point to the active stroke.
func (p *Pen) Extend(at Vec2) {
	if p.active == nil {
		return
	}
	p.active.Path = append(p.active.Path, at)
}

// End finishes the active stroke and reports whether one was open.
func (p *Pen) End() bool {
	open := p.active != nil
	p.active = nil
	return open
}

// Drawing reports whether a stroke is in progress.
func (p *Pen) Drawing() bool { return p.active != nil }

// Clear removes every stroke on frame.
func (p *Pen) Clear(frame int) {
	p.active = nil
	kept := p.Drawings[:0]
	for _, s := range p.Drawings {
		if s.Frame != frame {
			kept = append(kept, s)
		}
	}
	p.Drawings = kept
}

// Draw renders the strokes of frame.
func (p *Pen) Draw(dst Surface, frame int) {
	for i := range p.Drawings {
		s := &p.Drawings[i]
		if s.Frame == frame && len(s.Path) > 1 {
			dst.StrokePath(s.Path, s.C, false)
		}
	}
}
