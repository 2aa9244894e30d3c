package frameshow

// Snapshot is the full animatable property set of one object (or the camera)
// at one frame. Optional fields are pointers or nil slices so that a snapshot
// round-trips through JSON without gaining fields it never had.
type Snapshot struct {
	P     Vec2       `json:"p"`
	W     float64    `json:"w"`
	H     float64    `json:"h"`
	R     float64    `json:"r"`
	C     Color      `json:"c"`
	Path  []Vec2     `json:"path,omitempty"`
	Text  *string    `json:"t,omitempty"`
	RXYZ  *Vec3      `json:"rxyz,omitempty"`
	Style CoordStyle `json:"style,omitempty"`
	AS    *float64   `json:"a_s,omitempty"`
	AE    *float64   `json:"a_e,omitempty"`

	// V marks a shape drawn as a vector (arrow head on the last segment).
	V bool `json:"v,omitempty"`
}

// Clone returns a deep copy. Slices and pointer fields are never shared.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Path != nil {
		out.Path = make([]Vec2, len(s.Path))
		copy(out.Path, s.Path)
	}
	if s.Text != nil {
		t := *s.Text
		out.Text = &t
	}
	if s.RXYZ != nil {
		r := *s.RXYZ
		out.RXYZ = &r
	}
	if s.AS != nil {
		v := *s.AS
		out.AS = &v
	}
	if s.AE != nil {
		v := *s.AE
		out.AE = &v
	}
	return out
}

// Equal reports structural equality, including presence of optional fields.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.P != o.P || s.W != o.W || s.H != o.H || s.R != o.R || s.C != o.C ||
		s.Style != o.Style || s.V != o.V {
		return false
	}
	if len(s.Path) != len(o.Path) {
		return false
	}
	for i := range s.Path {
		if s.Path[i] != o.Path[i] {
			return false
		}
	}
	return eqPtr(s.Text, o.Text) && eqPtr(s.RXYZ, o.RXYZ) &&
		eqPtr(s.AS, o.AS) && eqPtr(s.AE, o.AE)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// TextValue returns the text field or "" when absent.
func (s Snapshot) TextValue() string {
	if s.Text == nil {
		return ""
	}
	return *s.Text
}

// Rotation returns rxyz or the zero rotation when absent.
func (s Snapshot) Rotation() Vec3 {
	if s.RXYZ == nil {
		return Vec3{}
	}
	return *s.RXYZ
}

// Arc returns the arc bounds, defaulting to a full circle.
func (s Snapshot) Arc() (start, end float64) {
	start, end = 0, fullTurn
	if s.AS != nil {
		start = *s.AS
	}
	if s.AE != nil {
		end = *s.AE
	}
	return start, end
}

// StringPtr and FloatPtr help build optional snapshot fields.
func StringPtr(s string) *string { return &s }

func FloatPtr(v float64) *float64 { return &v }
