package frameshow

// Interpolate blends snapshot a towards b by t. A nil b returns a unchanged.
//
// Position, size, rotation, arc bounds, rxyz and path points blend linearly
// with t as given, so easing curves that overshoot carry through. Color is
// the exception: t is clamped to [0, 1] and an unchanged color is returned
// as is. Text switches from a to b at t = 0.5. Every other field comes from a.
func Interpolate(a Snapshot, b *Snapshot, t float64) Snapshot {
	if b == nil {
		return a
	}

	out := a.Clone()
	out.P = lerpVec2(a.P, b.P, t)
	out.W = lerp(a.W, b.W, t)
	out.H = lerp(a.H, b.H, t)
	out.R = lerp(a.R, b.R, t)
	out.C = interpolateColor(a.C, b.C, t)

	if a.AS != nil && b.AS != nil {
		v := lerp(*a.AS, *b.AS, t)
		out.AS = &v
	}
	if a.AE != nil && b.AE != nil {
		v := lerp(*a.AE, *b.AE, t)
		out.AE = &v
	}
	if a.RXYZ != nil && b.RXYZ != nil {
		var r Vec3
		for i := range 3 {
			r[i] = lerp(a.RXYZ[i], b.RXYZ[i], t)
		}
		out.RXYZ = &r
	}

	if a.Path != nil {
		if len(a.Path) == len(b.Path) {
			for i := range a.Path {
				out.Path[i] = lerpVec2(a.Path[i], b.Path[i], t)
			}
		} else if t >= 0.5 {
			// Unequal point counts cannot blend; cut over at the midpoint.
			out.Path = b.Clone().Path
		}
	}

	if t >= 0.5 {
		out.Text = nil
		if b.Text != nil {
			s := *b.Text
			out.Text = &s
		}
	}

	return out
}

// CheckInterpolable reports whether a and b can be blended field by field.
// It is used before a transition starts so mismatches surface as warnings
// instead of a broken frame.
func CheckInterpolable(a, b Snapshot) error {
	if a.Path != nil && len(a.Path) != len(b.Path) {
		return &PathLengthMismatchError{From: len(a.Path), To: len(b.Path)}
	}
	return nil
}

func interpolateColor(a, b Color, t float64) Color {
	if a == b {
		return a
	}
	t = clamp01(t)
	return Color{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
		A: lerp(a.A, b.A, t),
	}
}

func lerp(a, b, t float64) float64 {
	if a == b {
		return a
	}
	return (1-t)*a + t*b
}

func lerpVec2(a, b Vec2, t float64) Vec2 {
	return Vec2{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
}
