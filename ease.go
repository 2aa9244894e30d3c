package frameshow

import (
	"math"

	"github.com/tanema/gween/ease"
)

// easeInOut is the logistic ease-in-out curve used for frame transitions.
// It is not clamped: easeInOut(0) ≈ 0.0067 and easeInOut(1) ≈ 0.9933.
func easeInOut(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-(x-0.5)*10))
}

// EaseLogistic is easeInOut in the gween TweenFunc form, so it can drive a
// gween.Tween or be swapped for any curve from the ease package.
var EaseLogistic ease.TweenFunc = func(t, b, c, d float32) float32 {
	if d == 0 {
		return b + c
	}
	return b + c*float32(easeInOut(float64(t)/float64(d)))
}

// easeNames are the curves a transition can be configured with by name.
var easeNames = map[string]ease.TweenFunc{
	"logistic":   EaseLogistic,
	"linear":     ease.Linear,
	"inOutQuad":  ease.InOutQuad,
	"inOutCubic": ease.InOutCubic,
	"inOutSine":  ease.InOutSine,
	"outCubic":   ease.OutCubic,
	"outBounce":  ease.OutBounce,
}

// EaseByName returns the named transition curve. "logistic" and the empty
// name return nil, which selects the float64 logistic curve.
func EaseByName(name string) (ease.TweenFunc, bool) {
	if name == "" || name == "logistic" {
		return nil, true
	}
	fn, ok := easeNames[name]
	return fn, ok
}
