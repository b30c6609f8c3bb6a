package animation

import (
	"math"
	"strings"
)

// Curve maps linear progress t in [0, 1] to eased progress.
type Curve func(t float64) float64

// LinearCurve returns progress unchanged.
func LinearCurve(t float64) float64 {
	return t
}

// Ease accelerates quickly and settles gently. Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.42, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.58, 1.0)

// EaseInOut is slow at both ends. Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)

// CurveByName resolves the curve names accepted in configuration files:
// linear, ease, ease-in, ease-out, ease-in-out.
func CurveByName(name string) (Curve, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return LinearCurve, true
	case "", "ease":
		return Ease, true
	case "ease-in", "easein":
		return EaseIn, true
	case "ease-out", "easeout":
		return EaseOut, true
	case "ease-in-out", "easeinout":
		return EaseInOut, true
	}
	return nil, false
}

// CubicBezier returns an easing function matching CSS cubic-bezier(). The
// curve runs from (0,0) to (1,1) with control points (x1,y1) and (x2,y2).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return bezierY(y1, y2, solveBezierX(x1, x2, t))
	}
}

// solveBezierX finds the curve parameter u whose x coordinate is t.
func solveBezierX(x1, x2, t float64) float64 {
	const epsilon = 1e-7

	u := t
	for range 8 {
		x := bezierY(x1, x2, u) - t
		if math.Abs(x) < epsilon {
			return clampUnit(u)
		}
		dx := bezierSlope(x1, x2, u)
		if math.Abs(dx) < epsilon {
			break
		}
		u -= x / dx
	}

	// Newton stalled; bisect.
	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for range 20 {
		x := bezierY(x1, x2, u) - t
		if math.Abs(x) < epsilon {
			break
		}
		if x > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}

// bezierY evaluates one axis of the cubic with endpoints 0 and 1.
func bezierY(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierSlope(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}
