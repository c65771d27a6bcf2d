// Package anim provides easing curves and time-driven animated scalars.
package anim

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownEasing reports an easing name that ParseEasing does not recognize.
var ErrUnknownEasing = errors.New("unknown easing")

// Easing maps linear progress in [0,1] onto eased progress.
// Curves must return 0 at 0 and 1 at 1.
type Easing func(t float64) float64

// Linear returns progress unchanged.
func Linear(t float64) float64 {
	return clamp01(t)
}

// EaseIn is the standard "ease" curve, cubic-bezier(0.42, 0, 1, 1).
var EaseIn = CubicBezier(0.42, 0, 1, 1)

// EaseOut mirrors EaseIn so motion starts fast and settles gently.
var EaseOut = Out(EaseIn)

// EaseInOut runs EaseIn for the first half and its mirror for the second.
var EaseInOut = InOut(EaseIn)

// Out returns the time-reversed mirror of an easing.
func Out(e Easing) Easing {
	return func(t float64) float64 {
		return 1 - e(1-clamp01(t))
	}
}

// InOut makes an easing symmetric around the midpoint.
func InOut(e Easing) Easing {
	return func(t float64) float64 {
		t = clamp01(t)
		if t < 0.5 {
			return e(t*2) / 2
		}
		return 1 - e((1-t)*2)/2
	}
}

// CubicBezier returns a CSS-style timing curve through (0,0), (x1,y1), (x2,y2), (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	x1 = clamp01(x1)
	x2 = clamp01(x2)
	return func(t float64) float64 {
		t = clamp01(t)
		if t == 0 || t == 1 {
			return t
		}
		return bezierCoord(solveBezierX(t, x1, x2), y1, y2)
	}
}

// easingNames stores the canonical names accepted by ParseEasing.
var easingNames = map[string]Easing{
	"linear":      Linear,
	"ease":        EaseIn,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,
}

// ParseEasing resolves a config name such as "ease-out" into a curve.
func ParseEasing(name string) (Easing, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	if e, ok := easingNames[key]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
}

// bezierCoord evaluates one axis of the unit cubic bezier at parameter u.
func bezierCoord(u, p1, p2 float64) float64 {
	v := 1 - u
	return 3*v*v*u*p1 + 3*v*u*u*p2 + u*u*u
}

// bezierSlope is the derivative of bezierCoord with respect to u.
func bezierSlope(u, p1, p2 float64) float64 {
	v := 1 - u
	return 3*v*v*p1 + 6*v*u*(p2-p1) + 3*u*u*(1-p2)
}

// solveBezierX finds the curve parameter whose x coordinate equals x.
func solveBezierX(x, x1, x2 float64) float64 {
	const epsilon = 1e-7

	u := x
	for range 8 {
		diff := bezierCoord(u, x1, x2) - x
		if math.Abs(diff) < epsilon {
			return u
		}
		slope := bezierSlope(u, x1, x2)
		if math.Abs(slope) < 1e-6 {
			break
		}
		u -= diff / slope
	}

	// Newton stalled on a flat segment; bisect instead.
	lo, hi := 0.0, 1.0
	u = x
	for range 64 {
		got := bezierCoord(u, x1, x2)
		if math.Abs(got-x) < epsilon {
			return u
		}
		if got < x {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return u
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
