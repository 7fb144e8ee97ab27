// Package ease provides easing curves mapping linear progress in [0, 1] to
// eased progress in [0, 1].
package ease

import (
	"fmt"
	"math"
	"strings"
)

// Func is an easing curve. Implementations must map 0 to 0 and 1 to 1.
type Func func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return t }

// SineInOut accelerates and decelerates along a half cosine.
func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// QuadInOut is a symmetric quadratic curve.
func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// CubicInOut is a symmetric cubic curve.
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// MaxSlope is an upper bound of the derivative of every curve in this
// package. Callers use it to bound how far a value can move per tick.
const MaxSlope = 3.0

var byName = map[string]Func{
	"linear":      Linear,
	"sine":        SineInOut,
	"sine.inout":  SineInOut,
	"quad":        QuadInOut,
	"quad.inout":  QuadInOut,
	"cubic":       CubicInOut,
	"cubic.inout": CubicInOut,
}

// Parse returns the curve registered under name. An empty name is Linear.
func Parse(name string) (Func, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Linear, nil
	}
	f, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return f, nil
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	return min(max(t, 0), 1)
}
