package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundDamage scales a base damage value and rounds half away from zero.
func RoundDamage(base, multiplier float64) int {
	return int(math.Round(base * multiplier))
}

// Direction returns the unit vector from a to b, or fallback when the points coincide.
func Direction(a, b, fallback cp.Vector) cp.Vector {
	d := b.Sub(a)
	if d.LengthSq() < 1e-12 {
		return fallback
	}
	return d.Normalize()
}

// FacingVector converts a facing sign into a horizontal unit vector.
func FacingVector(facingLeft bool) cp.Vector {
	if facingLeft {
		return cp.Vector{X: -1}
	}
	return cp.Vector{X: 1}
}

// Rotate rotates v by angle radians.
func Rotate(v cp.Vector, angle float64) cp.Vector {
	s, c := math.Sincos(angle)
	return cp.Vector{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
