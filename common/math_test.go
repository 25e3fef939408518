package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestRoundDamage(t *testing.T) {
	cases := []struct {
		name string
		base float64
		mult float64
		want int
	}{
		{"half_rounds_up", 25, 0.5, 13},
		{"exact", 20, 0.5, 10},
		{"below_half", 11, 0.6, 7},
		{"zero_mult", 40, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := RoundDamage(c.base, c.mult); got != c.want {
				t.Fatalf("expected %d, got %d", c.want, got)
			}
		})
	}
}

func TestDirectionFallback(t *testing.T) {
	fb := cp.Vector{X: -1}
	if got := Direction(cp.Vector{X: 3, Y: 3}, cp.Vector{X: 3, Y: 3}, fb); got != fb {
		t.Fatalf("expected fallback %v, got %v", fb, got)
	}
	got := Direction(cp.Vector{}, cp.Vector{X: 0, Y: 10}, fb)
	if math.Abs(got.Y-1) > 1e-9 || math.Abs(got.X) > 1e-9 {
		t.Fatalf("expected unit +Y, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Fatalf("clamp out of range")
	}
}
