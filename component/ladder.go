package component

import "github.com/jakecoffman/cp"

// Ladder is a climbable vertical strip.
type Ladder struct {
	Bounds cp.BB
}

func (l Ladder) CenterX() float64 {
	return (l.Bounds.L + l.Bounds.R) / 2
}

func (l Ladder) Top() float64 {
	return l.Bounds.B
}

func (l Ladder) Bottom() float64 {
	return l.Bounds.T
}

// Contains reports whether p is on the ladder.
func (l Ladder) Contains(p cp.Vector) bool {
	return BoundsContain(l.Bounds, p)
}

// FindLadder returns the first ladder containing p.
func FindLadder(ladders []Ladder, p cp.Vector) (Ladder, bool) {
	for _, l := range ladders {
		if l.Contains(p) {
			return l, true
		}
	}
	return Ladder{}, false
}
