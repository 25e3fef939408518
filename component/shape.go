package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// ShapeKind selects how a Shape is tested against targets.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// Shape is the damage volume of a timed effect, centred on the effect
// position.
type Shape struct {
	Kind       ShapeKind
	HalfWidth  float64
	HalfHeight float64
	Radius     float64
}

// Box returns a box shape of the given full size.
func Box(width, height float64) Shape {
	return Shape{Kind: ShapeBox, HalfWidth: width / 2, HalfHeight: height / 2}
}

// Circle returns a circle shape.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Bounds returns the axis-aligned bounds of the shape placed at center.
func (s Shape) Bounds(center cp.Vector) cp.BB {
	hw, hh := s.HalfWidth, s.HalfHeight
	if s.Kind == ShapeCircle {
		hw, hh = s.Radius, s.Radius
	}
	return cp.BB{L: center.X - hw, B: center.Y - hh, R: center.X + hw, T: center.Y + hh}
}

// Overlaps reports whether the shape placed at center touches bb.
func (s Shape) Overlaps(center cp.Vector, bb cp.BB) bool {
	if s.Kind == ShapeCircle {
		cx := math.Max(bb.L, math.Min(center.X, bb.R))
		cy := math.Max(bb.B, math.Min(center.Y, bb.T))
		dx, dy := center.X-cx, center.Y-cy
		return dx*dx+dy*dy <= s.Radius*s.Radius
	}
	return BoundsIntersect(s.Bounds(center), bb)
}

// BoundsIntersect reports whether two boxes overlap (touching counts).
func BoundsIntersect(a, b cp.BB) bool {
	return a.L <= b.R && b.L <= a.R && a.B <= b.T && b.B <= a.T
}

// BoundsContain reports whether p lies inside bb.
func BoundsContain(bb cp.BB, p cp.Vector) bool {
	return p.X >= bb.L && p.X <= bb.R && p.Y >= bb.B && p.Y <= bb.T
}
