package system

import (
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// ClusterRepulsionSystem pushes overlapping enemies apart. Actor bodies do
// not collide with each other, so without it chasing dummies stack up.
type ClusterRepulsionSystem struct {
	Radius   float64
	Strength float64

	registry *component.Registry
}

func NewClusterRepulsionSystem(registry *component.Registry) *ClusterRepulsionSystem {
	return &ClusterRepulsionSystem{
		Radius:   24.0,
		Strength: 40.0,
		registry: registry,
	}
}

func (cr *ClusterRepulsionSystem) Update(w *ecs.World) {
	if cr == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	bodies := make([]*cp.Body, 0, cr.registry.Len())
	cr.registry.Each(func(a *component.Actor) bool {
		if a.Team != component.FactionEnemy || !a.IsAlive() {
			return true
		}
		if b, ok := pw.Body(a.Entity); ok && b.Body != nil {
			bodies = append(bodies, b.Body)
		}
		return true
	})

	n := len(bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			bi, bj := bodies[i], bodies[j]

			// j -> i
			d := bi.Position().Sub(bj.Position())
			dist := d.Length()
			if dist == 0 {
				d = cp.Vector{X: (rand.Float64() - 0.5) * 1e-3, Y: (rand.Float64() - 0.5) * 1e-3}
				dist = d.Length()
			}
			if dist >= cr.Radius {
				continue
			}

			overlap := cr.Radius - dist
			mag := cr.Strength * (overlap / cr.Radius)
			impulse := d.Mult(mag * 0.5 / dist)

			bi.ApplyImpulseAtWorldPoint(impulse, bi.Position())
			bj.ApplyImpulseAtWorldPoint(impulse.Neg(), bj.Position())
		}
	}
}
