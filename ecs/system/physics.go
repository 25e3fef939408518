package system

import (
	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// PhysicsSystem steps the world's physics and copies body positions back
// into the registered actors so combat queries see where bodies ended up.
type PhysicsSystem struct {
	registry *component.Registry
}

func NewPhysicsSystem(registry *component.Registry) *PhysicsSystem {
	return &PhysicsSystem{registry: registry}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	pw.Step(w.DT())
	s.registry.Each(func(a *component.Actor) bool {
		if pos, ok := pw.Position(a.Entity); ok {
			a.Pos = pos
		}
		return true
	})
}
