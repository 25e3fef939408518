package system

import (
	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// CleanupSystem unregisters actors whose entity no longer exists.
type CleanupSystem struct {
	registry *component.Registry
	stale    []ecs.Entity
}

func NewCleanupSystem(registry *component.Registry) *CleanupSystem {
	return &CleanupSystem{registry: registry}
}

func (s *CleanupSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.stale = s.stale[:0]
	s.registry.Each(func(a *component.Actor) bool {
		if !w.IsAlive(a.Entity) {
			s.stale = append(s.stale, a.Entity)
		}
		return true
	})
	for _, e := range s.stale {
		s.registry.Remove(e)
	}
}
