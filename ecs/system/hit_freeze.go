package system

import (
	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

const (
	hitFreezeFrames      = 2
	heavyHitFreezeFrames = 5
	heavyHitDamage       = 20
)

// HitFreezeSystem asks the game loop to hold the simulation for a few frames
// when the watched entity lands or takes a hit. Heavier hits hold longer.
type HitFreezeSystem struct {
	onFreeze func(frames int)
	watched  ecs.Entity
	pending  int
}

func NewHitFreezeSystem(emitter *component.CombatEventEmitter, watched ecs.Entity, onFreeze func(frames int)) *HitFreezeSystem {
	s := &HitFreezeSystem{onFreeze: onFreeze, watched: watched}
	emitter.Subscribe(func(evt component.CombatEvent) {
		if evt.Type != component.EventDamageApplied {
			return
		}
		if evt.Attacker != s.watched && evt.Target != s.watched {
			return
		}
		frames := hitFreezeFrames
		if evt.Damage >= heavyHitDamage {
			frames = heavyHitFreezeFrames
		}
		s.pending = max(s.pending, frames)
	})
	return s
}

func (s *HitFreezeSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	frames := s.pending
	s.pending = 0
	if frames > 0 && s.onFreeze != nil {
		s.onFreeze(frames)
	}
}
