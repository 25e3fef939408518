package system

import (
	"github.com/Questionxble/2dgameproject-sub002/ecs"
	"github.com/Questionxble/2dgameproject-sub002/shard"
)

// CombatSystem feeds input to a shard controller and advances the shared
// timed effects.
type CombatSystem struct {
	input      InputSource
	controller *shard.Controller
	effects    *shard.EffectManager
}

// NewCombatSystem creates the system. controller may be nil when only
// effects need updating.
func NewCombatSystem(input InputSource, controller *shard.Controller, effects *shard.EffectManager) *CombatSystem {
	return &CombatSystem{input: input, controller: controller, effects: effects}
}

// SetController replaces the driven controller.
func (s *CombatSystem) SetController(c *shard.Controller) {
	if s == nil {
		return
	}
	s.controller = c
}

func (s *CombatSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DT()
	if s.controller != nil && !s.controller.Destroyed() {
		var in shard.Input = &shard.InputFrame{}
		if s.input != nil {
			in = s.input.Frame()
		}
		s.controller.Update(in, dt)
	}
	s.effects.Update(dt)
}
