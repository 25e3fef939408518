package system

import (
	"log/slog"

	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
	"github.com/Questionxble/2dgameproject-sub002/shard"
)

// KillFeedSystem credits kills to the controller whose owner landed the
// killing blow. Deaths are queued by the emitter and handled on Update.
type KillFeedSystem struct {
	controller *shard.Controller
	owner      ecs.Entity
	deaths     ecs.EventQueue[component.CombatEvent]
	kills      int
}

func NewKillFeedSystem(emitter *component.CombatEventEmitter, controller *shard.Controller, owner ecs.Entity) *KillFeedSystem {
	s := &KillFeedSystem{controller: controller, owner: owner}
	emitter.Subscribe(func(evt component.CombatEvent) {
		if evt.Type == component.EventDeath && evt.Attacker == s.owner {
			s.deaths.Push(evt)
		}
	})
	return s
}

// SetController retargets the feed, e.g. after the player respawns.
func (s *KillFeedSystem) SetController(c *shard.Controller, owner ecs.Entity) {
	if s == nil {
		return
	}
	s.controller = c
	s.owner = owner
}

// Kills returns the number of kills credited so far.
func (s *KillFeedSystem) Kills() int {
	if s == nil {
		return 0
	}
	return s.kills
}

func (s *KillFeedSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range s.deaths.Drain() {
		s.kills++
		slog.Debug("killfeed: enemy killed", "target", evt.Target, "weapon", evt.Weapon, "ability", evt.Ability)
		s.controller.OnEnemyKilled(shard.WeaponID(evt.Weapon))
	}
}
