package component

import (
	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
	FactionEnvironment
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	case FactionEnvironment:
		return "environment"
	default:
		return "neutral"
	}
}

// CanHit reports whether an attack from attacker may damage target.
func CanHit(attacker, target Faction) bool {
	if attacker == FactionNeutral || target == FactionNeutral {
		return true
	}
	return attacker != target
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventHit           CombatEventType = "hit"
	EventDamageApplied CombatEventType = "damage_applied"
	EventDeath         CombatEventType = "death"
	EventChain         CombatEventType = "chain"
	EventRedirect      CombatEventType = "redirect"
)

// CombatEvent is emitted during combat resolution. Weapon and Ability name
// the source of the damage so kill-based passives can be credited.
type CombatEvent struct {
	Type     CombatEventType `msgpack:"type"`
	Attacker ecs.Entity      `msgpack:"attacker"`
	Target   ecs.Entity      `msgpack:"target"`
	Damage   int             `msgpack:"damage"`
	Weapon   string          `msgpack:"weapon,omitempty"`
	Ability  string          `msgpack:"ability,omitempty"`
	Time     float64         `msgpack:"time"`
	Pos      cp.Vector       `msgpack:"pos"`
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter allows components to emit combat events.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Subscribe appends a handler.
func (e *CombatEventEmitter) Subscribe(h CombatEventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}
