package component

import (
	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/common"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// Targetable is anything a target query may return.
type Targetable interface {
	ID() ecs.Entity
	Position() cp.Vector
	Faction() Faction
	IsAlive() bool
}

// Damageable is anything that accepts damage.
type Damageable interface {
	IsAlive() bool
	ApplyDamage(amount int, evt CombatEvent) bool
}

// Hittable is a target that can also be damaged.
type Hittable interface {
	Targetable
	Damageable
}

// Actor is the combat view of a live entity: where it is, which way it faces,
// which team it fights for and how much health it has left.
type Actor struct {
	Entity ecs.Entity
	Name   string
	Team   Faction
	// Owner is set for summons; it is the entity that spawned them.
	Owner ecs.Entity

	Pos        cp.Vector
	FacingLeft bool
	Width      float64
	Height     float64

	Health *Health
}

func (a *Actor) ID() ecs.Entity {
	if a == nil {
		return 0
	}
	return a.Entity
}

func (a *Actor) Position() cp.Vector {
	if a == nil {
		return cp.Vector{}
	}
	return a.Pos
}

// Facing returns the horizontal unit vector the actor looks along.
func (a *Actor) Facing() cp.Vector {
	if a == nil {
		return cp.Vector{X: 1}
	}
	return common.FacingVector(a.FacingLeft)
}

func (a *Actor) Faction() Faction {
	if a == nil {
		return FactionNeutral
	}
	return a.Team
}

// IsAlive reports whether the actor can still act and be targeted. Actors
// without health never die.
func (a *Actor) IsAlive() bool {
	if a == nil {
		return false
	}
	if a.Health == nil {
		return true
	}
	return a.Health.IsAlive()
}

// ApplyDamage forwards to the actor's health. Actors without health are
// invulnerable.
func (a *Actor) ApplyDamage(amount int, evt CombatEvent) bool {
	if a == nil || a.Health == nil {
		return false
	}
	return a.Health.ApplyDamage(amount, evt)
}

// Bounds returns the actor's axis-aligned box.
func (a *Actor) Bounds() cp.BB {
	if a == nil {
		return cp.BB{}
	}
	hw, hh := a.Width/2, a.Height/2
	return cp.BB{L: a.Pos.X - hw, B: a.Pos.Y - hh, R: a.Pos.X + hw, T: a.Pos.Y + hh}
}
