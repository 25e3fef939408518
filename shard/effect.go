package shard

import (
	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// EffectSpec configures a timed effect.
type EffectSpec struct {
	Owner   *component.Actor
	Weapon  WeaponID
	Ability AbilityID

	Shape    component.Shape
	Pos      cp.Vector
	Velocity cp.Vector
	// Attach makes the effect follow an actor at Offset.
	Attach *component.Actor
	Offset cp.Vector

	Damage int
	// Interval is the time between two hits on the same target. Zero hits
	// each target once.
	Interval float64
	Lifetime float64
	Filter   component.Filter
	// Visual effects never deal damage.
	Visual bool
}

// TimedEffect is a damage volume that lives for a fixed time.
type TimedEffect struct {
	Entity   ecs.Entity
	Owner    ecs.Entity
	Faction  component.Faction
	Weapon   WeaponID
	Ability  AbilityID
	Shape    component.Shape
	Pos      cp.Vector
	Velocity cp.Vector
	Rotation float64
	Damage   int
	Interval float64
	Lifetime float64
	Visual   bool

	attach    *component.Actor
	offset    cp.Vector
	filter    component.Filter
	destroyed bool
}

// Destroyed reports whether the effect has been removed.
func (e *TimedEffect) Destroyed() bool {
	return e == nil || e.destroyed
}

// EffectManager owns live timed effects: it moves them, applies their damage,
// counts their lifetime down and removes each exactly once.
type EffectManager struct {
	world    *ecs.World
	registry *component.Registry
	resolver *component.CombatResolver
	hooks    EffectHooks

	effects []*TimedEffect
}

func NewEffectManager(world *ecs.World, registry *component.Registry, resolver *component.CombatResolver, hooks EffectHooks) *EffectManager {
	if hooks == nil {
		hooks = nopHooks{}
	}
	return &EffectManager{world: world, registry: registry, resolver: resolver, hooks: hooks}
}

// SetHooks replaces the observer.
func (m *EffectManager) SetHooks(h EffectHooks) {
	if m == nil {
		return
	}
	if h == nil {
		h = nopHooks{}
	}
	m.hooks = h
}

// Spawn creates an effect. A non-positive lifetime keeps it for one update.
func (m *EffectManager) Spawn(spec EffectSpec) *TimedEffect {
	if m == nil || m.world == nil {
		return nil
	}
	e := &TimedEffect{
		Entity:   m.world.CreateEntity(),
		Weapon:   spec.Weapon,
		Ability:  spec.Ability,
		Shape:    spec.Shape,
		Pos:      spec.Pos,
		Velocity: spec.Velocity,
		Damage:   spec.Damage,
		Interval: spec.Interval,
		Lifetime: spec.Lifetime,
		Visual:   spec.Visual,
		attach:   spec.Attach,
		offset:   spec.Offset,
		filter:   spec.Filter,
	}
	if spec.Owner != nil {
		e.Owner = spec.Owner.Entity
		e.Faction = spec.Owner.Team
		if e.filter == nil {
			e.filter = component.HostileTo(spec.Owner)
		}
	}
	if e.attach != nil {
		e.Pos = e.attach.Pos.Add(e.offset)
	}
	m.effects = append(m.effects, e)
	m.hooks.OnSpawn(e.Entity, e.Ability, e.Pos)
	return e
}

// Update advances every live effect by dt.
func (m *EffectManager) Update(dt float64) {
	if m == nil {
		return
	}
	now := m.world.Now()
	// Effects spawned by hit callbacks join the next update.
	live := m.effects[:len(m.effects):len(m.effects)]
	for _, e := range live {
		if e.destroyed {
			continue
		}
		if e.attach != nil {
			if !e.attach.IsAlive() {
				m.Destroy(e)
				continue
			}
			e.Pos = e.attach.Pos.Add(e.offset)
		} else {
			e.Pos = e.Pos.Add(e.Velocity.Mult(dt))
		}
		if !e.Visual {
			m.applyDamage(e, now)
		}
		e.Lifetime -= dt
		if e.Lifetime <= 0 {
			m.Destroy(e)
		}
	}
	m.compact()
}

func (m *EffectManager) applyDamage(e *TimedEffect, now float64) {
	hit := component.Hit{
		Source:   e.Entity,
		Attacker: e.Owner,
		Faction:  e.Faction,
		Damage:   e.Damage,
		Weapon:   string(e.Weapon),
		Ability:  string(e.Ability),
		Interval: e.Interval,
	}
	overlapHits(m.registry, m.resolver, e.Shape, e.Pos, e.filter, hit, now)
}

// overlapHits applies hit to every actor overlapping shape at pos and returns
// the actors that took damage.
func overlapHits(reg *component.Registry, res *component.CombatResolver, shape component.Shape, pos cp.Vector, filter component.Filter, hit component.Hit, now float64) []*component.Actor {
	if reg == nil || res == nil {
		return nil
	}
	var hits []*component.Actor
	for _, a := range reg.Actors() {
		if !a.IsAlive() || (filter != nil && !filter(a)) {
			continue
		}
		if !shape.Overlaps(pos, a.Bounds()) {
			continue
		}
		if res.Apply(a, hit, now) {
			hits = append(hits, a)
		}
	}
	return hits
}

// Destroy removes an effect. It reports false if it was already removed.
func (m *EffectManager) Destroy(e *TimedEffect) bool {
	if m == nil || e == nil || e.destroyed {
		return false
	}
	e.destroyed = true
	m.resolver.Forget(e.Entity)
	m.world.DestroyEntity(e.Entity)
	m.hooks.OnDespawn(e.Entity, e.Ability)
	return true
}

// DestroyOwned removes every live effect owned by owner and returns how many
// were removed.
func (m *EffectManager) DestroyOwned(owner ecs.Entity) int {
	if m == nil {
		return 0
	}
	n := 0
	for _, e := range m.effects {
		if e.Owner == owner && m.Destroy(e) {
			n++
		}
	}
	m.compact()
	return n
}

// Live returns the effects that have not been removed.
func (m *EffectManager) Live() []*TimedEffect {
	if m == nil {
		return nil
	}
	out := make([]*TimedEffect, 0, len(m.effects))
	for _, e := range m.effects {
		if !e.destroyed {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of live effects.
func (m *EffectManager) Len() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, e := range m.effects {
		if !e.destroyed {
			n++
		}
	}
	return n
}

func (m *EffectManager) compact() {
	kept := m.effects[:0]
	for _, e := range m.effects {
		if !e.destroyed {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(m.effects); i++ {
		m.effects[i] = nil
	}
	m.effects = kept
}
