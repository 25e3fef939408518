package component

import "github.com/Questionxble/2dgameproject-sub002/ecs"

type hitKey struct {
	Source ecs.Entity
	Target ecs.Entity
}

// Hit describes one damage application.
type Hit struct {
	// Source is the effect or projectile delivering the damage. Re-hit
	// intervals are tracked per (Source, target).
	Source   ecs.Entity
	Attacker ecs.Entity
	Faction  Faction
	Damage   int
	Weapon   string
	Ability  string
	// Interval is the minimum time between two applications of the same
	// source on the same target. Zero means the source hits a target once.
	Interval float64
	// Repeat lets a zero-interval source hit the same target again.
	Repeat bool
}

// CombatResolver applies damage to targets and emits combat events.
type CombatResolver struct {
	Emitter *CombatEventEmitter

	lastHits map[hitKey]float64
}

// NewCombatResolver creates a resolver instance.
func NewCombatResolver(emitter *CombatEventEmitter) *CombatResolver {
	return &CombatResolver{
		Emitter:  emitter,
		lastHits: make(map[hitKey]float64),
	}
}

// Apply damages target with hit at time now. Returns true if damage was
// applied. Dead targets, friendly targets and targets still inside the
// source's re-hit interval are skipped.
func (r *CombatResolver) Apply(target Hittable, hit Hit, now float64) bool {
	if r == nil || target == nil || !target.IsAlive() || hit.Damage <= 0 {
		return false
	}
	if !CanHit(hit.Faction, target.Faction()) {
		return false
	}
	if r.isOnCooldown(hit, target.ID(), now) {
		return false
	}

	evt := CombatEvent{
		Type:     EventDamageApplied,
		Attacker: hit.Attacker,
		Target:   target.ID(),
		Damage:   hit.Damage,
		Weapon:   hit.Weapon,
		Ability:  hit.Ability,
		Time:     now,
		Pos:      target.Position(),
	}
	if !target.ApplyDamage(hit.Damage, evt) {
		return false
	}
	r.markHit(hit, target.ID(), now)
	if r.Emitter != nil {
		r.Emitter.Emit(evt)
		if !target.IsAlive() {
			evt.Type = EventDeath
			r.Emitter.Emit(evt)
		}
	}
	return true
}

// HasHit reports whether source has already landed on target.
func (r *CombatResolver) HasHit(source, target ecs.Entity) bool {
	if r == nil {
		return false
	}
	_, ok := r.lastHits[hitKey{Source: source, Target: target}]
	return ok
}

// Forget drops the re-hit bookkeeping of a source. Call it when the source
// despawns or starts a new pass.
func (r *CombatResolver) Forget(source ecs.Entity) {
	if r == nil {
		return
	}
	for k := range r.lastHits {
		if k.Source == source {
			delete(r.lastHits, k)
		}
	}
}

func (r *CombatResolver) isOnCooldown(hit Hit, target ecs.Entity, now float64) bool {
	if !hit.Source.Valid() {
		return false
	}
	last, ok := r.lastHits[hitKey{Source: hit.Source, Target: target}]
	if !ok {
		return false
	}
	if hit.Interval <= 0 {
		return !hit.Repeat
	}
	return now-last < hit.Interval
}

func (r *CombatResolver) markHit(hit Hit, target ecs.Entity, now float64) {
	if !hit.Source.Valid() {
		return
	}
	if r.lastHits == nil {
		r.lastHits = make(map[hitKey]float64)
	}
	r.lastHits[hitKey{Source: hit.Source, Target: target}] = now
}
