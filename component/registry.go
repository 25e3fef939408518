package component

import "github.com/Questionxble/2dgameproject-sub002/ecs"

// Filter selects actors for a query.
type Filter func(a *Actor) bool

// HostileTo selects live actors an attack from owner's team may damage,
// skipping owner itself and anything owner summoned.
func HostileTo(owner *Actor) Filter {
	if owner == nil {
		return func(a *Actor) bool { return a != nil }
	}
	return func(a *Actor) bool {
		if a == nil || a.Entity == owner.Entity {
			return false
		}
		if owner.Entity.Valid() && a.Owner == owner.Entity {
			return false
		}
		return CanHit(owner.Team, a.Team)
	}
}

// OfFaction selects actors of exactly one team.
func OfFaction(f Faction) Filter {
	return func(a *Actor) bool { return a != nil && a.Team == f }
}

// Registry is the index of live combat actors. Systems add actors as they
// spawn and remove them when they despawn, so queries never scan the world.
type Registry struct {
	actors ecs.SparseSet[*Actor]
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers or replaces an actor.
func (r *Registry) Add(a *Actor) {
	if r == nil || a == nil || !a.Entity.Valid() {
		return
	}
	r.actors.Set(a.Entity, a)
}

// Remove unregisters an entity. It reports whether anything was removed.
func (r *Registry) Remove(e ecs.Entity) bool {
	if r == nil {
		return false
	}
	return r.actors.Remove(e)
}

// Get returns the actor registered for e.
func (r *Registry) Get(e ecs.Entity) (*Actor, bool) {
	if r == nil {
		return nil, false
	}
	return r.actors.Get(e)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return r.actors.Len()
}

// Each calls fn for every registered actor until fn returns false.
// fn must not add or remove actors.
func (r *Registry) Each(fn func(a *Actor) bool) {
	if r == nil || fn == nil {
		return
	}
	for _, a := range r.actors.Values() {
		if !fn(a) {
			return
		}
	}
}

// Actors returns a snapshot of the registered actors.
func (r *Registry) Actors() []*Actor {
	if r == nil {
		return nil
	}
	vals := r.actors.Values()
	out := make([]*Actor, len(vals))
	copy(out, vals)
	return out
}
