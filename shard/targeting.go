package shard

import (
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// TargetFinder answers nearest-target queries over the live registry. It
// never mutates actors. Equal distances are broken by entity index so that
// results do not depend on registry order.
type TargetFinder struct {
	Registry *component.Registry
}

type candidate struct {
	actor  *component.Actor
	distSq float64
}

func (f TargetFinder) collect(origin cp.Vector, excluded ecs.Entity, maxRange float64, filter component.Filter) []candidate {
	if f.Registry == nil || maxRange < 0 {
		return nil
	}
	rangeSq := maxRange * maxRange
	var out []candidate
	f.Registry.Each(func(a *component.Actor) bool {
		if a == nil || !a.IsAlive() {
			return true
		}
		if excluded.Valid() && a.Entity == excluded {
			return true
		}
		if filter != nil && !filter(a) {
			return true
		}
		d := a.Pos.DistanceSq(origin)
		if d > rangeSq {
			return true
		}
		out = append(out, candidate{actor: a, distSq: d})
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].distSq != out[j].distSq {
			return out[i].distSq < out[j].distSq
		}
		return out[i].actor.Entity.Index() < out[j].actor.Entity.Index()
	})
	return out
}

// FindNearest returns the closest live actor within maxRange accepted by
// filter.
func (f TargetFinder) FindNearest(origin cp.Vector, maxRange float64, filter component.Filter) (*component.Actor, bool) {
	c := f.collect(origin, 0, maxRange, filter)
	if len(c) == 0 {
		return nil, false
	}
	return c[0].actor, true
}

// FindKNearestExcluding returns up to k live actors within maxRange of
// origin, closest first, skipping excluded.
func (f TargetFinder) FindKNearestExcluding(origin cp.Vector, excluded ecs.Entity, maxRange float64, k int, filter component.Filter) []*component.Actor {
	if k <= 0 {
		return nil
	}
	c := f.collect(origin, excluded, maxRange, filter)
	if len(c) > k {
		c = c[:k]
	}
	out := make([]*component.Actor, len(c))
	for i := range c {
		out[i] = c[i].actor
	}
	return out
}
