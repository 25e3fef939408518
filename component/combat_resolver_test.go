package component

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

func newTestActor(w *ecs.World, team Faction, hp int, pos cp.Vector) *Actor {
	return &Actor{Entity: w.CreateEntity(), Team: team, Pos: pos, Width: 20, Height: 20, Health: NewHealth(hp)}
}

func TestCombatResolverApply(t *testing.T) {
	w := ecs.NewWorld()
	source := w.CreateEntity()

	cases := []struct {
		name     string
		team     Faction
		hit      Hit
		times    []float64
		wantHP   int
		wantHits int
	}{
		{"enemy_single", FactionEnemy, Hit{Source: source, Faction: FactionPlayer, Damage: 10}, []float64{0}, 90, 1},
		{"friendly_ignored", FactionPlayer, Hit{Source: source, Faction: FactionPlayer, Damage: 10}, []float64{0}, 100, 0},
		{"once_per_source", FactionEnemy, Hit{Source: source, Faction: FactionPlayer, Damage: 10}, []float64{0, 0.5, 1}, 90, 1},
		{"interval", FactionEnemy, Hit{Source: source, Faction: FactionPlayer, Damage: 10, Interval: 0.25}, []float64{0, 0.1, 0.25, 0.3, 0.5}, 70, 3},
		{"repeat", FactionEnemy, Hit{Source: source, Faction: FactionPlayer, Damage: 5, Repeat: true}, []float64{0, 0}, 90, 2},
		{"sourceless", FactionEnemy, Hit{Faction: FactionPlayer, Damage: 5}, []float64{0, 0}, 90, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			emitter := &CombatEventEmitter{}
			applied := 0
			emitter.Subscribe(func(evt CombatEvent) {
				if evt.Type == EventDamageApplied {
					applied++
				}
			})
			r := NewCombatResolver(emitter)
			target := newTestActor(w, c.team, 100, cp.Vector{})
			for _, now := range c.times {
				r.Apply(target, c.hit, now)
			}
			if target.Health.Current != c.wantHP {
				t.Fatalf("expected hp %d, got %d", c.wantHP, target.Health.Current)
			}
			if applied != c.wantHits {
				t.Fatalf("expected %d damage events, got %d", c.wantHits, applied)
			}
		})
	}
}

func TestCombatResolverDeathAndDeadTarget(t *testing.T) {
	w := ecs.NewWorld()
	emitter := &CombatEventEmitter{}
	var deaths []CombatEvent
	emitter.Subscribe(func(evt CombatEvent) {
		if evt.Type == EventDeath {
			deaths = append(deaths, evt)
		}
	})
	r := NewCombatResolver(emitter)
	target := newTestActor(w, FactionEnemy, 10, cp.Vector{X: 3, Y: 4})

	hit := Hit{Faction: FactionPlayer, Damage: 15, Weapon: "storm", Ability: "bolt"}
	if !r.Apply(target, hit, 1) {
		t.Fatalf("expected first hit to apply")
	}
	if r.Apply(target, hit, 2) {
		t.Fatalf("dead target should not take damage")
	}
	if len(deaths) != 1 {
		t.Fatalf("expected exactly one death event, got %d", len(deaths))
	}
	if deaths[0].Weapon != "storm" || deaths[0].Target != target.Entity {
		t.Fatalf("death event lost its source: %+v", deaths[0])
	}
	if target.Health.Current != 0 {
		t.Fatalf("expected hp clamped to 0, got %d", target.Health.Current)
	}
}

func TestCombatResolverForget(t *testing.T) {
	w := ecs.NewWorld()
	r := NewCombatResolver(nil)
	source := w.CreateEntity()
	target := newTestActor(w, FactionEnemy, 100, cp.Vector{})
	hit := Hit{Source: source, Faction: FactionPlayer, Damage: 1}
	r.Apply(target, hit, 0)
	if !r.HasHit(source, target.Entity) {
		t.Fatalf("expected hit to be recorded")
	}
	r.Forget(source)
	if !r.Apply(target, hit, 0) {
		t.Fatalf("expected a fresh pass to hit again after Forget")
	}
}

func TestHostileToSkipsOwnerAndSummons(t *testing.T) {
	w := ecs.NewWorld()
	player := newTestActor(w, FactionPlayer, 10, cp.Vector{})
	summon := newTestActor(w, FactionNeutral, 10, cp.Vector{})
	summon.Owner = player.Entity
	enemy := newTestActor(w, FactionEnemy, 10, cp.Vector{})
	ally := newTestActor(w, FactionPlayer, 10, cp.Vector{})

	f := HostileTo(player)
	cases := []struct {
		name string
		a    *Actor
		want bool
	}{
		{"self", player, false},
		{"summon", summon, false},
		{"enemy", enemy, true},
		{"ally", ally, false},
		{"nil", nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := f(c.a); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestRegistryAddRemove(t *testing.T) {
	w := ecs.NewWorld()
	r := NewRegistry()
	a := newTestActor(w, FactionEnemy, 1, cp.Vector{})
	b := newTestActor(w, FactionEnemy, 1, cp.Vector{})
	r.Add(a)
	r.Add(b)
	r.Add(nil)
	if r.Len() != 2 {
		t.Fatalf("expected 2 actors, got %d", r.Len())
	}
	if !r.Remove(a.Entity) || r.Remove(a.Entity) {
		t.Fatalf("expected exactly one successful remove")
	}
	if _, ok := r.Get(b.Entity); !ok {
		t.Fatalf("expected b to remain registered")
	}
	seen := 0
	r.Each(func(*Actor) bool { seen++; return true })
	if seen != 1 {
		t.Fatalf("expected to visit 1 actor, got %d", seen)
	}
}

func TestShapeOverlaps(t *testing.T) {
	target := cp.BB{L: 10, B: 10, R: 20, T: 20}
	cases := []struct {
		name   string
		shape  Shape
		center cp.Vector
		want   bool
	}{
		{"box_inside", Box(4, 4), cp.Vector{X: 15, Y: 15}, true},
		{"box_touching", Box(10, 10), cp.Vector{X: 5, Y: 15}, true},
		{"box_apart", Box(4, 4), cp.Vector{X: 0, Y: 0}, false},
		{"circle_corner_miss", Circle(5), cp.Vector{X: 6, Y: 6}, false},
		{"circle_corner_hit", Circle(6), cp.Vector{X: 6, Y: 6}, true},
		{"circle_edge", Circle(3), cp.Vector{X: 8, Y: 15}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.shape.Overlaps(c.center, target); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}
