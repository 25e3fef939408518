package system

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
	"github.com/Questionxble/2dgameproject-sub002/prefabs"
	"github.com/Questionxble/2dgameproject-sub002/shard"
)

// DummyConfig tunes an attack dummy.
type DummyConfig struct {
	Name   string
	Script string
	Width  float64
	Height float64
	Health int

	MoveSpeed   float64
	JumpSpeed   float64
	FollowRange float64
	AttackRange float64

	AttackDamage   int
	AttackWidth    float64
	AttackHeight   float64
	AttackLifetime float64
	AttackCooldown float64

	CorpseTime float64
	Respawn    bool
}

// NewDummyConfig converts a dummy prefab.
func NewDummyConfig(spec prefabs.DummySpec) DummyConfig {
	return DummyConfig{
		Name:           spec.Name,
		Script:         spec.Script,
		Width:          spec.Collider.Width,
		Height:         spec.Collider.Height,
		Health:         spec.Health,
		MoveSpeed:      spec.MoveSpeed,
		JumpSpeed:      spec.JumpSpeed,
		FollowRange:    spec.FollowRange,
		AttackRange:    spec.AttackRange,
		AttackDamage:   spec.Attack.Damage,
		AttackWidth:    spec.Attack.Width,
		AttackHeight:   spec.Attack.Height,
		AttackLifetime: spec.Attack.Lifetime,
		AttackCooldown: spec.Attack.Cooldown,
		CorpseTime:     spec.CorpseTime,
		Respawn:        spec.Respawn,
	}
}

// Stagger reports entities that are reeling from a hit and should not act.
// *KnockbackSystem satisfies it.
type Stagger interface {
	Staggered(e ecs.Entity, now float64) bool
}

// Dummy is one scripted attack dummy.
type Dummy struct {
	Actor  *component.Actor
	Spawn  cp.Vector
	Config DummyConfig
	State  string

	nextAttack float64
	lastHealth int
	diedAt     float64
	dead       bool
	targetDir  int
	targetDist float64
}

// DummyAISystem runs the dummies' scripts. Each frame it senses the nearest
// player, raises events for the script, and applies the script's movement
// and attacks. Dead dummies are removed after their corpse time and
// respawned when configured to.
type DummyAISystem struct {
	registry *component.Registry
	effects  *shard.EffectManager
	finder   shard.TargetFinder
	stagger  Stagger
	world    *ecs.World

	dummies  []*Dummy
	runtimes map[ecs.Entity]*aiScriptRuntime
}

func NewDummyAISystem(registry *component.Registry, effects *shard.EffectManager) *DummyAISystem {
	return &DummyAISystem{
		registry: registry,
		effects:  effects,
		finder:   shard.TargetFinder{Registry: registry},
		runtimes: make(map[ecs.Entity]*aiScriptRuntime),
	}
}

// Spawn creates a dummy at pos. A physics body is added when the world has
// a physics world.
func (s *DummyAISystem) Spawn(w *ecs.World, cfg DummyConfig, pos cp.Vector) *Dummy {
	if s == nil || w == nil {
		return nil
	}
	s.world = w
	d := &Dummy{Spawn: pos, Config: cfg}
	s.place(w, d)
	s.dummies = append(s.dummies, d)
	return d
}

func (s *DummyAISystem) place(w *ecs.World, d *Dummy) {
	cfg := d.Config
	e := w.CreateEntity()
	d.Actor = &component.Actor{
		Entity: e,
		Name:   cfg.Name,
		Team:   component.FactionEnemy,
		Pos:    d.Spawn,
		Width:  cfg.Width,
		Height: cfg.Height,
		Health: component.NewHealth(cfg.Health),
	}
	d.State = ""
	d.dead = false
	d.nextAttack = 0
	d.lastHealth = d.Actor.Health.Current
	w.PhysicsWorld().AddBody(e, d.Spawn, cfg.Width, cfg.Height)
	s.registry.Add(d.Actor)
	slog.Debug("ai: dummy spawned", "entity", e, "name", cfg.Name, "x", d.Spawn.X, "y", d.Spawn.Y)
}

// SetStagger makes staggered dummies skip their script until they recover.
func (s *DummyAISystem) SetStagger(st Stagger) {
	if s == nil {
		return
	}
	s.stagger = st
}

// Dummies returns the managed dummies.
func (s *DummyAISystem) Dummies() []*Dummy {
	if s == nil {
		return nil
	}
	return s.dummies
}

// Reload drops every compiled script; they are loaded again on next use.
func (s *DummyAISystem) Reload() {
	if s == nil {
		return
	}
	clear(s.runtimes)
	for _, d := range s.dummies {
		d.State = ""
	}
}

func (s *DummyAISystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.world = w
	now := w.Now()
	kept := s.dummies[:0]
	for _, d := range s.dummies {
		if d.Actor.IsAlive() {
			if s.stagger == nil || !s.stagger.Staggered(d.Actor.Entity, now) {
				s.think(w, d, now)
			}
			kept = append(kept, d)
			continue
		}
		if !d.dead {
			d.dead = true
			d.diedAt = now
			delete(s.runtimes, d.Actor.Entity)
			w.PhysicsWorld().SetVelocity(d.Actor.Entity, cp.Vector{})
			slog.Debug("ai: dummy died", "entity", d.Actor.Entity)
		}
		if now-d.diedAt < d.Config.CorpseTime {
			kept = append(kept, d)
			continue
		}
		s.registry.Remove(d.Actor.Entity)
		w.DestroyEntity(d.Actor.Entity)
		if d.Config.Respawn {
			s.place(w, d)
			kept = append(kept, d)
		}
	}
	clear(s.dummies[len(kept):])
	s.dummies = kept
}

func (s *DummyAISystem) think(w *ecs.World, d *Dummy, now float64) {
	e := d.Actor.Entity
	rt, ok := s.runtimes[e]
	if !ok {
		var err error
		rt, err = loadScriptRuntime(d.Config.Script)
		if err != nil {
			slog.Warn("ai: load script", "entity", e, "script", d.Config.Script, "err", err)
			return
		}
		s.runtimes[e] = rt
	}

	events := s.sense(w, d, now)
	engine := buildDummyEngine(s, d, rt, events)
	if err := rt.step(d, engine); err != nil {
		slog.Warn("ai: script error", "entity", e, "state", d.State, "err", err)
	}
}

// sense computes the events the script sees this frame.
func (s *DummyAISystem) sense(w *ecs.World, d *Dummy, now float64) map[string]bool {
	events := make(map[string]bool, 6)
	a := d.Actor
	d.targetDir = 0
	d.targetDist = -1
	if t, ok := s.finder.FindNearest(a.Pos, d.Config.FollowRange, component.OfFaction(component.FactionPlayer)); ok && t.IsAlive() {
		d.targetDist = a.Pos.Distance(t.Pos)
		d.targetDir = int(math.Copysign(1, t.Pos.X-a.Pos.X))
		events["target_seen"] = true
		if math.Abs(t.Pos.X-a.Pos.X) <= d.Config.AttackRange+a.Width/2 && math.Abs(t.Pos.Y-a.Pos.Y) <= a.Height {
			events["in_range"] = true
		}
	}
	if now >= d.nextAttack {
		events["attack_ready"] = true
	}
	if cur := a.Health.Current; cur < d.lastHealth {
		events["damaged"] = true
		d.lastHealth = cur
	}
	if pw := w.PhysicsWorld(); pw != nil {
		c := pw.Contact(a.Entity)
		if c.Grounded {
			events["grounded"] = true
		}
		if (c.Wall == ecs.WallLeft && a.FacingLeft) || (c.Wall == ecs.WallRight && !a.FacingLeft) {
			events["blocked"] = true
		}
	}
	return events
}

// move sets horizontal velocity along dir (-1, 0, 1) and turns to face it.
// Without a body the dummy is moved directly.
func (s *DummyAISystem) move(d *Dummy, dir float64) {
	a := d.Actor
	dir = math.Max(-1, math.Min(1, dir))
	if dir != 0 {
		a.FacingLeft = dir < 0
	}
	vx := dir * d.Config.MoveSpeed
	pw := s.physics()
	if pw == nil {
		a.Pos.X += vx * s.dt()
		return
	}
	v, ok := pw.Velocity(a.Entity)
	if !ok {
		a.Pos.X += vx * s.dt()
		return
	}
	pw.SetVelocity(a.Entity, cp.Vector{X: vx, Y: v.Y})
}

func (s *DummyAISystem) jump(d *Dummy) bool {
	pw := s.physics()
	if pw == nil || !pw.Contact(d.Actor.Entity).Grounded {
		return false
	}
	v, _ := pw.Velocity(d.Actor.Entity)
	pw.SetVelocity(d.Actor.Entity, cp.Vector{X: v.X, Y: -d.Config.JumpSpeed})
	return true
}

// attack spawns a short hostile swipe in front of the dummy.
func (s *DummyAISystem) attack(d *Dummy) bool {
	now := s.now()
	if now < d.nextAttack || s.effects == nil {
		return false
	}
	a := d.Actor
	reach := a.Width/2 + d.Config.AttackWidth/2
	s.effects.Spawn(shard.EffectSpec{
		Owner:    a,
		Ability:  "swipe",
		Shape:    component.Box(d.Config.AttackWidth, d.Config.AttackHeight),
		Attach:   a,
		Offset:   a.Facing().Mult(reach),
		Damage:   d.Config.AttackDamage,
		Lifetime: d.Config.AttackLifetime,
		Filter:   component.OfFaction(component.FactionPlayer),
	})
	d.nextAttack = now + d.Config.AttackCooldown
	return true
}

// groundAhead probes for floor just past the dummy's leading edge.
func (s *DummyAISystem) groundAhead(d *Dummy) bool {
	pw := s.physics()
	if pw == nil {
		return true
	}
	a := d.Actor
	probe := cp.Vector{X: a.Pos.X + a.Facing().X*(a.Width/2+4), Y: a.Pos.Y}
	_, ok := pw.GroundRaycast(probe, a.Height/2+8)
	return ok
}

// Script callbacks read the world passed to the running Update.
func (s *DummyAISystem) physics() *ecs.PhysicsWorld { return s.world.PhysicsWorld() }
func (s *DummyAISystem) now() float64               { return s.world.Now() }
func (s *DummyAISystem) dt() float64                { return s.world.DT() }
