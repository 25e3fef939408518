package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/common"
	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
	"github.com/Questionxble/2dgameproject-sub002/shard"
)

type scriptedInput struct {
	frame shard.InputFrame
}

func (s *scriptedInput) Frame() shard.Input { return &s.frame }

type fixedLock bool

func (l fixedLock) IsSpecialAttackInProgress() bool { return bool(l) }

type sandbox struct {
	w        *ecs.World
	pw       *ecs.PhysicsWorld
	registry *component.Registry
	emitter  *component.CombatEventEmitter
	resolver *component.CombatResolver
	effects  *shard.EffectManager
}

func newSandbox(physics bool) *sandbox {
	w := ecs.NewWorld()
	emitter := &component.CombatEventEmitter{}
	s := &sandbox{
		w:        w,
		registry: component.NewRegistry(),
		emitter:  emitter,
		resolver: component.NewCombatResolver(emitter),
	}
	if physics {
		s.pw = ecs.NewPhysicsWorld(common.Gravity)
		w.SetPhysicsWorld(s.pw)
	}
	s.effects = shard.NewEffectManager(w, s.registry, s.resolver, nil)
	return s
}

func (s *sandbox) actor(team component.Faction, pos cp.Vector, hp int) *component.Actor {
	a := &component.Actor{
		Entity: s.w.CreateEntity(),
		Team:   team,
		Pos:    pos,
		Width:  24,
		Height: 44,
		Health: component.NewHealth(hp),
	}
	s.registry.Add(a)
	return a
}

func (s *sandbox) run(frames int) {
	for i := 0; i < frames; i++ {
		s.w.Update(common.FrameDT)
	}
}

func TestPlayerControllerAttachesToLadder(t *testing.T) {
	s := newSandbox(true)
	player := s.actor(component.FactionPlayer, cp.Vector{X: 605, Y: 600}, 100)
	s.pw.AddBody(player.Entity, player.Pos, player.Width, player.Height)
	ladders := []component.Ladder{{Bounds: cp.BB{L: 600, B: 500, R: 624, T: 660}}}

	in := &scriptedInput{}
	in.frame.Hold(shard.ActionUp)
	tuning := testPlayer
	ctrl := NewPlayerControllerSystem(player, &tuning, in, nil, ladders)
	s.w.AddSystem(ctrl)
	s.w.AddSystem(NewPhysicsSystem(s.registry))

	s.run(1)
	if ctrl.State() != "climb" {
		t.Fatalf("expected climb state, got %q", ctrl.State())
	}
	pos, _ := s.pw.Position(player.Entity)
	if pos.X != 612 {
		t.Fatalf("expected X snapped to 612, got %v", pos.X)
	}

	s.run(10)
	if v, _ := s.pw.Velocity(player.Entity); v.Y != -tuning.ClimbSpeed {
		t.Fatalf("expected climb velocity %v, got %v", -tuning.ClimbSpeed, v.Y)
	}
	if player.Pos.Y >= 600 {
		t.Fatalf("expected the player to climb, y=%v", player.Pos.Y)
	}
}

func TestPlayerControllerRefusesClimbDuringSpecial(t *testing.T) {
	s := newSandbox(true)
	player := s.actor(component.FactionPlayer, cp.Vector{X: 612, Y: 600}, 100)
	s.pw.AddBody(player.Entity, player.Pos, player.Width, player.Height)
	ladders := []component.Ladder{{Bounds: cp.BB{L: 600, B: 500, R: 624, T: 660}}}

	in := &scriptedInput{}
	in.frame.Hold(shard.ActionUp)
	tuning := testPlayer
	ctrl := NewPlayerControllerSystem(player, &tuning, in, fixedLock(true), ladders)
	s.w.AddSystem(ctrl)

	s.run(3)
	if ctrl.State() == "climb" {
		t.Fatalf("expected climbing to be refused during a special attack")
	}
}

func TestPhysicsSystemSyncsActors(t *testing.T) {
	s := newSandbox(true)
	a := s.actor(component.FactionEnemy, cp.Vector{X: 100, Y: 100}, 10)
	s.pw.AddBody(a.Entity, a.Pos, a.Width, a.Height)
	loose := s.actor(component.FactionEnemy, cp.Vector{X: 300, Y: 100}, 10)
	s.w.AddSystem(NewPhysicsSystem(s.registry))

	s.run(10)
	if a.Pos.Y <= 100 {
		t.Fatalf("expected body to fall under gravity, y=%v", a.Pos.Y)
	}
	if loose.Pos != (cp.Vector{X: 300, Y: 100}) {
		t.Fatalf("expected actor without body untouched, got %v", loose.Pos)
	}
}

func testDummyConfig() DummyConfig {
	return DummyConfig{
		Name:           "dummy",
		Script:         "dummy.tengo",
		Width:          26,
		Height:         44,
		Health:         30,
		MoveSpeed:      120,
		JumpSpeed:      500,
		FollowRange:    300,
		AttackRange:    30,
		AttackDamage:   5,
		AttackWidth:    32,
		AttackHeight:   28,
		AttackLifetime: 0.2,
		AttackCooldown: 1,
		CorpseTime:     0.5,
		Respawn:        true,
	}
}

func TestDummyChasesAndAttacks(t *testing.T) {
	s := newSandbox(false)
	player := s.actor(component.FactionPlayer, cp.Vector{X: 200}, 100)
	ai := NewDummyAISystem(s.registry, s.effects)
	s.w.AddSystem(ai)
	s.w.AddSystem(NewCombatSystem(nil, nil, s.effects))
	d := ai.Spawn(s.w, testDummyConfig(), cp.Vector{X: 100})

	s.run(1)
	if d.State != "chase" {
		t.Fatalf("expected chase once the player is seen, got %q", d.State)
	}

	s.run(120)
	if d.Actor.Pos.X <= 100 {
		t.Fatalf("expected dummy to move toward the player, x=%v", d.Actor.Pos.X)
	}
	if d.Actor.FacingLeft {
		t.Fatalf("expected dummy to face the player")
	}
	if player.Health.Current >= 100 {
		t.Fatalf("expected the dummy to land a hit, hp=%d", player.Health.Current)
	}
}

func TestDummyIdlesWithoutTarget(t *testing.T) {
	s := newSandbox(false)
	s.actor(component.FactionPlayer, cp.Vector{X: 2000}, 100)
	ai := NewDummyAISystem(s.registry, s.effects)
	s.w.AddSystem(ai)
	d := ai.Spawn(s.w, testDummyConfig(), cp.Vector{X: 100})

	s.run(30)
	if d.State != "idle" {
		t.Fatalf("expected idle, got %q", d.State)
	}
	if d.Actor.Pos.X != 100 {
		t.Fatalf("expected dummy to stay put, x=%v", d.Actor.Pos.X)
	}
}

func TestDummyCorpseAndRespawn(t *testing.T) {
	tests := []struct {
		name    string
		respawn bool
	}{
		{name: "respawn", respawn: true},
		{name: "removed", respawn: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSandbox(false)
			ai := NewDummyAISystem(s.registry, s.effects)
			s.w.AddSystem(ai)
			cfg := testDummyConfig()
			cfg.Respawn = tt.respawn
			spawn := cp.Vector{X: 50, Y: 10}
			d := ai.Spawn(s.w, cfg, spawn)
			old := d.Actor.Entity

			d.Actor.Pos = cp.Vector{X: 80, Y: 10}
			d.Actor.ApplyDamage(1000, component.CombatEvent{})
			s.run(10)
			if !s.w.IsAlive(old) {
				t.Fatalf("expected corpse to stay during corpse time")
			}

			s.run(30)
			if s.w.IsAlive(old) {
				t.Fatalf("expected corpse entity destroyed")
			}
			if _, ok := s.registry.Get(old); ok {
				t.Fatalf("expected corpse unregistered")
			}
			if !tt.respawn {
				if len(ai.Dummies()) != 0 || s.registry.Len() != 0 {
					t.Fatalf("expected dummy gone, dummies=%d registered=%d", len(ai.Dummies()), s.registry.Len())
				}
				return
			}
			if len(ai.Dummies()) != 1 || ai.Dummies()[0] != d {
				t.Fatalf("expected the dummy to respawn in place")
			}
			if d.Actor.Entity == old || !d.Actor.IsAlive() || d.Actor.Pos != spawn {
				t.Fatalf("expected fresh dummy at spawn, got entity=%v alive=%v pos=%v", d.Actor.Entity, d.Actor.IsAlive(), d.Actor.Pos)
			}
			if _, ok := s.registry.Get(d.Actor.Entity); !ok {
				t.Fatalf("expected respawned dummy registered")
			}
		})
	}
}

func TestDummyScriptMissing(t *testing.T) {
	if _, err := loadScriptRuntime("missing.tengo"); err == nil {
		t.Fatalf("expected error for a missing script")
	}
	if _, err := loadScriptRuntime(""); err == nil {
		t.Fatalf("expected error for an empty script path")
	}
}

func newTestController(t *testing.T, s *sandbox, owner *component.Actor, weapons ...shard.WeaponID) *shard.Controller {
	t.Helper()
	c := shard.NewController(shard.DefaultConfig(), shard.Deps{
		World:    s.w,
		Owner:    owner,
		Registry: s.registry,
		Resolver: s.resolver,
		Effects:  s.effects,
	})
	for _, w := range weapons {
		if _, err := c.Equip(w); err != nil {
			t.Fatalf("equip %s: %v", w, err)
		}
	}
	return c
}

func TestKillFeedCreditsOwnerKills(t *testing.T) {
	s := newSandbox(false)
	player := s.actor(component.FactionPlayer, cp.Vector{}, 100)
	c := newTestController(t, s, player, shard.WeaponValor)
	feed := NewKillFeedSystem(s.emitter, c, player.Entity)
	s.w.AddSystem(feed)

	s.emitter.Emit(component.CombatEvent{Type: component.EventDeath, Attacker: player.Entity, Weapon: "valor"})
	s.emitter.Emit(component.CombatEvent{Type: component.EventDamageApplied, Attacker: player.Entity, Weapon: "valor"})
	s.emitter.Emit(component.CombatEvent{Type: component.EventDeath, Attacker: player.Entity + 99, Weapon: "valor"})
	s.run(1)

	if feed.Kills() != 1 {
		t.Fatalf("expected 1 credited kill, got %d", feed.Kills())
	}
	if got := c.Buffs().Stacks(shard.WeaponValor); got != 1 {
		t.Fatalf("expected 1 valor kill stack, got %d", got)
	}
	if got := c.UltimateCharge(); got != shard.DefaultConfig().Ultimate.KillGain {
		t.Fatalf("expected ultimate %v, got %v", shard.DefaultConfig().Ultimate.KillGain, got)
	}
}

func TestCombatSystemSwingKillsAndFeeds(t *testing.T) {
	s := newSandbox(false)
	player := s.actor(component.FactionPlayer, cp.Vector{}, 100)
	enemy := s.actor(component.FactionEnemy, cp.Vector{X: 36}, 1)
	c := newTestController(t, s, player, shard.WeaponValor)

	in := &scriptedInput{}
	s.w.AddSystem(NewCombatSystem(in, c, s.effects))
	feed := NewKillFeedSystem(s.emitter, c, player.Entity)
	s.w.AddSystem(feed)
	s.w.AddSystem(NewCleanupSystem(s.registry))

	in.frame.Press(shard.ActionPrimary)
	s.run(1)
	in.frame = in.frame.Next()
	in.frame.Release(shard.ActionPrimary)
	s.run(1)

	if enemy.IsAlive() {
		t.Fatalf("expected the swing to kill the enemy")
	}
	if feed.Kills() != 1 {
		t.Fatalf("expected the kill credited, got %d", feed.Kills())
	}
	cfg := shard.DefaultConfig()
	want := cfg.Ultimate.Gains[shard.AbilitySword] + cfg.Ultimate.KillGain
	if got := c.UltimateCharge(); got != want {
		t.Fatalf("expected ultimate %v, got %v", want, got)
	}
}

func TestCleanupUnregistersDestroyedEntities(t *testing.T) {
	s := newSandbox(false)
	a := s.actor(component.FactionEnemy, cp.Vector{}, 10)
	b := s.actor(component.FactionEnemy, cp.Vector{}, 10)
	s.w.AddSystem(NewCleanupSystem(s.registry))

	s.w.DestroyEntity(a.Entity)
	s.run(1)
	if _, ok := s.registry.Get(a.Entity); ok {
		t.Fatalf("expected destroyed entity unregistered")
	}
	if _, ok := s.registry.Get(b.Entity); !ok {
		t.Fatalf("expected live entity kept")
	}
}

func TestKnockbackPushesAwayFromAttacker(t *testing.T) {
	tests := []struct {
		name     string
		attacker cp.Vector
		wantX    float64
	}{
		{name: "from the left", attacker: cp.Vector{X: 150, Y: 300}, wantX: 1},
		{name: "from the right", attacker: cp.Vector{X: 250, Y: 300}, wantX: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSandbox(true)
			src := s.actor(component.FactionPlayer, tt.attacker, 100)
			dummy := s.actor(component.FactionEnemy, cp.Vector{X: 200, Y: 300}, 50)
			s.pw.AddBody(dummy.Entity, dummy.Pos, dummy.Width, dummy.Height)
			kb := NewKnockbackSystem(s.emitter, s.registry)
			s.w.AddSystem(kb)

			s.resolver.Apply(dummy, component.Hit{Attacker: src.Entity, Faction: component.FactionPlayer, Damage: 5}, 0)
			s.run(1)

			v, _ := s.pw.Velocity(dummy.Entity)
			if v.X*tt.wantX <= 0 || v.Y >= 0 {
				t.Fatalf("expected push along %v and upward, got %v", tt.wantX, v)
			}
			if !kb.Staggered(dummy.Entity, s.w.Now()) {
				t.Fatalf("expected dummy staggered after the hit")
			}
			s.run(30)
			if kb.Staggered(dummy.Entity, s.w.Now()) {
				t.Fatalf("expected stagger to wear off")
			}
		})
	}
}

func TestKnockbackIgnoresKillingBlow(t *testing.T) {
	s := newSandbox(true)
	src := s.actor(component.FactionPlayer, cp.Vector{X: 150, Y: 300}, 100)
	dummy := s.actor(component.FactionEnemy, cp.Vector{X: 200, Y: 300}, 5)
	s.pw.AddBody(dummy.Entity, dummy.Pos, dummy.Width, dummy.Height)
	s.w.AddSystem(NewKnockbackSystem(s.emitter, s.registry))

	s.resolver.Apply(dummy, component.Hit{Attacker: src.Entity, Faction: component.FactionPlayer, Damage: 5}, 0)
	s.run(1)
	if v, _ := s.pw.Velocity(dummy.Entity); v.X != 0 {
		t.Fatalf("expected no horizontal push on a corpse, got %v", v)
	}
}

func TestClusterRepulsionSeparatesEnemies(t *testing.T) {
	s := newSandbox(true)
	a := s.actor(component.FactionEnemy, cp.Vector{X: 300, Y: 300}, 10)
	b := s.actor(component.FactionEnemy, cp.Vector{X: 310, Y: 300}, 10)
	for _, act := range []*component.Actor{a, b} {
		s.pw.AddBody(act.Entity, act.Pos, act.Width, act.Height)
		s.pw.SetGravityEnabled(act.Entity, false)
	}
	s.w.AddSystem(NewClusterRepulsionSystem(s.registry))

	s.run(1)
	va, _ := s.pw.Velocity(a.Entity)
	vb, _ := s.pw.Velocity(b.Entity)
	if va.X >= 0 || vb.X <= 0 {
		t.Fatalf("expected enemies pushed apart, got %v and %v", va, vb)
	}
}

func TestHitFreezeWatchesOwnHits(t *testing.T) {
	tests := []struct {
		name   string
		damage int
		mine   bool
		want   int
	}{
		{name: "light hit", damage: 5, mine: true, want: hitFreezeFrames},
		{name: "heavy hit", damage: 25, mine: true, want: heavyHitFreezeFrames},
		{name: "someone else's hit", damage: 25, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSandbox(false)
			player := s.actor(component.FactionPlayer, cp.Vector{}, 100)
			other := s.actor(component.FactionPlayer, cp.Vector{}, 100)
			dummy := s.actor(component.FactionEnemy, cp.Vector{X: 20}, 100)
			got := 0
			s.w.AddSystem(NewHitFreezeSystem(s.emitter, player.Entity, func(frames int) { got = frames }))

			attacker := other.Entity
			if tt.mine {
				attacker = player.Entity
			}
			s.resolver.Apply(dummy, component.Hit{Attacker: attacker, Faction: component.FactionPlayer, Damage: tt.damage}, 0)
			s.run(1)
			if got != tt.want {
				t.Fatalf("expected freeze of %d frames, got %d", tt.want, got)
			}
		})
	}
}

func TestWhiteFlashBlinksAfterDamage(t *testing.T) {
	s := newSandbox(false)
	src := s.actor(component.FactionPlayer, cp.Vector{}, 100)
	dummy := s.actor(component.FactionEnemy, cp.Vector{X: 20}, 100)
	flash := NewWhiteFlashSystem(s.emitter)
	s.w.AddSystem(flash)

	s.resolver.Apply(dummy, component.Hit{Attacker: src.Entity, Faction: component.FactionPlayer, Damage: 1}, 0)
	if !flash.On(dummy.Entity) {
		t.Fatalf("expected flash on right after the hit")
	}
	s.run(whiteFlashInterval)
	if flash.On(dummy.Entity) {
		t.Fatalf("expected flash to blink off after one interval")
	}
	s.run(whiteFlashFrames)
	if _, ok := flash.flashes[dummy.Entity]; ok {
		t.Fatalf("expected flash to finish")
	}
}
