package shard

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/component"
)

const testDT = 0.05

type rig struct {
	*arena
	c       *Controller
	effects *EffectManager
	hooks   *countingHooks
	sink    *recordingSink
	fires   []FireEvent
}

func newRig(t *testing.T, weapons ...WeaponID) *rig {
	t.Helper()
	a := newArena()
	hooks := &countingHooks{}
	effects := NewEffectManager(a.w, a.registry, a.resolver, hooks)
	sink := &recordingSink{}
	c := NewController(DefaultConfig(), Deps{
		World:    a.w,
		Owner:    a.player,
		Registry: a.registry,
		Resolver: a.resolver,
		Effects:  effects,
		Buffs:    sink,
		Hooks:    hooks,
	})
	c.cooldowns.Strict = true
	r := &rig{arena: a, c: c, effects: effects, hooks: hooks, sink: sink}
	c.OnFire = func(ev FireEvent) { r.fires = append(r.fires, ev) }
	for _, w := range weapons {
		if _, err := c.Equip(w); err != nil {
			t.Fatalf("equip %s: %v", w, err)
		}
	}
	return r
}

func (r *rig) frame(in InputFrame) {
	r.c.Update(&in, testDT)
	r.effects.Update(testDT)
	r.w.Update(testDT)
}

func (r *rig) idle(seconds float64) {
	for n := int(math.Round(seconds / testDT)); n > 0; n-- {
		r.frame(InputFrame{})
	}
}

// click presses primary for one frame and releases it on the next.
func (r *rig) click() {
	r.press(ActionPrimary)
	r.release(ActionPrimary)
}

func (r *rig) press(a Action) {
	var in InputFrame
	in.Press(a)
	r.frame(in)
}

func (r *rig) release(a Action) {
	var in InputFrame
	in.Release(a)
	r.frame(in)
}

func (r *rig) hold(a Action, seconds float64) {
	for n := int(math.Round(seconds / testDT)); n > 0; n-- {
		var in InputFrame
		in.Hold(a)
		r.frame(in)
	}
}

func (r *rig) count(g Gesture) int {
	n := 0
	for _, ev := range r.fires {
		if ev.Gesture == g {
			n++
		}
	}
	return n
}

func TestSingleClickFiresOnceAndResets(t *testing.T) {
	r := newRig(t, WeaponValor)
	r.click()
	if r.count(GestureSingle) != 1 {
		t.Fatalf("first click should fire at once, got %d fires", len(r.fires))
	}
	r.idle(1)
	if len(r.fires) != 1 {
		t.Fatalf("expected exactly one fire, got %d", len(r.fires))
	}
	if r.c.ClickCount() != 0 {
		t.Fatalf("expected click count reset after the window, got %d", r.c.ClickCount())
	}
}

func TestDoubleClick(t *testing.T) {
	r := newRig(t, WeaponValor)
	r.click() // t=0
	r.click() // t=0.1
	if r.count(GestureDouble) != 0 {
		t.Fatalf("double click should wait for its delay")
	}
	r.idle(1)

	if r.count(GestureSingle) != 1 || r.count(GestureDouble) != 1 || r.count(GestureTriple) != 0 {
		t.Fatalf("expected 1 single, 1 double, 0 triple; got %d/%d/%d",
			r.count(GestureSingle), r.count(GestureDouble), r.count(GestureTriple))
	}
	for _, ev := range r.fires {
		if ev.Gesture == GestureDouble && ev.Ability != AbilitySword {
			t.Fatalf("follow-through should be a sword swing, got %s", ev.Ability)
		}
	}
}

func TestTripleClick(t *testing.T) {
	r := newRig(t, WeaponValor)
	r.click() // t=0
	r.click() // t=0.1
	r.press(ActionPrimary)
	if r.count(GestureTriple) != 1 {
		t.Fatalf("triple click should fire immediately")
	}
	if r.c.ClickCount() != 0 {
		t.Fatalf("expected click count 0 right after triple, got %d", r.c.ClickCount())
	}
	r.release(ActionPrimary)
	r.idle(1)

	if r.count(GestureTriple) != 1 || r.count(GestureDouble) != 0 || r.count(GestureSingle) != 1 {
		t.Fatalf("expected single+triple only, got %d/%d/%d",
			r.count(GestureSingle), r.count(GestureDouble), r.count(GestureTriple))
	}
	if r.sink.shields != 1 {
		t.Fatalf("flip should grant a shield, got %d", r.sink.shields)
	}
}

func TestSpecialLocksPrimary(t *testing.T) {
	r := newRig(t, WeaponValor)
	r.click() // t=0
	r.click() // t=0.1, follow-through runs at 0.25 for 0.35s
	r.idle(0.2)
	if !r.c.IsSpecialAttackInProgress() {
		t.Fatalf("expected the follow-through to hold the special lock")
	}
	before := len(r.fires)
	r.click()
	if len(r.fires) != before {
		t.Fatalf("presses during a special must be ignored")
	}
	r.idle(0.5)
	if r.c.IsSpecialAttackInProgress() {
		t.Fatalf("special should have ended")
	}
	r.click()
	if len(r.fires) != before+1 {
		t.Fatalf("expected a fresh single click after the special")
	}
}

func TestChargeBuckets(t *testing.T) {
	cases := []struct {
		name      string
		hold      float64
		wantLevel int
	}{
		{"tap", 0.2, 1},
		{"level_two", 0.6, 2},
		{"level_three", 1.0, 3},
		{"full", 1.5, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, WeaponValor)
			r.press(ActionSecondary)
			r.hold(ActionSecondary, c.hold-testDT)
			r.release(ActionSecondary)

			if len(r.fires) != 1 {
				t.Fatalf("expected one wave fire, got %d", len(r.fires))
			}
			ev := r.fires[0]
			if ev.Ability != AbilityWave || ev.Level != c.wantLevel || ev.Units != c.wantLevel {
				t.Fatalf("expected wave level %d, got %+v", c.wantLevel, ev)
			}
			if r.effects.Len() != c.wantLevel {
				t.Fatalf("expected %d wave units, got %d", c.wantLevel, r.effects.Len())
			}
			wantBuff := 0
			if c.wantLevel == 4 {
				wantBuff = 1
			}
			if len(r.sink.stats) != wantBuff {
				t.Fatalf("expected %d wave buffs, got %d", wantBuff, len(r.sink.stats))
			}
		})
	}
}

func TestWhisperAutoRepeat(t *testing.T) {
	r := newRig(t, WeaponWhisper)
	r.press(ActionPrimary)
	r.hold(ActionPrimary, 1)
	repeats := r.count(GestureHold)
	if r.count(GestureSingle) != 1 || repeats < 3 {
		t.Fatalf("expected repeated stabs while held, got single=%d hold=%d", r.count(GestureSingle), repeats)
	}
	r.release(ActionPrimary)
	r.idle(1)
	if r.count(GestureHold) != repeats {
		t.Fatalf("auto-repeat must stop on release")
	}
}

func TestWhisperThrowThenRedirect(t *testing.T) {
	r := newRig(t, WeaponWhisper)
	r.spawn(component.FactionEnemy, cp.Vector{X: 100, Y: 150}, 100)

	var thrownAt, redirectedAt, remaining float64
	record := r.c.OnFire
	r.c.OnFire = func(ev FireEvent) {
		record(ev)
		switch ev.Ability {
		case AbilityDaggerThrow:
			thrownAt = ev.Time
		case AbilityRedirect:
			redirectedAt = ev.Time
			remaining = r.c.Cooldowns().Remaining(AbilityDaggerThrow)
		}
	}

	r.press(ActionSecondary)
	r.release(ActionSecondary)
	r.press(ActionSecondary)

	if len(r.fires) != 2 || r.fires[0].Ability != AbilityDaggerThrow || r.fires[1].Ability != AbilityRedirect {
		t.Fatalf("expected throw then redirect, got %+v", r.fires)
	}
	cfg := DefaultConfig()
	elapsed := redirectedAt - thrownAt
	want := cfg.Cooldowns[AbilityDaggerThrow] - elapsed + cfg.Whisper.RedirectCooldownPenalty
	if math.Abs(remaining-want) > 1e-9 {
		t.Fatalf("expected redirect to extend the throw cooldown to %v, got %v", want, remaining)
	}
	if remaining <= cfg.Cooldowns[AbilityDaggerThrow]-elapsed {
		t.Fatalf("expected the redirect penalty to lengthen the throw cooldown, got %v", remaining)
	}
	wantCharge := cfg.Ultimate.Gains[AbilityDaggerThrow] + cfg.Ultimate.Gains[AbilityRedirect]
	if r.c.UltimateCharge() != wantCharge {
		t.Fatalf("expected ultimate %v, got %v", wantCharge, r.c.UltimateCharge())
	}
}

func TestStormBoltNeedsTarget(t *testing.T) {
	r := newRig(t, WeaponStorm)
	r.click()
	if len(r.fires) != 0 {
		t.Fatalf("bolt without target must not fire")
	}
	if !errors.Is(r.c.LastError(), ErrNoValidTarget) {
		t.Fatalf("expected ErrNoValidTarget, got %v", r.c.LastError())
	}
	if r.c.UltimateCharge() != 0 || r.c.Cooldowns().Remaining(AbilityBolt) != 0 {
		t.Fatalf("failed bolt must not charge ultimate or start its cooldown")
	}

	enemy := r.spawn(component.FactionEnemy, cp.Vector{X: 100}, 100)
	r.idle(1)
	r.click()
	if enemy.Health.Current != 100-DefaultConfig().Storm.BoltDamage {
		t.Fatalf("expected bolt damage, got hp %d", enemy.Health.Current)
	}
}

func TestStormArcChains(t *testing.T) {
	r := newRig(t, WeaponStorm)
	struck := r.spawn(component.FactionEnemy, cp.Vector{X: 100}, 100)
	second := r.spawn(component.FactionEnemy, cp.Vector{X: 150}, 100)
	third := r.spawn(component.FactionEnemy, cp.Vector{X: 200}, 100)

	r.press(ActionSecondary)
	r.release(ActionSecondary)
	r.idle(1)

	s := DefaultConfig().Storm
	chain := int(math.Round(float64(s.ArcDamage) * s.ChainDamageMultiplier))
	if struck.Health.Current != 100-s.ArcDamage {
		t.Fatalf("expected arc damage on the nearest, got %d", struck.Health.Current)
	}
	if second.Health.Current != 100-chain || third.Health.Current != 100-chain {
		t.Fatalf("expected chain damage %d, got %d/%d", chain, second.Health.Current, third.Health.Current)
	}
	if len(r.fires) != 1 || r.fires[0].Units != 3 {
		t.Fatalf("expected one arc fire with 3 units, got %+v", r.fires)
	}
	if len(r.sink.stats) != 1 || r.sink.stats[0] != StatHaste {
		t.Fatalf("expected chain haste buff, got %v", r.sink.stats)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	r := newRig(t, WeaponWhisper)
	var in InputFrame
	in.Press(ActionPrimary)
	in.Press(ActionSecondary)
	r.frame(in)
	if r.effects.Len() == 0 || len(r.c.Projectiles().Live()) != 1 {
		t.Fatalf("expected a live stab and dagger before destroy")
	}

	if !r.c.Destroy() {
		t.Fatalf("first destroy should clean up")
	}
	if r.c.Destroy() {
		t.Fatalf("second destroy must be a no-op")
	}
	r.w.DestroyEntity(r.player.Entity)
	r.c.Destroy()

	for e, n := range r.hooks.despawned {
		if n != 1 {
			t.Fatalf("entity %v despawned %d times", e, n)
		}
	}
	if len(r.hooks.despawned) != r.hooks.spawned {
		t.Fatalf("expected every spawn to despawn once: spawned=%d despawned=%d", r.hooks.spawned, len(r.hooks.despawned))
	}
	if r.effects.Len() != 0 || len(r.c.Projectiles().Live()) != 0 {
		t.Fatalf("expected nothing left alive")
	}
	if r.w.Scheduler().Pending(r.player.Entity) != 0 {
		t.Fatalf("expected no pending continuations")
	}
	before := len(r.fires)
	r.click()
	if len(r.fires) != before {
		t.Fatalf("destroyed controller must not fire")
	}
}

func TestEquipSwapSwitch(t *testing.T) {
	r := newRig(t)
	if r.c.ActiveWeaponName() != "None" {
		t.Fatalf("expected no weapon at spawn")
	}
	if slot, err := r.c.Equip(WeaponStorm); err != nil || slot != 0 {
		t.Fatalf("expected storm in slot 0, got %d %v", slot, err)
	}
	if _, err := r.c.Equip(WeaponValor); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := r.c.Equip(WeaponWhisper); !errors.Is(err, ErrNoEmptySlot) {
		t.Fatalf("expected ErrNoEmptySlot, got %v", err)
	}
	if r.c.ActiveWeaponName() != "Storm" {
		t.Fatalf("expected Storm active, got %s", r.c.ActiveWeaponName())
	}

	r.c.SwitchActive(1)
	r.click()
	if r.c.ClickCount() != 1 {
		t.Fatalf("expected a click in progress")
	}
	if err := r.c.SwitchActive(0); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if r.c.ClickCount() != 0 {
		t.Fatalf("switching weapons should drop the click sequence")
	}
	if err := r.c.SwitchActive(3); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}

	prev, err := r.c.Swap(WeaponWhisper, 0)
	if err != nil || prev != WeaponStorm || r.c.ActiveWeaponName() != "Whisper" {
		t.Fatalf("expected whisper to replace storm, got prev=%v active=%s err=%v", prev, r.c.ActiveWeaponName(), err)
	}
}

func TestKillsStackAndChargeUltimate(t *testing.T) {
	r := newRig(t, WeaponValor)
	for i := 0; i < 6; i++ {
		r.c.OnEnemyKilled(WeaponValor)
	}
	if got := r.c.Buffs().Stacks(WeaponValor); got != 5 {
		t.Fatalf("expected 5 stacks, got %d", got)
	}
	if want := 6 * DefaultConfig().Ultimate.KillGain; r.c.UltimateCharge() != want {
		t.Fatalf("expected ultimate %v, got %v", want, r.c.UltimateCharge())
	}
	r.idle(DefaultConfig().Buffs.Kills[WeaponValor].Duration + 0.1)
	if got := r.c.Buffs().Stacks(WeaponValor); got != 0 {
		t.Fatalf("expected stacks to decay, got %d", got)
	}
	r.c.ConsumeUltimateCharge(1000)
	if r.c.UltimateCharge() != 0 {
		t.Fatalf("expected ultimate drained to 0")
	}
}
