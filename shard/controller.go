package shard

import (
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// Deps are the collaborators a Controller works with. Effects may be shared
// between controllers; the rest belongs to the owning world.
type Deps struct {
	World    *ecs.World
	Owner    *component.Actor
	Registry *component.Registry
	Resolver *component.CombatResolver
	Effects  *EffectManager
	Geometry Geometry
	Buffs    BuffSink
	Hooks    EffectHooks
}

// kit is the per-weapon ability set.
type kit interface {
	single(c *Controller) error
	double(c *Controller) error
	triple(c *Controller) error
	held(c *Controller) error
	secondaryPress(c *Controller) error
	secondaryHeld(c *Controller)
	secondaryRelease(c *Controller) error
}

// Controller turns the owner's input into shard abilities. It owns the
// weapon slots, cooldowns, click and charge gestures, the special-attack
// lock, the ultimate charge and the owner's thrown daggers.
type Controller struct {
	// OnFire observes every successful fire.
	OnFire func(FireEvent)

	cfg         Config
	world       *ecs.World
	sched       *ecs.Scheduler
	owner       *component.Actor
	resolver    *component.CombatResolver
	finder      TargetFinder
	effects     *EffectManager
	projectiles *Projectiles
	chain       *ChainPropagator
	buffs       *BuffDispatcher
	cooldowns   *Cooldowns
	ultimate    *UltimateCharge
	hooks       EffectHooks

	slots  Slots
	clicks *ClickSequence
	charge ChargeGesture
	kits   map[WeaponID]kit

	pendingDouble ecs.TimerID
	special       bool
	specialTimer  ecs.TimerID
	cleaned       bool
	lastErr       error
}

func NewController(cfg Config, deps Deps) *Controller {
	hooks := deps.Hooks
	if hooks == nil {
		hooks = nopHooks{}
	}
	effects := deps.Effects
	if effects == nil {
		effects = NewEffectManager(deps.World, deps.Registry, deps.Resolver, hooks)
	}
	var owner ecs.Entity
	if deps.Owner != nil {
		owner = deps.Owner.Entity
	}
	finder := TargetFinder{Registry: deps.Registry}
	c := &Controller{
		cfg:         cfg,
		world:       deps.World,
		sched:       deps.World.Scheduler(),
		owner:       deps.Owner,
		resolver:    deps.Resolver,
		finder:      finder,
		effects:     effects,
		projectiles: NewProjectiles(cfg.Whisper, deps.World, finder, deps.Resolver, deps.Geometry, hooks),
		chain:       NewChainPropagator(cfg.Storm, deps.World, finder, deps.Resolver, hooks),
		buffs:       NewBuffDispatcher(deps.World, deps.Buffs, cfg.Buffs),
		cooldowns:   NewCooldowns(deps.World, cfg.Cooldowns),
		ultimate:    NewUltimateCharge(cfg.Ultimate.Max),
		hooks:       hooks,
		kits: map[WeaponID]kit{
			WeaponValor:   valorKit{},
			WeaponWhisper: whisperKit{},
			WeaponStorm:   stormKit{},
		},
	}
	c.clicks = NewClickSequence(c.sched, owner, cfg.MultiClickWindow)
	return c
}

// SetConfig swaps in new tuning. Timers already scheduled keep the values
// they were scheduled with.
func (c *Controller) SetConfig(cfg Config) {
	if c == nil {
		return
	}
	c.cfg = cfg
	c.cooldowns.SetDurations(cfg.Cooldowns)
	c.ultimate.SetMax(cfg.Ultimate.Max)
	c.buffs.SetConfig(cfg.Buffs)
	c.projectiles.SetConfig(cfg.Whisper)
	c.chain.SetConfig(cfg.Storm)
	c.clicks.Window = cfg.MultiClickWindow
}

// Update handles one frame of input and advances the owner's daggers.
func (c *Controller) Update(in Input, dt float64) {
	if c == nil || c.cleaned {
		return
	}
	c.buffs.Prune()
	c.projectiles.Update(dt)
	if !c.active() || in == nil {
		return
	}
	k := c.kits[c.slots.Active()]
	if k == nil {
		return
	}

	if in.Pressed(ActionPrimary) {
		c.pressPrimary(k)
	} else if in.Held(ActionPrimary) {
		c.report(k.held(c))
	}

	if in.Pressed(ActionSecondary) {
		if c.special {
			slog.Debug("shard: secondary ignored during special", "weapon", c.slots.Active())
		} else {
			c.report(k.secondaryPress(c))
		}
	}
	if in.Released(ActionSecondary) {
		c.report(k.secondaryRelease(c))
	} else if in.Held(ActionSecondary) {
		k.secondaryHeld(c)
	}
}

func (c *Controller) pressPrimary(k kit) {
	if c.special {
		slog.Debug("shard: primary ignored during special", "weapon", c.slots.Active())
		return
	}
	switch c.clicks.Press(c.now()) {
	case ClickSingle:
		c.report(k.single(c))
	case ClickDouble:
		c.sched.Cancel(c.pendingDouble)
		c.pendingDouble = c.sched.After(c.owner.Entity, c.cfg.DoubleClickDelay, func() {
			c.pendingDouble = 0
			if !c.active() || c.kits[c.slots.Active()] != k {
				return
			}
			c.report(k.double(c))
		})
	case ClickTriple:
		if c.sched.Cancel(c.pendingDouble) {
			slog.Debug("shard: double click superseded by triple")
		}
		c.pendingDouble = 0
		c.report(k.triple(c))
	}
}

// fire runs do when ev.Ability is off cooldown (or bypass is set), then
// starts its cooldown and credits the fire.
func (c *Controller) fire(ev FireEvent, bypass bool, do func() (int, error)) error {
	if !bypass && !c.cooldowns.CanFire(ev.Ability) {
		return fmt.Errorf("shard: %s: %w", ev.Ability, ErrCooldownActive)
	}
	units, err := do()
	if err != nil {
		return fmt.Errorf("shard: %s: %w", ev.Ability, err)
	}
	c.cooldowns.RecordFire(ev.Ability)
	ev.Units = units
	c.credit(ev)
	return nil
}

// credit adds the ultimate gain of a fire and notifies observers.
func (c *Controller) credit(ev FireEvent) {
	c.ultimate.Add(c.cfg.Ultimate.Gains[ev.Ability])
	ev.Time = c.now()
	if c.OnFire != nil {
		c.OnFire(ev)
	}
}

func (c *Controller) report(err error) {
	if err == nil {
		return
	}
	c.lastErr = err
	slog.Debug("shard: ability not fired", "weapon", c.slots.Active(), "err", err)
}

// beginSpecial locks primary input for d seconds.
func (c *Controller) beginSpecial(d float64) {
	c.special = true
	c.sched.Cancel(c.specialTimer)
	c.specialTimer = c.sched.After(c.owner.Entity, d, func() {
		c.special = false
		c.specialTimer = 0
	})
}

// interrupt drops in-progress gestures, used when the active weapon changes.
func (c *Controller) interrupt() {
	c.clicks.Reset()
	c.charge.Cancel()
	c.sched.Cancel(c.pendingDouble)
	c.pendingDouble = 0
}

func (c *Controller) active() bool {
	return !c.cleaned && c.owner != nil && c.owner.IsAlive()
}

func (c *Controller) now() float64 {
	return c.world.Now()
}

func (c *Controller) facing() cp.Vector {
	return c.owner.Facing()
}

func (c *Controller) hostile() component.Filter {
	return component.HostileTo(c.owner)
}

// Equip puts a weapon into the first empty slot.
func (c *Controller) Equip(id WeaponID) (int, error) {
	if c == nil {
		return -1, ErrOwnerDestroyed
	}
	slot, err := c.slots.Equip(id)
	if err != nil {
		return slot, err
	}
	slog.Info("shard: equipped", "weapon", id.Name(), "slot", slot)
	return slot, nil
}

// Swap replaces the weapon in slot and returns the one it replaced.
func (c *Controller) Swap(id WeaponID, slot int) (WeaponID, error) {
	if c == nil {
		return WeaponNone, ErrOwnerDestroyed
	}
	prev, err := c.slots.Swap(id, slot)
	if err != nil {
		return prev, err
	}
	if slot == c.slots.ActiveIndex() && prev != id {
		c.interrupt()
	}
	slog.Info("shard: swapped", "weapon", id.Name(), "replaced", prev.Name(), "slot", slot)
	return prev, nil
}

// SwitchActive selects the active slot.
func (c *Controller) SwitchActive(slot int) error {
	if c == nil {
		return ErrOwnerDestroyed
	}
	if slot == c.slots.ActiveIndex() {
		return c.slots.SetActive(slot)
	}
	if err := c.slots.SetActive(slot); err != nil {
		return err
	}
	c.interrupt()
	return nil
}

// IsSpecialAttackInProgress reports whether a double or triple click special
// is playing.
func (c *Controller) IsSpecialAttackInProgress() bool {
	return c != nil && c.special
}

// ActiveWeaponName returns the display name of the active weapon.
func (c *Controller) ActiveWeaponName() string {
	if c == nil {
		return WeaponNone.Name()
	}
	return c.slots.Active().Name()
}

func (c *Controller) ActiveWeapon() WeaponID {
	if c == nil {
		return WeaponNone
	}
	return c.slots.Active()
}

func (c *Controller) UltimateCharge() float64 {
	if c == nil {
		return 0
	}
	return c.ultimate.Value()
}

func (c *Controller) UltimateMax() float64 {
	if c == nil {
		return 0
	}
	return c.ultimate.Max()
}

func (c *Controller) ConsumeUltimateCharge(amount float64) {
	if c == nil {
		return
	}
	c.ultimate.Consume(amount)
}

// OnEnemyKilled credits a kill to weapon: a kill stack if there is room and
// the kill's ultimate gain.
func (c *Controller) OnEnemyKilled(weapon WeaponID) {
	if c == nil || c.cleaned || !weapon.Valid() {
		return
	}
	c.buffs.OnKill(weapon)
	c.ultimate.Add(c.cfg.Ultimate.KillGain)
}

// Destroy cancels the owner's pending continuations and removes its effects
// and daggers. Only the first call does anything.
func (c *Controller) Destroy() bool {
	if c == nil || c.cleaned {
		return false
	}
	c.cleaned = true
	var owner ecs.Entity
	if c.owner != nil {
		owner = c.owner.Entity
	}
	c.sched.CancelOwner(owner)
	c.pendingDouble = 0
	c.specialTimer = 0
	c.special = false
	c.charge.Cancel()
	c.effects.DestroyOwned(owner)
	c.projectiles.DestroyOwned(owner)
	return true
}

func (c *Controller) Destroyed() bool {
	return c == nil || c.cleaned
}

func (c *Controller) Slot(i int) WeaponID {
	if c == nil {
		return WeaponNone
	}
	return c.slots.At(i)
}

func (c *Controller) ActiveSlot() int {
	if c == nil {
		return 0
	}
	return c.slots.ActiveIndex()
}

func (c *Controller) Cooldowns() *Cooldowns {
	if c == nil {
		return nil
	}
	return c.cooldowns
}

func (c *Controller) Buffs() *BuffDispatcher {
	if c == nil {
		return nil
	}
	return c.buffs
}

func (c *Controller) Effects() *EffectManager {
	if c == nil {
		return nil
	}
	return c.effects
}

func (c *Controller) Projectiles() *Projectiles {
	if c == nil {
		return nil
	}
	return c.projectiles
}

func (c *Controller) ClickCount() int {
	if c == nil {
		return 0
	}
	return c.clicks.Count()
}

// Charge returns the held charge time and the level it would fire at.
func (c *Controller) Charge() (float64, int, bool) {
	if c == nil || !c.charge.Charging() {
		return 0, 0, false
	}
	held := c.charge.Current()
	return held, ChargeLevel(held, c.cfg.ChargeThresholds), true
}

// LastError returns the most recent reason an ability did not fire.
func (c *Controller) LastError() error {
	if c == nil {
		return nil
	}
	return c.lastErr
}

func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}
