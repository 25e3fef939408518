package shard

import "github.com/Questionxble/2dgameproject-sub002/component"

// stormKit is lightning: bolt, surge, tempest and the chaining arc.
type stormKit struct{}

func (stormKit) single(c *Controller) error {
	s := c.cfg.Storm
	ev := FireEvent{Weapon: WeaponStorm, Ability: AbilityBolt, Gesture: GestureSingle}
	return c.fire(ev, false, func() (int, error) {
		t, ok := c.finder.FindNearest(c.owner.Pos, s.BoltRange, c.hostile())
		if !ok {
			return 0, ErrNoValidTarget
		}
		c.strike(t, s.BoltDamage, AbilityBolt)
		return 1, nil
	})
}

func (stormKit) double(c *Controller) error {
	s := c.cfg.Storm
	ev := FireEvent{Weapon: WeaponStorm, Ability: AbilitySurge, Gesture: GestureDouble}
	err := c.fire(ev, false, func() (int, error) {
		targets := c.finder.FindKNearestExcluding(c.owner.Pos, 0, s.BoltRange, s.SurgeTargets, c.hostile())
		if len(targets) == 0 {
			return 0, ErrNoValidTarget
		}
		for _, t := range targets {
			c.strike(t, s.SurgeDamage, AbilitySurge)
		}
		return len(targets), nil
	})
	if err == nil {
		c.beginSpecial(s.SurgeDuration)
	}
	return err
}

func (stormKit) triple(c *Controller) error {
	s := c.cfg.Storm
	ev := FireEvent{Weapon: WeaponStorm, Ability: AbilityTempest, Gesture: GestureTriple}
	err := c.fire(ev, false, func() (int, error) {
		c.effects.Spawn(EffectSpec{
			Owner:    c.owner,
			Weapon:   WeaponStorm,
			Ability:  AbilityTempest,
			Shape:    component.Circle(s.TempestRadius),
			Attach:   c.owner,
			Damage:   s.TempestDamage,
			Interval: s.TempestInterval,
			Lifetime: s.TempestLifetime,
		})
		return 1, nil
	})
	if err == nil {
		c.beginSpecial(s.TempestCastTime)
	}
	return err
}

func (stormKit) held(*Controller) error { return nil }

// secondaryPress strikes the nearest hostile with an arc that chains to the
// actors around it.
func (stormKit) secondaryPress(c *Controller) error {
	s := c.cfg.Storm
	ev := FireEvent{Weapon: WeaponStorm, Ability: AbilityArc, Gesture: GestureSecondary}
	var arcs []*component.Actor
	err := c.fire(ev, false, func() (int, error) {
		t, ok := c.finder.FindNearest(c.owner.Pos, s.ArcRange, c.hostile())
		if !ok {
			return 0, ErrNoValidTarget
		}
		c.hooks.OnArc(c.owner.Pos, t.Pos)
		c.strike(t, s.ArcDamage, AbilityArc)
		arcs = c.chain.Propagate(c.owner, t, s.ArcDamage)
		return 1 + len(arcs), nil
	})
	if err == nil && s.ChainBuffArcs > 0 && len(arcs) >= s.ChainBuffArcs {
		c.buffs.Dispatch(WeaponStorm, OutcomeChain)
	}
	return err
}

func (stormKit) secondaryHeld(*Controller)          {}
func (stormKit) secondaryRelease(*Controller) error { return nil }

// strike damages t at once and leaves a short visual at its position.
func (c *Controller) strike(t *component.Actor, damage int, ability AbilityID) {
	s := c.cfg.Storm
	c.resolver.Apply(t, component.Hit{
		Attacker: c.owner.Entity,
		Faction:  c.owner.Team,
		Damage:   damage,
		Weapon:   string(WeaponStorm),
		Ability:  string(ability),
	}, c.now())
	c.effects.Spawn(EffectSpec{
		Owner:    c.owner,
		Weapon:   WeaponStorm,
		Ability:  ability,
		Shape:    component.Circle(s.BoltRadius),
		Pos:      t.Pos,
		Lifetime: s.BoltLifetime,
		Visual:   true,
	})
}
