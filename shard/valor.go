package shard

import (
	"math"

	"github.com/Questionxble/2dgameproject-sub002/component"
)

// valorKit is the sword: swing, follow-through, flip and the charged wave.
type valorKit struct{}

func (valorKit) single(c *Controller) error {
	ev := FireEvent{Weapon: WeaponValor, Ability: AbilitySword, Gesture: GestureSingle}
	return c.fire(ev, false, func() (int, error) {
		c.swing(c.cfg.Valor.SwingDamage)
		return 1, nil
	})
}

// double is the follow-through swing. It is part of a committed combo and
// ignores the swing cooldown.
func (valorKit) double(c *Controller) error {
	ev := FireEvent{Weapon: WeaponValor, Ability: AbilitySword, Gesture: GestureDouble}
	err := c.fire(ev, true, func() (int, error) {
		c.swing(c.cfg.Valor.FollowThroughDamage)
		return 1, nil
	})
	if err == nil {
		c.beginSpecial(c.cfg.Valor.FollowThroughDuration)
	}
	return err
}

func (valorKit) triple(c *Controller) error {
	v := c.cfg.Valor
	ev := FireEvent{Weapon: WeaponValor, Ability: AbilityFlip, Gesture: GestureTriple}
	err := c.fire(ev, false, func() (int, error) {
		e := c.effects.Spawn(EffectSpec{
			Owner:    c.owner,
			Weapon:   WeaponValor,
			Ability:  AbilityFlip,
			Shape:    component.Circle(v.FlipRadius),
			Attach:   c.owner,
			Damage:   v.FlipDamage,
			Interval: v.FlipHitInterval,
			Lifetime: v.FlipDuration,
		})
		c.spin(e, v)
		return 1, nil
	})
	if err != nil {
		return err
	}
	c.buffs.Dispatch(WeaponValor, OutcomeFlip)
	c.beginSpecial(v.FlipDuration)
	return nil
}

// spin rotates the flip effect through FlipSpins turns over its lifetime.
func (c *Controller) spin(e *TimedEffect, v ValorConfig) {
	if e == nil || v.FlipSteps <= 0 {
		return
	}
	step := v.FlipDuration / float64(v.FlipSteps)
	angle := 2 * math.Pi * v.FlipSpins / float64(v.FlipSteps)
	if c.owner.FacingLeft {
		angle = -angle
	}
	var turn func(i int)
	turn = func(i int) {
		if e.Destroyed() {
			return
		}
		e.Rotation += angle
		if i+1 < v.FlipSteps {
			c.sched.After(c.owner.Entity, step, func() { turn(i + 1) })
		}
	}
	c.sched.After(c.owner.Entity, step, func() { turn(0) })
}

func (valorKit) held(*Controller) error { return nil }

func (valorKit) secondaryPress(c *Controller) error {
	if !c.cooldowns.CanFire(AbilityWave) {
		return ErrCooldownActive
	}
	c.charge.Begin(c.now())
	return nil
}

func (valorKit) secondaryHeld(c *Controller) {
	c.charge.Update(c.now())
}

func (valorKit) secondaryRelease(c *Controller) error {
	held, ok := c.charge.Release(c.now())
	if !ok {
		return nil
	}
	v := c.cfg.Valor
	level := ChargeLevel(held, c.cfg.ChargeThresholds)
	ev := FireEvent{Weapon: WeaponValor, Ability: AbilityWave, Gesture: GestureCharge, Level: level}
	err := c.fire(ev, false, func() (int, error) {
		f := c.facing()
		for i := 0; i < level; i++ {
			c.effects.Spawn(EffectSpec{
				Owner:    c.owner,
				Weapon:   WeaponValor,
				Ability:  AbilityWave,
				Shape:    component.Box(v.WaveWidth, v.WaveHeight),
				Pos:      c.owner.Pos.Add(f.Mult(v.SwingReach - float64(i)*v.WaveSpacing)),
				Velocity: f.Mult(v.WaveSpeed),
				Damage:   v.WaveDamage,
				Lifetime: v.WaveLifetime,
			})
		}
		return level, nil
	})
	if err == nil && level == len(c.cfg.ChargeThresholds)+1 {
		c.buffs.Dispatch(WeaponValor, OutcomeWaveMax)
	}
	return err
}

func (c *Controller) swing(damage int) {
	v := c.cfg.Valor
	c.effects.Spawn(EffectSpec{
		Owner:    c.owner,
		Weapon:   WeaponValor,
		Ability:  AbilitySword,
		Shape:    component.Box(v.SwingWidth, v.SwingHeight),
		Attach:   c.owner,
		Offset:   c.facing().Mult(v.SwingReach),
		Damage:   damage,
		Lifetime: v.SwingLifetime,
	})
}
