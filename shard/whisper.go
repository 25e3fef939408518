package shard

import (
	"fmt"
	"math"

	"github.com/Questionxble/2dgameproject-sub002/common"
	"github.com/Questionxble/2dgameproject-sub002/component"
)

// whisperKit is the daggers: stab with auto-repeat, flurry, fan and the
// thrown dagger that can be redirected.
type whisperKit struct{}

func (whisperKit) single(c *Controller) error {
	return c.stabFire(GestureSingle)
}

// held repeats the stab at its cooldown while primary stays down.
func (whisperKit) held(c *Controller) error {
	if c.special || !c.cooldowns.CanFire(AbilityDaggerMelee) {
		return nil
	}
	return c.stabFire(GestureHold)
}

func (c *Controller) stabFire(g Gesture) error {
	ev := FireEvent{Weapon: WeaponWhisper, Ability: AbilityDaggerMelee, Gesture: g}
	return c.fire(ev, false, func() (int, error) {
		c.stab(c.cfg.Whisper.StabDamage, AbilityDaggerMelee)
		return 1, nil
	})
}

func (whisperKit) double(c *Controller) error {
	w := c.cfg.Whisper
	ev := FireEvent{Weapon: WeaponWhisper, Ability: AbilityFlurry, Gesture: GestureDouble}
	err := c.fire(ev, false, func() (int, error) {
		for i := 0; i < w.FlurryHits; i++ {
			c.sched.After(c.owner.Entity, float64(i)*w.FlurryInterval, func() {
				if !c.active() {
					return
				}
				c.stab(w.FlurryDamage, AbilityFlurry)
			})
		}
		return w.FlurryHits, nil
	})
	if err == nil {
		c.beginSpecial(float64(w.FlurryHits) * w.FlurryInterval)
	}
	return err
}

func (whisperKit) triple(c *Controller) error {
	w := c.cfg.Whisper
	ev := FireEvent{Weapon: WeaponWhisper, Ability: AbilityFan, Gesture: GestureTriple}
	err := c.fire(ev, false, func() (int, error) {
		n := w.FanCount
		if n <= 0 {
			return 0, nil
		}
		spread := w.FanSpread * math.Pi / 180
		f := c.facing()
		for i := 0; i < n; i++ {
			angle := 0.0
			if n > 1 {
				angle = -spread/2 + spread*float64(i)/float64(n-1)
			}
			c.projectiles.Throw(c.owner, c.owner.Pos, common.Rotate(f, angle))
		}
		return n, nil
	})
	if err == nil {
		c.beginSpecial(w.FanDuration)
	}
	return err
}

// secondaryPress redirects the newest dagger still in flight, or throws a new
// one when there is none. A redirect lengthens the throw cooldown.
func (whisperKit) secondaryPress(c *Controller) error {
	if p := c.projectiles.Redirectable(c.owner.Entity); p != nil {
		if err := c.projectiles.Redirect(p); err != nil {
			return fmt.Errorf("shard: redirect: %w", err)
		}
		c.cooldowns.Extend(AbilityDaggerThrow, c.cfg.Whisper.RedirectCooldownPenalty)
		c.credit(FireEvent{Weapon: WeaponWhisper, Ability: AbilityRedirect, Gesture: GestureSecondary, Units: 1})
		return nil
	}
	ev := FireEvent{Weapon: WeaponWhisper, Ability: AbilityDaggerThrow, Gesture: GestureSecondary}
	return c.fire(ev, false, func() (int, error) {
		c.projectiles.Throw(c.owner, c.owner.Pos, c.facing())
		return 1, nil
	})
}

func (whisperKit) secondaryHeld(*Controller)          {}
func (whisperKit) secondaryRelease(*Controller) error { return nil }

func (c *Controller) stab(damage int, ability AbilityID) {
	w := c.cfg.Whisper
	c.effects.Spawn(EffectSpec{
		Owner:    c.owner,
		Weapon:   WeaponWhisper,
		Ability:  ability,
		Shape:    component.Box(w.StabWidth, w.StabHeight),
		Attach:   c.owner,
		Offset:   c.facing().Mult(w.StabReach),
		Damage:   damage,
		Lifetime: w.StabLifetime,
	})
}
