package shard

import (
	"github.com/Questionxble/2dgameproject-sub002/common"
	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// ChainPropagator spreads a hit to the closest live actors around the struck
// one. Arc i lands chainDelay*i after the hit. Arcs never chain further.
type ChainPropagator struct {
	cfg      StormConfig
	world    *ecs.World
	finder   TargetFinder
	resolver *component.CombatResolver
	hooks    EffectHooks
}

func NewChainPropagator(cfg StormConfig, world *ecs.World, finder TargetFinder, resolver *component.CombatResolver, hooks EffectHooks) *ChainPropagator {
	if hooks == nil {
		hooks = nopHooks{}
	}
	return &ChainPropagator{cfg: cfg, world: world, finder: finder, resolver: resolver, hooks: hooks}
}

// SetConfig replaces the tuning used for future chains.
func (c *ChainPropagator) SetConfig(cfg StormConfig) {
	if c == nil {
		return
	}
	c.cfg = cfg
}

// Propagate schedules chain arcs from struck and returns the chosen targets,
// closest first. Each arc deals round(baseDamage * multiplier).
func (c *ChainPropagator) Propagate(owner, struck *component.Actor, baseDamage int) []*component.Actor {
	if c == nil || owner == nil || struck == nil {
		return nil
	}
	origin := struck.Pos
	targets := c.finder.FindKNearestExcluding(origin, struck.Entity, c.cfg.ChainRange, c.cfg.MaxChainArcs, component.HostileTo(owner))
	if len(targets) == 0 {
		return nil
	}
	damage := common.RoundDamage(float64(baseDamage), c.cfg.ChainDamageMultiplier)
	sched := c.world.Scheduler()
	for i, t := range targets {
		target := t
		sched.After(owner.Entity, c.cfg.ChainDelay*float64(i), func() {
			if !owner.IsAlive() || !target.IsAlive() {
				return
			}
			c.hooks.OnArc(origin, target.Pos)
			c.resolver.Apply(target, component.Hit{
				Attacker: owner.Entity,
				Faction:  owner.Team,
				Damage:   damage,
				Weapon:   string(WeaponStorm),
				Ability:  string(AbilityChain),
			}, c.world.Now())
		})
	}
	return targets
}
