package shard

import (
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/common"
	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// ProjectileState is the redirect state of a thrown dagger.
type ProjectileState int

const (
	Flying ProjectileState = iota
	Homing
	Stuck
	Expired
)

func (s ProjectileState) String() string {
	switch s {
	case Flying:
		return "flying"
	case Homing:
		return "homing"
	case Stuck:
		return "stuck"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// Projectile is a thrown dagger. It flies straight and passes through
// hostiles, damaging each once per leg. A redirect request sends it homing
// onto a nearby hostile; reaching it lands a strike and starts a new leg.
// The strike that uses up the last redirect expires and removes it.
type Projectile struct {
	Entity        ecs.Entity
	Owner         ecs.Entity
	Faction       component.Faction
	Weapon        WeaponID
	State         ProjectileState
	Pos           cp.Vector
	Velocity      cp.Vector
	RedirectCount int
	Expired       bool
	Target        *component.Actor

	lifetime   float64
	homingTime float64
	lastStruck ecs.Entity
	filter     component.Filter
	destroyed  bool
}

// Destroyed reports whether the projectile has been removed.
func (p *Projectile) Destroyed() bool {
	return p == nil || p.destroyed
}

// Heading returns the unit direction of travel.
func (p *Projectile) Heading() cp.Vector {
	if p == nil {
		return cp.Vector{X: 1}
	}
	return common.Direction(cp.Vector{}, p.Velocity, cp.Vector{X: 1})
}

// Projectiles owns live daggers.
type Projectiles struct {
	cfg      WhisperConfig
	world    *ecs.World
	finder   TargetFinder
	resolver *component.CombatResolver
	geometry Geometry
	hooks    EffectHooks

	list []*Projectile
}

func NewProjectiles(cfg WhisperConfig, world *ecs.World, finder TargetFinder, resolver *component.CombatResolver, geometry Geometry, hooks EffectHooks) *Projectiles {
	if hooks == nil {
		hooks = nopHooks{}
	}
	return &Projectiles{cfg: cfg, world: world, finder: finder, resolver: resolver, geometry: geometry, hooks: hooks}
}

// SetConfig replaces the tuning used for future updates.
func (ps *Projectiles) SetConfig(cfg WhisperConfig) {
	if ps == nil {
		return
	}
	ps.cfg = cfg
}

// Throw launches a dagger from pos along dir.
func (ps *Projectiles) Throw(owner *component.Actor, pos, dir cp.Vector) *Projectile {
	if ps == nil || ps.world == nil || owner == nil {
		return nil
	}
	dir = common.Direction(cp.Vector{}, dir, owner.Facing())
	p := &Projectile{
		Entity:   ps.world.CreateEntity(),
		Owner:    owner.Entity,
		Faction:  owner.Team,
		Weapon:   WeaponWhisper,
		State:    Flying,
		Pos:      pos,
		Velocity: dir.Mult(ps.cfg.DaggerSpeed),
		lifetime: ps.cfg.DaggerLifetime,
		filter:   component.HostileTo(owner),
	}
	ps.list = append(ps.list, p)
	ps.hooks.OnSpawn(p.Entity, AbilityDaggerThrow, p.Pos)
	return p
}

// Redirect asks p to home onto the nearest hostile within detection range.
func (ps *Projectiles) Redirect(p *Projectile) error {
	if ps == nil || p == nil {
		return ErrOwnerDestroyed
	}
	switch {
	case p.Expired || p.State == Expired || p.RedirectCount >= ps.cfg.MaxRedirects:
		p.expire()
		return ErrMaxRedirectsReached
	case p.destroyed:
		return ErrOwnerDestroyed
	case p.State == Stuck:
		return ErrProjectileStuck
	case p.State == Homing:
		return ErrAlreadyHoming
	}
	targets := ps.finder.FindKNearestExcluding(p.Pos, p.lastStruck, ps.cfg.DetectionRange, 1, p.filter)
	if len(targets) == 0 {
		return ErrNoValidTarget
	}
	p.State = Homing
	p.Target = targets[0]
	p.homingTime = 0
	return nil
}

// Redirectable returns the newest live dagger of owner that is still in
// flight.
func (ps *Projectiles) Redirectable(owner ecs.Entity) *Projectile {
	if ps == nil {
		return nil
	}
	for i := len(ps.list) - 1; i >= 0; i-- {
		p := ps.list[i]
		if p.destroyed || p.Owner != owner {
			continue
		}
		if p.State == Flying || p.State == Homing {
			return p
		}
	}
	return nil
}

// Update moves every dagger by dt.
func (ps *Projectiles) Update(dt float64) {
	if ps == nil || dt <= 0 {
		return
	}
	now := ps.world.Now()
	live := ps.list[:len(ps.list):len(ps.list)]
	for _, p := range live {
		if p.destroyed {
			continue
		}
		ps.step(p, dt, now)
	}
	ps.compact()
}

func (ps *Projectiles) step(p *Projectile, dt, now float64) {
	p.lifetime -= dt
	if p.State == Stuck {
		if p.lifetime <= 0 {
			ps.Destroy(p)
		}
		return
	}
	if p.lifetime <= 0 {
		ps.Destroy(p)
		return
	}

	if p.State == Homing {
		if ps.home(p, dt, now) {
			return
		}
	}

	next := p.Pos.Add(p.Velocity.Mult(dt))
	if ps.geometry != nil {
		if hit, ok := ps.geometry.Linecast(p.Pos, next); ok {
			ps.stick(p, hit)
			return
		}
	}
	p.Pos = next

	if p.State == Flying {
		hit := component.Hit{
			Source:   p.Entity,
			Attacker: p.Owner,
			Faction:  p.Faction,
			Damage:   ps.cfg.DaggerDamage,
			Weapon:   string(p.Weapon),
			Ability:  string(AbilityDaggerThrow),
		}
		overlapHits(ps.finder.Registry, ps.resolver, component.Circle(ps.cfg.DaggerRadius), p.Pos, p.filter, hit, now)
	}
}

// home steers p toward its target. It reports true when p was removed.
func (ps *Projectiles) home(p *Projectile, dt, now float64) bool {
	t := p.Target
	if t == nil || !t.IsAlive() {
		slog.Debug("shard: homing target lost", "projectile", p.Entity)
		ps.resumeFlight(p)
		return false
	}
	p.homingTime += dt
	if p.homingTime > ps.cfg.MaxHomingTime {
		ps.resumeFlight(p)
		return false
	}
	dir := common.Direction(p.Pos, t.Pos, p.Heading())
	p.Velocity = dir.Mult(ps.cfg.HomingSpeed)
	if p.Pos.Distance(t.Pos) > ps.cfg.StrikeDistance && p.Pos.Add(p.Velocity.Mult(dt)).Distance(t.Pos) > ps.cfg.StrikeDistance {
		return false
	}

	// Strike: the next leg starts here, so the struck target counts as
	// already hit on it.
	p.Pos = t.Pos
	ps.resolver.Forget(p.Entity)
	ps.resolver.Apply(t, component.Hit{
		Source:   p.Entity,
		Attacker: p.Owner,
		Faction:  p.Faction,
		Damage:   ps.cfg.StrikeDamage,
		Weapon:   string(p.Weapon),
		Ability:  string(AbilityRedirect),
	}, now)
	p.RedirectCount++
	p.lastStruck = t.Entity
	p.Target = nil
	if p.RedirectCount >= ps.cfg.MaxRedirects {
		p.expire()
		ps.Destroy(p)
		return true
	}
	p.State = Flying
	p.Velocity = dir.Mult(ps.cfg.DaggerSpeed)
	return false
}

func (ps *Projectiles) resumeFlight(p *Projectile) {
	p.State = Flying
	p.Target = nil
	p.Velocity = p.Heading().Mult(ps.cfg.DaggerSpeed)
	ps.resolver.Forget(p.Entity)
}

func (ps *Projectiles) stick(p *Projectile, at cp.Vector) {
	p.State = Stuck
	p.Pos = at
	p.Velocity = cp.Vector{}
	p.Target = nil
	p.lifetime = ps.cfg.StuckLifetime
}

func (p *Projectile) expire() {
	p.Expired = true
	if p.State != Stuck {
		p.State = Expired
	}
	p.Target = nil
}

// Destroy removes p. It reports false if it was already removed.
func (ps *Projectiles) Destroy(p *Projectile) bool {
	if ps == nil || p == nil || p.destroyed {
		return false
	}
	p.destroyed = true
	ps.resolver.Forget(p.Entity)
	ps.world.DestroyEntity(p.Entity)
	ps.hooks.OnDespawn(p.Entity, AbilityDaggerThrow)
	return true
}

// DestroyOwned removes every dagger of owner.
func (ps *Projectiles) DestroyOwned(owner ecs.Entity) int {
	if ps == nil {
		return 0
	}
	n := 0
	for _, p := range ps.list {
		if p.Owner == owner && ps.Destroy(p) {
			n++
		}
	}
	ps.compact()
	return n
}

// Live returns the daggers that have not been removed.
func (ps *Projectiles) Live() []*Projectile {
	if ps == nil {
		return nil
	}
	out := make([]*Projectile, 0, len(ps.list))
	for _, p := range ps.list {
		if !p.destroyed {
			out = append(out, p)
		}
	}
	return out
}

func (ps *Projectiles) compact() {
	kept := ps.list[:0]
	for _, p := range ps.list {
		if !p.destroyed {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(ps.list); i++ {
		ps.list[i] = nil
	}
	ps.list = kept
}
