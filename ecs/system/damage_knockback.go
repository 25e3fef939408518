package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

const (
	damageKnockbackImpulse   = 240.0
	damageKnockbackMaxDeltaV = 360.0
	// damageKnockbackLift is the upward share of the knockback direction.
	damageKnockbackLift = 0.35
	damageStagger       = 0.2
)

// KnockbackSystem pushes damaged bodies away from their attacker and
// staggers them briefly. Hits are queued by the emitter and applied on
// Update.
type KnockbackSystem struct {
	registry *component.Registry
	hits     ecs.EventQueue[component.CombatEvent]
	stagger  map[ecs.Entity]float64
}

func NewKnockbackSystem(emitter *component.CombatEventEmitter, registry *component.Registry) *KnockbackSystem {
	s := &KnockbackSystem{registry: registry, stagger: make(map[ecs.Entity]float64)}
	emitter.Subscribe(func(evt component.CombatEvent) {
		if evt.Type == component.EventDamageApplied {
			s.hits.Push(evt)
		}
	})
	return s
}

// Staggered reports whether e was knocked back recently.
func (s *KnockbackSystem) Staggered(e ecs.Entity, now float64) bool {
	if s == nil {
		return false
	}
	until, ok := s.stagger[e]
	return ok && now < until
}

func (s *KnockbackSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	hits := s.hits.Drain()
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	now := w.Now()
	for e, until := range s.stagger {
		if now >= until {
			delete(s.stagger, e)
		}
	}
	for _, evt := range hits {
		src, ok := s.registry.Get(evt.Attacker)
		if !ok {
			continue
		}
		if t, ok := s.registry.Get(evt.Target); !ok || !t.IsAlive() {
			continue
		}
		if applyDamageKnockback(pw, evt.Target, src.Pos) {
			s.stagger[evt.Target] = now + damageStagger
		}
	}
}

func applyDamageKnockback(pw *ecs.PhysicsWorld, target ecs.Entity, source cp.Vector) bool {
	body, ok := pw.Body(target)
	if !ok || body.Body == nil {
		return false
	}
	center := body.Body.Position()

	dx := center.X - source.X
	length := math.Abs(dx)
	nx := 0.0
	if length > 1e-6 {
		nx = dx / length
	}
	ny := -damageKnockbackLift
	rlen := math.Hypot(nx, ny)
	nx /= rlen
	ny /= rlen

	body.Body.ApplyImpulseAtWorldPoint(
		cp.Vector{X: nx * damageKnockbackImpulse, Y: ny * damageKnockbackImpulse},
		center,
	)

	// cap the velocity knockback can build up along the push direction
	v := body.Body.Velocity()
	vDot := v.X*nx + v.Y*ny
	if vDot > damageKnockbackMaxDeltaV {
		tx := v.X - nx*vDot
		ty := v.Y - ny*vDot
		body.Body.SetVelocityVector(cp.Vector{
			X: tx + nx*damageKnockbackMaxDeltaV,
			Y: ty + ny*damageKnockbackMaxDeltaV,
		})
	}
	return true
}
