package shard

import (
	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// Clock reports the simulated time in seconds. ecs.World and ecs.Scheduler
// satisfy it.
type Clock interface {
	Now() float64
}

// ManualClock is a Clock whose time is set by hand.
type ManualClock struct {
	T float64
}

func (c *ManualClock) Now() float64 {
	if c == nil {
		return 0
	}
	return c.T
}

// Geometry answers terrain queries.
type Geometry interface {
	Linecast(a, b cp.Vector) (cp.Vector, bool)
	PointOverlap(p cp.Vector) bool
	GroundRaycast(p cp.Vector, maxDist float64) (float64, bool)
}

// EffectHooks observes spawned objects. Renderers and recorders implement it.
type EffectHooks interface {
	OnSpawn(e ecs.Entity, kind AbilityID, pos cp.Vector)
	OnDespawn(e ecs.Entity, kind AbilityID)
	OnArc(from, to cp.Vector)
}

type nopHooks struct{}

func (nopHooks) OnSpawn(ecs.Entity, AbilityID, cp.Vector) {}
func (nopHooks) OnDespawn(ecs.Entity, AbilityID)          {}
func (nopHooks) OnArc(cp.Vector, cp.Vector)               {}

// Action is a logical input.
type Action uint8

const (
	ActionPrimary Action = iota
	ActionSecondary
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionModifier
	ActionJump
	actionCount
)

// Input is a per-frame snapshot of the logical actions.
type Input interface {
	Pressed(a Action) bool
	Released(a Action) bool
	Held(a Action) bool
}

// InputFrame is a plain Input snapshot.
type InputFrame struct {
	pressed  uint16
	released uint16
	held     uint16
}

func (f *InputFrame) Pressed(a Action) bool  { return f != nil && f.pressed&(1<<a) != 0 }
func (f *InputFrame) Released(a Action) bool { return f != nil && f.released&(1<<a) != 0 }
func (f *InputFrame) Held(a Action) bool     { return f != nil && f.held&(1<<a) != 0 }

// Press marks a as pressed this frame. A pressed action is also held.
func (f *InputFrame) Press(a Action) {
	f.pressed |= 1 << a
	f.held |= 1 << a
}

// Release marks a as released this frame.
func (f *InputFrame) Release(a Action) {
	f.released |= 1 << a
	f.held &^= 1 << a
}

// Hold marks a as held.
func (f *InputFrame) Hold(a Action) {
	f.held |= 1 << a
}

// Next returns the snapshot for the following frame: edges are cleared and
// held actions stay held.
func (f InputFrame) Next() InputFrame {
	return InputFrame{held: f.held}
}
