package system

import (
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

// SpecialLock reports whether a special attack is in progress.
// *shard.Controller satisfies it.
type SpecialLock interface {
	IsSpecialAttackInProgress() bool
}

// PlayerControllerSystem drives the player's movement state machine from
// input and writes the result into the player's physics body.
type PlayerControllerSystem struct {
	actor   *component.Actor
	player  *component.Player
	input   InputSource
	lock    SpecialLock
	ladders []component.Ladder

	machine    component.PlayerStateMachine
	coyote     int
	jumpBuffer int
}

func NewPlayerControllerSystem(actor *component.Actor, player *component.Player, input InputSource, lock SpecialLock, ladders []component.Ladder) *PlayerControllerSystem {
	return &PlayerControllerSystem{
		actor:   actor,
		player:  player,
		input:   input,
		lock:    lock,
		ladders: ladders,
	}
}

// SetLadders replaces the climbable ladders.
func (p *PlayerControllerSystem) SetLadders(ladders []component.Ladder) {
	if p == nil {
		return
	}
	p.ladders = ladders
}

// SetLock replaces the special-attack lock, e.g. after the combat
// controller is rebuilt.
func (p *PlayerControllerSystem) SetLock(lock SpecialLock) {
	if p == nil {
		return
	}
	p.lock = lock
}

// State returns the name of the active movement state.
func (p *PlayerControllerSystem) State() string {
	if p == nil || p.machine.State == nil {
		return ""
	}
	return p.machine.State.Name()
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil || p.actor == nil || p.player == nil {
		return
	}
	pw := w.PhysicsWorld()
	e := p.actor.Entity
	if _, ok := pw.Body(e); !ok {
		return
	}
	if !p.actor.IsAlive() {
		pw.SetVelocity(e, cp.Vector{})
		return
	}

	var frame component.Input
	if p.input != nil {
		frame = movementInput(p.input.Frame())
	}
	contact := pw.Contact(e)

	if contact.Grounded {
		p.coyote = p.player.CoyoteFrames
	} else if p.coyote > 0 {
		p.coyote--
	}
	if frame.JumpPressed {
		p.jumpBuffer = p.player.JumpBufferFrames
	} else if p.jumpBuffer > 0 {
		p.jumpBuffer--
	}

	ctx := &component.PlayerStateContext{
		Input:  &frame,
		Player: p.player,
		GetVelocity: func() (float64, float64) {
			v, _ := pw.Velocity(e)
			return v.X, v.Y
		},
		SetVelocity: func(x, y float64) {
			pw.SetVelocity(e, cp.Vector{X: x, Y: y})
		},
		Position: func() cp.Vector {
			pos, _ := pw.Position(e)
			return pos
		},
		SetPosition: func(pos cp.Vector) {
			pw.SetPosition(e, pos)
			p.actor.Pos = pos
		},
		SetGravity: func(enabled bool) {
			pw.SetGravityEnabled(e, enabled)
		},
		IsGrounded:   func() bool { return contact.Grounded },
		CanJump:      func() bool { return contact.Grounded || p.coyote > 0 },
		JumpBuffered: func() bool { return p.jumpBuffer > 0 },
		ConsumeJump: func() {
			p.coyote = 0
			p.jumpBuffer = 0
		},
		Locked: func() bool {
			return p.lock != nil && p.lock.IsSpecialAttackInProgress()
		},
		Ladder: func() (component.Ladder, bool) {
			pos, _ := pw.Position(e)
			return component.FindLadder(p.ladders, pos)
		},
		ChangeState: func(s component.PlayerState) {
			p.machine.Pending = s
		},
		FacingLeft: func(left bool) {
			p.actor.FacingLeft = left
		},
	}

	if p.machine.State == nil {
		p.machine.State = playerStateIdle
		p.machine.State.Enter(ctx)
	}

	p.machine.State.HandleInput(ctx)
	p.applyPending(ctx)
	p.machine.State.Update(ctx)
	p.applyPending(ctx)
}

func (p *PlayerControllerSystem) applyPending(ctx *component.PlayerStateContext) {
	next := p.machine.Pending
	p.machine.Pending = nil
	if next == nil || next == p.machine.State {
		return
	}
	slog.Debug("player: state change", "from", p.machine.State.Name(), "to", next.Name())
	p.machine.State.Exit(ctx)
	p.machine.State = next
	p.machine.State.Enter(ctx)
}
