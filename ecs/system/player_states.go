package system

import (
	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/component"
)

// Player state singletons (avoid allocations on transitions).
var (
	playerStateIdle  component.PlayerState = &playerIdleState{}
	playerStateRun   component.PlayerState = &playerRunState{}
	playerStateJump  component.PlayerState = &playerJumpState{}
	playerStateFall  component.PlayerState = &playerFallState{}
	playerStateClimb component.PlayerState = &playerClimbState{}
)

type playerIdleState struct{}

type playerRunState struct{}

type playerJumpState struct{}

type playerFallState struct{}

type playerClimbState struct{}

func locked(ctx *component.PlayerStateContext) bool {
	return ctx.Locked != nil && ctx.Locked()
}

func grounded(ctx *component.PlayerStateContext) bool {
	return ctx.IsGrounded != nil && ctx.IsGrounded()
}

// wantsJump reports whether a jump should start this frame. A buffered press
// only counts once the player is back on the ground.
func wantsJump(ctx *component.PlayerStateContext) bool {
	if locked(ctx) {
		return false
	}
	req := ctx.Input.JumpPressed
	if !req && ctx.JumpBuffered != nil && grounded(ctx) && ctx.JumpBuffered() {
		req = true
	}
	return req && (ctx.CanJump == nil || ctx.CanJump())
}

// wantsClimb reports whether vertical input should grab a ladder. Pressing
// down while standing does not attach.
func wantsClimb(ctx *component.PlayerStateContext) bool {
	if locked(ctx) || ctx.Ladder == nil || ctx.Input.MoveY == 0 {
		return false
	}
	if ctx.Input.MoveY > 0 && grounded(ctx) {
		return false
	}
	_, ok := ctx.Ladder()
	return ok
}

// runSpeed is the horizontal velocity for the current input.
func runSpeed(ctx *component.PlayerStateContext) float64 {
	x := ctx.Input.MoveX * ctx.Player.MoveSpeed
	if locked(ctx) && ctx.Player.SpecialMoveFactor > 0 {
		x *= ctx.Player.SpecialMoveFactor
	}
	return x
}

func face(ctx *component.PlayerStateContext) {
	if ctx.FacingLeft == nil {
		return
	}
	if ctx.Input.MoveX > 0 {
		ctx.FacingLeft(false)
	} else if ctx.Input.MoveX < 0 {
		ctx.FacingLeft(true)
	}
}

func (playerIdleState) Name() string                            { return "idle" }
func (playerIdleState) Enter(ctx *component.PlayerStateContext) {}
func (playerIdleState) Exit(ctx *component.PlayerStateContext)  {}
func (playerIdleState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil {
		return
	}
	if wantsClimb(ctx) {
		ctx.ChangeState(playerStateClimb)
		return
	}
	if wantsJump(ctx) {
		ctx.ChangeState(playerStateJump)
		return
	}
	if ctx.Input.MoveX != 0 {
		ctx.ChangeState(playerStateRun)
	}
}
func (playerIdleState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.SetVelocity == nil || ctx.GetVelocity == nil {
		return
	}
	_, y := ctx.GetVelocity()
	ctx.SetVelocity(0, y)
	if !grounded(ctx) && ctx.ChangeState != nil {
		ctx.ChangeState(playerStateFall)
	}
}

func (playerRunState) Name() string                            { return "run" }
func (playerRunState) Enter(ctx *component.PlayerStateContext) {}
func (playerRunState) Exit(ctx *component.PlayerStateContext)  {}
func (playerRunState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil {
		return
	}
	if wantsClimb(ctx) {
		ctx.ChangeState(playerStateClimb)
		return
	}
	if wantsJump(ctx) {
		ctx.ChangeState(playerStateJump)
		return
	}
	if ctx.Input.MoveX == 0 {
		ctx.ChangeState(playerStateIdle)
		return
	}
	face(ctx)
}
func (playerRunState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.SetVelocity == nil || ctx.GetVelocity == nil {
		return
	}
	_, y := ctx.GetVelocity()
	ctx.SetVelocity(runSpeed(ctx), y)
	if !grounded(ctx) && ctx.ChangeState != nil {
		ctx.ChangeState(playerStateFall)
	}
}

func (playerJumpState) Name() string { return "jump" }
func (playerJumpState) Enter(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.SetVelocity == nil || ctx.GetVelocity == nil {
		return
	}
	x, _ := ctx.GetVelocity()
	ctx.SetVelocity(x, -ctx.Player.JumpSpeed)
	if ctx.ConsumeJump != nil {
		ctx.ConsumeJump()
	}
}
func (playerJumpState) Exit(ctx *component.PlayerStateContext) {}
func (playerJumpState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil {
		return
	}
	if wantsClimb(ctx) {
		ctx.ChangeState(playerStateClimb)
	}
}
func (playerJumpState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.SetVelocity == nil || ctx.GetVelocity == nil {
		return
	}
	_, y := ctx.GetVelocity()
	ctx.SetVelocity(runSpeed(ctx), y)
	face(ctx)
	if y >= 0 && ctx.ChangeState != nil {
		ctx.ChangeState(playerStateFall)
	}
}

func (playerFallState) Name() string                            { return "fall" }
func (playerFallState) Enter(ctx *component.PlayerStateContext) {}
func (playerFallState) Exit(ctx *component.PlayerStateContext)  {}
func (playerFallState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil {
		return
	}
	if wantsClimb(ctx) {
		ctx.ChangeState(playerStateClimb)
		return
	}
	// coyote jump
	if ctx.Input.JumpPressed && !locked(ctx) && ctx.CanJump != nil && ctx.CanJump() {
		ctx.ChangeState(playerStateJump)
	}
}
func (playerFallState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.SetVelocity == nil || ctx.GetVelocity == nil {
		return
	}
	_, y := ctx.GetVelocity()
	ctx.SetVelocity(runSpeed(ctx), y)
	face(ctx)
	if grounded(ctx) && ctx.ChangeState != nil {
		if ctx.Input.MoveX != 0 {
			ctx.ChangeState(playerStateRun)
		} else {
			ctx.ChangeState(playerStateIdle)
		}
	}
}

func (playerClimbState) Name() string { return "climb" }
func (playerClimbState) Enter(ctx *component.PlayerStateContext) {
	if ctx == nil {
		return
	}
	if ctx.SetGravity != nil {
		ctx.SetGravity(false)
	}
	if ctx.Ladder != nil && ctx.Position != nil && ctx.SetPosition != nil {
		if l, ok := ctx.Ladder(); ok {
			p := ctx.Position()
			ctx.SetPosition(cp.Vector{X: l.CenterX(), Y: p.Y})
		}
	}
	if ctx.SetVelocity != nil {
		ctx.SetVelocity(0, 0)
	}
}
func (playerClimbState) Exit(ctx *component.PlayerStateContext) {
	if ctx != nil && ctx.SetGravity != nil {
		ctx.SetGravity(true)
	}
}
func (playerClimbState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil {
		return
	}
	if ctx.Input.JumpPressed && !locked(ctx) {
		ctx.ChangeState(playerStateJump)
		return
	}
	if ctx.Input.MoveX != 0 && grounded(ctx) {
		face(ctx)
		ctx.ChangeState(playerStateRun)
	}
}
func (playerClimbState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.SetVelocity == nil || ctx.ChangeState == nil {
		return
	}
	if ctx.Ladder == nil {
		ctx.ChangeState(playerStateFall)
		return
	}
	if _, ok := ctx.Ladder(); !ok {
		// off the top: hop onto the ledge
		if ctx.Input.MoveY < 0 {
			ctx.SetVelocity(0, -ctx.Player.JumpSpeed*0.5)
		}
		ctx.ChangeState(playerStateFall)
		return
	}
	if ctx.Input.MoveY > 0 && grounded(ctx) {
		ctx.ChangeState(playerStateIdle)
		return
	}
	ctx.SetVelocity(0, ctx.Input.MoveY*ctx.Player.ClimbSpeed)
}
