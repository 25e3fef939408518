package component

import "github.com/jakecoffman/cp"

// PlayerState defines the interface for player state machine states.
// Each state owns its own enter/exit, input handling, and update logic.
type PlayerState interface {
	Name() string
	Enter(ctx *PlayerStateContext)
	Exit(ctx *PlayerStateContext)
	HandleInput(ctx *PlayerStateContext)
	Update(ctx *PlayerStateContext)
}

// PlayerStateContext provides controlled access to input and physics for a state.
// It uses callbacks so states never touch the physics world directly.
type PlayerStateContext struct {
	Input  *Input
	Player *Player

	GetVelocity func() (x, y float64)
	SetVelocity func(x, y float64)
	Position    func() cp.Vector
	SetPosition func(p cp.Vector)
	SetGravity  func(enabled bool)

	IsGrounded   func() bool
	CanJump      func() bool
	JumpBuffered func() bool
	ConsumeJump  func()
	// Locked reports whether a special attack is in progress.
	Locked func() bool
	// Ladder returns the ladder under the player's centre.
	Ladder func() (Ladder, bool)

	ChangeState func(state PlayerState)
	FacingLeft  func(facingLeft bool)
}

// PlayerStateMachine stores the active and pending states for the player.
type PlayerStateMachine struct {
	State   PlayerState
	Pending PlayerState
}
