package component

// Player holds the movement tuning of the player character.
type Player struct {
	MoveSpeed  float64
	JumpSpeed  float64
	ClimbSpeed float64
	// SpecialMoveFactor scales horizontal speed while a special attack runs.
	SpecialMoveFactor float64
	CoyoteFrames      int
	JumpBufferFrames  int
}
