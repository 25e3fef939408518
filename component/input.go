package component

// Input is the movement intent of an entity for one frame. MoveY is negative
// for up.
type Input struct {
	MoveX       float64
	MoveY       float64
	Jump        bool
	JumpPressed bool
}
