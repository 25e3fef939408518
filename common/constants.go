package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// FrameDT is the fixed simulation step in seconds.
	FrameDT = 1.0 / 60.0

	// Gravity in pixels per second squared (screen space, +Y is down).
	Gravity = 1800.0
)
