package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	TPS         = 60
	TickSeconds = 1.0 / TPS

	// Gravity is in world units per second squared, screen-down positive.
	Gravity = 1960.0
)
