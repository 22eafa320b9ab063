package component

import "github.com/go-gl/mathgl/mgl64"

// RotationState is the phase of the quarter-turn state machine.
type RotationState int

const (
	RotationIdle RotationState = iota
	RotationRotating
)

func (s RotationState) String() string {
	switch s {
	case RotationIdle:
		return "idle"
	case RotationRotating:
		return "rotating"
	default:
		return "unknown"
	}
}

// RotationMode selects how the yaw approaches its target.
type RotationMode int

const (
	// RotationLerp moves a fixed fraction of the remaining angle every tick.
	RotationLerp RotationMode = iota
	// RotationConstant moves at a fixed angular speed.
	RotationConstant
)

func (m RotationMode) String() string {
	if m == RotationConstant {
		return "constant"
	}
	return "lerp"
}

// CameraRotation drives quarter turns of the view. The current yaw lives in
// Transform.Yaw; this component holds the target and the tuning.
type CameraRotation struct {
	State     RotationState
	TargetYaw float64
	Delta     float64
	Ticks     int

	Mode      RotationMode
	Smoothing float64 // fraction of the remaining angle per tick (lerp)
	Speed     float64 // degrees per second (constant)
	Epsilon   float64 // degrees
	MaxTicks  int
}

var CameraRotationComponent = NewComponent[CameraRotation]()

// FrozenMotion is the position/velocity snapshot held while a rotation is in
// progress. Active mirrors CameraRotation.State == RotationRotating.
type FrozenMotion struct {
	Active   bool
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

var FrozenMotionComponent = NewComponent[FrozenMotion]()
