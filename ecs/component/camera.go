package component

import "github.com/go-gl/mathgl/mgl64"

// Camera is an orthographic side camera that trails its target along the
// view forward axis. The camera transform holds the exact rig position; View
// is the smoothed point the renderer centers on. Forward and Right are
// recomputed every frame from the camera transform's yaw.
type Camera struct {
	TargetName string
	Distance   float64
	Height     float64
	OrthoWidth float64
	Smoothness float64

	View    mgl64.Vec3
	Forward mgl64.Vec3
	Right   mgl64.Vec3
	Ready   bool
}

var CameraComponent = NewComponent[Camera]()
