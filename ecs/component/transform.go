package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a world-space position (Z up) and a yaw in degrees about Z.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]()

// Velocity is in world units per second.
type Velocity struct {
	Linear mgl64.Vec3
}

var VelocityComponent = NewComponent[Velocity]()
