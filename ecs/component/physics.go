package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration. The
// body lives in the view plane of ViewYaw: x along the screen-right axis and
// y screen-down.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
	ViewYaw  float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
