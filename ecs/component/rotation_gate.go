package component

// RotationGate names a tengo script whose allow(ctx) decides whether a camera
// rotation may start.
type RotationGate struct {
	Script string
}

var RotationGateComponent = NewComponent[RotationGate]()
