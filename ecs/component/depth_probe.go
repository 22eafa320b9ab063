package component

import "github.com/go-gl/mathgl/mgl64"

// DepthPolicy decides whether depth correction runs during a camera rotation.
type DepthPolicy int

const (
	DepthSkipWhileRotating DepthPolicy = iota
	DepthAlways
)

func (p DepthPolicy) String() string {
	if p == DepthAlways {
		return "always"
	}
	return "skip_while_rotating"
}

// Depth axes reported by DepthProbe.Axis.
const (
	DepthAxisNone = -1
	DepthAxisX    = 0
	DepthAxisY    = 1
)

// DepthProbe configures the camera ray used to keep the player on the visible
// surface and records the outcome of the last cast.
type DepthProbe struct {
	Drop          float64
	Distance      float64
	Margin        float64
	AxisThreshold float64
	Policy        DepthPolicy

	Hit       bool
	Axis      int
	Start     mgl64.Vec3
	End       mgl64.Vec3
	Point     mgl64.Vec3
	Direction mgl64.Vec3
}

var DepthProbeComponent = NewComponent[DepthProbe]()
