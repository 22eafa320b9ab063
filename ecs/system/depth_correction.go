package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
	"go.uber.org/zap"
)

// DepthCorrectionSystem keeps the player on the nearest visible surface: it
// casts the camera's probe ray into the level and moves the player along the
// ray's dominant axis to the hit.
type DepthCorrectionSystem struct {
	logger *zap.Logger
}

func NewDepthCorrectionSystem(logger *zap.Logger) *DepthCorrectionSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepthCorrectionSystem{logger: logger}
}

func (s *DepthCorrectionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	camEntity, ok := ecs.First(w, component.DepthProbeComponent.Kind())
	if !ok {
		return
	}
	probe, _ := ecs.Get(w, camEntity, component.DepthProbeComponent.Kind())
	camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	rotating := false
	if rot, ok := ecs.Get(w, camEntity, component.CameraRotationComponent.Kind()); ok {
		rotating = rot.State == component.RotationRotating
	}
	if rotating && probe.Policy == component.DepthSkipWhileRotating {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	playerTransform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	dir := common.Forward(camTransform.Yaw)
	start := camTransform.Position.Sub(mgl64.Vec3{0, 0, probe.Drop})
	end := start.Add(dir.Mul(probe.Distance))
	probe.Start = start
	probe.End = end
	probe.Direction = dir

	hit, ok := firstBlockHit(w, start, end)
	probe.Hit = ok
	if !ok {
		probe.Axis = component.DepthAxisNone
		return
	}
	probe.Point = hit.Point
	probe.Axis = DominantAxis(dir, probe.AxisThreshold)

	corrected, changed := CorrectDepth(playerTransform.Position, dir, hit.Point, probe.Axis, probe.Margin)
	if !changed {
		return
	}
	playerTransform.Position = corrected

	// Only reachable with DepthAlways: keep the freeze consistent with the move.
	if frozen, ok := ecs.Get(w, player, component.FrozenMotionComponent.Kind()); ok && frozen.Active {
		frozen.Position = corrected
	}

	w.Events().Push(ecs.Event{
		Kind:   ecs.EventDepthCorrected,
		Entity: player,
		Value:  corrected[probe.Axis],
	})
	s.logger.Debug("depth corrected",
		zap.Int("axis", probe.Axis),
		zap.Float64("value", corrected[probe.Axis]),
		zap.Stringer("block", hit.Entity),
	)
}

// DominantAxis picks the horizontal axis the forward vector mostly points
// along. Components below threshold never qualify.
func DominantAxis(dir mgl64.Vec3, threshold float64) int {
	ax := math.Abs(dir.X())
	ay := math.Abs(dir.Y())
	switch {
	case ax >= ay && ax > 0 && ax >= threshold:
		return component.DepthAxisX
	case ay > ax && ay >= threshold:
		return component.DepthAxisY
	default:
		return component.DepthAxisNone
	}
}

// CorrectDepth replaces pos on axis with the hit coordinate pulled margin
// units back toward the ray origin.
func CorrectDepth(pos, dir, hit mgl64.Vec3, axis int, margin float64) (mgl64.Vec3, bool) {
	if axis != component.DepthAxisX && axis != component.DepthAxisY {
		return pos, false
	}
	out := pos
	out[axis] = hit[axis] - common.Sign(dir[axis])*margin
	return out, out != pos
}
