package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
	"go.uber.org/zap"
)

const (
	RotateLeftDelta  = 90.0
	RotateRightDelta = -90.0
)

// CameraRotationSystem turns the view in quarter steps. While a turn is in
// progress the player is held at the snapshot taken when it began.
type CameraRotationSystem struct {
	logger *zap.Logger
	gate   RotationGate
	dt     float64
}

func NewCameraRotationSystem(logger *zap.Logger, gate RotationGate) *CameraRotationSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CameraRotationSystem{logger: logger, gate: gate, dt: common.TickSeconds}
}

func (s *CameraRotationSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	camEntity, ok := ecs.First(w, component.CameraRotationComponent.Kind())
	if !ok {
		return
	}
	rot, _ := ecs.Get(w, camEntity, component.CameraRotationComponent.Kind())
	camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
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
	frozen, ok := ecs.Get(w, player, component.FrozenMotionComponent.Kind())
	if !ok {
		frozen = &component.FrozenMotion{}
		if err := ecs.Add(w, player, component.FrozenMotionComponent.Kind(), frozen); err != nil {
			panic("camera rotation system: add frozen motion: " + err.Error())
		}
	}
	velocity, ok := ecs.Get(w, player, component.VelocityComponent.Kind())
	if !ok {
		velocity = &component.Velocity{}
		if err := ecs.Add(w, player, component.VelocityComponent.Kind(), velocity); err != nil {
			panic("camera rotation system: add velocity: " + err.Error())
		}
	}

	if delta := requestedDelta(w, player); delta != 0 {
		switch {
		case rot.State == component.RotationRotating:
			s.logger.Debug("rotation trigger ignored", zap.Float64("delta", delta), zap.Float64("target", rot.TargetYaw))
		case !s.allowed(w, camEntity, player, playerTransform, camTransform.Yaw, delta):
			w.Events().Push(ecs.Event{Kind: ecs.EventRotationDenied, Entity: camEntity, Value: delta})
		default:
			BeginRotation(rot, frozen, camTransform.Yaw, delta, playerTransform.Position, velocity.Linear)
			setAnimationPaused(w, player, true)
			w.Events().Push(ecs.Event{Kind: ecs.EventRotationStarted, Entity: camEntity, Value: rot.TargetYaw})
			s.logger.Info("rotation started",
				zap.Float64("from", camTransform.Yaw),
				zap.Float64("target", rot.TargetYaw),
				zap.Stringer("mode", rot.Mode),
			)
		}
	}

	if rot.State != component.RotationRotating {
		return
	}

	yaw, remaining, done := AdvanceRotation(rot, camTransform.Yaw, s.dt)
	camTransform.Yaw = yaw
	playerTransform.Yaw = yaw

	playerTransform.Position = frozen.Position
	velocity.Linear = frozen.Velocity
	holdBody(w, player, frozen.Position)

	if !done {
		w.Events().Push(ecs.Event{Kind: ecs.EventRotationProgress, Entity: camEntity, Value: remaining})
		return
	}

	FinishRotation(rot, frozen)
	setAnimationPaused(w, player, false)
	w.Events().Push(ecs.Event{Kind: ecs.EventRotationFinished, Entity: camEntity, Value: yaw})
	s.logger.Info("rotation finished", zap.Float64("yaw", yaw), zap.Int("ticks", rot.Ticks))
}

func (s *CameraRotationSystem) allowed(w *ecs.World, camEntity, player ecs.Entity, t *component.Transform, yaw, delta float64) bool {
	if s.gate == nil {
		return true
	}
	gate, ok := ecs.Get(w, camEntity, component.RotationGateComponent.Kind())
	if !ok || gate.Script == "" {
		return true
	}
	grounded := false
	if pc, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		grounded = pc.Grounded || pc.GroundGrace > 0
	}
	allow, err := s.gate.Allow(gate.Script, RotationGateContext{
		X:        t.Position.X(),
		Y:        t.Position.Y(),
		Z:        t.Position.Z(),
		Yaw:      yaw,
		Delta:    delta,
		Grounded: grounded,
	})
	if err != nil {
		s.logger.Warn("rotation gate failed, allowing", zap.String("script", gate.Script), zap.Error(err))
		return true
	}
	if !allow {
		s.logger.Debug("rotation denied by gate", zap.String("script", gate.Script), zap.Float64("delta", delta))
	}
	return allow
}

func requestedDelta(w *ecs.World, player ecs.Entity) float64 {
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return 0
	}
	switch {
	case input.RotateLeft && !input.RotateRight:
		return RotateLeftDelta
	case input.RotateRight && !input.RotateLeft:
		return RotateRightDelta
	default:
		return 0
	}
}

// BeginRotation moves an idle rotation to Rotating toward yaw+delta and takes
// the motion snapshot. It reports false when a rotation is already running.
func BeginRotation(rot *component.CameraRotation, frozen *component.FrozenMotion, yaw, delta float64, pos, vel mgl64.Vec3) bool {
	if rot == nil || frozen == nil || rot.State == component.RotationRotating {
		return false
	}
	rot.State = component.RotationRotating
	rot.Delta = delta
	rot.TargetYaw = yaw + delta
	rot.Ticks = 0

	frozen.Active = true
	frozen.Position = pos
	frozen.Velocity = vel
	return true
}

// AdvanceRotation steps yaw one tick toward the target. When the remaining
// wrapped angle falls within Epsilon, or MaxTicks is reached, it returns the
// target rounded to a whole degree in [0, 360) and done.
func AdvanceRotation(rot *component.CameraRotation, yaw, dt float64) (float64, float64, bool) {
	remaining := common.DeltaDegrees(yaw, rot.TargetYaw)

	switch rot.Mode {
	case component.RotationConstant:
		step := rot.Speed * dt
		if math.Abs(remaining) <= step {
			yaw += remaining
		} else {
			yaw += common.Sign(remaining) * step
		}
	default:
		yaw += remaining * rot.Smoothing
	}
	rot.Ticks++

	remaining = common.DeltaDegrees(yaw, rot.TargetYaw)
	maxTicks := rot.MaxTicks
	if maxTicks <= 0 {
		maxTicks = 10000
	}
	if math.Abs(remaining) <= rot.Epsilon || rot.Ticks >= maxTicks {
		return common.SnapDegrees(rot.TargetYaw), 0, true
	}
	return yaw, remaining, false
}

// FinishRotation returns to Idle and clears the snapshot. The held velocity
// stays on the Velocity component so motion resumes where it stopped.
func FinishRotation(rot *component.CameraRotation, frozen *component.FrozenMotion) {
	rot.TargetYaw = common.SnapDegrees(rot.TargetYaw)
	rot.State = component.RotationIdle
	frozen.Active = false
	frozen.Position = mgl64.Vec3{}
	frozen.Velocity = mgl64.Vec3{}
}

// holdBody pins the physics body to the frozen position in its current view
// plane and stops it.
func holdBody(w *ecs.World, e ecs.Entity, pos mgl64.Vec3) {
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return
	}
	u, v, _ := common.ToView(pos, pb.ViewYaw)
	pb.Body.SetPosition(cp.Vector{X: u, Y: v})
	pb.Body.SetVelocityVector(cp.Vector{})
}

func setAnimationPaused(w *ecs.World, e ecs.Entity, paused bool) {
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		anim.Paused = paused
	}
}
