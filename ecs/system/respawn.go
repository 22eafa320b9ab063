package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
	"go.uber.org/zap"
)

// RespawnSystem returns players that fell below their kill height to their
// spawn point. It should run after the PhysicsSystem.
type RespawnSystem struct {
	logger *zap.Logger
}

func NewRespawnSystem(logger *zap.Logger) *RespawnSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RespawnSystem{logger: logger}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.SpawnComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, player *component.Player, spawn *component.Spawn, t *component.Transform) {
		if t.Position.Z() >= player.KillZ {
			return
		}
		if frozen, ok := ecs.Get(w, e, component.FrozenMotionComponent.Kind()); ok && frozen.Active {
			return
		}

		s.logger.Info("player respawned", zap.Stringer("entity", e), zap.Float64("z", t.Position.Z()))
		t.Position = mgl64.Vec3{spawn.X, spawn.Y, spawn.Z}

		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			vel.Linear = mgl64.Vec3{}
		}
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			u, v, _ := common.ToView(t.Position, body.ViewYaw)
			body.Body.SetPosition(cp.Vector{X: u, Y: v})
			body.Body.SetVelocityVector(cp.Vector{})
			body.Body.SetAngularVelocity(0)
		}
	})
}
