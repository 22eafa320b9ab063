package system

import (
	"github.com/milk9111/quarterturn/ecs"
	"go.uber.org/zap"
)

// Pipeline is the per-tick system order shared by the game and headless
// runs. Rendering is not part of it.
type Pipeline struct {
	Scheduler *ecs.Scheduler
	Physics   *PhysicsSystem
	Gate      *ScriptGate
}

func NewPipeline(logger *zap.Logger, input *InputSystem) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if input == nil {
		input = NewInputSystem()
	}
	physics := NewPhysicsSystem()
	gate := NewScriptGate()

	scheduler := ecs.NewScheduler(
		input,
		NewPlayerControllerSystem(logger.Named("player")),
		physics,
		NewCameraRotationSystem(logger.Named("rotation"), gate),
		NewRespawnSystem(logger.Named("respawn")),
		NewCameraSystem(),
		NewDepthCorrectionSystem(logger.Named("depth")),
		NewAnimationSystem(),
	)
	return &Pipeline{Scheduler: scheduler, Physics: physics, Gate: gate}
}

func (p *Pipeline) Update(w *ecs.World) {
	if p == nil {
		return
	}
	p.Scheduler.Update(w)
}
