package system

import (
	"math"

	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
	"go.uber.org/zap"
)

const velocityEpsilon = 1.0

type PlayerControllerSystem struct {
	logger *zap.Logger
}

func NewPlayerControllerSystem(logger *zap.Logger) *PlayerControllerSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlayerControllerSystem{logger: logger}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}

	rotating := cameraRotating(w)

	ecs.ForEach4(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.PlayerStateMachineComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input, fsm *component.PlayerStateMachine, transform *component.Transform) {
		velocity, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			return
		}

		viewYaw := common.SnapDegrees(transform.Yaw)
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			viewYaw = pb.ViewYaw
		}

		ctx := &component.PlayerStateContext{
			Input:  input,
			Player: player,
			GetVelocity: func() (float64, float64) {
				u, v, _ := common.ToView(velocity.Linear, viewYaw)
				return u, v
			},
			SetVelocity: func(x, y float64) {
				velocity.Linear = common.FromView(x, y, 0, viewYaw)
			},
			IsGrounded: func() bool {
				pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
				return ok && (pc.Grounded || pc.GroundGrace > 0)
			},
			IsRotating: func() bool { return rotating },
			ChangeState: func(state component.PlayerState) {
				fsm.Pending = state
			},
			ChangeAnimation: func(name string) {
				changeAnimation(w, e, name)
			},
			FacingLeft: func(left bool) {
				if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
					sprite.FacingLeft = left
				}
			},
		}

		if fsm.State == nil {
			fsm.State = playerStateIdle
			fsm.State.Enter(ctx)
		}

		if rotating && fsm.State != playerStateTurn {
			fsm.Pending = playerStateTurn
		} else {
			fsm.State.HandleInput(ctx)
		}
		p.applyPending(e, fsm, ctx)

		fsm.State.Update(ctx)
		p.applyPending(e, fsm, ctx)

		if fsm.State == playerStateTurn {
			return
		}

		if input.DropPressed {
			transform.Position[2] -= player.DropHeight
			w.Events().Push(ecs.Event{Kind: ecs.EventDrop, Entity: e, Value: transform.Position.Z()})
		}

		x, y := ctx.GetVelocity()
		onGround := ctx.IsGrounded() && fsm.State != playerStateJump
		ctx.ChangeAnimation(animationForVelocity(x, y, onGround))
	})
}

func (p *PlayerControllerSystem) applyPending(e ecs.Entity, fsm *component.PlayerStateMachine, ctx *component.PlayerStateContext) {
	next := fsm.Pending
	fsm.Pending = nil
	if next == nil || next == fsm.State {
		return
	}
	p.logger.Debug("player state", zap.Stringer("entity", e), zap.String("from", fsm.State.Name()), zap.String("to", next.Name()))
	fsm.State.Exit(ctx)
	fsm.State = next
	fsm.State.Enter(ctx)
}

// animationForVelocity picks the flipbook from motion: airborne vertical
// motion shows jump or fall, horizontal motion run, else idle.
func animationForVelocity(x, y float64, onGround bool) string {
	switch {
	case !onGround && y < -velocityEpsilon:
		return "jump"
	case !onGround && y > velocityEpsilon:
		return "fall"
	case math.Abs(x) > velocityEpsilon:
		return "run"
	default:
		return "idle"
	}
}

func changeAnimation(w *ecs.World, e ecs.Entity, name string) {
	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok || anim.Current == name {
		return
	}
	if _, ok := anim.Defs[name]; !ok {
		return
	}
	anim.Current = name
	anim.Frame = 0
	anim.FrameTimer = 0
	anim.Playing = true
}

func cameraRotating(w *ecs.World) bool {
	camEntity, ok := ecs.First(w, component.CameraRotationComponent.Kind())
	if !ok {
		return false
	}
	rot, _ := ecs.Get(w, camEntity, component.CameraRotationComponent.Kind())
	return rot.State == component.RotationRotating
}
