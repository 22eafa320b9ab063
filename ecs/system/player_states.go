package system

import "github.com/milk9111/quarterturn/ecs/component"

// Player state singletons (avoid allocations on transitions).
var (
	playerStateIdle component.PlayerState = &playerIdleState{}
	playerStateRun  component.PlayerState = &playerRunState{}
	playerStateJump component.PlayerState = &playerJumpState{}
	playerStateFall component.PlayerState = &playerFallState{}
	playerStateTurn component.PlayerState = &playerTurnState{}
)

type playerIdleState struct{}

type playerRunState struct{}

type playerJumpState struct{}

type playerFallState struct{}

// playerTurnState holds the player while the camera turns; input is ignored.
type playerTurnState struct{}

func (playerIdleState) Name() string { return "idle" }
func (playerIdleState) Enter(ctx *component.PlayerStateContext) {
	ctx.ChangeAnimation("idle")
}
func (playerIdleState) Exit(ctx *component.PlayerStateContext) {}
func (playerIdleState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil {
		return
	}
	if ctx.Input.JumpPressed && grounded(ctx) {
		ctx.ChangeState(playerStateJump)
		return
	}
	if ctx.Input.MoveX != 0 {
		ctx.ChangeState(playerStateRun)
	}
}
func (playerIdleState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.SetVelocity == nil || ctx.GetVelocity == nil {
		return
	}
	_, y := ctx.GetVelocity()
	ctx.SetVelocity(0, y)
	if !grounded(ctx) && ctx.ChangeState != nil {
		ctx.ChangeState(playerStateFall)
	}
}

func (playerRunState) Name() string { return "run" }
func (playerRunState) Enter(ctx *component.PlayerStateContext) {
	ctx.ChangeAnimation("run")
}
func (playerRunState) Exit(ctx *component.PlayerStateContext) {}
func (playerRunState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil {
		return
	}
	if ctx.Input.JumpPressed && grounded(ctx) {
		ctx.ChangeState(playerStateJump)
		return
	}
	if ctx.Input.MoveX == 0 {
		ctx.ChangeState(playerStateIdle)
		return
	}
	face(ctx)
}
func (playerRunState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.SetVelocity == nil || ctx.GetVelocity == nil {
		return
	}
	_, y := ctx.GetVelocity()
	ctx.SetVelocity(ctx.Input.MoveX*ctx.Player.MoveSpeed, y)
	if !grounded(ctx) && ctx.ChangeState != nil {
		ctx.ChangeState(playerStateFall)
	}
}

func (playerJumpState) Name() string { return "jump" }
func (playerJumpState) Enter(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.SetVelocity == nil || ctx.GetVelocity == nil {
		return
	}
	ctx.ChangeAnimation("jump")
	x, _ := ctx.GetVelocity()
	ctx.SetVelocity(x, -ctx.Player.JumpSpeed)
}
func (playerJumpState) Exit(ctx *component.PlayerStateContext)        {}
func (playerJumpState) HandleInput(ctx *component.PlayerStateContext) {}
func (playerJumpState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.SetVelocity == nil || ctx.GetVelocity == nil {
		return
	}
	_, y := ctx.GetVelocity()
	ctx.SetVelocity(ctx.Input.MoveX*ctx.Player.MoveSpeed, y)
	if y >= 0 && ctx.ChangeState != nil {
		ctx.ChangeState(playerStateFall)
	}
	face(ctx)
}

func (playerFallState) Name() string { return "fall" }
func (playerFallState) Enter(ctx *component.PlayerStateContext) {
	if ctx == nil {
		return
	}
	ctx.ChangeAnimation("fall")
}
func (playerFallState) Exit(ctx *component.PlayerStateContext) {}
func (playerFallState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.ChangeState == nil {
		return
	}
	if ctx.Input.JumpPressed && grounded(ctx) {
		ctx.ChangeState(playerStateJump)
	}
}
func (playerFallState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Input == nil || ctx.SetVelocity == nil || ctx.GetVelocity == nil {
		return
	}
	_, y := ctx.GetVelocity()
	ctx.SetVelocity(ctx.Input.MoveX*ctx.Player.MoveSpeed, y)
	if grounded(ctx) && y >= 0 && ctx.ChangeState != nil {
		if ctx.Input.MoveX == 0 {
			ctx.ChangeState(playerStateIdle)
		} else {
			ctx.ChangeState(playerStateRun)
		}
		return
	}
	face(ctx)
}

func (playerTurnState) Name() string { return "turn" }
func (playerTurnState) Enter(ctx *component.PlayerStateContext) {}
func (playerTurnState) Exit(ctx *component.PlayerStateContext)  {}
func (playerTurnState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.ChangeState == nil || ctx.IsRotating == nil {
		return
	}
	if ctx.IsRotating() {
		return
	}
	if grounded(ctx) {
		ctx.ChangeState(playerStateIdle)
		return
	}
	ctx.ChangeState(playerStateFall)
}
func (playerTurnState) Update(ctx *component.PlayerStateContext) {}

func grounded(ctx *component.PlayerStateContext) bool {
	return ctx.IsGrounded != nil && ctx.IsGrounded()
}

func face(ctx *component.PlayerStateContext) {
	if ctx.FacingLeft == nil || ctx.Input == nil {
		return
	}
	if ctx.Input.MoveX > 0 {
		ctx.FacingLeft(false)
	} else if ctx.Input.MoveX < 0 {
		ctx.FacingLeft(true)
	}
}
