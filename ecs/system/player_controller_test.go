package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
)

type controllerFixture struct {
	w      *ecs.World
	player ecs.Entity
	camera ecs.Entity
}

func newControllerFixture(t *testing.T, yaw float64, grounded bool) controllerFixture {
	t.Helper()
	w := ecs.NewWorld()

	camera := ecs.CreateEntity(w)
	mustAdd(t, w, camera, component.CameraRotationComponent.Kind(), &component.CameraRotation{})

	player := ecs.CreateEntity(w)
	mustAdd(t, w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, player, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 600, JumpSpeed: 1000, DropHeight: 10, KillZ: -600})
	mustAdd(t, w, player, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, player, component.PlayerStateMachineComponent.Kind(), &component.PlayerStateMachine{})
	mustAdd(t, w, player, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{0, 0, 32}, Yaw: yaw})
	mustAdd(t, w, player, component.VelocityComponent.Kind(), &component.Velocity{})
	mustAdd(t, w, player, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{Grounded: grounded})
	mustAdd(t, w, player, component.SpriteComponent.Kind(), &component.Sprite{})
	mustAdd(t, w, player, component.AnimationComponent.Kind(), &component.Animation{
		Defs: map[string]component.AnimationDef{
			"idle": {Name: "idle", FrameCount: 1, FPS: 1, Loop: true},
			"run":  {Name: "run", FrameCount: 4, FPS: 10, Loop: true},
			"jump": {Name: "jump", FrameCount: 1, FPS: 1},
			"fall": {Name: "fall", FrameCount: 1, FPS: 1},
		},
		Current: "idle",
		Playing: true,
	})

	return controllerFixture{w: w, player: player, camera: camera}
}

func (f controllerFixture) input() *component.Input {
	in, _ := ecs.Get(f.w, f.player, component.InputComponent.Kind())
	return in
}

func (f controllerFixture) state() string {
	fsm, _ := ecs.Get(f.w, f.player, component.PlayerStateMachineComponent.Kind())
	if fsm.State == nil {
		return ""
	}
	return fsm.State.Name()
}

func (f controllerFixture) velocity() mgl64.Vec3 {
	vel, _ := ecs.Get(f.w, f.player, component.VelocityComponent.Kind())
	return vel.Linear
}

func TestPlayerRunsAlongViewRight(t *testing.T) {
	cases := []struct {
		name string
		yaw  float64
		want mgl64.Vec3
	}{
		{"yaw_0", 0, mgl64.Vec3{0, 600, 0}},
		{"yaw_90", 90, mgl64.Vec3{-600, 0, 0}},
		{"yaw_180", 180, mgl64.Vec3{0, -600, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newControllerFixture(t, c.yaw, true)
			f.input().MoveX = 1
			NewPlayerControllerSystem(nil).Update(f.w)

			if f.state() != "run" {
				t.Fatalf("expected run state, got %q", f.state())
			}
			if got := f.velocity(); !got.ApproxEqualThreshold(c.want, 1e-9) {
				t.Fatalf("expected velocity %v, got %v", c.want, got)
			}
			anim, _ := ecs.Get(f.w, f.player, component.AnimationComponent.Kind())
			if anim.Current != "run" {
				t.Fatalf("expected run animation, got %q", anim.Current)
			}
		})
	}
}

func TestPlayerJumpAndFacing(t *testing.T) {
	f := newControllerFixture(t, 0, true)
	sys := NewPlayerControllerSystem(nil)
	sys.Update(f.w)
	if f.state() != "idle" {
		t.Fatalf("expected idle, got %q", f.state())
	}

	f.input().JumpPressed = true
	f.input().MoveX = -1
	sys.Update(f.w)
	if f.state() != "jump" {
		t.Fatalf("expected jump, got %q", f.state())
	}
	if z := f.velocity().Z(); z != 1000 {
		t.Fatalf("expected upward velocity 1000, got %v", z)
	}
	sprite, _ := ecs.Get(f.w, f.player, component.SpriteComponent.Kind())
	if !sprite.FacingLeft {
		t.Fatal("expected sprite facing left")
	}
	anim, _ := ecs.Get(f.w, f.player, component.AnimationComponent.Kind())
	if anim.Current != "jump" {
		t.Fatalf("expected jump animation, got %q", anim.Current)
	}
}

func TestPlayerTurnStateWhileRotating(t *testing.T) {
	f := newControllerFixture(t, 0, true)
	sys := NewPlayerControllerSystem(nil)
	rot, _ := ecs.Get(f.w, f.camera, component.CameraRotationComponent.Kind())
	rot.State = component.RotationRotating

	f.input().MoveX = 1
	f.input().DropPressed = true
	sys.Update(f.w)
	if f.state() != "turn" {
		t.Fatalf("expected turn, got %q", f.state())
	}
	if got := f.velocity(); got != (mgl64.Vec3{}) {
		t.Fatalf("input must be ignored while turning, velocity %v", got)
	}
	pt, _ := ecs.Get(f.w, f.player, component.TransformComponent.Kind())
	if pt.Position.Z() != 32 {
		t.Fatalf("drop must be ignored while turning, z=%v", pt.Position.Z())
	}

	rot.State = component.RotationIdle
	f.input().DropPressed = false
	sys.Update(f.w)
	if f.state() != "idle" {
		t.Fatalf("expected idle after turn, got %q", f.state())
	}
}

func TestPlayerDrop(t *testing.T) {
	f := newControllerFixture(t, 0, true)
	f.input().DropPressed = true
	NewPlayerControllerSystem(nil).Update(f.w)

	pt, _ := ecs.Get(f.w, f.player, component.TransformComponent.Kind())
	if pt.Position.Z() != 22 {
		t.Fatalf("expected z=22 after drop, got %v", pt.Position.Z())
	}
	events := f.w.Events().Drain()
	if len(events) != 1 || events[0].Kind != ecs.EventDrop {
		t.Fatalf("expected drop event, got %v", events)
	}
}

func TestPlayerFallsWhenUnsupported(t *testing.T) {
	f := newControllerFixture(t, 0, false)
	NewPlayerControllerSystem(nil).Update(f.w)
	if f.state() != "fall" {
		t.Fatalf("expected fall, got %q", f.state())
	}
}

func TestAnimationForVelocity(t *testing.T) {
	cases := []struct {
		name     string
		x, y     float64
		onGround bool
		want     string
	}{
		{"rest", 0, 0, true, "idle"},
		{"run", 300, 0, true, "run"},
		{"rising", 0, -500, false, "jump"},
		{"falling", 100, 500, false, "fall"},
		{"ground_jitter", 0, 20, true, "idle"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := animationForVelocity(c.x, c.y, c.onGround); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}
