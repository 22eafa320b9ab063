package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
)

func TestBlockViewBB(t *testing.T) {
	b := &component.Block{Min: mgl64.Vec3{0, 10, 0}, Max: mgl64.Vec3{100, 30, 5}}
	cases := []struct {
		yaw  float64
		want cp.BB
	}{
		{0, cp.BB{L: 10, B: -5, R: 30, T: 0}},
		{90, cp.BB{L: -100, B: -5, R: 0, T: 0}},
		{180, cp.BB{L: -30, B: -5, R: -10, T: 0}},
	}
	for _, c := range cases {
		got := blockViewBB(b, c.yaw)
		if math.Abs(got.L-c.want.L) > 1e-9 || math.Abs(got.R-c.want.R) > 1e-9 || got.B != c.want.B || got.T != c.want.T {
			t.Errorf("yaw %v: got %+v, want %+v", c.yaw, got, c.want)
		}
	}
}

type physicsFixture struct {
	w      *ecs.World
	camera ecs.Entity
	player ecs.Entity
}

func newPhysicsFixture(t *testing.T, pos mgl64.Vec3) physicsFixture {
	t.Helper()
	w := ecs.NewWorld()

	camera := ecs.CreateEntity(w)
	mustAdd(t, w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{})
	mustAdd(t, w, camera, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, camera, component.CameraRotationComponent.Kind(), &component.CameraRotation{})

	player := ecs.CreateEntity(w)
	mustAdd(t, w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, player, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	mustAdd(t, w, player, component.VelocityComponent.Kind(), &component.Velocity{})
	mustAdd(t, w, player, component.FrozenMotionComponent.Kind(), &component.FrozenMotion{})
	mustAdd(t, w, player, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
	mustAdd(t, w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 40, Height: 64, Mass: 1})

	// Ground far behind the player in depth: flattened, it still supports them.
	addBlock(t, w, mgl64.Vec3{900, -1000, -64}, mgl64.Vec3{1000, 1000, 0}, true)

	return physicsFixture{w: w, camera: camera, player: player}
}

func TestPhysicsLandsOnFlattenedGround(t *testing.T) {
	f := newPhysicsFixture(t, mgl64.Vec3{250, 0, 100})
	ps := NewPhysicsSystem()
	for i := 0; i < 120; i++ {
		ps.Update(f.w)
	}

	pt, _ := ecs.Get(f.w, f.player, component.TransformComponent.Kind())
	if math.Abs(pt.Position.Z()-32) > 1 {
		t.Fatalf("expected player resting at z~32, got %v", pt.Position)
	}
	if pt.Position.X() != 250 {
		t.Fatalf("depth changed: %v", pt.Position)
	}
	pc, _ := ecs.Get(f.w, f.player, component.PlayerCollisionComponent.Kind())
	if !pc.Grounded {
		t.Fatal("expected grounded player")
	}
	pb, _ := ecs.Get(f.w, f.player, component.PhysicsBodyComponent.Kind())
	if pb.Body == nil || pb.ViewYaw != 0 {
		t.Fatalf("unexpected body state %+v", pb)
	}
}

func TestPhysicsSkipsFrozenPlayer(t *testing.T) {
	start := mgl64.Vec3{250, 0, 400}
	f := newPhysicsFixture(t, start)
	frozen, _ := ecs.Get(f.w, f.player, component.FrozenMotionComponent.Kind())
	frozen.Active = true
	vel, _ := ecs.Get(f.w, f.player, component.VelocityComponent.Kind())
	vel.Linear = mgl64.Vec3{0, 300, 0}

	ps := NewPhysicsSystem()
	for i := 0; i < 30; i++ {
		ps.Update(f.w)
	}

	pt, _ := ecs.Get(f.w, f.player, component.TransformComponent.Kind())
	if pt.Position != start {
		t.Fatalf("frozen player moved to %v", pt.Position)
	}
	if vel.Linear != (mgl64.Vec3{0, 300, 0}) {
		t.Fatalf("frozen velocity overwritten: %v", vel.Linear)
	}
}

func TestPhysicsRebuildsOnSettledYaw(t *testing.T) {
	f := newPhysicsFixture(t, mgl64.Vec3{0, 0, 400})
	ps := NewPhysicsSystem()
	ps.Update(f.w)
	if ps.ViewYaw() != 0 {
		t.Fatalf("expected view yaw 0, got %v", ps.ViewYaw())
	}

	cam, _ := ecs.Get(f.w, f.camera, component.TransformComponent.Kind())
	rot, _ := ecs.Get(f.w, f.camera, component.CameraRotationComponent.Kind())
	cam.Yaw = 45
	rot.State = component.RotationRotating
	ps.Update(f.w)
	if ps.ViewYaw() != 0 {
		t.Fatalf("view yaw must hold while rotating, got %v", ps.ViewYaw())
	}

	cam.Yaw = 90
	rot.State = component.RotationIdle
	ps.Update(f.w)
	if ps.ViewYaw() != 90 {
		t.Fatalf("expected view yaw 90, got %v", ps.ViewYaw())
	}
	if len(ps.statics) != 1 {
		t.Fatalf("expected one static shape after rebuild, got %d", len(ps.statics))
	}
}

func TestPhysicsReleasesDestroyedBodies(t *testing.T) {
	f := newPhysicsFixture(t, mgl64.Vec3{0, 0, 400})
	ps := NewPhysicsSystem()
	ps.Update(f.w)
	if len(ps.entities) != 1 {
		t.Fatalf("expected one body, got %d", len(ps.entities))
	}
	ecs.DestroyEntity(f.w, f.player)
	ps.Update(f.w)
	if len(ps.entities) != 0 || len(ps.groundShapes) != 0 {
		t.Fatalf("bodies not released: %d entities, %d ground shapes", len(ps.entities), len(ps.groundShapes))
	}
}
