package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
)

func newCameraWorld(t *testing.T, playerYaw float64, smoothness float64) (*ecs.World, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()

	player := ecs.CreateEntity(w)
	mustAdd(t, w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, player, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{100, 200, 40}, Yaw: playerYaw})

	camera := ecs.CreateEntity(w)
	mustAdd(t, w, camera, component.CameraComponent.Kind(), &component.Camera{TargetName: "player", Distance: 3000, Height: 40, Smoothness: smoothness})
	mustAdd(t, w, camera, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, camera, component.CameraRotationComponent.Kind(), &component.CameraRotation{})

	return w, player, camera
}

func TestCameraFollowsBehindTarget(t *testing.T) {
	cases := []struct {
		yaw  float64
		want mgl64.Vec3
	}{
		{0, mgl64.Vec3{-2900, 200, 80}},
		{90, mgl64.Vec3{100, -2800, 80}},
		{180, mgl64.Vec3{3100, 200, 80}},
		{270, mgl64.Vec3{100, 3200, 80}},
	}
	for _, c := range cases {
		w, _, camera := newCameraWorld(t, c.yaw, 0.15)
		NewCameraSystem().Update(w)

		ct, _ := ecs.Get(w, camera, component.TransformComponent.Kind())
		if !ct.Position.ApproxEqualThreshold(c.want, 1e-9) || ct.Yaw != c.yaw {
			t.Errorf("yaw %v: camera at %v yaw %v, want %v", c.yaw, ct.Position, ct.Yaw, c.want)
		}
		cam, _ := ecs.Get(w, camera, component.CameraComponent.Kind())
		if !cam.Ready || cam.View != ct.Position {
			t.Errorf("yaw %v: first frame should snap view, got %+v", c.yaw, cam)
		}
	}
}

func TestCameraViewTrails(t *testing.T) {
	w, player, camera := newCameraWorld(t, 0, 0.5)
	sys := NewCameraSystem()
	sys.Update(w)

	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	pt.Position = pt.Position.Add(mgl64.Vec3{0, 100, 0})
	sys.Update(w)

	ct, _ := ecs.Get(w, camera, component.TransformComponent.Kind())
	cam, _ := ecs.Get(w, camera, component.CameraComponent.Kind())
	if ct.Position.Y() != 300 {
		t.Fatalf("rig should be exact, got %v", ct.Position)
	}
	if cam.View.Y() != 250 {
		t.Fatalf("expected view halfway at y=250, got %v", cam.View)
	}
}

func TestCameraKeepsYawWhileRotating(t *testing.T) {
	w, _, camera := newCameraWorld(t, 0, 0.15)
	rot, _ := ecs.Get(w, camera, component.CameraRotationComponent.Kind())
	rot.State = component.RotationRotating
	ct, _ := ecs.Get(w, camera, component.TransformComponent.Kind())
	ct.Yaw = 30

	NewCameraSystem().Update(w)
	if ct.Yaw != 30 {
		t.Fatalf("rotation owns yaw, got %v", ct.Yaw)
	}
	cam, _ := ecs.Get(w, camera, component.CameraComponent.Kind())
	if cam.View != ct.Position {
		t.Fatal("view should lock to the rig while rotating")
	}
}
