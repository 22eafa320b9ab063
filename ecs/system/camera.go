package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update keeps the camera rig behind its target. Transform holds the exact
// rig position used by the depth probe; Camera.View trails it for rendering.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		cs.camEntity = 0
		if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			cs.camEntity = camEntity
		}
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}

	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	rotating := false
	if rot, ok := ecs.Get(w, cs.camEntity, component.CameraRotationComponent.Kind()); ok {
		rotating = rot.State == component.RotationRotating
	}
	if !rotating {
		camTransform.Yaw = common.NormalizeDegrees(targetTransform.Yaw)
	}

	rig := CameraRig(targetTransform.Position, camTransform.Yaw, cam.Distance, cam.Height)
	camTransform.Position = rig
	cam.Forward = common.Forward(camTransform.Yaw)
	cam.Right = common.Right(camTransform.Yaw)

	if !cam.Ready || rotating || cam.Smoothness <= 0 || cam.Smoothness >= 1 {
		cam.View = rig
		cam.Ready = true
		return
	}
	cam.View = cam.View.Add(rig.Sub(cam.View).Mul(cam.Smoothness))
}

// CameraRig is the camera position for a target at pos viewed along yaw.
func CameraRig(pos mgl64.Vec3, yaw, distance, height float64) mgl64.Vec3 {
	rig := pos.Sub(common.Forward(yaw).Mul(distance))
	rig[2] += height
	return rig
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "" || name == "player" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
