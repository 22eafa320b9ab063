package entity

import (
	"fmt"

	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	camera, err := BuildEntity(w, "camera.yaml")
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	if !ecs.Has(w, camera, component.CameraComponent.Kind()) {
		ecs.DestroyEntity(w, camera)
		return 0, fmt.Errorf("camera: prefab has no camera component")
	}
	return camera, nil
}

// NewCameraFor builds the camera already looking at target with target's yaw
// so the first frame does not sweep in from the origin.
func NewCameraFor(w *ecs.World, target ecs.Entity) (ecs.Entity, error) {
	camera, err := NewCamera(w)
	if err != nil {
		return 0, err
	}
	tt, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return camera, nil
	}
	cam, _ := ecs.Get(w, camera, component.CameraComponent.Kind())
	yaw := common.NormalizeDegrees(tt.Yaw)
	pos := tt.Position.Sub(common.Forward(yaw).Mul(cam.Distance))
	pos[2] += cam.Height
	if err := SetEntityTransform(w, camera, pos.X(), pos.Y(), pos.Z(), yaw); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	cam.View = pos
	cam.Forward = common.Forward(yaw)
	cam.Right = common.Right(yaw)
	cam.Ready = true
	return camera, nil
}
