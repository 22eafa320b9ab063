package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
	"github.com/milk9111/quarterturn/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":           addPlayerTag,
	"camera_tag":           addCameraTag,
	"player":               addPlayer,
	"input":                addInput,
	"player_state_machine": addPlayerStateMachine,
	"player_collision":     addPlayerCollision,
	"transform":            addTransform,
	"velocity":             addVelocity,
	"frozen_motion":        addFrozenMotion,
	"sprite":               addSprite,
	"animation":            addAnimation,
	"physics_body":         addPhysicsBody,
	"camera":               addCamera,
	"camera_rotation":      addCameraRotation,
	"depth_probe":          addDepthProbe,
	"rotation_gate":        addRotationGate,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"player",
	"input",
	"player_state_machine",
	"player_collision",
	"transform",
	"velocity",
	"frozen_motion",
	"sprite",
	"animation",
	"physics_body",
	"camera",
	"camera_rotation",
	"depth_probe",
	"rotation_gate",
}

// Defaults applied when a prefab leaves a tuning value at zero.
const (
	DefaultMoveSpeed      = 600.0
	DefaultJumpSpeed      = 1000.0
	DefaultDropHeight     = 10.0
	DefaultKillZ          = -2000.0
	DefaultCameraDistance = 3000.0
	DefaultOrthoWidth     = 4096.0
	DefaultSmoothing      = 0.05
	DefaultRotationSpeed  = 360.0
	DefaultEpsilon        = 0.1
	DefaultMaxTicks       = 10000
	DefaultProbeDrop      = 120.0
	DefaultProbeDistance  = 7000.0
	DefaultAxisThreshold  = 0.1
)

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, spec, prefabPath)
}

// BuildEntityFromSpec creates an entity from an already decoded prefab. The
// entity is destroyed again if any component fails to build.
func BuildEntityFromSpec(w *ecs.World, spec prefabs.EntityBuildSpec, prefabPath string) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string, raw any) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, raw, ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		return nil
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := build(name, raw); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
		delete(remaining, name)
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name, remaining[name]); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

// SetEntityTransform places an entity, keeping its other transform fields.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, z, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position = mgl64.Vec3{x, y, z}
	t.Yaw = yaw
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.MoveSpeed == 0 {
		spec.MoveSpeed = DefaultMoveSpeed
	}
	if spec.JumpSpeed == 0 {
		spec.JumpSpeed = DefaultJumpSpeed
	}
	if spec.DropHeight == 0 {
		spec.DropHeight = DefaultDropHeight
	}
	if spec.KillZ == 0 {
		spec.KillZ = DefaultKillZ
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:  spec.MoveSpeed,
		JumpSpeed:  spec.JumpSpeed,
		DropHeight: spec.DropHeight,
		KillZ:      spec.KillZ,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayerStateMachine(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerStateMachineComponent.Kind(), &component.PlayerStateMachine{})
}

func addPlayerCollision(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return SetEntityTransform(w, e, spec.X, spec.Y, spec.Z, spec.Yaw)
}

func addVelocity(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}

func addFrozenMotion(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.FrozenMotionComponent.Kind(), &component.FrozenMotion{})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	if spec.Width <= 0 {
		spec.Width = 32
	}
	if spec.Height <= 0 {
		spec.Height = 32
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:      spec.Width,
		Height:     spec.Height,
		Color:      spec.Color.RGBA8(),
		FacingLeft: spec.FacingLeft,
	})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}

	defs := make(map[string]component.AnimationDef, len(spec.Defs))
	for name, def := range spec.Defs {
		defs[name] = component.AnimationDef{
			Name:       name,
			FrameCount: def.FrameCount,
			FPS:        def.FPS,
			Loop:       def.Loop,
		}
	}
	if spec.Current != "" {
		if _, ok := defs[spec.Current]; !ok {
			return fmt.Errorf("animation %q not defined", spec.Current)
		}
	}

	playing := spec.Playing
	if m, ok := raw.(map[string]any); ok {
		if _, has := m["playing"]; !has {
			playing = true
		}
	}

	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Defs:       defs,
		Current:    spec.Current,
		Frame:      spec.Frame,
		FrameTimer: spec.FrameTimer,
		Playing:    playing,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Width <= 0 {
		spec.Width = 32
	}
	if spec.Height <= 0 {
		spec.Height = 32
	}
	if spec.Mass <= 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Mass:     spec.Mass,
		Friction: spec.Friction,
	})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.TargetName == "" {
		spec.TargetName = "player"
	}
	if spec.Distance <= 0 {
		spec.Distance = DefaultCameraDistance
	}
	if spec.OrthoWidth <= 0 {
		spec.OrthoWidth = DefaultOrthoWidth
	}
	if spec.Smoothness <= 0 || spec.Smoothness > 1 {
		spec.Smoothness = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Distance:   spec.Distance,
		Height:     spec.Height,
		OrthoWidth: spec.OrthoWidth,
		Smoothness: spec.Smoothness,
	})
}

type cameraRotationSpec = prefabs.CameraRotationComponentSpec

func addCameraRotation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraRotationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera rotation spec: %w", err)
	}
	mode, err := ParseRotationMode(spec.Mode)
	if err != nil {
		return err
	}
	if spec.Smoothing <= 0 || spec.Smoothing > 1 {
		spec.Smoothing = DefaultSmoothing
	}
	if spec.Speed <= 0 {
		spec.Speed = DefaultRotationSpeed
	}
	if spec.Epsilon <= 0 {
		spec.Epsilon = DefaultEpsilon
	}
	if spec.MaxTicks <= 0 {
		spec.MaxTicks = DefaultMaxTicks
	}
	return ecs.Add(w, e, component.CameraRotationComponent.Kind(), &component.CameraRotation{
		State:     component.RotationIdle,
		Mode:      mode,
		Smoothing: spec.Smoothing,
		Speed:     spec.Speed,
		Epsilon:   spec.Epsilon,
		MaxTicks:  spec.MaxTicks,
	})
}

type depthProbeSpec = prefabs.DepthProbeComponentSpec

func addDepthProbe(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[depthProbeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode depth probe spec: %w", err)
	}
	policy, err := ParseDepthPolicy(spec.Policy)
	if err != nil {
		return err
	}
	if spec.Drop == 0 {
		spec.Drop = DefaultProbeDrop
	}
	if spec.Distance <= 0 {
		spec.Distance = DefaultProbeDistance
	}
	if spec.AxisThreshold <= 0 {
		spec.AxisThreshold = DefaultAxisThreshold
	}
	return ecs.Add(w, e, component.DepthProbeComponent.Kind(), &component.DepthProbe{
		Drop:          spec.Drop,
		Distance:      spec.Distance,
		Margin:        spec.Margin,
		AxisThreshold: spec.AxisThreshold,
		Policy:        policy,
		Axis:          component.DepthAxisNone,
	})
}

type rotationGateSpec = prefabs.RotationGateComponentSpec

func addRotationGate(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[rotationGateSpec](raw)
	if err != nil {
		return fmt.Errorf("decode rotation gate spec: %w", err)
	}
	if spec.Script == "" {
		return nil
	}
	return ecs.Add(w, e, component.RotationGateComponent.Kind(), &component.RotationGate{Script: spec.Script})
}

func ParseRotationMode(s string) (component.RotationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lerp":
		return component.RotationLerp, nil
	case "constant":
		return component.RotationConstant, nil
	default:
		return component.RotationLerp, fmt.Errorf("unknown rotation mode %q", s)
	}
}

func ParseDepthPolicy(s string) (component.DepthPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip_while_rotating":
		return component.DepthSkipWhileRotating, nil
	case "always":
		return component.DepthAlways, nil
	default:
		return component.DepthSkipWhileRotating, fmt.Errorf("unknown depth policy %q", s)
	}
}
