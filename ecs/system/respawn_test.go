package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
)

func TestRespawnBelowKillZ(t *testing.T) {
	cases := []struct {
		name   string
		z      float64
		frozen bool
		want   mgl64.Vec3
	}{
		{"above", -100, false, mgl64.Vec3{5, 5, -100}},
		{"below", -700, false, mgl64.Vec3{1, 2, 40}},
		{"below_but_frozen", -700, true, mgl64.Vec3{5, 5, -700}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			p := ecs.CreateEntity(w)
			mustAdd(t, w, p, component.PlayerComponent.Kind(), &component.Player{KillZ: -600})
			mustAdd(t, w, p, component.SpawnComponent.Kind(), &component.Spawn{X: 1, Y: 2, Z: 40})
			mustAdd(t, w, p, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{5, 5, c.z}})
			mustAdd(t, w, p, component.VelocityComponent.Kind(), &component.Velocity{Linear: mgl64.Vec3{0, 0, -900}})
			mustAdd(t, w, p, component.FrozenMotionComponent.Kind(), &component.FrozenMotion{Active: c.frozen})

			NewRespawnSystem(nil).Update(w)

			pt, _ := ecs.Get(w, p, component.TransformComponent.Kind())
			if pt.Position != c.want {
				t.Fatalf("expected %v, got %v", c.want, pt.Position)
			}
			vel, _ := ecs.Get(w, p, component.VelocityComponent.Kind())
			if c.name == "below" && vel.Linear != (mgl64.Vec3{}) {
				t.Fatalf("velocity should reset, got %v", vel.Linear)
			}
		})
	}
}
