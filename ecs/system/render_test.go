package system

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
)

func TestProjectionScreen(t *testing.T) {
	cases := []struct {
		name   string
		yaw    float64
		pt     mgl64.Vec3
		wx, wy float64
	}{
		{"center", 0, mgl64.Vec3{0, 0, 100}, 640, 360},
		{"right_at_yaw_0", 0, mgl64.Vec3{500, 100, 100}, 840, 360},
		{"depth_ignored", 0, mgl64.Vec3{-900, 0, 100}, 640, 360},
		{"above", 0, mgl64.Vec3{0, 0, 150}, 640, 260},
		{"right_at_yaw_90", 90, mgl64.Vec3{-100, 0, 100}, 840, 360},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Projection{Yaw: c.yaw, Center: mgl64.Vec3{0, 0, 100}, Zoom: 2, Width: 1280, Height: 720}
			x, y := p.Screen(c.pt)
			if math.Abs(x-c.wx) > 1e-9 || math.Abs(y-c.wy) > 1e-9 {
				t.Fatalf("got (%v, %v), want (%v, %v)", x, y, c.wx, c.wy)
			}
		})
	}
}

func TestCameraProjectionNeedsReadyCamera(t *testing.T) {
	w := ecs.NewWorld()
	if _, ok := CameraProjection(w, 1280, 720); ok {
		t.Fatal("expected no projection without a camera")
	}

	cam := ecs.CreateEntity(w)
	camera := &component.Camera{OrthoWidth: 2560}
	mustAdd(t, w, cam, component.CameraComponent.Kind(), camera)
	mustAdd(t, w, cam, component.TransformComponent.Kind(), &component.Transform{Yaw: 90})
	if _, ok := CameraProjection(w, 1280, 720); ok {
		t.Fatal("expected no projection before the camera is ready")
	}

	camera.Ready = true
	p, ok := CameraProjection(w, 1280, 720)
	if !ok || p.Zoom != 0.5 || p.Yaw != 90 {
		t.Fatalf("unexpected projection %+v ok=%v", p, ok)
	}
}

func TestShadeColor(t *testing.T) {
	got := shadeColor(color.RGBA{R: 200, G: 100, B: 10, A: 255}, 0.5)
	want := color.RGBA{R: 100, G: 50, B: 5, A: 255}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := shadeColor(color.RGBA{R: 200, A: 255}, 2); got.R != 255 {
		t.Fatalf("expected clamp to 255, got %v", got.R)
	}
}
