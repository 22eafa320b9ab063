package system

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
)

// Projection maps world points to the screen with an orthographic view along
// the camera's current yaw.
type Projection struct {
	Yaw    float64
	Center mgl64.Vec3
	Zoom   float64
	Width  float64
	Height float64
}

// CameraProjection builds the projection for the first camera in w. It
// reports false when there is no ready camera.
func CameraProjection(w *ecs.World, width, height float64) (Projection, bool) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return Projection{}, false
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok || !cam.Ready {
		return Projection{}, false
	}

	zoom := 1.0
	if cam.OrthoWidth > 0 {
		zoom = width / cam.OrthoWidth
	}
	return Projection{
		Yaw:    camTransform.Yaw,
		Center: cam.View,
		Zoom:   zoom,
		Width:  width,
		Height: height,
	}, true
}

// Screen returns the screen position of p.
func (p Projection) Screen(pt mgl64.Vec3) (float64, float64) {
	right := common.Right(p.Yaw)
	u := pt.Sub(p.Center).Dot(right)
	v := p.Center.Z() - pt.Z()
	return u*p.Zoom + p.Width/2, v*p.Zoom + p.Height/2
}

// Depth is the distance of p along the view direction.
func (p Projection) Depth(pt mgl64.Vec3) float64 {
	return pt.Dot(common.Forward(p.Yaw))
}

type RenderSystem struct {
	blocks []ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	b := screen.Bounds()
	proj, ok := CameraProjection(w, float64(b.Dx()), float64(b.Dy()))
	if !ok {
		return
	}

	r.blocks = r.blocks[:0]
	ecs.ForEach(w, component.BlockComponent.Kind(), func(e ecs.Entity, _ *component.Block) {
		r.blocks = append(r.blocks, e)
	})

	// Painter's order: farthest first.
	sort.SliceStable(r.blocks, func(i, j int) bool {
		bi, _ := ecs.Get(w, r.blocks[i], component.BlockComponent.Kind())
		bj, _ := ecs.Get(w, r.blocks[j], component.BlockComponent.Kind())
		return proj.Depth(bi.Center()) > proj.Depth(bj.Center())
	})

	for _, e := range r.blocks {
		block, ok := ecs.Get(w, e, component.BlockComponent.Kind())
		if !ok {
			continue
		}
		drawBlock(screen, proj, block)
	}

	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, s *component.Sprite, t *component.Transform) {
		drawBillboard(w, e, screen, proj, s, t)
	})
}

// drawBlock draws the vertical faces of b that face the camera, shaded by
// how squarely they face it.
func drawBlock(screen *ebiten.Image, proj Projection, b *component.Block) {
	forward := common.Forward(proj.Yaw)
	corners := [4]mgl64.Vec3{
		{b.Min.X(), b.Min.Y(), 0},
		{b.Max.X(), b.Min.Y(), 0},
		{b.Max.X(), b.Max.Y(), 0},
		{b.Min.X(), b.Max.Y(), 0},
	}
	normals := [4]mgl64.Vec3{{0, -1, 0}, {1, 0, 0}, {0, 1, 0}, {-1, 0, 0}}

	_, top := proj.Screen(mgl64.Vec3{0, 0, b.Max.Z()})
	_, bottom := proj.Screen(mgl64.Vec3{0, 0, b.Min.Z()})

	for i, n := range normals {
		facing := -n.Dot(forward)
		if facing <= 1e-6 {
			continue
		}
		x0, _ := proj.Screen(corners[i])
		x1, _ := proj.Screen(corners[(i+1)%4])
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		if x1-x0 < 0.5 {
			continue
		}
		shade := 0.55 + 0.45*facing
		var clr color.Color = shadeColor(b.Color, shade)
		if !b.Solid {
			c := shadeColor(b.Color, shade)
			clr = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 120}
		}
		vector.FillRect(screen, float32(x0), float32(top), float32(x1-x0), float32(bottom-top), clr, false)
		vector.StrokeRect(screen, float32(x0), float32(top), float32(x1-x0), float32(bottom-top), 1, shadeColor(b.Color, shade*0.6), false)
	}
}

func drawBillboard(w *ecs.World, e ecs.Entity, screen *ebiten.Image, proj Projection, s *component.Sprite, t *component.Transform) {
	cx, cy := proj.Screen(t.Position)
	width := s.Width * proj.Zoom
	height := s.Height * proj.Zoom
	x := cx - width/2
	y := cy - height/2

	clr := s.Color
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		clr = animationTint(clr, anim)
	}
	vector.FillRect(screen, float32(x), float32(y), float32(width), float32(height), clr, false)

	// Eye marks the facing direction.
	eyeX := x + width*0.7
	if s.FacingLeft {
		eyeX = x + width*0.3
	}
	vector.FillRect(screen, float32(eyeX-2), float32(y+height*0.2), 4, 4, color.RGBA{A: 255}, false)
}

// animationTint pulses the sprite color with the current frame so state
// changes stay visible without a sprite sheet.
func animationTint(c color.RGBA, anim *component.Animation) color.RGBA {
	def, ok := anim.Defs[anim.Current]
	if !ok || def.FrameCount <= 1 {
		return c
	}
	phase := float64(anim.Frame) / float64(def.FrameCount)
	return shadeColor(c, 0.85+0.15*math.Cos(phase*2*math.Pi))
}

func shadeColor(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Max(0, float64(v)*f)))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
