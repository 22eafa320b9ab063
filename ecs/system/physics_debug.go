package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DrawPhysicsDebug outlines the flattened collision shapes of ps.
func DrawPhysicsDebug(ps *PhysicsSystem, w *ecs.World, screen *ebiten.Image) {
	if ps == nil || ps.Space() == nil || w == nil || screen == nil {
		return
	}

	b := screen.Bounds()
	proj, ok := CameraProjection(w, float64(b.Dx()), float64(b.Dy()))
	if !ok {
		return
	}
	drawer := &physicsDebugDrawer{
		screen:  screen,
		proj:    proj,
		viewYaw: ps.ViewYaw(),
		depth:   proj.Center.Dot(common.Forward(ps.ViewYaw())),
	}
	cp.DrawSpace(ps.Space(), drawer)
}

// DrawProbeDebug marks the depth probe ray and its hit.
func DrawProbeDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	proj, ok := CameraProjection(w, float64(b.Dx()), float64(b.Dy()))
	if !ok {
		return
	}
	camEntity, ok := ecs.First(w, component.DepthProbeComponent.Kind())
	if !ok {
		return
	}
	probe, _ := ecs.Get(w, camEntity, component.DepthProbeComponent.Kind())

	sx, sy := proj.Screen(probe.Start)
	drawCross(screen, sx, sy, 6, colornames.Cyan)
	if !probe.Hit {
		return
	}
	hx, hy := proj.Screen(probe.Point)
	drawCross(screen, hx, hy, 8, colornames.Red)
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(hx), float32(hy), 1, colornames.Orange, false)
}

func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	stateName := "none"
	if stateComp, ok := ecs.Get(w, player, component.PlayerStateMachineComponent.Kind()); ok && stateComp.State != nil {
		stateName = stateComp.State.Name()
	}
	grounded := false
	if pc, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		grounded = pc.Grounded || pc.GroundGrace > 0
	}
	pos := mgl64.Vec3{}
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		pos = t.Position
	}

	rotation := "idle"
	yaw := 0.0
	probeText := "probe: none"
	if camEntity, ok := ecs.First(w, component.CameraRotationComponent.Kind()); ok {
		rot, _ := ecs.Get(w, camEntity, component.CameraRotationComponent.Kind())
		rotation = rot.State.String()
		if rot.State == component.RotationRotating {
			rotation = fmt.Sprintf("rotating -> %.0f (tick %d)", common.SnapDegrees(rot.TargetYaw), rot.Ticks)
		}
		if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
			yaw = t.Yaw
		}
		if probe, ok := ecs.Get(w, camEntity, component.DepthProbeComponent.Kind()); ok && probe.Hit {
			probeText = fmt.Sprintf("probe: axis %s at %.1f", axisName(probe.Axis), probe.Point[maxInt(probe.Axis, 0)])
		}
	}

	text := fmt.Sprintf("State: %s\nGrounded: %v\nPos: %.1f %.1f %.1f\nYaw: %.2f\nRotation: %s\n%s",
		stateName, grounded, pos.X(), pos.Y(), pos.Z(), yaw, rotation, probeText)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func axisName(axis int) string {
	switch axis {
	case component.DepthAxisX:
		return "x"
	case component.DepthAxisY:
		return "y"
	default:
		return "none"
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func drawCross(screen *ebiten.Image, x, y, size float64, clr color.Color) {
	vector.StrokeLine(screen, float32(x-size), float32(y), float32(x+size), float32(y), 1, clr, false)
	vector.StrokeLine(screen, float32(x), float32(y-size), float32(x), float32(y+size), 1, clr, false)
}

type physicsDebugDrawer struct {
	screen  *ebiten.Image
	proj    Projection
	viewYaw float64
	depth   float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.toScreen(pos)
	drawCross(d.screen, x, y, size/2, toNRGBA(fill))
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Sensor() {
		return cp.FColor{R: 1, G: 1, B: 0.2, A: 0.8}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(color), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, color cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], color)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, color)
}

// toScreen lifts a view-plane point back into the world at the camera's
// depth, then projects it.
func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return d.proj.Screen(common.FromView(v.X, v.Y, d.depth, d.viewYaw))
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
