package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/quarterturn/common"
	"github.com/milk9111/quarterturn/ecs"
	"github.com/milk9111/quarterturn/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
)

const groundGraceFrames = 6

// PhysicsSystem simulates bodies in the view plane of the settled camera yaw.
// Solid blocks are flattened onto that plane, so anything visually in line
// collides regardless of depth. Transform and Velocity are authoritative:
// bodies are loaded from them before each step and written back after.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	dt            float64

	viewYaw      float64
	staticsReady bool
	statics      []*cp.Shape

	entities     map[ecs.Entity]*bodyInfo
	groundShapes map[*cp.Shape]ecs.Entity
	playerStates map[ecs.Entity]*playerContactState
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	depth       float64
	frozen      bool
}

type playerContactState struct {
	grounded    bool
	groundGrace int
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:        newSpace(),
		dt:           common.TickSeconds,
		entities:     make(map[ecs.Entity]*bodyInfo),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		playerStates: make(map[ecs.Entity]*playerContactState),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// ViewYaw is the yaw whose view plane the space currently models.
func (ps *PhysicsSystem) ViewYaw() float64 {
	if ps == nil {
		return 0
	}
	return ps.viewYaw
}

// Invalidate forces the static level shapes to be rebuilt next update, e.g.
// after the level was reloaded.
func (ps *PhysicsSystem) Invalidate() {
	if ps == nil {
		return
	}
	ps.staticsReady = false
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
		ps.staticsReady = false
	}

	ps.ensureHandlers()
	ps.syncView(w)
	ps.syncEntities(w)
	ps.resetPlayerContacts(w)
	ps.loadBodies(w)

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		playerEntity, okA := sys.groundShapes[shapeA]
		if !okA {
			var okB bool
			playerEntity, okB = sys.groundShapes[shapeB]
			if !okB {
				return true
			}
		}
		if info := sys.entities[playerEntity]; info != nil && info.frozen {
			return true
		}

		st := sys.playerStates[playerEntity]
		if st == nil {
			st = &playerContactState{}
			sys.playerStates[playerEntity] = st
		}
		st.grounded = true
		st.groundGrace = groundGraceFrames
		return true
	}

	ps.handlersReady = true
}

// syncView rebuilds the flattened level when the settled camera yaw changes.
// The view plane is left alone while a rotation is in progress.
func (ps *PhysicsSystem) syncView(w *ecs.World) {
	yaw := ps.viewYaw
	if camEntity, ok := ecs.First(w, component.CameraTagComponent.Kind()); ok {
		rotating := false
		if rot, ok := ecs.Get(w, camEntity, component.CameraRotationComponent.Kind()); ok {
			rotating = rot.State == component.RotationRotating
		}
		if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok && !rotating {
			yaw = common.SnapDegrees(t.Yaw)
		}
	}

	if ps.staticsReady && yaw == ps.viewYaw {
		return
	}
	ps.viewYaw = yaw
	ps.rebuildStatics(w)
}

func (ps *PhysicsSystem) rebuildStatics(w *ecs.World) {
	for _, shape := range ps.statics {
		ps.space.RemoveShape(shape)
	}
	ps.statics = ps.statics[:0]

	ecs.ForEach(w, component.BlockComponent.Kind(), func(_ ecs.Entity, b *component.Block) {
		if !b.Solid {
			return
		}
		bb := blockViewBB(b, ps.viewYaw)
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		ps.statics = append(ps.statics, shape)
	})
	ps.staticsReady = true
}

// blockViewBB flattens a block onto the view plane of yaw.
func blockViewBB(b *component.Block, yaw float64) cp.BB {
	lo, hi := common.BoxViewRange(b.Min, b.Max, yaw)
	return cp.BB{L: lo, B: -b.Max.Z(), R: hi, T: -b.Min.Z()}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			bodyComp.Body = info.body
			bodyComp.Shape = info.mainShape
			return
		}

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		info := ps.createBodyInfo(bodyComp, isPlayer)
		ps.entities[e] = info
		if info.groundShape != nil {
			ps.groundShapes[info.groundShape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	})
}

func (ps *PhysicsSystem) createBodyInfo(bodyComp *component.PhysicsBody, isPlayer bool) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		width = 32
		height = 32
	}
	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	info := &bodyInfo{}

	body := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		if info.frozen {
			b.SetVelocityVector(cp.Vector{})
			return
		}
		cp.BodyUpdateVelocity(b, gravity, damping, dt)
	})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetCollisionType(collisionTypeSolid)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if isPlayer {
		groundShape := createGroundSensor(width, height, body)
		ps.space.AddShape(groundShape)
		info.groundShape = groundShape
		info.shapes = append(info.shapes, groundShape)
	}

	return info
}

func createGroundSensor(width, height float64, body *cp.Body) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}

	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	return groundShape
}

// loadBodies copies Transform and Velocity into the bodies, projected onto
// the current view plane.
func (ps *PhysicsSystem) loadBodies(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info := ps.entities[e]
		if info == nil {
			return
		}
		bodyComp.ViewYaw = ps.viewYaw

		frozen, ok := ecs.Get(w, e, component.FrozenMotionComponent.Kind())
		info.frozen = ok && frozen.Active

		u, v, d := common.ToView(transform.Position, ps.viewYaw)
		info.depth = d
		info.body.SetPosition(cp.Vector{X: u, Y: v})
		info.body.SetAngle(0)
		info.body.SetAngularVelocity(0)

		if info.frozen {
			info.body.SetVelocityVector(cp.Vector{})
			return
		}
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			vu, vv, _ := common.ToView(vel.Linear, ps.viewYaw)
			info.body.SetVelocityVector(cp.Vector{X: vu, Y: vv})
		}
	})
}

func (ps *PhysicsSystem) resetPlayerContacts(w *ecs.World) {
	seen := make(map[ecs.Entity]struct{})
	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, pc *component.PlayerCollision) {
		seen[e] = struct{}{}
		st := ps.playerStates[e]
		if st == nil {
			st = &playerContactState{}
			ps.playerStates[e] = st
		}
		st.groundGrace = pc.GroundGrace
		if st.groundGrace > 0 {
			st.groundGrace--
		}
		st.grounded = false
	})

	for e := range ps.playerStates {
		if _, ok := seen[e]; !ok {
			delete(ps.playerStates, e)
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, st := range ps.playerStates {
		if info := ps.entities[e]; info != nil && info.frozen {
			continue
		}
		pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
		if !ok {
			continue
		}
		pc.Grounded = st.grounded
		pc.GroundGrace = st.groundGrace
	}
}

// syncTransforms writes the stepped bodies back, keeping each body's depth.
// Frozen entities are owned by the rotation system and left untouched.
func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info := ps.entities[e]
		if info == nil || info.frozen {
			return
		}
		pos := info.body.Position()
		transform.Position = common.FromView(pos.X, pos.Y, info.depth, ps.viewYaw)

		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			bv := info.body.Velocity()
			vel.Linear = common.FromView(bv.X, bv.Y, 0, ps.viewYaw)
		}
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.groundShapes, shape)
		}
		ps.space.RemoveBody(info.body)
		delete(ps.entities, e)
		delete(ps.playerStates, e)
	}
}
