package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

const (
	collisionTypeCombatant cp.CollisionType = iota + 1
	collisionTypeObjective
	collisionTypeWall
)

// stopSpeed is the horizontal speed below which braking snaps to rest.
const stopSpeed = 0.1

// PhysicsSystem is the Chipmunk2D adapter. Chipmunk simulates the floor
// plane with world X mapped to X and world Z mapped to Y; vertical motion is
// integrated here against a flat ground at height zero.
type PhysicsSystem struct {
	log   zerolog.Logger
	space *cp.Space

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts []Contact
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem(log zerolog.Logger) *PhysicsSystem {
	ps := &PhysicsSystem{
		log:      log,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
	ps.space = newSpace()
	ps.ensureHandlers()
	return ps
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	dt := w.Dt()

	ps.syncEntities(w)
	ps.syncArenaBounds(w)
	ps.applyMotors(w, dt)

	ps.contacts = ps.contacts[:0]
	if dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w, dt)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	begin := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := sys.shapes[shapeA]
		b, okB := sys.shapes[shapeB]
		if !okA || !okB {
			return true
		}
		n := arb.Normal()
		pa, pb := shapeA.Body().Position(), shapeB.Body().Position()
		sys.contacts = append(sys.contacts, Contact{
			A:      a,
			B:      b,
			Point:  common.Vec3{X: (pa.X + pb.X) / 2, Z: (pa.Y + pb.Y) / 2},
			Normal: common.Vec3{X: n.X, Z: n.Y},
		})
		return true
	}

	for _, pair := range [][2]cp.CollisionType{
		{collisionTypeCombatant, collisionTypeCombatant},
		{collisionTypeCombatant, collisionTypeObjective},
	} {
		h := ps.space.NewCollisionHandler(pair[0], pair[1])
		h.UserData = ps
		h.BeginFunc = begin
	}
}

// simulated reports whether e should have a body in the space.
func simulated(w *ecs.World, e ecs.Entity) bool {
	if c, ok := ecs.Get(w, e, component.CombatantComponent.Kind()); ok && !c.Active {
		return false
	}
	if o, ok := ecs.Get(w, e, component.ObjectiveComponent.Kind()); ok && o.Destroyed {
		return false
	}
	return true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if _, exists := ps.entities[e]; exists {
			return
		}
		if !simulated(w, e) {
			return
		}
		_, isObjective := ecs.Get(w, e, component.ObjectiveComponent.Kind())
		info := ps.createBodyInfo(transform, bodyComp, isObjective)
		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapes[shape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, isObjective bool) *bodyInfo {
	radius := bodyComp.Radius
	if radius <= 0 {
		radius = 0.5
	}
	pos := cp.Vector{X: transform.Position.X, Y: transform.Position.Z}

	collisionType := collisionTypeCombatant
	if isObjective {
		collisionType = collisionTypeObjective
	}

	if bodyComp.Static {
		shape := cp.NewCircle(ps.space.StaticBody, radius, pos)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionType)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(pos)
	body.SetAngularVelocity(0)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionType)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) syncArenaBounds(w *ecs.World) {
	boundsEntity, ok := ecs.First(w, component.ArenaBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.ArenaBoundsComponent.Kind())
	hw, hd := bounds.HalfWidth, bounds.HalfDepth
	if hw <= 0 || hd <= 0 {
		return
	}

	thickness := 0.5
	segments := [][2]cp.Vector{
		{{X: -hw, Y: -hd}, {X: hw, Y: -hd}},
		{{X: -hw, Y: hd}, {X: hw, Y: hd}},
		{{X: -hw, Y: -hd}, {X: -hw, Y: hd}},
		{{X: hw, Y: -hd}, {X: hw, Y: hd}},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg[0], seg[1], thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeWall)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

// applyMotors turns the queued motion requests into body velocities: stop,
// acceleration, speed cap, braking, then instantaneous velocity changes.
func (ps *PhysicsSystem) applyMotors(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.MotorComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, motor *component.Motor, bodyComp *component.PhysicsBody) {
		defer motor.Clear()
		info, ok := ps.entities[e]
		if !ok || info.static {
			return
		}

		v := info.body.Velocity()
		if motor.Stop {
			v = cp.Vector{}
			bodyComp.VerticalVelocity = 0
		}

		v.X += motor.Accel.X * dt
		v.Y += motor.Accel.Z * dt
		if motor.SpeedCap > 0 {
			if speed := math.Hypot(v.X, v.Y); speed > motor.SpeedCap {
				v.X, v.Y = v.X/speed*motor.SpeedCap, v.Y/speed*motor.SpeedCap
			}
		}
		if motor.Brake > 0 && motor.Accel.X == 0 && motor.Accel.Z == 0 {
			speed := math.Hypot(v.X, v.Y)
			if speed > 0.01 {
				next := speed - motor.Brake*dt
				if next < stopSpeed {
					v = cp.Vector{}
				} else {
					v.X, v.Y = v.X/speed*next, v.Y/speed*next
				}
			}
		}

		v.X += motor.VelocityChange.X
		v.Y += motor.VelocityChange.Z
		bodyComp.VerticalVelocity += motor.Accel.Y*dt + motor.VelocityChange.Y

		info.body.SetVelocityVector(v)
		info.body.SetAngularVelocity(0)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info, ok := ps.entities[e]
		if !ok || info.static {
			return
		}
		pos := info.body.Position()
		transform.Position.X = pos.X
		transform.Position.Z = pos.Y

		transform.Position.Y += bodyComp.VerticalVelocity * dt
		bodyComp.Grounded = false
		if transform.Position.Y <= 0 {
			transform.Position.Y = 0
			if bodyComp.VerticalVelocity < 0 {
				bodyComp.VerticalVelocity = 0
			}
			bodyComp.Grounded = true
		}
	})
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for _, c := range ps.contacts {
		if !ecs.IsAlive(w, c.A) || !ecs.IsAlive(w, c.B) {
			continue
		}
		push(w, EventContact, c)
	}
}

// Teleport moves a simulated body and zeroes its velocity.
func (ps *PhysicsSystem) Teleport(e ecs.Entity, pos common.Vec3) bool {
	info, ok := ps.entities[e]
	if !ok || info.static {
		return false
	}
	info.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Z})
	info.body.SetVelocityVector(cp.Vector{})
	info.body.SetAngularVelocity(0)
	return true
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		keep := ecs.IsAlive(w, e) && simulated(w, e) &&
			(ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.ArenaBoundsComponent.Kind()))
		if keep {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.shapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)

		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			bodyComp.Body = nil
			bodyComp.Shape = nil
			bodyComp.VerticalVelocity = 0
		}
		ps.log.Debug().Stringer("entity", e).Msg("physics body removed")
	}
}
