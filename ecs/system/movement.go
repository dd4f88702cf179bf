package system

import (
	"math"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

// MovementSystem runs first in the tick: it queues gravity for every live
// combatant and integrates ragdoll skeleton headings.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) Update(w *ecs.World) {
	dt := w.Dt()

	ecs.ForEach2(w, component.MoverComponent.Kind(), component.MotorComponent.Kind(), func(e ecs.Entity, mover *component.Mover, motor *component.Motor) {
		if isDead(w, e) {
			return
		}
		motor.Accel.Y -= mover.GravityForce
	})

	ecs.ForEach(w, component.SkeletonComponent.Kind(), func(e ecs.Entity, sk *component.Skeleton) {
		if isDead(w, e) {
			return
		}
		sk.Yaw = common.WrapAngle(sk.Yaw + sk.AngularVelocity*dt)
	})
}

// turnToward slerps the logical heading toward target and nudges the
// skeleton with a corrective torque. Angles outside (1, 120) degrees get no
// torque so the ragdoll never snaps around.
func turnToward(t *component.Transform, sk *component.Skeleton, target common.Vec3, rate, dt float64) {
	dir := target.Sub(t.Position).Flat()
	if dir.Dot(dir) <= 0.001 {
		return
	}
	goal := common.YawOf(dir)

	if sk != nil {
		delta := common.DeltaAngle(sk.Yaw, goal)
		deg := math.Abs(common.Degrees(delta))
		if deg > 1 && deg < 120 {
			sk.AngularVelocity += math.Copysign(deg*sk.TorqueGain*dt*dt, delta)
		}
		damping := sk.AngularDamping
		if damping <= 0 {
			damping = 1
		}
		sk.AngularVelocity *= damping
	}

	t.Yaw = common.LerpAngle(t.Yaw, goal, dt*rate)
}

func isDead(w *ecs.World, e ecs.Entity) bool {
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
		return true
	}
	if c, ok := ecs.Get(w, e, component.CombatantComponent.Kind()); ok && !c.Active {
		return true
	}
	return false
}
