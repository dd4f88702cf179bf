package component

import "github.com/milk9111/goofballs/common"

// Mover holds movement tuning derived at spawn.
type Mover struct {
	// MoveSpeed already includes the weapon speed multiplier.
	MoveSpeed    float64
	MaxSpeed     float64
	Deceleration float64
	GravityForce float64
}

var MoverComponent = NewComponent[Mover]()

// Motor collects the motion requests of one tick. PhysicsSystem applies and
// clears it every step.
type Motor struct {
	// Accel is integrated over the tick like a continuous force.
	Accel common.Vec3
	// VelocityChange is applied instantly, like an impulse.
	VelocityChange common.Vec3
	// SpeedCap limits horizontal speed after Accel when positive.
	SpeedCap float64
	// Brake slows horizontal velocity toward zero at this rate when positive.
	Brake float64
	// Stop zeroes all velocity before anything else is applied.
	Stop bool
}

var MotorComponent = NewComponent[Motor]()

func (m *Motor) Clear() {
	*m = Motor{}
}
