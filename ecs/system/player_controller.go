package system

import (
	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

// DefaultLungeAccelFactor scales player acceleration while a lunge is active.
const DefaultLungeAccelFactor = 0.2

// PlayerControllerSystem turns the sampled Input into motion requests and
// lunges. Locked or dead players only brake.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem { return &PlayerControllerSystem{} }

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PlayerControlComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, ctrl *component.PlayerControl, input *component.Input) {
		s.control(w, e, ctrl, input)
		// Input is edge-triggered per tick; the host samples it again.
		*input = component.Input{}
	})
}

func (s *PlayerControllerSystem) control(w *ecs.World, e ecs.Entity, ctrl *component.PlayerControl, input *component.Input) {
	if isDead(w, e) {
		return
	}
	motor, ok := ecs.Get(w, e, component.MotorComponent.Kind())
	if !ok {
		return
	}
	mover, ok := ecs.Get(w, e, component.MoverComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	lunge, _ := ecs.Get(w, e, component.LungeComponent.Kind())

	if !ctrl.CanMove() {
		motor.Brake = mover.Deceleration
		return
	}

	dir := input.Move.Flat()
	if dir.Dot(dir) <= 0.01 {
		motor.Brake = mover.Deceleration
	} else {
		dir = dir.Normalized()
		accel := mover.MoveSpeed
		if lunge.IsLunging() {
			factor := ctrl.LungeAccelFactor
			if factor <= 0 {
				factor = DefaultLungeAccelFactor
			}
			accel *= factor
		} else {
			transform.Yaw = common.YawOf(dir)
		}
		motor.Accel = motor.Accel.Add(dir.Scale(accel))
		motor.SpeedCap = mover.MaxSpeed
	}

	if input.Lunge && lunge != nil {
		if impulse, ok := lunge.Request(transform.Forward()); ok {
			motor.VelocityChange = motor.VelocityChange.Add(impulse)
			team := component.TeamPlayer
			if c, ok := ecs.Get(w, e, component.CombatantComponent.Kind()); ok {
				team = c.Team
			}
			push(w, EventLungeStarted, LungeStarted{Entity: e, Team: team, Impulse: impulse})
		}
	}
}
