package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

// DefaultTurnRate is the heading slerp rate per second.
const DefaultTurnRate = 5.0

// AISystem runs the targeting policy for every live AI combatant that is not
// mid-lunge and applies the decision.
type AISystem struct {
	log zerolog.Logger
}

func NewAISystem(log zerolog.Logger) *AISystem {
	return &AISystem{log: log}
}

func (s *AISystem) Update(w *ecs.World) {
	dt := w.Dt()
	if dt <= 0 {
		return
	}
	objectives := collectObjectives(w)
	candidates := collectCandidates(w)

	ecs.ForEach2(w, component.AIComponent.Kind(), component.CombatantComponent.Kind(), func(e ecs.Entity, ai *component.AI, c *component.Combatant) {
		if isDead(w, e) {
			return
		}
		lunge, ok := ecs.Get(w, e, component.LungeComponent.Kind())
		if !ok {
			return
		}
		if lunge.IsLunging() {
			return
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
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
		skeleton, _ := ecs.Get(w, e, component.SkeletonComponent.Kind())

		d := Decide(DecisionInput{
			Position:        transform.Position,
			OwnObjective:    objectives[c.Team],
			EnemyObjective:  objectives[c.Team.Opposite()],
			Opponents:       candidates[c.Team.Opposite()],
			DetectionRange:  ai.DetectionRange,
			LungeRange:      ai.LungeRange,
			DefenseRadius:   ai.DefenseRadius,
			DefendObjective: ai.DefendObjective,
			LungeReady:      lunge.Ready(),
		})
		if d.Mode != ai.Mode {
			s.log.Debug().Stringer("entity", e).Stringer("from", ai.Mode).Stringer("to", d.Mode).Msg("ai mode")
		}
		ai.Mode = d.Mode
		ai.TargetID = uint64(d.Target)

		rate := ai.TurnRate
		if rate <= 0 {
			rate = DefaultTurnRate
		}
		if d.HasFace {
			turnToward(transform, skeleton, d.Face, rate, dt)
		}
		if d.Move {
			dir := d.MoveTo.Sub(transform.Position).Flat().Normalized()
			motor.Accel = motor.Accel.Add(dir.Scale(mover.MoveSpeed))
			motor.SpeedCap = mover.MoveSpeed
		}
		if d.Lunge {
			if impulse, ok := lunge.Request(transform.Forward()); ok {
				motor.VelocityChange = motor.VelocityChange.Add(impulse)
				push(w, EventLungeStarted, LungeStarted{Entity: e, Team: c.Team, Impulse: impulse})
			}
		}
	})
}

func collectObjectives(w *ecs.World) map[component.Team]ObjectiveRef {
	out := make(map[component.Team]ObjectiveRef, 2)
	ecs.ForEach2(w, component.ObjectiveComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, o *component.Objective, t *component.Transform) {
		if o.Destroyed {
			return
		}
		if _, exists := out[o.Team]; exists {
			return
		}
		out[o.Team] = ObjectiveRef{Entity: e, Position: t.Position, Valid: true}
	})
	return out
}

// collectCandidates groups active combatants by team in ascending entity id
// order. Dead-but-active bodies are included and flagged.
func collectCandidates(w *ecs.World) map[component.Team][]Candidate {
	out := make(map[component.Team][]Candidate, 2)
	ecs.ForEach3(w, component.CombatantComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Combatant, h *component.Health, t *component.Transform) {
		if !c.Active {
			return
		}
		out[c.Team] = append(out[c.Team], Candidate{Entity: e, Position: t.Position, Dead: h.Dead})
	})
	return out
}
