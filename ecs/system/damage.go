package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

// DefaultDeathDelay is how long a dead combatant lingers before it is
// deactivated.
const DefaultDeathDelay = 1.5

// DamageResolver applies damage to combatants and objectives and raises the
// resulting events. Repeated calls against a dead combatant or a destroyed
// objective change nothing.
type DamageResolver struct {
	log        zerolog.Logger
	deathDelay float64
}

func NewDamageResolver(log zerolog.Logger, deathDelay float64) *DamageResolver {
	if deathDelay < 0 {
		deathDelay = 0
	}
	return &DamageResolver{log: log, deathDelay: deathDelay}
}

// Apply deals amount to target on behalf of source.
func (r *DamageResolver) Apply(w *ecs.World, target ecs.Entity, amount float64, source ecs.Entity) component.DamageResult {
	if !ecs.IsAlive(w, target) {
		r.log.Warn().Stringer("target", target).Msg("damage target missing")
		return component.DamageResult{Ignored: true}
	}

	if obj, ok := ecs.Get(w, target, component.ObjectiveComponent.Kind()); ok {
		return r.damageObjective(w, target, obj, amount, source)
	}

	health, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok {
		r.log.Warn().Stringer("target", target).Msg("damage target has no health")
		return component.DamageResult{Ignored: true}
	}
	return r.damageCombatant(w, target, health, amount, source)
}

func (r *DamageResolver) damageObjective(w *ecs.World, e ecs.Entity, obj *component.Objective, amount float64, source ecs.Entity) component.DamageResult {
	res := obj.ApplyDamage(amount)
	if res.Ignored {
		return res
	}

	push(w, EventDamaged, Damaged{
		Target:    e,
		Source:    source,
		Team:      obj.Team,
		Amount:    res.Applied,
		Current:   res.Current,
		Max:       res.Max,
		Objective: true,
	})
	r.log.Debug().
		Str("objective", obj.Name).
		Float64("amount", res.Applied).
		Float64("hp", res.Current).
		Msg("objective damaged")

	if res.Killed {
		push(w, EventObjectiveDestroyed, ObjectiveDestroyed{
			Entity:      e,
			Team:        obj.Team,
			WinningTeam: obj.WinningTeam(),
			Destroyer:   source,
		})
		r.log.Info().
			Str("objective", obj.Name).
			Stringer("team", obj.Team).
			Stringer("winner", obj.WinningTeam()).
			Msg("objective destroyed")
	}
	return res
}

func (r *DamageResolver) damageCombatant(w *ecs.World, e ecs.Entity, health *component.Health, amount float64, source ecs.Entity) component.DamageResult {
	res := health.ApplyDamage(amount)
	if res.Ignored {
		return res
	}

	var team component.Team
	if c, ok := ecs.Get(w, e, component.CombatantComponent.Kind()); ok {
		team = c.Team
	}
	isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())

	push(w, EventDamaged, Damaged{
		Target:  e,
		Source:  source,
		Team:    team,
		Amount:  res.Applied,
		Current: res.Current,
		Max:     res.Max,
		Player:  isPlayer,
	})

	if !res.Killed {
		return res
	}

	if lunge, ok := ecs.Get(w, e, component.LungeComponent.Kind()); ok {
		lunge.Disable()
	}
	if motor, ok := ecs.Get(w, e, component.MotorComponent.Kind()); ok {
		motor.Clear()
	}
	if ctrl, ok := ecs.Get(w, e, component.PlayerControlComponent.Kind()); ok {
		ctrl.Lock(component.LockDead)
	}
	err := ecs.Add(w, e, component.DeathTimerComponent.Kind(), &component.DeathTimer{Remaining: r.deathDelay})
	warnIfFailed(r.log, err, e, "death timer")

	push(w, EventCombatantDied, CombatantDied{Entity: e, Team: team, Killer: source, Player: isPlayer})
	r.log.Info().Stringer("entity", e).Stringer("team", team).Bool("player", isPlayer).Msg("combatant died")
	return res
}
