package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

// LifecycleSystem counts down death timers and deactivates combatants when
// they expire. Deactivated AI entities are destroyed; players are kept for
// respawn.
type LifecycleSystem struct {
	log zerolog.Logger
}

func NewLifecycleSystem(log zerolog.Logger) *LifecycleSystem {
	return &LifecycleSystem{log: log}
}

func (s *LifecycleSystem) Update(w *ecs.World) {
	dt := w.Dt()

	ecs.ForEach(w, component.DeathTimerComponent.Kind(), func(e ecs.Entity, timer *component.DeathTimer) {
		timer.Remaining -= dt
		if timer.Remaining > 0 {
			return
		}
		_ = ecs.Remove(w, e, component.DeathTimerComponent.Kind())

		c, ok := ecs.Get(w, e, component.CombatantComponent.Kind())
		if !ok {
			return
		}
		c.Active = false
		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		push(w, EventCombatantInactive, CombatantInactive{Entity: e, Team: c.Team, Player: isPlayer})
		s.log.Debug().Stringer("entity", e).Str("name", c.Name).Msg("combatant deactivated")

		if !isPlayer {
			ecs.DestroyEntity(w, e)
		}
	})
}
