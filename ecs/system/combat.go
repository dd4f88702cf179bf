package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

// LungeSystem advances every lunge timer by the scaled tick.
type LungeSystem struct{}

func NewLungeSystem() *LungeSystem { return &LungeSystem{} }

func (s *LungeSystem) Update(w *ecs.World) {
	dt := w.Dt()
	ecs.ForEach(w, component.LungeComponent.Kind(), func(_ ecs.Entity, l *component.Lunge) {
		l.Tick(dt)
	})
}

// CombatSystem turns physics contacts into lunge hits. Each contact is
// checked from both sides; a lunge lands at most once per activation and
// only against an opposing live combatant or intact objective.
type CombatSystem struct {
	log      zerolog.Logger
	resolver *DamageResolver
}

func NewCombatSystem(log zerolog.Logger, resolver *DamageResolver) *CombatSystem {
	return &CombatSystem{log: log, resolver: resolver}
}

func (s *CombatSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Of(EventContact) {
		c, ok := evt.Data.(Contact)
		if !ok {
			continue
		}
		s.resolve(w, c.A, c.B)
		s.resolve(w, c.B, c.A)
	}
}

func (s *CombatSystem) resolve(w *ecs.World, attacker, target ecs.Entity) {
	lunge, ok := ecs.Get(w, attacker, component.LungeComponent.Kind())
	if !ok || !lunge.IsLunging() {
		return
	}
	team, ok := liveCombatantTeam(w, attacker)
	if !ok {
		return
	}
	if !IsHostileTarget(w, team, target) {
		return
	}
	if !lunge.TryHit() {
		return
	}
	s.log.Debug().Stringer("attacker", attacker).Stringer("target", target).Float64("damage", lunge.Damage).Msg("lunge hit")
	s.resolver.Apply(w, target, lunge.Damage, attacker)
}

// IsHostileTarget reports whether target is an opposing live, active
// combatant or an opposing objective that still stands.
func IsHostileTarget(w *ecs.World, team component.Team, target ecs.Entity) bool {
	if obj, ok := ecs.Get(w, target, component.ObjectiveComponent.Kind()); ok {
		return obj.Team != team && !obj.Destroyed
	}
	other, ok := liveCombatantTeam(w, target)
	return ok && other != team
}

func liveCombatantTeam(w *ecs.World, e ecs.Entity) (component.Team, bool) {
	c, ok := ecs.Get(w, e, component.CombatantComponent.Kind())
	if !ok || !c.Active {
		return 0, false
	}
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.Dead {
		return 0, false
	}
	return c.Team, true
}
