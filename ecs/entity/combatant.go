package entity

import (
	"fmt"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

// NewCombatantAt builds an AI archetype and places it. The prefab's team
// must match team so a roster typo cannot field a traitor.
func NewCombatantAt(w *ecs.World, prefab string, team component.Team, pos common.Vec3, yaw float64, opts ...BuildOption) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab, opts...)
	if err != nil {
		return 0, err
	}
	c, ok := ecs.Get(w, e, component.CombatantComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("combatant: %q has no combatant component", prefab)
	}
	if c.Team != team {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("combatant: %q fights for %s, wanted %s", prefab, c.Team, team)
	}
	if err := Place(w, e, pos, yaw); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("combatant: place: %w", err)
	}
	return e, nil
}
