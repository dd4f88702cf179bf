package entity

import (
	"fmt"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
	"github.com/milk9111/goofballs/prefabs"
)

const defaultObjectiveRadius = 1.5

// NewObjective places a team's barbecue as a static body.
func NewObjective(w *ecs.World, spec prefabs.ObjectiveSpec) (ecs.Entity, error) {
	team, err := component.ParseTeam(spec.Team)
	if err != nil {
		return 0, fmt.Errorf("objective %q: %w", spec.Name, err)
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = defaultObjectiveRadius
	}

	e := ecs.CreateEntity(w)
	adds := []func() error{
		func() error {
			return ecs.Add(w, e, component.ObjectiveComponent.Kind(), component.NewObjective(spec.Name, team, spec.HP))
		},
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: common.Vec3{X: spec.X, Z: spec.Z}})
		},
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: radius, Static: true, Friction: 0.8})
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("objective %q: %w", spec.Name, err)
		}
	}
	return e, nil
}

// NewArenaBounds adds the wall ring physics builds on its first step.
func NewArenaBounds(w *ecs.World, halfWidth, halfDepth float64) (ecs.Entity, error) {
	if halfWidth <= 0 || halfDepth <= 0 {
		return 0, fmt.Errorf("arena bounds: half extents must be positive")
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ArenaBoundsComponent.Kind(), &component.ArenaBounds{HalfWidth: halfWidth, HalfDepth: halfDepth}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}
