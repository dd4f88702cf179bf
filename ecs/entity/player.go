package entity

import (
	"fmt"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
)

// DefaultPlayerPrefab is the player archetype.
const DefaultPlayerPrefab = "player.yaml"

func NewPlayer(w *ecs.World, prefab string, opts ...BuildOption) (ecs.Entity, error) {
	if prefab == "" {
		prefab = DefaultPlayerPrefab
	}
	return BuildEntity(w, prefab, opts...)
}

func NewPlayerAt(w *ecs.World, prefab string, pos common.Vec3, yaw float64, opts ...BuildOption) (ecs.Entity, error) {
	e, err := NewPlayer(w, prefab, opts...)
	if err != nil {
		return 0, err
	}
	if err := Place(w, e, pos, yaw); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player: place: %w", err)
	}
	return e, nil
}
