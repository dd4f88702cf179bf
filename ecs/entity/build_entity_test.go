package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
	"github.com/milk9111/goofballs/prefabs"
)

func weapons(t *testing.T) *prefabs.WeaponCatalog {
	t.Helper()
	c, err := prefabs.LoadWeaponCatalog(prefabs.DefaultWeaponsFile)
	require.NoError(t, err)
	return c
}

func TestNewPlayerAppliesWeaponStats(t *testing.T) {
	w := ecs.NewWorld()
	catalog := weapons(t)

	e, err := NewPlayerAt(w, "", common.Vec3{X: 1, Z: -20}, 0.5, WithWeapons(catalog))
	require.NoError(t, err)

	sword, _ := catalog.Get("sword")
	lunge, ok := ecs.Get(w, e, component.LungeComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, sword.Damage, lunge.Damage)
	assert.Equal(t, 15*sword.LungeForceMultiplier, lunge.Force())

	mover, _ := ecs.Get(w, e, component.MoverComponent.Kind())
	assert.Equal(t, 5*sword.SpeedMultiplier, mover.MoveSpeed)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, common.Vec3{X: 1, Z: -20}, tr.Position)
	assert.Equal(t, 0.5, tr.Yaw)

	for _, has := range []bool{
		ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		ecs.Has(w, e, component.InputComponent.Kind()),
		ecs.Has(w, e, component.PlayerControlComponent.Kind()),
		ecs.Has(w, e, component.MotorComponent.Kind()),
		ecs.Has(w, e, component.PhysicsBodyComponent.Kind()),
	} {
		assert.True(t, has)
	}
}

func TestBuildWithoutCatalogUsesUnarmedDefaults(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "enemy.yaml")
	require.NoError(t, err)

	lunge, _ := ecs.Get(w, e, component.LungeComponent.Kind())
	mover, _ := ecs.Get(w, e, component.MoverComponent.Kind())
	assert.Equal(t, component.DefaultWeaponDamage, lunge.Damage)
	assert.Equal(t, 15.0, lunge.Force())
	assert.Equal(t, 8.0, mover.MoveSpeed)
}

func TestNewCombatantAtChecksTeam(t *testing.T) {
	w := ecs.NewWorld()
	catalog := weapons(t)

	e, err := NewCombatantAt(w, "enemy.yaml", component.TeamEnemy, common.Vec3{Z: 24}, 3, WithWeapons(catalog))
	require.NoError(t, err)
	ai, ok := ecs.Get(w, e, component.AIComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 10.0, ai.DetectionRange)

	before := len(ecs.Entities(w))
	_, err = NewCombatantAt(w, "enemy.yaml", component.TeamPlayer, common.Vec3{}, 0, WithWeapons(catalog))
	assert.Error(t, err)
	assert.Len(t, ecs.Entities(w), before, "rejected builds leave no entity behind")
}

func TestBuildEntityErrors(t *testing.T) {
	w := ecs.NewWorld()
	_, err := BuildEntity(w, "missing.yaml")
	assert.Error(t, err)
	_, err = BuildEntity(nil, "enemy.yaml")
	assert.Error(t, err)
}

func TestNewObjectiveAndBounds(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewObjective(w, prefabs.ObjectiveSpec{Name: "Enemy Barbecue", Team: "enemy", HP: 200, Z: 27})
	require.NoError(t, err)

	obj, _ := ecs.Get(w, e, component.ObjectiveComponent.Kind())
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	assert.Equal(t, component.TeamEnemy, obj.Team)
	assert.Equal(t, 200.0, obj.Current)
	assert.True(t, body.Static)
	assert.Equal(t, defaultObjectiveRadius, body.Radius)

	_, err = NewObjective(w, prefabs.ObjectiveSpec{Name: "x", Team: "blue", HP: 1})
	assert.Error(t, err)

	_, err = NewArenaBounds(w, 0, 10)
	assert.Error(t, err)
	b, err := NewArenaBounds(w, 20, 30)
	require.NoError(t, err)
	assert.True(t, ecs.Has(w, b, component.ArenaBoundsComponent.Kind()))
}
