package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

func TestAISystemMarchesOnEnemyObjective(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewAISystem(nopLog))
	addObjective(t, w, component.TeamPlayer, common.Vec3{Z: -20}, 100)
	e := addFighter(t, w, component.TeamEnemy, common.Vec3{Z: 10}, fighterOpts{ai: true})

	w.Tick(1.0 / 60)

	ai, _ := ecs.Get(w, e, component.AIComponent.Kind())
	motor, _ := ecs.Get(w, e, component.MotorComponent.Kind())
	assert.Equal(t, component.AIAttackObjective, ai.Mode)
	assert.Less(t, motor.Accel.Z, 0.0)
	assert.InDelta(t, 0, motor.Accel.X, 1e-9)
}

func TestAISystemLungesAtCloseOpponent(t *testing.T) {
	w := ecs.NewWorld()
	rec := &recorder{}
	w.AddSystem(NewAISystem(nopLog))
	w.AddSystem(NewPresentationSystem(rec))
	player := addFighter(t, w, component.TeamPlayer, common.Vec3{Z: 2}, fighterOpts{player: true})
	e := addFighter(t, w, component.TeamEnemy, common.Vec3{}, fighterOpts{ai: true})

	w.Tick(1.0 / 60)

	ai, _ := ecs.Get(w, e, component.AIComponent.Kind())
	assert.Equal(t, component.AIEngageOpponent, ai.Mode)
	assert.Equal(t, uint64(player), ai.TargetID)
	require.Len(t, rec.of(EventLungeStarted), 1)
	assert.Equal(t, e, rec.of(EventLungeStarted)[0].Data.(LungeStarted).Entity)

	lunge, _ := ecs.Get(w, e, component.LungeComponent.Kind())
	assert.True(t, lunge.IsLunging())
}

func TestAISystemSkipsDeadAI(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewAISystem(nopLog))
	addObjective(t, w, component.TeamPlayer, common.Vec3{Z: -20}, 100)
	e := addFighter(t, w, component.TeamEnemy, common.Vec3{Z: 10}, fighterOpts{ai: true})
	h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	h.Dead = true

	w.Tick(1.0 / 60)

	motor, _ := ecs.Get(w, e, component.MotorComponent.Kind())
	assert.True(t, motor.Accel.IsZero())
}

func TestAISystemIdlesWhileTimeIsFrozen(t *testing.T) {
	w := ecs.NewWorld()
	rec := &recorder{}
	w.AddSystem(NewAISystem(nopLog))
	w.AddSystem(NewPresentationSystem(rec))
	addFighter(t, w, component.TeamPlayer, common.Vec3{Z: 2}, fighterOpts{player: true})
	e := addFighter(t, w, component.TeamEnemy, common.Vec3{}, fighterOpts{ai: true})

	w.SetTimeScale(0)
	w.Tick(1.0 / 60)

	assert.Empty(t, rec.of(EventLungeStarted))
	lunge, _ := ecs.Get(w, e, component.LungeComponent.Kind())
	assert.False(t, lunge.IsLunging())
	motor, _ := ecs.Get(w, e, component.MotorComponent.Kind())
	assert.True(t, motor.Accel.IsZero())
}
