package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

func TestPhysicsVelocityChangeMovesBody(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(nopLog)
	w.AddSystem(ps)
	e := addFighter(t, w, component.TeamPlayer, common.Vec3{}, fighterOpts{withBody: true})

	w.Tick(1.0 / 60)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	require.NotNil(t, body.Body)

	motor, _ := ecs.Get(w, e, component.MotorComponent.Kind())
	motor.VelocityChange = common.Vec3{X: 10}
	for i := 0; i < 6; i++ {
		w.Tick(1.0 / 60)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Greater(t, tr.Position.X, 0.5)
	assert.InDelta(t, 0, tr.Position.Z, 1e-6)
	assert.True(t, motor.VelocityChange.IsZero(), "motor requests are consumed")
}

func TestPhysicsGravityClampsToGround(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewMovementSystem())
	w.AddSystem(NewPhysicsSystem(nopLog))
	e := addFighter(t, w, component.TeamEnemy, common.Vec3{Y: 1}, fighterOpts{withBody: true})

	for i := 0; i < 120; i++ {
		w.Tick(1.0 / 60)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	assert.Equal(t, 0.0, tr.Position.Y)
	assert.True(t, body.Grounded)
}

func TestPhysicsOverlapEmitsContact(t *testing.T) {
	w := ecs.NewWorld()
	rec := &recorder{}
	w.AddSystem(NewPhysicsSystem(nopLog))
	w.AddSystem(NewPresentationSystem(rec))
	a := addFighter(t, w, component.TeamPlayer, common.Vec3{}, fighterOpts{withBody: true})
	b := addFighter(t, w, component.TeamEnemy, common.Vec3{X: 0.6}, fighterOpts{withBody: true})

	w.Tick(1.0 / 60)

	contacts := rec.of(EventContact)
	require.NotEmpty(t, contacts)
	c := contacts[0].Data.(Contact)
	assert.ElementsMatch(t, []ecs.Entity{a, b}, []ecs.Entity{c.A, c.B})
}

func TestPhysicsRemovesInactiveBodies(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewPhysicsSystem(nopLog))
	e := addFighter(t, w, component.TeamEnemy, common.Vec3{}, fighterOpts{withBody: true})

	w.Tick(1.0 / 60)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	require.NotNil(t, body.Body)

	c, _ := ecs.Get(w, e, component.CombatantComponent.Kind())
	c.Active = false
	w.Tick(1.0 / 60)
	assert.Nil(t, body.Body)

	c.Active = true
	w.Tick(1.0 / 60)
	assert.NotNil(t, body.Body, "reactivated combatants get a fresh body")
}

func TestPhysicsArenaBoundsContainBodies(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewPhysicsSystem(nopLog))
	bounds := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, bounds, component.ArenaBoundsComponent.Kind(), &component.ArenaBounds{HalfWidth: 5, HalfDepth: 5}))
	e := addFighter(t, w, component.TeamEnemy, common.Vec3{}, fighterOpts{withBody: true})

	w.Tick(1.0 / 60)
	motor, _ := ecs.Get(w, e, component.MotorComponent.Kind())
	motor.VelocityChange = common.Vec3{X: 20}
	for i := 0; i < 180; i++ {
		w.Tick(1.0 / 60)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Less(t, tr.Position.X, 5.0)
}
