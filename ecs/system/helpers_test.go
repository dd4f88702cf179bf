package system

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

type fighterOpts struct {
	hp       float64
	damage   float64
	player   bool
	ai       bool
	defends  bool
	withBody bool
}

func addFighter(t *testing.T, w *ecs.World, team component.Team, pos common.Vec3, o fighterOpts) ecs.Entity {
	t.Helper()
	if o.hp == 0 {
		o.hp = 50
	}
	if o.damage == 0 {
		o.damage = 25
	}
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.CombatantComponent.Kind(), &component.Combatant{Name: "fighter", Team: team, Active: true}))
	require.NoError(t, ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(o.hp)))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	require.NoError(t, ecs.Add(w, e, component.LungeComponent.Kind(), &component.Lunge{
		BaseForce: 15, ForceMultiplier: 1, Duration: 0.3, Cooldown: 2, Damage: o.damage, Enabled: true,
	}))
	require.NoError(t, ecs.Add(w, e, component.MotorComponent.Kind(), &component.Motor{}))
	require.NoError(t, ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{MoveSpeed: 8, MaxSpeed: 15, Deceleration: 8, GravityForce: 15}))
	if o.player {
		require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
		require.NoError(t, ecs.Add(w, e, component.PlayerControlComponent.Kind(), &component.PlayerControl{LungeAccelFactor: 0.2}))
		require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	}
	if o.ai {
		require.NoError(t, ecs.Add(w, e, component.AITagComponent.Kind(), &component.AITag{}))
		require.NoError(t, ecs.Add(w, e, component.AIComponent.Kind(), &component.AI{
			DetectionRange: 10, LungeRange: 5, DefenseRadius: 8, DefendObjective: o.defends, TurnRate: 5,
		}))
	}
	if o.withBody {
		require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 0.5, Mass: 1}))
	}
	return e
}

func addObjective(t *testing.T, w *ecs.World, team component.Team, pos common.Vec3, hp float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.ObjectiveComponent.Kind(), component.NewObjective("bbq", team, hp)))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	return e
}

func eventsOf(w *ecs.World, t ecs.EventType) []ecs.Event {
	return w.Events().Of(t)
}

// recorder captures events that survive past the tick.
type recorder struct {
	events []ecs.Event
}

func (r *recorder) Present(evt ecs.Event) { r.events = append(r.events, evt) }

func (r *recorder) of(t ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

var nopLog = zerolog.Nop()
