package system

import (
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

type RespawnSystem struct {
	log zerolog.Logger
}

func NewRespawnSystem(log zerolog.Logger) *RespawnSystem {
	return &RespawnSystem{log: log}
}

// Update performs pending respawn requests. Each request starts a new life:
// position, velocity, health, lunge and locks are reset. It runs after the
// PhysicsSystem so bodies are moved between steps.
func (s *RespawnSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, req *component.RespawnRequest) {
		defer ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			s.log.Warn().Stringer("entity", e).Msg("respawn target has no transform")
			return
		}
		t.Position = req.Position
		t.Yaw = req.Yaw

		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			if body.Body != nil && !body.Static {
				body.Body.SetPosition(cp.Vector{X: req.Position.X, Y: req.Position.Z})
				body.Body.SetVelocityVector(cp.Vector{})
				body.Body.SetAngularVelocity(0)
			}
			body.VerticalVelocity = 0
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			h.Reset()
		}
		if l, ok := ecs.Get(w, e, component.LungeComponent.Kind()); ok {
			l.Reset()
		}
		if m, ok := ecs.Get(w, e, component.MotorComponent.Kind()); ok {
			m.Clear()
		}
		if sk, ok := ecs.Get(w, e, component.SkeletonComponent.Kind()); ok {
			sk.Yaw = req.Yaw
			sk.AngularVelocity = 0
		}
		if ctrl, ok := ecs.Get(w, e, component.PlayerControlComponent.Kind()); ok {
			ctrl.Unlock(component.LockDead)
		}
		_ = ecs.Remove(w, e, component.DeathTimerComponent.Kind())
		if c, ok := ecs.Get(w, e, component.CombatantComponent.Kind()); ok {
			c.Active = true
		}

		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			push(w, EventPlayerRespawned, PlayerRespawned{Entity: e, Point: req.Position})
		}
		s.log.Info().Stringer("entity", e).Msg("respawned")
	})
}
