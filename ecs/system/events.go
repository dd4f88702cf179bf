package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

const (
	EventContact            ecs.EventType = "contact"
	EventLungeStarted       ecs.EventType = "lunge_started"
	EventDamaged            ecs.EventType = "damaged"
	EventCombatantDied      ecs.EventType = "combatant_died"
	EventCombatantInactive  ecs.EventType = "combatant_inactive"
	EventObjectiveDestroyed ecs.EventType = "objective_destroyed"
	EventSpawned            ecs.EventType = "spawned"
	EventPlayerRespawned    ecs.EventType = "player_respawned"
	EventCountdown          ecs.EventType = "countdown"
	EventPhaseChanged       ecs.EventType = "phase_changed"
	EventEncounterEnded     ecs.EventType = "encounter_ended"
	EventBanner             ecs.EventType = "banner"
	EventRestartRequested   ecs.EventType = "restart_requested"
	EventDialogue           ecs.EventType = "dialogue"
	EventTutorialProgress   ecs.EventType = "tutorial_progress"
)

// Contact is a begin-touch between two physics bodies.
type Contact struct {
	A, B   ecs.Entity
	Point  common.Vec3
	Normal common.Vec3
}

type LungeStarted struct {
	Entity  ecs.Entity
	Team    component.Team
	Impulse common.Vec3
}

// Damaged is raised for every damage application that changed HP.
type Damaged struct {
	Target    ecs.Entity
	Source    ecs.Entity
	Team      component.Team
	Amount    float64
	Current   float64
	Max       float64
	Objective bool
	Player    bool
}

type CombatantDied struct {
	Entity ecs.Entity
	Team   component.Team
	Killer ecs.Entity
	Player bool
}

// CombatantInactive is raised when the death delay ends and the body leaves
// the simulation.
type CombatantInactive struct {
	Entity ecs.Entity
	Team   component.Team
	Player bool
}

type ObjectiveDestroyed struct {
	Entity      ecs.Entity
	Team        component.Team
	WinningTeam component.Team
	Destroyer   ecs.Entity
}

type Spawned struct {
	Entity ecs.Entity
	Team   component.Team
	Point  common.Vec3
}

type PlayerRespawned struct {
	Entity ecs.Entity
	Point  common.Vec3
}

// Countdown carries the whole seconds left before the encounter starts.
type Countdown struct {
	Remaining int
}

type PhaseChanged struct {
	From, To EncounterPhase
}

type EncounterEnded struct {
	WinningTeam component.Team
	Stats       EncounterStats
}

// Banner is the end-of-encounter message. Color is RGBA.
type Banner struct {
	Text        string
	Color       [4]uint8
	WinningTeam component.Team
}

type Dialogue struct {
	Text string
	Clip string
	// Duration is how long the line stays up, in seconds.
	Duration float64
}

type TutorialProgress struct {
	Step  int
	State string
}

func push(w *ecs.World, t ecs.EventType, data any) {
	w.Events().Push(ecs.Event{Type: t, Data: data})
}

// warnIfFailed logs a component attach that did not take. The tick carries
// on without it.
func warnIfFailed(log zerolog.Logger, err error, e ecs.Entity, what string) {
	if err == nil {
		return
	}
	log.Warn().Err(err).Stringer("entity", e).Str("component", what).Msg("component not attached")
}
