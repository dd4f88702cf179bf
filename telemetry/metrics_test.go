package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
	"github.com/milk9111/goofballs/ecs/system"
)

func TestMetricsCountsCombatEvents(t *testing.T) {
	m, err := NewWithMeter(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	events := []ecs.Event{
		{Type: system.EventLungeStarted, Data: system.LungeStarted{Team: component.TeamPlayer}},
		{Type: system.EventLungeStarted, Data: system.LungeStarted{Team: component.TeamEnemy}},
		{Type: system.EventDamaged, Data: system.Damaged{Team: component.TeamEnemy, Amount: 25}},
		{Type: system.EventCombatantDied, Data: system.CombatantDied{Team: component.TeamEnemy}},
		{Type: system.EventSpawned, Data: system.Spawned{Team: component.TeamEnemy}},
		{Type: system.EventEncounterEnded, Data: system.EncounterEnded{WinningTeam: component.TeamPlayer}},
		{Type: system.EventCountdown, Data: system.Countdown{Remaining: 2}},
	}
	for _, evt := range events {
		m.Present(evt)
	}

	assert.Equal(t, Totals{Lunges: 2, Hits: 1, Deaths: 1, Spawns: 1, EncountersEnded: 1}, m.Totals())
}

func TestNewUsesGlobalMeter(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	m.Present(ecs.Event{Type: system.EventSpawned, Data: system.Spawned{Team: component.TeamPlayer}})
	assert.Equal(t, int64(1), m.Totals().Spawns)
}
