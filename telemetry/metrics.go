package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
	"github.com/milk9111/goofballs/ecs/system"
)

const instrumentationName = "github.com/milk9111/goofballs"

// Totals is a process-local snapshot of the counters.
type Totals struct {
	Lunges          int64
	Hits            int64
	Deaths          int64
	Spawns          int64
	EncountersEnded int64
}

// Metrics counts combat events. It is a system.Presenter, so it only sees
// events that survive to the end of a tick.
type Metrics struct {
	lunges  metric.Int64Counter
	hits    metric.Int64Counter
	deaths  metric.Int64Counter
	spawns  metric.Int64Counter
	endings metric.Int64Counter

	totals struct {
		lunges, hits, deaths, spawns, endings atomic.Int64
	}
}

// New registers the counters on the global meter provider. Without a
// configured provider the counters are no-ops.
func New() (*Metrics, error) {
	return NewWithMeter(otel.Meter(instrumentationName))
}

func NewWithMeter(m metric.Meter) (*Metrics, error) {
	var (
		out Metrics
		err error
	)
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&out.lunges, "goofballs.lunges", "Lunges started"},
		{&out.hits, "goofballs.hits", "Damage applications that changed HP"},
		{&out.deaths, "goofballs.deaths", "Combatant deaths"},
		{&out.spawns, "goofballs.spawns", "AI combatants spawned"},
		{&out.endings, "goofballs.encounters.ended", "Encounters that reached a winner"},
	}
	for _, c := range counters {
		*c.dst, err = m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("telemetry: creating %s: %w", c.name, err)
		}
	}
	return &out, nil
}

func teamAttr(t component.Team) metric.AddOption {
	return metric.WithAttributes(attribute.String("team", t.String()))
}

func (m *Metrics) Present(evt ecs.Event) {
	ctx := context.Background()
	switch data := evt.Data.(type) {
	case system.LungeStarted:
		m.lunges.Add(ctx, 1, teamAttr(data.Team))
		m.totals.lunges.Add(1)
	case system.Damaged:
		m.hits.Add(ctx, 1, teamAttr(data.Team), metric.WithAttributes(attribute.Bool("objective", data.Objective)))
		m.totals.hits.Add(1)
	case system.CombatantDied:
		m.deaths.Add(ctx, 1, teamAttr(data.Team), metric.WithAttributes(attribute.Bool("player", data.Player)))
		m.totals.deaths.Add(1)
	case system.Spawned:
		m.spawns.Add(ctx, 1, teamAttr(data.Team))
		m.totals.spawns.Add(1)
	case system.EncounterEnded:
		m.endings.Add(ctx, 1, metric.WithAttributes(attribute.String("winner", data.WinningTeam.String())))
		m.totals.endings.Add(1)
	}
}

func (m *Metrics) Totals() Totals {
	return Totals{
		Lunges:          m.totals.lunges.Load(),
		Hits:            m.totals.hits.Load(),
		Deaths:          m.totals.deaths.Load(),
		Spawns:          m.totals.spawns.Load(),
		EncountersEnded: m.totals.endings.Load(),
	}
}
