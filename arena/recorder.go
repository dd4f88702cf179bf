package arena

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/system"
	"github.com/milk9111/goofballs/store"
)

const recordTimeout = 2 * time.Second

// MatchRecorder persists finished matches. *store.Store implements it.
type MatchRecorder interface {
	RecordMatch(ctx context.Context, m store.MatchResult) error
}

// ResultRecorder is a presenter that writes a match result when an
// encounter ends.
type ResultRecorder struct {
	arena    func() string
	recorder MatchRecorder
	log      zerolog.Logger

	recorded int
}

// NewResultRecorder names results with arenaName, which is asked at the
// time the match ends so a reloaded layout is recorded under its own name.
func NewResultRecorder(arenaName func() string, recorder MatchRecorder, log zerolog.Logger) *ResultRecorder {
	return &ResultRecorder{arena: arenaName, recorder: recorder, log: log}
}

func (r *ResultRecorder) Present(evt ecs.Event) {
	if evt.Type != system.EventEncounterEnded || r.recorder == nil {
		return
	}
	ended, ok := evt.Data.(system.EncounterEnded)
	if !ok {
		return
	}
	name := ""
	if r.arena != nil {
		name = r.arena()
	}
	m, err := store.NewMatchResult(name, ended.WinningTeam.String(), ended.Stats.Duration, ended.Stats.PlayerDeaths, ended.Stats)
	if err != nil {
		r.log.Error().Err(err).Msg("encode match result")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := r.recorder.RecordMatch(ctx, m); err != nil {
		r.log.Error().Err(err).Msg("record match result")
		return
	}
	r.recorded++
	r.log.Info().Str("winner", m.WinningTeam).Float64("duration", m.Duration).Msg("match recorded")
}

// Recorded counts results written so far.
func (r *ResultRecorder) Recorded() int { return r.recorded }
