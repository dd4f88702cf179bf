package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/arena"
	"github.com/milk9111/goofballs/config"
	"github.com/milk9111/goofballs/ecs/system"
	"github.com/milk9111/goofballs/store"
	"github.com/milk9111/goofballs/telemetry"
)

// MatchSummary is the outcome of one headless match.
type MatchSummary struct {
	Winner   string
	Decided  bool
	Duration float64
	Stats    system.EncounterStats
}

type Summary struct {
	Matches []MatchSummary
	Totals  telemetry.Totals
	Wins    map[string]int64
	Recent  []store.MatchResult
}

// simulate runs AI-only matches until an objective falls or limit of
// simulated time passes. Each decided match is recorded by the runtime's
// result recorder when storage is enabled.
func simulate(cfg config.Config, log zerolog.Logger, limit time.Duration, matches, history int) (Summary, error) {
	if matches <= 0 {
		matches = 1
	}
	rt, err := arena.NewRuntime(arena.RuntimeOptions{Config: cfg, Log: log, NoPlayer: true})
	if err != nil {
		return Summary{}, err
	}
	defer rt.Close()

	dt := cfg.TickDt()
	var out Summary
	for i := 0; i < matches; i++ {
		if i > 0 {
			rt.Arena.RequestRestart()
			if err := rt.Step(0); err != nil {
				return out, err
			}
		}
		m, err := playOne(rt, dt, limit.Seconds())
		if err != nil {
			return out, err
		}
		log.Info().Int("match", i+1).Str("winner", m.Winner).Float64("duration", m.Duration).Msg("match finished")
		out.Matches = append(out.Matches, m)
	}
	out.Totals = rt.Metrics.Totals()

	if rt.Store != nil {
		ctx := context.Background()
		if out.Wins, err = rt.Store.WinCounts(ctx); err != nil {
			return out, err
		}
		if out.Recent, err = rt.Store.RecentMatches(ctx, history); err != nil {
			return out, err
		}
	}
	return out, nil
}

func playOne(rt *arena.Runtime, dt, limit float64) (MatchSummary, error) {
	a := rt.Arena
	for elapsed := 0.0; elapsed < limit; elapsed += dt {
		if err := rt.Step(dt); err != nil {
			return MatchSummary{}, err
		}
		if a.GameEnded() {
			break
		}
	}
	m := MatchSummary{Winner: "none", Stats: a.Stats()}
	m.Duration = m.Stats.Duration
	if winner, ok := a.WinningTeam(); ok {
		m.Winner = winner.String()
		m.Decided = true
	}
	return m, nil
}

func (s Summary) Print(w io.Writer) {
	for i, m := range s.Matches {
		fmt.Fprintf(w, "match %d: winner=%s duration=%.1fs spawned=%d/%d lost=%d/%d lunges=%d/%d\n",
			i+1, m.Winner, m.Duration,
			m.Stats.Player.Spawned, m.Stats.Enemy.Spawned,
			m.Stats.Player.Lost, m.Stats.Enemy.Lost,
			m.Stats.Player.Lunges, m.Stats.Enemy.Lunges)
	}
	fmt.Fprintf(w, "totals: lunges=%d hits=%d deaths=%d spawns=%d ended=%d\n",
		s.Totals.Lunges, s.Totals.Hits, s.Totals.Deaths, s.Totals.Spawns, s.Totals.EncountersEnded)

	if len(s.Wins) > 0 {
		teams := make([]string, 0, len(s.Wins))
		for team := range s.Wins {
			teams = append(teams, team)
		}
		sort.Strings(teams)
		fmt.Fprint(w, "history:")
		for _, team := range teams {
			fmt.Fprintf(w, " %s=%d", team, s.Wins[team])
		}
		fmt.Fprintln(w)
	}
	for _, r := range s.Recent {
		fmt.Fprintf(w, "  %s %s won %s in %.1fs\n", r.EndedAt.Format(time.RFC3339), r.WinningTeam, r.Arena, r.Duration)
	}
}
