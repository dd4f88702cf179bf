package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/goofballs/config"
	"github.com/milk9111/goofballs/prefabs"
	"github.com/milk9111/goofballs/store"
	"github.com/milk9111/goofballs/telemetry"
)

func TestSimulateRunsHeadlessMatches(t *testing.T) {
	prev := prefabs.DiskDir()
	t.Cleanup(func() { prefabs.SetDiskDir(prev) })

	cfg := config.Config{
		TickRate:  30,
		PrefabDir: t.TempDir(),
		ArenaFile: "arena.yaml",
		AudioDir:  filepath.Join(t.TempDir(), "none"),
		Storage:   config.StorageConfig{Enabled: true, Driver: "memory"},
	}

	summary, err := simulate(cfg, zerolog.Nop(), 20*time.Second, 2, 5)
	require.NoError(t, err)
	require.Len(t, summary.Matches, 2)
	for _, m := range summary.Matches {
		assert.Greater(t, m.Stats.Player.Spawned, 0)
		assert.Greater(t, m.Stats.Enemy.Spawned, 0)
		assert.LessOrEqual(t, m.Duration, 20.0)
	}
	assert.Greater(t, summary.Totals.Spawns, int64(0))

	decided := 0
	for _, m := range summary.Matches {
		if m.Decided {
			decided++
		}
	}
	assert.Len(t, summary.Recent, decided)
}

func TestSummaryPrint(t *testing.T) {
	s := Summary{
		Matches: []MatchSummary{{Winner: "enemy", Decided: true, Duration: 42}},
		Totals:  telemetry.Totals{Lunges: 3, Spawns: 2, EncountersEnded: 1},
		Wins:    map[string]int64{"player": 1, "enemy": 2},
		Recent:  []store.MatchResult{{WinningTeam: "enemy", Arena: "backyard", Duration: 42}},
	}
	var buf bytes.Buffer
	s.Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "match 1: winner=enemy duration=42.0s")
	assert.Contains(t, out, "history: enemy=2 player=1")
	assert.Contains(t, out, "enemy won backyard in 42.0s")
}
