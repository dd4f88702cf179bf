package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewJSONFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(Options{Level: "warn", Format: "json", Out: &buf}), "encounter")

	log.Info().Msg("hidden")
	log.Warn().Str("team", "enemy").Msg("no spawn points")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "encounter", entry["component"])
	assert.Equal(t, "enemy", entry["team"])
	assert.Equal(t, "no spawn points", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewConsoleIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Out: &buf})
	log.Info().Msg("encounter started")

	assert.Contains(t, buf.String(), "encounter started")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
