package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/milk9111/goofballs/config"
)

// MatchResult is one finished encounter.
type MatchResult struct {
	gorm.Model
	Arena        string         `json:"arena" gorm:"size:127"`
	WinningTeam  string         `json:"winningTeam" gorm:"size:16;index"`
	Duration     float64        `json:"duration"`
	PlayerDeaths int            `json:"playerDeaths"`
	Stats        datatypes.JSON `json:"stats"`
	EndedAt      time.Time      `json:"endedAt" gorm:"index"`
}

// NewMatchResult encodes stats into the JSON column.
func NewMatchResult(arena, winningTeam string, duration float64, playerDeaths int, stats any) (MatchResult, error) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return MatchResult{}, fmt.Errorf("store: encode stats: %w", err)
	}
	return MatchResult{
		Arena:        arena,
		WinningTeam:  winningTeam,
		Duration:     duration,
		PlayerDeaths: playerDeaths,
		Stats:        datatypes.JSON(raw),
		EndedAt:      time.Now().UTC(),
	}, nil
}

// DecodeStats unmarshals the stats column into out.
func (m MatchResult) DecodeStats(out any) error {
	if len(m.Stats) == 0 {
		return nil
	}
	return json.Unmarshal(m.Stats, out)
}

// Store persists match history through gorm.
type Store struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	log   zerolog.Logger
}

// Open connects to the configured backend. Driver "sqlite" uses Path as a
// file; "memory" keeps everything in process; "postgres" uses DSN.
func Open(cfg config.StorageConfig, log zerolog.Logger) (*Store, error) {
	gcfg := &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	memory := false
	switch strings.ToLower(cfg.Driver) {
	case "", "sqlite":
		if cfg.Path == "" || cfg.Path == ":memory:" {
			memory = true
			db, err = gorm.Open(sqlite.Open(":memory:"), gcfg)
		} else {
			db, err = gorm.Open(sqlite.Open(cfg.Path), gcfg)
		}
	case "memory":
		memory = true
		db, err = gorm.Open(sqlite.Open(":memory:"), gcfg)
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("store: postgres requires a dsn")
		}
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		}), gcfg)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: access sql interface: %w", err)
	}
	if memory {
		// Every new connection to :memory: is a fresh database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	s := &Store{DB: db, SqlDB: sqlDB, log: log}
	s.log.Info().Str("driver", db.Dialector.Name()).Bool("memory", memory).Msg("match history connected")
	return s, nil
}

// Migrate creates or updates the schema.
func (s *Store) Migrate() error {
	if err := s.DB.AutoMigrate(&MatchResult{}); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.SqlDB == nil {
		return nil
	}
	return s.SqlDB.Close()
}

func (s *Store) RecordMatch(ctx context.Context, m MatchResult) error {
	if m.EndedAt.IsZero() {
		m.EndedAt = time.Now().UTC()
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("store: record match: %w", err)
	}
	s.log.Debug().Uint("id", m.ID).Str("winner", m.WinningTeam).Float64("duration", m.Duration).Msg("match recorded")
	return nil
}

// RecentMatches returns up to n results, newest first.
func (s *Store) RecentMatches(ctx context.Context, n int) ([]MatchResult, error) {
	if n <= 0 {
		return nil, nil
	}
	var out []MatchResult
	err := s.DB.WithContext(ctx).
		Order("ended_at DESC").
		Order("id DESC").
		Limit(n).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("store: recent matches: %w", err)
	}
	return out, nil
}

// WinCounts tallies wins per team name.
func (s *Store) WinCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		WinningTeam string
		Wins        int64
	}
	err := s.DB.WithContext(ctx).
		Model(&MatchResult{}).
		Select("winning_team, count(*) as wins").
		Group("winning_team").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: win counts: %w", err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.WinningTeam] = r.Wins
	}
	return out, nil
}
