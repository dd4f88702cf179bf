package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "goofballs"

// EnvPrefix namespaces environment overrides, e.g. GOOFBALLS_LOGLEVEL or
// GOOFBALLS_STORAGE_DRIVER.
const EnvPrefix = "GOOFBALLS"

// StorageConfig selects the match history backend.
type StorageConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Driver  string `json:"driver" mapstructure:"driver"`
	Path    string `json:"path" mapstructure:"path"`
	DSN     string `json:"dsn" mapstructure:"dsn"`
}

// EncounterConfig holds the host-level encounter switches. Tuning lives in
// the arena prefab.
type EncounterConfig struct {
	AutoRestart bool `json:"autoRestart" mapstructure:"autoRestart"`
}

type Config struct {
	LogLevel  string          `json:"logLevel" mapstructure:"logLevel"`
	LogFormat string          `json:"logFormat" mapstructure:"logFormat"`
	TickRate  int             `json:"tickRate" mapstructure:"tickRate"`
	PrefabDir string          `json:"prefabDir" mapstructure:"prefabDir"`
	ArenaFile string          `json:"arenaFile" mapstructure:"arenaFile"`
	HotReload bool            `json:"hotReload" mapstructure:"hotReload"`
	AudioDir  string          `json:"audioDir" mapstructure:"audioDir"`
	Storage   StorageConfig   `json:"storage" mapstructure:"storage"`
	Encounter EncounterConfig `json:"encounter" mapstructure:"encounter"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "console")
	viper.SetDefault("tickRate", 60)
	viper.SetDefault("prefabDir", "prefabs")
	viper.SetDefault("arenaFile", "arena.yaml")
	viper.SetDefault("hotReload", false)
	viper.SetDefault("audioDir", "assets/audio")

	viper.SetDefault("storage.enabled", true)
	viper.SetDefault("storage.driver", "sqlite")
	viper.SetDefault("storage.path", "goofballs.db")
	viper.SetDefault("storage.dsn", "")

	viper.SetDefault("encounter.autoRestart", false)
}

// Load reads goofballs.yaml from configDir on top of the defaults. A missing
// file is not an error; a malformed one is.
func Load(configDir string) (Config, error) {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", configDir, err)
		}
	}

	return Current()
}

// Current unmarshals the live viper state.
func Current() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	return cfg, nil
}

// TickDt is the fixed simulation step for the configured tick rate.
func (c Config) TickDt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}
