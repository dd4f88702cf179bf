package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs/component"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PointSpec is a position on the arena floor.
type PointSpec struct {
	X   float64 `yaml:"x"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

func (p PointSpec) Vec3() common.Vec3 {
	return common.Vec3{X: p.X, Z: p.Z}
}

type ObjectiveSpec struct {
	Name   string  `yaml:"name"`
	Team   string  `yaml:"team"`
	HP     float64 `yaml:"hp"`
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Radius float64 `yaml:"radius"`
}

// EncounterSpec overrides director tuning. Unset fields keep the defaults.
type EncounterSpec struct {
	CountdownDuration  *float64 `yaml:"countdown_duration"`
	SpawnInterval      *float64 `yaml:"spawn_interval"`
	MaxPlayerAI        *int     `yaml:"max_player_ai"`
	MaxEnemyAI         *int     `yaml:"max_enemy_ai"`
	RespawnDelay       *float64 `yaml:"respawn_delay"`
	SlowMotionDuration *float64 `yaml:"slow_motion_duration"`
	FadeAlpha          *float64 `yaml:"fade_alpha"`
	VictoryDelay       *float64 `yaml:"victory_delay"`
	RestartDelay       *float64 `yaml:"restart_delay"`
	DeathDelay         *float64 `yaml:"death_delay"`
}

// ArenaSpec lays out one battlefield: walls, the two barbecues, spawn points
// and which archetype fills each side.
type ArenaSpec struct {
	Name        string                 `yaml:"name"`
	HalfWidth   float64                `yaml:"half_width"`
	HalfDepth   float64                `yaml:"half_depth"`
	Player      string                 `yaml:"player"`
	PlayerSpawn *PointSpec             `yaml:"player_spawn"`
	Roster      map[string]string      `yaml:"roster"`
	SpawnPoints map[string][]PointSpec `yaml:"spawn_points"`
	Objectives  []ObjectiveSpec        `yaml:"objectives"`
	TeamColors  map[string]*YAMLColor  `yaml:"team_colors"`
	Encounter   EncounterSpec          `yaml:"encounter"`
}

func LoadArenaSpec(filename string) (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// Validate rejects layouts the encounter cannot run on.
func (a *ArenaSpec) Validate() error {
	if a.HalfWidth <= 0 || a.HalfDepth <= 0 {
		return fmt.Errorf("arena bounds must be positive")
	}
	seen := map[component.Team]bool{}
	for _, o := range a.Objectives {
		team, err := component.ParseTeam(o.Team)
		if err != nil {
			return fmt.Errorf("objective %q: %w", o.Name, err)
		}
		if seen[team] {
			return fmt.Errorf("team %s has more than one objective", team)
		}
		if o.HP <= 0 {
			return fmt.Errorf("objective %q: hp must be positive", o.Name)
		}
		seen[team] = true
	}
	for name := range a.SpawnPoints {
		if _, err := component.ParseTeam(name); err != nil {
			return fmt.Errorf("spawn points: %w", err)
		}
	}
	for name := range a.Roster {
		if _, err := component.ParseTeam(name); err != nil {
			return fmt.Errorf("roster: %w", err)
		}
	}
	return nil
}

// TeamSpawnPoints resolves the spawn point table by team.
func (a *ArenaSpec) TeamSpawnPoints() map[component.Team][]common.Vec3 {
	out := make(map[component.Team][]common.Vec3, len(a.SpawnPoints))
	for name, points := range a.SpawnPoints {
		team, err := component.ParseTeam(name)
		if err != nil {
			continue
		}
		for _, p := range points {
			out[team] = append(out[team], p.Vec3())
		}
	}
	return out
}

// RosterPrefab returns the archetype prefab that fills team's AI slots.
func (a *ArenaSpec) RosterPrefab(team component.Team) (string, bool) {
	for name, prefab := range a.Roster {
		if t, err := component.ParseTeam(name); err == nil && t == team && prefab != "" {
			return prefab, true
		}
	}
	return "", false
}

// TeamColor falls back to green for the player side and red for enemies.
func (a *ArenaSpec) TeamColor(team component.Team) color.Color {
	for name, c := range a.TeamColors {
		if t, err := component.ParseTeam(name); err == nil && t == team && c != nil && c.Color != nil {
			return c.Color
		}
	}
	if team == component.TeamPlayer {
		return color.NRGBA{R: 0x33, G: 0xcc, B: 0x33, A: 0xff}
	}
	return color.NRGBA{R: 0xdd, G: 0x22, B: 0x22, A: 0xff}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 0xff
	for i := 0; i*2 < len(s); i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
