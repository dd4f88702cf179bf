package component

import (
	"fmt"
	"strings"
)

// Team is the side a combatant or objective fights for.
type Team uint8

const (
	TeamPlayer Team = iota
	TeamEnemy
)

// Opposite returns the other team. Destroying a team's objective hands the
// win to Opposite.
func (t Team) Opposite() Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}

func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("team(%d)", uint8(t))
	}
}

// ParseTeam accepts "player"/"ally" and "enemy", case-insensitively.
func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player", "ally", "allies":
		return TeamPlayer, nil
	case "enemy", "enemies":
		return TeamEnemy, nil
	default:
		return 0, fmt.Errorf("component: unknown team %q", s)
	}
}
