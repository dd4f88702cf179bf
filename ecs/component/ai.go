package component

// AIMode is the outcome of the last targeting decision, kept for debugging
// and presentation.
type AIMode uint8

const (
	AIHold AIMode = iota
	AIDefendObjective
	AIEngageOpponent
	AIAttackObjective
)

func (m AIMode) String() string {
	switch m {
	case AIDefendObjective:
		return "defend"
	case AIEngageOpponent:
		return "engage"
	case AIAttackObjective:
		return "attack_objective"
	default:
		return "hold"
	}
}

// AI holds the tuning of an autonomous combatant.
type AI struct {
	DetectionRange float64
	LungeRange     float64
	DefenseRadius  float64
	// DefendObjective enables the defend priority. Allies defend, enemies
	// always push.
	DefendObjective bool
	// TurnRate is the heading slerp rate per second.
	TurnRate float64

	Mode     AIMode
	// TargetID is the raw entity of the current target, zero for none.
	TargetID uint64
}

var AIComponent = NewComponent[AI]()
