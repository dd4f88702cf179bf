package component

// DamageFlash makes a combatant or objective blink white after a hit. Times
// are in seconds.
type DamageFlash struct {
	// Remaining time for the whole effect.
	Remaining float64
	// Interval between toggles of the white-on state.
	Interval float64
	Timer    float64
	On       bool
}

var DamageFlashComponent = NewComponent[DamageFlash]()
