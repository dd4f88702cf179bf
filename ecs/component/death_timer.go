package component

// DeathTimer delays deactivation of a dead combatant so death effects can
// play. Remaining is in seconds of simulation time.
type DeathTimer struct {
	Remaining float64
}

var DeathTimerComponent = NewComponent[DeathTimer]()
