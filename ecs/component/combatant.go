package component

// Combatant identifies an actor that fights for a team. Active is false once
// the actor has been deactivated after death; inactive actors are ignored by
// targeting and removed from physics.
type Combatant struct {
	Name   string
	Team   Team
	Active bool
}

var CombatantComponent = NewComponent[Combatant]()
