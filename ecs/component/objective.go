package component

// Objective is a team's barbecue. Destroying it ends the encounter in favour
// of the opposite team.
type Objective struct {
	Name      string
	Team      Team
	Max       float64
	Current   float64
	Destroyed bool
}

var ObjectiveComponent = NewComponent[Objective]()

func NewObjective(name string, team Team, max float64) *Objective {
	if max <= 0 {
		max = 1
	}
	return &Objective{Name: name, Team: team, Max: max, Current: max}
}

// ApplyDamage clamps HP to [0, Max] and latches Destroyed once.
func (o *Objective) ApplyDamage(amount float64) DamageResult {
	if o == nil {
		return DamageResult{Ignored: true}
	}
	if o.Destroyed || !(amount > 0) {
		return DamageResult{Current: o.Current, Max: o.Max, Ignored: true}
	}
	before := o.Current
	o.Current = clampHP(o.Current-amount, o.Max)
	res := DamageResult{Applied: before - o.Current, Current: o.Current, Max: o.Max}
	if o.Current <= 0 {
		o.Destroyed = true
		res.Killed = true
	}
	return res
}

// WinningTeam is the team that wins when this objective falls.
func (o *Objective) WinningTeam() Team {
	return o.Team.Opposite()
}

func (o *Objective) Fraction() float64 {
	if o == nil || o.Max <= 0 {
		return 0
	}
	return o.Current / o.Max
}
