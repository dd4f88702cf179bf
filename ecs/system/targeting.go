package system

import (
	"math"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

// DefenseArrivalDistance is how close a defender gets to its own objective
// before it stops walking.
const DefenseArrivalDistance = 2.0

// Candidate is an opposing combatant visible to the targeting policy.
type Candidate struct {
	Entity   ecs.Entity
	Position common.Vec3
	Dead     bool
}

// ObjectiveRef locates an objective. Valid is false when the objective is
// missing or destroyed.
type ObjectiveRef struct {
	Entity   ecs.Entity
	Position common.Vec3
	Valid    bool
}

// DecisionInput is everything the policy looks at for one actor on one tick.
type DecisionInput struct {
	Position       common.Vec3
	OwnObjective   ObjectiveRef
	EnemyObjective ObjectiveRef
	// Opponents must be ordered by ascending entity id; ties on distance go
	// to the earliest entry.
	Opponents []Candidate

	DetectionRange  float64
	LungeRange      float64
	DefenseRadius   float64
	DefendObjective bool
	LungeReady      bool
}

// Decision is the policy output. Face is the point to turn toward, MoveTo the
// point to walk toward when Move is set.
type Decision struct {
	Mode   component.AIMode
	Target ecs.Entity
	Face   common.Vec3
	// HasFace is false when there is nothing to look at.
	HasFace bool
	MoveTo  common.Vec3
	Move    bool
	Lunge   bool
}

// NearestOpponent scans live candidates and returns the closest one. The
// comparison is strict, so equal distances keep the earlier candidate.
func NearestOpponent(origin common.Vec3, candidates []Candidate) (Candidate, float64, bool) {
	best := Candidate{}
	bestDist := math.MaxFloat64
	found := false
	for _, c := range candidates {
		if c.Dead {
			continue
		}
		d := origin.Dist(c.Position)
		if d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, bestDist, found
}

// threatToObjective returns the first live opponent inside radius of the
// objective, in candidate order.
func threatToObjective(obj common.Vec3, radius float64, candidates []Candidate) (Candidate, bool) {
	for _, c := range candidates {
		if !c.Dead && c.Position.Dist(obj) <= radius {
			return c, true
		}
	}
	return Candidate{}, false
}

// Decide applies the three-priority rule: defend the own objective when any
// opponent threatens it, otherwise engage an opponent inside detection
// range, otherwise push the enemy objective.
func Decide(in DecisionInput) Decision {
	nearest, distToOpponent, hasOpponent := NearestOpponent(in.Position, in.Opponents)

	var threat Candidate
	threatened := false
	if in.DefendObjective && in.OwnObjective.Valid {
		threat, threatened = threatToObjective(in.OwnObjective.Position, in.DefenseRadius, in.Opponents)
	}
	if threatened {
		d := Decision{
			Mode:    component.AIDefendObjective,
			Target:  threat.Entity,
			Face:    in.OwnObjective.Position,
			HasFace: true,
		}
		if in.Position.Dist(in.OwnObjective.Position) > DefenseArrivalDistance {
			d.Move = true
			d.MoveTo = in.OwnObjective.Position
		}
		if hasOpponent && in.LungeReady && distToOpponent <= in.LungeRange {
			d.Target = nearest.Entity
			d.Face = nearest.Position
			d.Lunge = true
		}
		return d
	}

	if hasOpponent && distToOpponent <= in.DetectionRange {
		return approach(component.AIEngageOpponent, nearest.Entity, nearest.Position, distToOpponent, in)
	}

	if in.EnemyObjective.Valid {
		dist := in.Position.Dist(in.EnemyObjective.Position)
		return approach(component.AIAttackObjective, in.EnemyObjective.Entity, in.EnemyObjective.Position, dist, in)
	}

	return Decision{Mode: component.AIHold}
}

// approach faces the target, lunges when in range and ready, and walks in
// otherwise. Inside lunge range while cooling down the actor holds position.
func approach(mode component.AIMode, target ecs.Entity, pos common.Vec3, dist float64, in DecisionInput) Decision {
	d := Decision{Mode: mode, Target: target, Face: pos, HasFace: true}
	switch {
	case in.LungeReady && dist <= in.LungeRange:
		d.Lunge = true
	case dist > in.LungeRange:
		d.Move = true
		d.MoveTo = pos
	}
	return d
}
