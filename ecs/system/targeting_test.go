package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

func TestNearestOpponent(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		want       ecs.Entity
		found      bool
	}{
		{"empty", nil, 0, false},
		{"skips_dead", []Candidate{
			{Entity: 1, Position: common.Vec3{X: 1}, Dead: true},
			{Entity: 2, Position: common.Vec3{X: 3}},
		}, 2, true},
		{"tie_keeps_lowest_id", []Candidate{
			{Entity: 4, Position: common.Vec3{X: 2}},
			{Entity: 7, Position: common.Vec3{X: -2}},
		}, 4, true},
		{"closest_wins", []Candidate{
			{Entity: 1, Position: common.Vec3{Z: 9}},
			{Entity: 2, Position: common.Vec3{Z: 4}},
		}, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, found := NearestOpponent(common.Vec3{}, tt.candidates)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got.Entity)
		})
	}
}

func TestDecide(t *testing.T) {
	own := ObjectiveRef{Entity: 100, Position: common.Vec3{Z: -20}, Valid: true}
	enemyObj := ObjectiveRef{Entity: 200, Position: common.Vec3{Z: 20}, Valid: true}
	base := func() DecisionInput {
		return DecisionInput{
			OwnObjective:    own,
			EnemyObjective:  enemyObj,
			DetectionRange:  10,
			LungeRange:      5,
			DefenseRadius:   8,
			DefendObjective: true,
			LungeReady:      true,
		}
	}

	t.Run("no_opponents_attacks_objective", func(t *testing.T) {
		d := Decide(base())
		assert.Equal(t, component.AIAttackObjective, d.Mode)
		assert.Equal(t, ecs.Entity(200), d.Target)
		assert.True(t, d.Move)
		assert.False(t, d.Lunge)
	})

	t.Run("opponent_in_detection_range_is_engaged", func(t *testing.T) {
		in := base()
		in.Opponents = []Candidate{{Entity: 5, Position: common.Vec3{X: 7}}}
		d := Decide(in)
		assert.Equal(t, component.AIEngageOpponent, d.Mode)
		assert.True(t, d.Move, "outside lunge range moves in")
		assert.Equal(t, common.Vec3{X: 7}, d.MoveTo)
	})

	t.Run("opponent_in_lunge_range_is_lunged", func(t *testing.T) {
		in := base()
		in.Opponents = []Candidate{{Entity: 5, Position: common.Vec3{X: 4}}}
		d := Decide(in)
		assert.True(t, d.Lunge)
		assert.False(t, d.Move)
	})

	t.Run("in_range_on_cooldown_holds", func(t *testing.T) {
		in := base()
		in.LungeReady = false
		in.Opponents = []Candidate{{Entity: 5, Position: common.Vec3{X: 4}}}
		d := Decide(in)
		assert.False(t, d.Lunge)
		assert.False(t, d.Move)
		assert.True(t, d.HasFace)
	})

	t.Run("opponent_beyond_detection_is_ignored", func(t *testing.T) {
		in := base()
		in.Opponents = []Candidate{{Entity: 5, Position: common.Vec3{X: 15}}}
		d := Decide(in)
		assert.Equal(t, component.AIAttackObjective, d.Mode)
	})

	t.Run("threat_near_own_objective_triggers_defense", func(t *testing.T) {
		in := base()
		in.Position = common.Vec3{Z: 5}
		in.Opponents = []Candidate{{Entity: 9, Position: common.Vec3{Z: -15}}}
		d := Decide(in)
		assert.Equal(t, component.AIDefendObjective, d.Mode)
		assert.True(t, d.Move)
		assert.Equal(t, own.Position, d.MoveTo)
		assert.False(t, d.Lunge, "threat is 20 away, outside lunge range")
	})

	t.Run("any_threat_to_objective_beats_nearer_opponent", func(t *testing.T) {
		in := base()
		in.Opponents = []Candidate{
			{Entity: 1, Position: common.Vec3{X: 5}},
			{Entity: 2, Position: common.Vec3{Z: -19}},
		}
		d := Decide(in)
		assert.Equal(t, component.AIDefendObjective, d.Mode)
		assert.Equal(t, ecs.Entity(2), d.Target)
		assert.True(t, d.Move)
		assert.Equal(t, own.Position, d.MoveTo)
		assert.True(t, d.Lunge, "nearest opponent is inside lunge range")
		assert.Equal(t, common.Vec3{X: 5}, d.Face)
	})

	t.Run("dead_threat_near_objective_is_ignored", func(t *testing.T) {
		in := base()
		in.Opponents = []Candidate{
			{Entity: 1, Position: common.Vec3{X: 7}},
			{Entity: 2, Position: common.Vec3{Z: -19}, Dead: true},
		}
		d := Decide(in)
		assert.Equal(t, component.AIEngageOpponent, d.Mode)
		assert.Equal(t, ecs.Entity(1), d.Target)
	})

	t.Run("defender_at_objective_stays_and_lunges", func(t *testing.T) {
		in := base()
		in.Position = common.Vec3{Z: -19}
		in.Opponents = []Candidate{{Entity: 9, Position: common.Vec3{Z: -15}}}
		d := Decide(in)
		assert.Equal(t, component.AIDefendObjective, d.Mode)
		assert.False(t, d.Move, "within arrival distance")
		assert.True(t, d.Lunge)
		assert.Equal(t, common.Vec3{Z: -15}, d.Face)
	})

	t.Run("enemies_never_defend", func(t *testing.T) {
		in := base()
		in.DefendObjective = false
		in.Position = common.Vec3{Z: 5}
		in.Opponents = []Candidate{{Entity: 9, Position: common.Vec3{Z: -15}}}
		d := Decide(in)
		assert.Equal(t, component.AIAttackObjective, d.Mode)
	})

	t.Run("destroyed_objectives_leave_hold", func(t *testing.T) {
		in := base()
		in.EnemyObjective.Valid = false
		d := Decide(in)
		assert.Equal(t, component.AIHold, d.Mode)
		assert.False(t, d.Move)
		assert.False(t, d.Lunge)
	})
}
