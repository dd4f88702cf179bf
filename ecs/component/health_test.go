package component

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthApplyDamage(t *testing.T) {
	tests := []struct {
		name       string
		start      float64
		hits       []float64
		wantHP     float64
		wantDead   bool
		wantKilled int
	}{
		{"partial", 50, []float64{20}, 30, false, 0},
		{"exact_kill", 50, []float64{50}, 0, true, 1},
		{"overkill_clamps", 50, []float64{80}, 0, true, 1},
		{"dead_ignores_further_hits", 50, []float64{50, 10, 10}, 0, true, 1},
		{"non_positive_ignored", 50, []float64{0, -5}, 50, false, 0},
		{"non_finite_ignored", 50, []float64{math.NaN(), 10}, 40, false, 0},
		{"infinite_kills", 50, []float64{math.Inf(1)}, 0, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealth(tt.start)
			killed := 0
			for _, amt := range tt.hits {
				res := h.ApplyDamage(amt)
				assert.GreaterOrEqual(t, h.Current, 0.0)
				assert.LessOrEqual(t, h.Current, h.Max)
				if res.Killed {
					killed++
				}
			}
			assert.Equal(t, tt.wantHP, h.Current)
			assert.Equal(t, tt.wantDead, h.Dead)
			assert.Equal(t, tt.wantKilled, killed)
		})
	}
}

func TestHealthResetStartsNewLife(t *testing.T) {
	h := NewHealth(50)
	h.ApplyDamage(60)
	assert.True(t, h.Dead)

	h.Reset()
	assert.False(t, h.Dead)
	assert.Equal(t, 50.0, h.Current)
	assert.True(t, h.ApplyDamage(10).Applied > 0)
}

func TestObjectiveDestructionLatch(t *testing.T) {
	o := NewObjective("bbq", TeamEnemy, 200)
	o.Current = 10

	first := o.ApplyDamage(10)
	assert.True(t, first.Killed)
	assert.True(t, o.Destroyed)
	assert.Equal(t, 0.0, o.Current)
	assert.Equal(t, TeamPlayer, o.WinningTeam())

	second := o.ApplyDamage(10)
	assert.False(t, second.Killed)
	assert.True(t, second.Ignored)
}

func TestObjectiveIgnoresNaNDamage(t *testing.T) {
	o := NewObjective("bbq", TeamPlayer, 200)
	res := o.ApplyDamage(math.NaN())
	assert.True(t, res.Ignored)
	assert.Equal(t, 200.0, o.Current)
	assert.False(t, o.Destroyed)
}

func TestTeamOppositeAndParse(t *testing.T) {
	assert.Equal(t, TeamEnemy, TeamPlayer.Opposite())
	assert.Equal(t, TeamPlayer, TeamEnemy.Opposite())

	team, err := ParseTeam(" Ally ")
	assert.NoError(t, err)
	assert.Equal(t, TeamPlayer, team)

	_, err = ParseTeam("neutral")
	assert.Error(t, err)
}

func TestWeaponStatsFallback(t *testing.T) {
	var unarmed *Weapon
	dmg, speed, force, ok := unarmed.Stats()
	assert.False(t, ok)
	assert.Equal(t, DefaultWeaponDamage, dmg)
	assert.Equal(t, 1.0, speed)
	assert.Equal(t, 1.0, force)

	armed := &Weapon{Profile: &WeaponProfile{Name: "Mace", Damage: 40, SpeedMultiplier: 0.8, LungeForceMultiplier: 1.5}}
	dmg, speed, force, ok = armed.Stats()
	assert.True(t, ok)
	assert.Equal(t, 40.0, dmg)
	assert.Equal(t, 0.8, speed)
	assert.Equal(t, 1.5, force)
}
