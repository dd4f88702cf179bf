package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		name                   string
		current, target, delta float64
		want                   float64
	}{
		{"reaches_target", 1, 1.5, 1, 1.5},
		{"steps_up", 0, 10, 2, 2},
		{"steps_down", 0, -10, 2, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MoveTowards(tt.current, tt.target, tt.delta))
		})
	}
}

func TestLerpAngleTakesShortestArc(t *testing.T) {
	from := 170 * math.Pi / 180
	to := -170 * math.Pi / 180

	mid := LerpAngle(from, to, 0.5)
	assert.InDelta(t, 180, math.Abs(Degrees(mid)), 1e-9)
}

func TestYawOfAndForwardAgree(t *testing.T) {
	dirs := []Vec3{{X: 1}, {Z: 1}, {X: -1, Z: -1}, {X: 0.3, Z: -2}}
	for _, d := range dirs {
		got := Forward(YawOf(d))
		want := d.Normalized()
		assert.InDelta(t, want.X, got.X, 1e-9)
		assert.InDelta(t, want.Z, got.Z, 1e-9)
	}
}

func TestVec3ClampLength(t *testing.T) {
	v := Vec3{X: 3, Z: 4}
	assert.InDelta(t, 2.5, v.ClampLength(2.5).Len(), 1e-9)
	assert.Equal(t, v, v.ClampLength(10))
	assert.Equal(t, Vec3{}, Vec3{}.Normalized())
}
