package component

import (
	"testing"

	"github.com/milk9111/goofballs/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLunge() *Lunge {
	return &Lunge{BaseForce: 15, ForceMultiplier: 1, Duration: 0.3, Cooldown: 2, Damage: 25, Enabled: true}
}

func TestLungeLifecycle(t *testing.T) {
	l := newTestLunge()
	impulse, ok := l.Request(common.Vec3{Z: 1})
	require.True(t, ok)
	assert.InDelta(t, 15, impulse.Len(), 1e-9)
	assert.Equal(t, LungeLunging, l.State())
	assert.Equal(t, 2.0, l.CooldownRemaining())

	// Refused while lunging and while cooling down.
	l.Tick(0.1)
	cooldown := l.CooldownRemaining()
	impulse, ok = l.Request(common.Vec3{Z: 1})
	assert.False(t, ok)
	assert.True(t, impulse.IsZero())
	assert.Equal(t, LungeLunging, l.State())
	assert.Equal(t, cooldown, l.CooldownRemaining(), "a refused request leaves the timers alone")

	for i := 0; i < 3; i++ {
		l.Tick(0.1)
	}

	assert.False(t, l.IsLunging())
	assert.Equal(t, LungeCooldown, l.State())
	_, ok = l.Request(common.Vec3{Z: 1})
	assert.False(t, ok)

	for i := 0; i < 20; i++ {
		l.Tick(0.1)
	}
	assert.Equal(t, 0.0, l.CooldownRemaining())
	assert.Equal(t, LungeIdle, l.State())
	_, ok = l.Request(common.Vec3{X: 1})
	assert.True(t, ok)
}

func TestLungeTryHitOncePerActivation(t *testing.T) {
	l := newTestLunge()
	assert.False(t, l.TryHit(), "no hit before lunging")

	_, ok := l.Request(common.Vec3{Z: 1})
	require.True(t, ok)
	assert.True(t, l.TryHit())
	assert.False(t, l.TryHit())
	assert.False(t, l.TryHit())

	// A new activation clears the latch.
	l.Tick(5)
	_, ok = l.Request(common.Vec3{Z: 1})
	require.True(t, ok)
	assert.True(t, l.TryHit())
}

func TestLungeCooldownNeverNegative(t *testing.T) {
	l := newTestLunge()
	l.Request(common.Vec3{Z: 1})
	l.Tick(100)
	assert.Equal(t, 0.0, l.CooldownRemaining())
	assert.Equal(t, 0.0, l.CooldownFraction())
}

func TestLungeForceUsesWeaponMultiplier(t *testing.T) {
	l := newTestLunge()
	l.ForceMultiplier = 2
	impulse, ok := l.Request(common.Vec3{X: 3, Y: 5, Z: 4})
	require.True(t, ok)
	assert.InDelta(t, 30, impulse.Len(), 1e-9)
	assert.Equal(t, 0.0, impulse.Y, "lunges stay on the floor plane")
}

func TestLungeDisableAndReset(t *testing.T) {
	l := newTestLunge()
	l.Request(common.Vec3{Z: 1})
	l.Disable()
	assert.False(t, l.IsLunging())
	assert.False(t, l.TryHit())
	l.Tick(10)
	_, ok := l.Request(common.Vec3{Z: 1})
	assert.False(t, ok, "disabled lunge refuses requests")

	l.Reset()
	_, ok = l.Request(common.Vec3{Z: 1})
	assert.True(t, ok)
}
