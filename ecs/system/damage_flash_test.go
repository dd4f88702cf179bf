package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

func TestDamageFlashBlinksThenExpires(t *testing.T) {
	w := ecs.NewWorld()
	resolver := NewDamageResolver(nopLog, DefaultDeathDelay)
	w.AddSystem(NewDamageFlashSystem())
	e := addFighter(t, w, component.TeamEnemy, common.Vec3{}, fighterOpts{hp: 100})

	resolver.Apply(w, e, 10, 0)
	w.Tick(0.01)

	f, ok := ecs.Get(w, e, component.DamageFlashComponent.Kind())
	require.True(t, ok)
	assert.True(t, f.On)

	w.Tick(0.05)
	assert.False(t, f.On)

	for i := 0; i < 10; i++ {
		w.Tick(0.05)
	}
	assert.False(t, ecs.Has(w, e, component.DamageFlashComponent.Kind()))
}
