package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

type clipTable map[string]time.Duration

func (c clipTable) Length(name string) (time.Duration, bool) {
	d, ok := c[name]
	return d, ok
}

const lungeTutorial = `
initial_state := "intro"

onEnter := func(e, s, cur) {
	if cur == "intro" {
		e.lock_input()
		e.say("Welcome to the arena!", "welcome")
	} else if cur == "lunge" {
		e.say("Press space to lunge.")
	}
}

update := func(e, s, cur) {
	if cur == "intro" {
		if e.elapsed() >= 1.0 {
			e.finish_intro()
			e.unlock_input()
			e.transition("lunge")
		}
	} else if cur == "lunge" {
		if e.event("player_lunged") {
			e.progress(1)
			e.transition("done")
		}
	}
}

onExit := func(e, s, cur) {}
`

func TestCompileTutorialRejectsBadScripts(t *testing.T) {
	_, err := NewTutorialSystem(nopLog, nil, nil)
	assert.Error(t, err)

	_, err = NewTutorialSystem(nopLog, []byte("update := func(e, s, cur) {"), nil)
	assert.Error(t, err)
}

func TestCompileTutorialDefaultsInitialState(t *testing.T) {
	ts, err := NewTutorialSystem(nopLog, []byte(`
onEnter := func(e, s, cur) {}
update := func(e, s, cur) {}
onExit := func(e, s, cur) {}
`), nil)
	require.NoError(t, err)
	assert.Equal(t, "intro", ts.State())
}

func TestTutorialFlow(t *testing.T) {
	w := ecs.NewWorld()
	rec := &recorder{}
	player := addFighter(t, w, component.TeamPlayer, common.Vec3{}, fighterOpts{player: true})

	lunged := false
	w.AddSystem(tickFunc(func(w *ecs.World) {
		if lunged {
			push(w, EventLungeStarted, LungeStarted{Entity: player, Team: component.TeamPlayer})
		}
	}))
	ts, err := NewTutorialSystem(nopLog, []byte(lungeTutorial), clipTable{"welcome": 2 * time.Second})
	require.NoError(t, err)
	w.AddSystem(ts)
	w.AddSystem(NewPresentationSystem(rec))

	ctrl, _ := ecs.Get(w, player, component.PlayerControlComponent.Kind())

	w.Tick(0.5)
	assert.Equal(t, "intro", ts.State())
	assert.False(t, ctrl.CanMove())
	assert.False(t, ts.IntroComplete())
	require.Len(t, rec.of(EventDialogue), 1)
	welcome := rec.of(EventDialogue)[0].Data.(Dialogue)
	assert.Equal(t, "welcome", welcome.Clip)
	assert.Equal(t, 2.0, welcome.Duration)

	w.Tick(0.5)
	assert.Equal(t, "lunge", ts.State())
	assert.True(t, ctrl.CanMove())
	assert.True(t, ts.IntroComplete())
	require.Len(t, rec.of(EventDialogue), 2)
	hint := rec.of(EventDialogue)[1].Data.(Dialogue)
	assert.InDelta(t, 1.5+0.05*float64(len("Press space to lunge.")), hint.Duration, 1e-9)

	w.Tick(0.5)
	assert.Equal(t, "lunge", ts.State())

	lunged = true
	w.Tick(0.5)
	assert.True(t, ts.Finished())
	assert.Equal(t, 1, ts.Progress())
	assert.Equal(t, tutorialDoneState, ts.State())
	assert.NotEmpty(t, rec.of(EventTutorialProgress))

	w.Tick(0.5)
	assert.Equal(t, tutorialDoneState, ts.State(), "finished tutorials stay put")
}

func TestTutorialScriptErrorUnlocksInput(t *testing.T) {
	w := ecs.NewWorld()
	player := addFighter(t, w, component.TeamPlayer, common.Vec3{}, fighterOpts{player: true})
	ts, err := NewTutorialSystem(nopLog, []byte(`
onEnter := func(e, s, cur) { e.lock_input() }
update := func(e, s, cur) { e.no_such_function() }
onExit := func(e, s, cur) {}
`), nil)
	require.NoError(t, err)
	w.AddSystem(ts)

	w.Tick(0.1)

	ctrl, _ := ecs.Get(w, player, component.PlayerControlComponent.Kind())
	assert.True(t, ctrl.CanMove())
	assert.True(t, ts.IntroComplete())
	assert.False(t, ts.Finished())
}

func TestTutorialAliveCountsLiveCombatants(t *testing.T) {
	w := ecs.NewWorld()
	addFighter(t, w, component.TeamEnemy, common.Vec3{}, fighterOpts{})
	dead := addFighter(t, w, component.TeamEnemy, common.Vec3{X: 3}, fighterOpts{})
	h, _ := ecs.Get(w, dead, component.HealthComponent.Kind())
	h.Dead = true

	ts, err := NewTutorialSystem(nopLog, []byte(`
onEnter := func(e, s, cur) {}
update := func(e, s, cur) {
	if e.alive("enemy") == 1 {
		e.transition("done")
	}
}
onExit := func(e, s, cur) {}
`), nil)
	require.NoError(t, err)
	w.AddSystem(ts)

	w.Tick(0.1)
	assert.True(t, ts.Finished())
}
