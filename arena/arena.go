package arena

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
	"github.com/milk9111/goofballs/ecs/entity"
	"github.com/milk9111/goofballs/ecs/system"
	"github.com/milk9111/goofballs/prefabs"
)

// DefaultArenaFile is the layout loaded when Options.ArenaFile is empty.
const DefaultArenaFile = "arena.yaml"

// DebugObjectiveDamage is what the objective test hotkey deals.
const DebugObjectiveDamage = 10.0

type Options struct {
	Log       zerolog.Logger
	ArenaFile string
	// Weapons resolves weapon names on spawn. Nil leaves everyone unarmed.
	Weapons *prefabs.WeaponCatalog
	// Tutorial is a tengo script run during the first match only.
	Tutorial []byte
	Clips    system.ClipLengths
	// Presenters see every event after the rest of the tick.
	Presenters  []system.Presenter
	Fader       system.Fader
	AutoRestart bool
	// NoPlayer runs the match with AI on both sides and no player
	// combatant.
	NoPlayer bool
}

// Arena owns one encounter world and rebuilds it on restart.
type Arena struct {
	opts Options
	log  zerolog.Logger

	mu          sync.Mutex
	spec        *prefabs.ArenaSpec
	pendingSpec *prefabs.ArenaSpec

	world      *ecs.World
	director   *system.EncounterDirector
	resolver   *system.DamageResolver
	tutorial   *system.TutorialSystem
	hud        *hudState
	player     ecs.Entity
	objectives map[component.Team]ecs.Entity

	fade           float64
	restartPending bool
	matches        int
}

// New loads the arena layout and builds the first match.
func New(opts Options) (*Arena, error) {
	if opts.ArenaFile == "" {
		opts.ArenaFile = DefaultArenaFile
	}
	spec, err := prefabs.LoadArenaSpec(opts.ArenaFile)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}
	a := &Arena{opts: opts, log: opts.Log, spec: spec}
	if err := a.build(); err != nil {
		return nil, err
	}
	return a, nil
}

func encounterConfig(spec prefabs.EncounterSpec, autoRestart bool) (system.EncounterConfig, float64) {
	cfg := system.DefaultEncounterConfig()
	cfg.AutoRestart = autoRestart
	setFloat := func(dst *float64, v *float64) {
		if v != nil && *v >= 0 {
			*dst = *v
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil && *v >= 0 {
			*dst = *v
		}
	}
	setFloat(&cfg.CountdownDuration, spec.CountdownDuration)
	setFloat(&cfg.SpawnInterval, spec.SpawnInterval)
	setInt(&cfg.MaxPlayerAI, spec.MaxPlayerAI)
	setInt(&cfg.MaxEnemyAI, spec.MaxEnemyAI)
	setFloat(&cfg.RespawnDelay, spec.RespawnDelay)
	setFloat(&cfg.SlowMotionDuration, spec.SlowMotionDuration)
	setFloat(&cfg.FadeAlpha, spec.FadeAlpha)
	setFloat(&cfg.VictoryDelay, spec.VictoryDelay)
	setFloat(&cfg.RestartDelay, spec.RestartDelay)

	deathDelay := system.DefaultDeathDelay
	setFloat(&deathDelay, spec.DeathDelay)
	return cfg, deathDelay
}

func (a *Arena) build() error {
	a.mu.Lock()
	if a.pendingSpec != nil {
		a.spec, a.pendingSpec = a.pendingSpec, nil
	}
	spec := a.spec
	a.mu.Unlock()

	w := ecs.NewWorld()
	cfg, deathDelay := encounterConfig(spec.Encounter, a.opts.AutoRestart)

	if _, err := entity.NewArenaBounds(w, spec.HalfWidth, spec.HalfDepth); err != nil {
		return fmt.Errorf("arena: %w", err)
	}
	objectives := map[component.Team]ecs.Entity{}
	for _, o := range spec.Objectives {
		e, err := entity.NewObjective(w, o)
		if err != nil {
			return fmt.Errorf("arena: %w", err)
		}
		obj, _ := ecs.Get(w, e, component.ObjectiveComponent.Kind())
		objectives[obj.Team] = e
	}

	points := system.SpawnPoints{Team: spec.TeamSpawnPoints()}
	var player ecs.Entity
	if spec.PlayerSpawn != nil {
		at := spec.PlayerSpawn.Vec3()
		points.Player = &at
	}
	if !a.opts.NoPlayer {
		at, yaw := common.Vec3{}, 0.0
		if spec.PlayerSpawn != nil {
			at, yaw = spec.PlayerSpawn.Vec3(), spec.PlayerSpawn.Yaw
		}
		e, err := entity.NewPlayerAt(w, spec.Player, at, yaw, a.buildOptions()...)
		if err != nil {
			return fmt.Errorf("arena: %w", err)
		}
		player = e
	}

	hud := newHUDState()
	directorOpts := []system.DirectorOption{
		system.WithFader(a),
		system.WithSceneController(a),
	}

	var tutorial *system.TutorialSystem
	if len(a.opts.Tutorial) > 0 && a.matches == 0 && !a.opts.NoPlayer {
		t, err := system.NewTutorialSystem(a.log.With().Str("system", "tutorial").Logger(), a.opts.Tutorial, a.opts.Clips)
		if err != nil {
			return fmt.Errorf("arena: tutorial: %w", err)
		}
		tutorial = t
		directorOpts = append(directorOpts, system.WithIntroGate(t))
	}

	resolver := system.NewDamageResolver(a.log.With().Str("system", "damage").Logger(), deathDelay)
	director := system.NewEncounterDirector(cfg, a.log.With().Str("system", "encounter").Logger(), a.spawnAI, points, directorOpts...)

	presenters := append([]system.Presenter{hud}, a.opts.Presenters...)

	w.AddSystem(system.NewMovementSystem())
	w.AddSystem(system.NewLungeSystem())
	w.AddSystem(system.NewPlayerControllerSystem())
	w.AddSystem(system.NewAISystem(a.log.With().Str("system", "ai").Logger()))
	w.AddSystem(system.NewPhysicsSystem(a.log.With().Str("system", "physics").Logger()))
	w.AddSystem(system.NewCombatSystem(a.log.With().Str("system", "combat").Logger(), resolver))
	w.AddSystem(system.NewLifecycleSystem(a.log.With().Str("system", "lifecycle").Logger()))
	w.AddSystem(system.NewRespawnSystem(a.log.With().Str("system", "respawn").Logger()))
	w.AddSystem(director)
	if tutorial != nil {
		w.AddSystem(tutorial)
	}
	w.AddSystem(system.NewDamageFlashSystem())
	w.AddSystem(system.NewPresentationSystem(presenters...))

	a.world = w
	a.director = director
	a.resolver = resolver
	a.tutorial = tutorial
	a.hud = hud
	a.player = player
	a.objectives = objectives
	a.restartPending = false
	a.SetFade(0)
	a.matches++

	a.log.Info().Str("arena", spec.Name).Int("match", a.matches).Strs("systems", w.SystemNames()).Msg("match built")
	return nil
}

func (a *Arena) buildOptions() []entity.BuildOption {
	return []entity.BuildOption{
		entity.WithWeapons(a.opts.Weapons),
		entity.WithLogger(a.log.With().Str("system", "build").Logger()),
	}
}

// spawnAI fills an AI slot with the team's roster archetype, facing the
// enemy barbecue.
func (a *Arena) spawnAI(w *ecs.World, team component.Team, at common.Vec3) (ecs.Entity, error) {
	prefab, ok := a.Spec().RosterPrefab(team)
	if !ok {
		return 0, fmt.Errorf("arena: no roster prefab for %s", team)
	}
	yaw := 0.0
	if target, ok := a.objectives[team.Opposite()]; ok {
		if t, ok := ecs.Get(w, target, component.TransformComponent.Kind()); ok {
			yaw = common.YawOf(t.Position.Sub(at).Flat())
		}
	}
	return entity.NewCombatantAt(w, prefab, team, at, yaw, a.buildOptions()...)
}

// Step advances the simulation by dt seconds of real time. A restart
// requested during the tick is carried out before Step returns.
func (a *Arena) Step(dt float64) error {
	a.world.Tick(dt)
	a.hud.advance(dt)
	if !a.restartPending {
		return nil
	}
	return a.build()
}

// SetInput samples the player's intent for the next tick. move is on the XZ
// plane.
func (a *Arena) SetInput(move common.Vec3, lunge bool) {
	in, ok := ecs.Get(a.world, a.player, component.InputComponent.Kind())
	if !ok {
		return
	}
	in.Move = move
	in.Lunge = lunge
}

// RequestRestart rebuilds the match after the current tick.
func (a *Arena) RequestRestart() {
	a.restartPending = true
}

// SetFade records the overlay alpha and forwards it to the host fader.
func (a *Arena) SetFade(alpha float64) {
	a.fade = common.Clamp01(alpha)
	if a.opts.Fader != nil {
		a.opts.Fader.SetFade(a.fade)
	}
}

func (a *Arena) Fade() float64 { return a.fade }

// DebugDamageObjective hits team's barbecue outside of combat. It returns
// false when the barbecue is missing or already destroyed.
func (a *Arena) DebugDamageObjective(team component.Team, amount float64) bool {
	e, ok := a.objectives[team]
	if !ok {
		a.log.Warn().Stringer("team", team).Msg("no objective to damage")
		return false
	}
	res := a.resolver.Apply(a.world, e, amount, a.player)
	return !res.Ignored
}

// ObjectiveHP returns current and max HP of team's barbecue.
func (a *Arena) ObjectiveHP(team component.Team) (current, max float64, ok bool) {
	e, found := a.objectives[team]
	if !found {
		return 0, 0, false
	}
	obj, found := ecs.Get(a.world, e, component.ObjectiveComponent.Kind())
	if !found {
		return 0, 0, false
	}
	return obj.Current, obj.Max, true
}

func (a *Arena) GameEnded() bool { return a.director.GameEnded() }

func (a *Arena) WinningTeam() (component.Team, bool) { return a.director.WinningTeam() }

func (a *Arena) Phase() system.EncounterPhase { return a.director.Phase() }

func (a *Arena) Stats() system.EncounterStats { return a.director.Stats() }

// PlayerCooldown reports the player's lunge cooldown in seconds and as a
// fraction of the full cooldown.
func (a *Arena) PlayerCooldown() (remaining, fraction float64, ok bool) {
	l, found := ecs.Get(a.world, a.player, component.LungeComponent.Kind())
	if !found {
		return 0, 0, false
	}
	return l.CooldownRemaining(), l.CooldownFraction(), true
}

func (a *Arena) Player() (ecs.Entity, bool) {
	return a.player, a.player.Valid() && ecs.IsAlive(a.world, a.player)
}

func (a *Arena) World() *ecs.World { return a.world }

// Matches counts the matches built so far, including the current one.
func (a *Arena) Matches() int { return a.matches }

func (a *Arena) Tutorial() *system.TutorialSystem { return a.tutorial }

// Spec returns the layout the current match was built from.
func (a *Arena) Spec() *prefabs.ArenaSpec {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.spec
}

// SetPendingSpec swaps in a new layout for the next match.
func (a *Arena) SetPendingSpec(spec *prefabs.ArenaSpec) {
	a.mu.Lock()
	a.pendingSpec = spec
	a.mu.Unlock()
}
