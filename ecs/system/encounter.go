package system

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/common"
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/component"
)

// EncounterPhase is the top-level match state.
type EncounterPhase uint8

const (
	PhaseCountdown EncounterPhase = iota
	PhaseActive
	PhaseEnded
)

func (p EncounterPhase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

const (
	VictoryBannerText = "VICTORY!\nPlayer Team Wins!"
	DefeatBannerText  = "DEFEAT!\nEnemy Team Wins!"
)

var (
	victoryColor = [4]uint8{0x33, 0xcc, 0x33, 0xff}
	defeatColor  = [4]uint8{0xdd, 0x22, 0x22, 0xff}
)

// BannerFor builds the end banner from the player's point of view.
func BannerFor(winner component.Team) Banner {
	if winner == component.TeamPlayer {
		return Banner{Text: VictoryBannerText, Color: victoryColor, WinningTeam: winner}
	}
	return Banner{Text: DefeatBannerText, Color: defeatColor, WinningTeam: winner}
}

// EncounterConfig tunes the director. Durations are in seconds.
type EncounterConfig struct {
	CountdownDuration  float64
	SpawnInterval      float64
	MaxPlayerAI        int
	MaxEnemyAI         int
	RespawnDelay       float64
	SlowMotionDuration float64
	FadeAlpha          float64
	VictoryDelay       float64
	AutoRestart        bool
	RestartDelay       float64
}

func DefaultEncounterConfig() EncounterConfig {
	return EncounterConfig{
		CountdownDuration:  3,
		SpawnInterval:      4,
		MaxPlayerAI:        3,
		MaxEnemyAI:         4,
		RespawnDelay:       3,
		SlowMotionDuration: 1,
		FadeAlpha:          0.6,
		VictoryDelay:       2,
		AutoRestart:        false,
		RestartDelay:       5,
	}
}

// SpawnPoints lists where each team's AI enters and where the player
// respawns. A team with no points cannot spawn.
type SpawnPoints struct {
	Team   map[component.Team][]common.Vec3
	Player *common.Vec3
}

// SpawnFunc creates an AI combatant of team at a point.
type SpawnFunc func(w *ecs.World, team component.Team, at common.Vec3) (ecs.Entity, error)

// Fader drives a full-screen fade overlay. Alpha is in [0, 1].
type Fader interface {
	SetFade(alpha float64)
}

// SceneController restarts the encounter. The director only asks; how the
// restart happens is up to the host.
type SceneController interface {
	RequestRestart()
}

// IntroGate holds the countdown open until an intro sequence finishes.
type IntroGate interface {
	IntroComplete() bool
}

// TeamStats accumulates per-team counters over an encounter.
type TeamStats struct {
	Spawned     int     `json:"spawned"`
	Lost        int     `json:"lost"`
	Lunges      int     `json:"lunges"`
	Hits        int     `json:"hits"`
	DamageDealt float64 `json:"damageDealt"`
}

type EncounterStats struct {
	Duration     float64   `json:"duration"`
	PlayerDeaths int       `json:"playerDeaths"`
	Player       TeamStats `json:"player"`
	Enemy        TeamStats `json:"enemy"`
}

func (s *EncounterStats) team(t component.Team) *TeamStats {
	if t == component.TeamPlayer {
		return &s.Player
	}
	return &s.Enemy
}

// EncounterDirector runs the match: a countdown with input locked, an
// active phase that keeps both sides stocked with AI and respawns the
// player, and an ended phase that plays the victory timeline once the first
// objective falls.
type EncounterDirector struct {
	cfg    EncounterConfig
	log    zerolog.Logger
	spawn  SpawnFunc
	points SpawnPoints

	fader Fader
	scene SceneController
	gate  IntroGate

	phase         EncounterPhase
	countdown     float64
	lastCountdown int

	spawnTimers map[component.Team]float64
	nextPoint   map[component.Team]int
	tracked     map[component.Team][]ecs.Entity

	respawnPending bool
	respawnTimer   float64

	gameEnded        bool
	winner           component.Team
	endClock         float64
	bannerShown      bool
	restartRequested bool

	stats EncounterStats
}

type DirectorOption func(*EncounterDirector)

func WithFader(f Fader) DirectorOption { return func(d *EncounterDirector) { d.fader = f } }

func WithSceneController(s SceneController) DirectorOption {
	return func(d *EncounterDirector) { d.scene = s }
}

func WithIntroGate(g IntroGate) DirectorOption { return func(d *EncounterDirector) { d.gate = g } }

func NewEncounterDirector(cfg EncounterConfig, log zerolog.Logger, spawn SpawnFunc, points SpawnPoints, opts ...DirectorOption) *EncounterDirector {
	d := &EncounterDirector{
		cfg:           cfg,
		log:           log,
		spawn:         spawn,
		points:        points,
		phase:         PhaseCountdown,
		countdown:     cfg.CountdownDuration,
		lastCountdown: -1,
		spawnTimers:   map[component.Team]float64{},
		nextPoint:     map[component.Team]int{},
		tracked:       map[component.Team][]ecs.Entity{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *EncounterDirector) Phase() EncounterPhase { return d.phase }

// GameEnded reports whether an objective has fallen. It never resets.
func (d *EncounterDirector) GameEnded() bool { return d.gameEnded }

func (d *EncounterDirector) WinningTeam() (component.Team, bool) { return d.winner, d.gameEnded }

func (d *EncounterDirector) Stats() EncounterStats { return d.stats }

// Tracked returns the live AI the director counts against the cap of team.
func (d *EncounterDirector) Tracked(team component.Team) []ecs.Entity {
	return append([]ecs.Entity(nil), d.tracked[team]...)
}

func (d *EncounterDirector) Update(w *ecs.World) {
	if d.phase != PhaseEnded {
		d.tally(w)
		if d.checkObjectives(w) {
			return
		}
	}

	switch d.phase {
	case PhaseCountdown:
		d.updateCountdown(w)
	case PhaseActive:
		d.updateActive(w)
	case PhaseEnded:
		d.updateEnded(w)
	}
}

func (d *EncounterDirector) setPhase(w *ecs.World, next EncounterPhase) {
	if d.phase == next {
		return
	}
	push(w, EventPhaseChanged, PhaseChanged{From: d.phase, To: next})
	d.log.Info().Stringer("from", d.phase).Stringer("to", next).Msg("encounter phase")
	d.phase = next
}

func (d *EncounterDirector) updateCountdown(w *ecs.World) {
	lockPlayers(w, component.LockCountdown, true)

	d.countdown -= w.Dt()
	if remaining := int(math.Ceil(math.Max(d.countdown, 0))); remaining != d.lastCountdown {
		d.lastCountdown = remaining
		push(w, EventCountdown, Countdown{Remaining: remaining})
	}
	if d.countdown > 0 {
		return
	}
	if d.gate != nil && !d.gate.IntroComplete() {
		return
	}

	lockPlayers(w, component.LockCountdown, false)
	d.setPhase(w, PhaseActive)
}

func (d *EncounterDirector) updateActive(w *ecs.World) {
	dt := w.Dt()
	d.stats.Duration += dt

	d.prune(w)
	for _, team := range []component.Team{component.TeamPlayer, component.TeamEnemy} {
		d.spawnTimers[team] -= dt
		if d.spawnTimers[team] > 0 {
			continue
		}
		d.spawnTimers[team] = d.cfg.SpawnInterval
		if len(d.tracked[team]) >= d.capFor(team) {
			continue
		}
		d.spawnOne(w, team)
	}

	d.updatePlayerRespawn(w, dt)
}

func (d *EncounterDirector) capFor(team component.Team) int {
	if team == component.TeamPlayer {
		return d.cfg.MaxPlayerAI
	}
	return d.cfg.MaxEnemyAI
}

// prune drops tracked AI that are gone, dead or deactivated.
func (d *EncounterDirector) prune(w *ecs.World) {
	for team, list := range d.tracked {
		kept := list[:0]
		for _, e := range list {
			if !ecs.IsAlive(w, e) || isDead(w, e) {
				continue
			}
			kept = append(kept, e)
		}
		d.tracked[team] = kept
	}
}

func (d *EncounterDirector) spawnOne(w *ecs.World, team component.Team) {
	points := d.points.Team[team]
	if len(points) == 0 {
		d.log.Warn().Stringer("team", team).Msg("no spawn points, skipping spawn")
		return
	}
	if d.spawn == nil {
		d.log.Warn().Msg("no spawner configured, skipping spawn")
		return
	}
	idx := d.nextPoint[team] % len(points)
	d.nextPoint[team] = idx + 1
	at := points[idx]

	e, err := d.spawn(w, team, at)
	if err != nil {
		d.log.Error().Err(err).Stringer("team", team).Msg("spawn failed")
		return
	}
	d.tracked[team] = append(d.tracked[team], e)
	d.stats.team(team).Spawned++
	push(w, EventSpawned, Spawned{Entity: e, Team: team, Point: at})
}

func (d *EncounterDirector) updatePlayerRespawn(w *ecs.World, dt float64) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	c, ok := ecs.Get(w, player, component.CombatantComponent.Kind())
	if !ok {
		return
	}

	if !d.respawnPending {
		if c.Active || ecs.Has(w, player, component.RespawnRequestComponent.Kind()) {
			return
		}
		d.respawnPending = true
		d.respawnTimer = d.cfg.RespawnDelay
		d.log.Info().Float64("delay", d.cfg.RespawnDelay).Msg("player respawn scheduled")
	}

	d.respawnTimer -= dt
	if d.respawnTimer > 0 {
		return
	}
	d.respawnPending = false

	if d.points.Player == nil {
		d.log.Warn().Msg("no player spawn point, skipping respawn")
		return
	}
	err := ecs.Add(w, player, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{Position: *d.points.Player})
	warnIfFailed(d.log, err, player, "respawn request")
}

// checkObjectives latches the end of the encounter on the first destroyed
// objective. It reports whether the encounter just ended.
func (d *EncounterDirector) checkObjectives(w *ecs.World) bool {
	if d.gameEnded {
		return false
	}
	for _, evt := range w.Events().Of(EventObjectiveDestroyed) {
		od, ok := evt.Data.(ObjectiveDestroyed)
		if !ok {
			continue
		}
		d.end(w, od.WinningTeam)
		return true
	}
	return false
}

func (d *EncounterDirector) end(w *ecs.World, winner component.Team) {
	d.gameEnded = true
	d.winner = winner
	d.endClock = 0
	d.respawnPending = false
	lockPlayers(w, component.LockEncounterEnded, true)
	d.setPhase(w, PhaseEnded)
	push(w, EventEncounterEnded, EncounterEnded{WinningTeam: winner, Stats: d.stats})
	d.log.Info().Stringer("winner", winner).Float64("duration", d.stats.Duration).Msg("encounter ended")
}

// updateEnded plays the victory timeline on unscaled time: slow motion to a
// full stop with a fade, then the banner, then an optional restart.
func (d *EncounterDirector) updateEnded(w *ecs.World) {
	d.endClock += w.RealDt()

	progress := 1.0
	if d.cfg.SlowMotionDuration > 0 {
		progress = common.Clamp01(d.endClock / d.cfg.SlowMotionDuration)
	}
	w.SetTimeScale(1 - progress)
	if d.fader != nil {
		d.fader.SetFade(d.cfg.FadeAlpha * progress)
	}

	if !d.bannerShown && d.endClock >= d.cfg.VictoryDelay {
		d.bannerShown = true
		push(w, EventBanner, BannerFor(d.winner))
	}

	if d.cfg.AutoRestart && !d.restartRequested && d.endClock >= d.cfg.VictoryDelay+d.cfg.RestartDelay {
		d.restartRequested = true
		push(w, EventRestartRequested, nil)
		if d.scene != nil {
			d.scene.RequestRestart()
		}
		d.log.Info().Msg("restart requested")
	}
}

// tally folds this tick's combat events into the stats.
func (d *EncounterDirector) tally(w *ecs.World) {
	for _, evt := range w.Events().Events() {
		switch data := evt.Data.(type) {
		case LungeStarted:
			d.stats.team(data.Team).Lunges++
		case Damaged:
			d.stats.team(data.Team.Opposite()).Hits++
			d.stats.team(data.Team.Opposite()).DamageDealt += data.Amount
		case CombatantDied:
			d.stats.team(data.Team).Lost++
			if data.Player {
				d.stats.PlayerDeaths++
			}
		}
	}
}

func lockPlayers(w *ecs.World, lock component.InputLock, on bool) {
	ecs.ForEach(w, component.PlayerControlComponent.Kind(), func(_ ecs.Entity, ctrl *component.PlayerControl) {
		if on {
			ctrl.Lock(lock)
		} else {
			ctrl.Unlock(lock)
		}
	})
}
