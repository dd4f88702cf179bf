package arena

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/audio"
	"github.com/milk9111/goofballs/config"
	"github.com/milk9111/goofballs/ecs/system"
	"github.com/milk9111/goofballs/logging"
	"github.com/milk9111/goofballs/prefabs"
	"github.com/milk9111/goofballs/store"
	"github.com/milk9111/goofballs/telemetry"
)

// TutorialScript is the tengo script run when the tutorial is enabled.
const TutorialScript = "tutorial.tengo"

type RuntimeOptions struct {
	Config   config.Config
	Log      zerolog.Logger
	Tutorial bool
	NoPlayer bool
	Fader    system.Fader
	// Presenters are added after metrics and the result recorder.
	Presenters []system.Presenter
}

// Runtime is an arena with everything around it wired from config: content
// catalogs, match history, metrics and hot reload.
type Runtime struct {
	Arena    *Arena
	Weapons  *prefabs.WeaponCatalog
	Clips    *audio.ClipCatalog
	Store    *store.Store
	Metrics  *telemetry.Metrics
	Recorder *ResultRecorder
	Reloader *Reloader

	log zerolog.Logger
}

func NewRuntime(opts RuntimeOptions) (*Runtime, error) {
	cfg := opts.Config
	log := opts.Log
	rt := &Runtime{log: log}

	prefabs.SetDiskDir(cfg.PrefabDir)

	weapons, err := prefabs.LoadWeaponCatalog(prefabs.DefaultWeaponsFile)
	if err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}
	rt.Weapons = weapons

	clips, err := audio.LoadDir(cfg.AudioDir, logging.Component(log, "audio"))
	if err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}
	rt.Clips = clips

	metrics, err := telemetry.New()
	if err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}
	rt.Metrics = metrics
	presenters := []system.Presenter{metrics}

	if cfg.Storage.Enabled {
		s, err := store.Open(cfg.Storage, logging.Component(log, "store"))
		if err != nil {
			return nil, fmt.Errorf("runtime: %w", err)
		}
		if err := s.Migrate(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("runtime: %w", err)
		}
		rt.Store = s
		rt.Recorder = NewResultRecorder(rt.arenaName, s, logging.Component(log, "recorder"))
		presenters = append(presenters, rt.Recorder)
	}
	presenters = append(presenters, opts.Presenters...)

	var tutorial []byte
	if opts.Tutorial {
		tutorial, err = prefabs.LoadScript(TutorialScript)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("runtime: load tutorial: %w", err)
		}
	}

	a, err := New(Options{
		Log:         logging.Component(log, "arena"),
		ArenaFile:   cfg.ArenaFile,
		Weapons:     weapons,
		Tutorial:    tutorial,
		Clips:       clips,
		Presenters:  presenters,
		Fader:       opts.Fader,
		AutoRestart: cfg.Encounter.AutoRestart,
		NoPlayer:    opts.NoPlayer,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Arena = a

	if cfg.HotReload {
		r, err := NewReloader(a, weapons, logging.Component(log, "reload"))
		if err != nil {
			log.Warn().Err(err).Str("dir", cfg.PrefabDir).Msg("hot reload disabled")
		} else {
			rt.Reloader = r
		}
	}
	return rt, nil
}

func (rt *Runtime) arenaName() string {
	if rt.Arena == nil {
		return ""
	}
	return rt.Arena.Spec().Name
}

// Step polls hot reload and advances the arena.
func (rt *Runtime) Step(dt float64) error {
	if rt.Reloader != nil {
		rt.Reloader.Poll()
	}
	return rt.Arena.Step(dt)
}

func (rt *Runtime) Close() error {
	var errs []error
	if rt.Reloader != nil {
		errs = append(errs, rt.Reloader.Close())
	}
	if rt.Store != nil {
		errs = append(errs, rt.Store.Close())
	}
	return errors.Join(errs...)
}
