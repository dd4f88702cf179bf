package arena

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/milk9111/goofballs/prefabs"
)

// Reloader applies prefab edits picked up by a prefabs.Watcher. Weapon edits
// apply to the next spawn; arena edits apply to the next match.
type Reloader struct {
	arena   *Arena
	weapons *prefabs.WeaponCatalog
	watcher *prefabs.Watcher
	log     zerolog.Logger
}

// NewReloader watches the prefab directory on disk.
func NewReloader(a *Arena, weapons *prefabs.WeaponCatalog, log zerolog.Logger) (*Reloader, error) {
	w, err := prefabs.NewWatcher(prefabs.DiskDir())
	if err != nil {
		return nil, err
	}
	return &Reloader{arena: a, weapons: weapons, watcher: w, log: log}, nil
}

// Poll applies every change reported since the last call without blocking.
// Call it from the goroutine that steps the arena.
func (r *Reloader) Poll() {
	for {
		select {
		case name, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			r.Apply(name)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.log.Warn().Err(err).Msg("prefab watcher error")
		default:
			return
		}
	}
}

// Apply reloads whatever file name refers to. Unknown files are ignored.
func (r *Reloader) Apply(name string) {
	name = filepath.ToSlash(name)
	switch {
	case r.weapons != nil && name == r.weapons.File():
		if err := r.weapons.Reload(); err != nil {
			r.log.Error().Err(err).Str("file", name).Msg("weapon reload failed, keeping previous catalog")
			return
		}
		r.log.Info().Str("file", name).Strs("weapons", r.weapons.Names()).Msg("weapons reloaded")
	case r.arena != nil && name == r.arena.opts.ArenaFile:
		spec, err := prefabs.LoadArenaSpec(name)
		if err != nil {
			r.log.Error().Err(err).Str("file", name).Msg("arena reload failed, keeping previous layout")
			return
		}
		r.arena.SetPendingSpec(spec)
		r.log.Info().Str("file", name).Msg("arena layout reloaded for next match")
	default:
		r.log.Debug().Str("file", name).Msg("prefab changed")
	}
}

func (r *Reloader) Close() error {
	return r.watcher.Close()
}
