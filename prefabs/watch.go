package prefabs

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadQuiet is how long a file must stay untouched before another change
// to it is reported.
const reloadQuiet = 100 * time.Millisecond

// Watcher turns fsnotify activity under the content directories into
// content names ready for Load, e.g. "weapons.yaml" or
// "scripts/tutorial.tengo". Errors holds at most one pending error.
type Watcher struct {
	Events chan string
	Errors chan error

	fs    *fsnotify.Watcher
	roots []string
	seen  map[string]time.Time
	done  chan struct{}
	stop  sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefabs: watch: %w", err)
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
		fs:     fs,
		roots:  dirs,
		seen:   make(map[string]time.Time),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher. Events and Errors are closed once the loop exits.
func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.Events)
	defer close(w.Errors)

	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			name, report := w.accept(ev, time.Now())
			if !report {
				continue
			}
			select {
			case w.Events <- name:
			case <-w.done:
				return
			}
		}
	}
}

// accept decides whether ev names a content file that changed, and maps it
// to its content name.
func (w *Watcher) accept(ev fsnotify.Event, now time.Time) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	if !isContentFile(ev.Name) {
		return "", false
	}
	if prev, ok := w.seen[ev.Name]; ok && now.Sub(prev) < reloadQuiet {
		return "", false
	}
	w.seen[ev.Name] = now
	return w.contentName(ev.Name), true
}

func (w *Watcher) contentName(path string) string {
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.Base(path)
}

func isContentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo":
		return true
	}
	return false
}
