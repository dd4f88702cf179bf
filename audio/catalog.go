package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog"
)

// ClipCatalog knows the playback length of every voice clip in a directory.
// Only headers are decoded; nothing is played.
type ClipCatalog struct {
	mu      sync.RWMutex
	lengths map[string]time.Duration
	log     zerolog.Logger
}

func NewClipCatalog(log zerolog.Logger) *ClipCatalog {
	return &ClipCatalog{lengths: map[string]time.Duration{}, log: log}
}

// LoadDir registers every .wav file under dir by its base name. A missing
// directory yields an empty catalog. Undecodable files are logged and
// skipped.
func LoadDir(dir string, log zerolog.Logger) (*ClipCatalog, error) {
	c := NewClipCatalog(log)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("dir", dir).Msg("audio directory missing, clip lengths will be estimated")
			return c, nil
		}
		return nil, fmt.Errorf("audio: read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := c.loadFile(path); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping clip")
		}
	}
	return c, nil
}

func (c *ClipCatalog) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return c.Register(name, f)
}

// Register decodes a WAV stream and records its length under name.
func (c *ClipCatalog) Register(name string, r io.Reader) error {
	stream, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("audio: decode %s: %w", name, err)
	}
	defer stream.Close()

	d := format.SampleRate.D(stream.Len())
	c.mu.Lock()
	c.lengths[name] = d
	c.mu.Unlock()
	c.log.Debug().Str("clip", name).Dur("length", d).Msg("clip registered")
	return nil
}

// Length implements the tutorial's clip lookup.
func (c *ClipCatalog) Length(name string) (time.Duration, bool) {
	if c == nil {
		return 0, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.lengths[name]
	return d, ok
}

func (c *ClipCatalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.lengths))
	for name := range c.lengths {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
