package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/goofballs/ecs/component"
)

func useDiskDir(t *testing.T, dir string) {
	t.Helper()
	prev := DiskDir()
	SetDiskDir(dir)
	t.Cleanup(func() { SetDiskDir(prev) })
}

func TestEmbeddedArena(t *testing.T) {
	useDiskDir(t, t.TempDir())

	arena, err := LoadArenaSpec("arena.yaml")
	require.NoError(t, err)

	assert.Equal(t, "backyard", arena.Name)
	assert.Len(t, arena.Objectives, 2)
	points := arena.TeamSpawnPoints()
	assert.Len(t, points[component.TeamPlayer], 3)
	assert.Len(t, points[component.TeamEnemy], 3)
	prefab, ok := arena.RosterPrefab(component.TeamEnemy)
	assert.True(t, ok)
	assert.Equal(t, "enemy.yaml", prefab)
	require.NotNil(t, arena.Encounter.MaxEnemyAI)
	assert.Equal(t, 4, *arena.Encounter.MaxEnemyAI)
	assert.Equal(t, color.NRGBA{R: 0x33, G: 0xcc, B: 0x33, A: 0xff}, arena.TeamColor(component.TeamPlayer))
}

func TestEmbeddedArchetypes(t *testing.T) {
	useDiskDir(t, t.TempDir())

	for _, name := range []string{"player.yaml", "ally.yaml", "enemy.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			require.NoError(t, err)
			assert.Contains(t, spec.Components, "combatant")
			assert.Contains(t, spec.Components, "lunge")

			c, err := DecodeComponentSpec[CombatantComponentSpec](spec.Components["combatant"])
			require.NoError(t, err)
			_, err = component.ParseTeam(c.Team)
			assert.NoError(t, err)
		})
	}
}

func TestEmbeddedTutorialScript(t *testing.T) {
	useDiskDir(t, t.TempDir())

	src, err := LoadScript("tutorial.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(src), "initial_state")

	again, err := LoadScript("prefabs/scripts/tutorial.tengo")
	require.NoError(t, err)
	assert.Equal(t, src, again)
}

func TestArenaValidate(t *testing.T) {
	tests := []struct {
		name string
		spec ArenaSpec
	}{
		{"no bounds", ArenaSpec{}},
		{"bad team", ArenaSpec{HalfWidth: 1, HalfDepth: 1, Objectives: []ObjectiveSpec{{Name: "x", Team: "neutral", HP: 10}}}},
		{"two objectives", ArenaSpec{HalfWidth: 1, HalfDepth: 1, Objectives: []ObjectiveSpec{
			{Name: "a", Team: "enemy", HP: 10}, {Name: "b", Team: "enemies", HP: 10},
		}}},
		{"zero hp", ArenaSpec{HalfWidth: 1, HalfDepth: 1, Objectives: []ObjectiveSpec{{Name: "x", Team: "enemy"}}}},
		{"bad spawn team", ArenaSpec{HalfWidth: 1, HalfDepth: 1, SpawnPoints: map[string][]PointSpec{"blue": nil}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.spec.Validate())
		})
	}
}

func TestWeaponCatalog(t *testing.T) {
	useDiskDir(t, t.TempDir())

	c, err := LoadWeaponCatalog(DefaultWeaponsFile)
	require.NoError(t, err)

	hammer, ok := c.Get("Hammer")
	require.True(t, ok)
	assert.Equal(t, 45.0, hammer.Damage)
	assert.Equal(t, component.WeaponLarge, hammer.Size)

	_, ok = c.Get("trident")
	assert.False(t, ok)
	assert.Contains(t, c.Names(), "sword")
}

func TestWeaponCatalogDefaults(t *testing.T) {
	c, err := NewWeaponCatalog([]WeaponSpec{{Name: "stick"}})
	require.NoError(t, err)

	stick, ok := c.Get("stick")
	require.True(t, ok)
	assert.Equal(t, component.DefaultProfileDamage, stick.Damage)
	assert.Equal(t, 1.0, stick.SpeedMultiplier)
	assert.Equal(t, 1.0, stick.LungeForceMultiplier)
	assert.Equal(t, component.WeaponMedium, stick.Size)

	_, err = NewWeaponCatalog([]WeaponSpec{{Name: "a"}, {Name: "A"}})
	assert.Error(t, err)
	_, err = NewWeaponCatalog([]WeaponSpec{{Name: "a", Size: "colossal"}})
	assert.Error(t, err)
}

func TestWeaponCatalogReloadFromDisk(t *testing.T) {
	dir := t.TempDir()
	useDiskDir(t, dir)

	c, err := LoadWeaponCatalog(DefaultWeaponsFile)
	require.NoError(t, err)
	old, _ := c.Get("sword")

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultWeaponsFile), []byte(`
weapons:
  - name: sword
    damage: 99
`), 0o644))
	require.NoError(t, c.Reload())

	sword, ok := c.Get("sword")
	require.True(t, ok)
	assert.Equal(t, 99.0, sword.Damage)
	assert.Equal(t, 25.0, old.Damage, "profiles handed out before a reload are untouched")
	_, ok = c.Get("hammer")
	assert.False(t, ok)
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#ff0000"`, want: color.NRGBA{R: 0xff, A: 0xff}},
		{in: `"00ff0080"`, want: color.NRGBA{G: 0xff, A: 0x80}},
		{in: `"#fff"`, wantErr: true},
		{in: `"#gggggg"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Color)
		})
	}
}

func TestWatcherReportsChangedSpecs(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weapons.yaml"), []byte("weapons: []"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "weapons.yaml", name)
	case <-time.After(2 * time.Second):
		t.Fatal("no watcher event")
	}
}

func TestWatcherAcceptFiltersAndQuietsRepeats(t *testing.T) {
	root := filepath.Join("content", "prefabs")
	w := &Watcher{roots: []string{root}, seen: map[string]time.Time{}}
	at := time.Unix(100, 0)
	weapons := filepath.Join(root, "weapons.yaml")

	tests := []struct {
		name string
		ev   fsnotify.Event
		now  time.Time
		want string
		ok   bool
	}{
		{"write_reported", fsnotify.Event{Name: weapons, Op: fsnotify.Write}, at, "weapons.yaml", true},
		{"repeat_within_quiet_dropped", fsnotify.Event{Name: weapons, Op: fsnotify.Write}, at.Add(50 * time.Millisecond), "", false},
		{"repeat_after_quiet_reported", fsnotify.Event{Name: weapons, Op: fsnotify.Write}, at.Add(time.Second), "weapons.yaml", true},
		{"remove_ignored", fsnotify.Event{Name: filepath.Join(root, "arena.yaml"), Op: fsnotify.Remove}, at, "", false},
		{"other_extension_ignored", fsnotify.Event{Name: filepath.Join(root, "notes.txt"), Op: fsnotify.Create}, at, "", false},
		{"script_keeps_subdir", fsnotify.Event{Name: filepath.Join(root, "scripts", "tutorial.tengo"), Op: fsnotify.Create}, at, "scripts/tutorial.tengo", true},
		{"outside_root_uses_base", fsnotify.Event{Name: filepath.Join("elsewhere", "ally.yml"), Op: fsnotify.Rename}, at, "ally.yml", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := w.accept(tt.ev, tt.now)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}
