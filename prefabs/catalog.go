package prefabs

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/milk9111/goofballs/ecs/component"
)

// DefaultWeaponsFile is the catalog loaded at startup.
const DefaultWeaponsFile = "weapons.yaml"

type WeaponSpec struct {
	Name                 string   `yaml:"name"`
	Damage               *float64 `yaml:"damage"`
	SpeedMultiplier      float64  `yaml:"speed_multiplier"`
	LungeForceMultiplier float64  `yaml:"lunge_force_multiplier"`
	Size                 string   `yaml:"size"`
}

type WeaponsSpec struct {
	Weapons []WeaponSpec `yaml:"weapons"`
}

// WeaponCatalog maps weapon names to shared, immutable profiles. Reload
// swaps the whole table; profiles handed out earlier stay valid.
type WeaponCatalog struct {
	mu       sync.RWMutex
	file     string
	profiles map[string]*component.WeaponProfile
}

func LoadWeaponCatalog(filename string) (*WeaponCatalog, error) {
	c := &WeaponCatalog{file: filename}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewWeaponCatalog builds a catalog from specs already in memory.
func NewWeaponCatalog(specs []WeaponSpec) (*WeaponCatalog, error) {
	profiles, err := buildProfiles(specs)
	if err != nil {
		return nil, err
	}
	return &WeaponCatalog{profiles: profiles}, nil
}

func (c *WeaponCatalog) Reload() error {
	if c.file == "" {
		return nil
	}
	spec, err := LoadSpec[WeaponsSpec](c.file)
	if err != nil {
		return err
	}
	profiles, err := buildProfiles(spec.Weapons)
	if err != nil {
		return fmt.Errorf("prefabs: %s: %w", c.file, err)
	}
	c.mu.Lock()
	c.profiles = profiles
	c.mu.Unlock()
	return nil
}

// File is the prefab the catalog reloads from.
func (c *WeaponCatalog) File() string { return c.file }

func buildProfiles(specs []WeaponSpec) (map[string]*component.WeaponProfile, error) {
	out := make(map[string]*component.WeaponProfile, len(specs))
	for _, s := range specs {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("weapon without a name")
		}
		key := strings.ToLower(name)
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("duplicate weapon %q", name)
		}
		size, err := component.ParseWeaponSize(s.Size)
		if err != nil {
			return nil, fmt.Errorf("weapon %q: %w", name, err)
		}
		damage := component.DefaultProfileDamage
		if s.Damage != nil {
			damage = *s.Damage
		}
		if damage < 0 {
			return nil, fmt.Errorf("weapon %q: negative damage", name)
		}
		out[key] = &component.WeaponProfile{
			Name:                 name,
			Damage:               damage,
			SpeedMultiplier:      orDefault(s.SpeedMultiplier, component.DefaultSpeedMultiplier),
			LungeForceMultiplier: orDefault(s.LungeForceMultiplier, component.DefaultForceMultiplier),
			Size:                 size,
		}
	}
	return out, nil
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

// Get looks a weapon up by case-insensitive name.
func (c *WeaponCatalog) Get(name string) (*component.WeaponProfile, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

func (c *WeaponCatalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.profiles))
	for _, p := range c.profiles {
		out = append(out, p.Name)
	}
	sort.Strings(out)
	return out
}
