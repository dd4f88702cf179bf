package component

import (
	"fmt"
	"strings"
)

type WeaponSize uint8

const (
	WeaponSmall WeaponSize = iota
	WeaponMedium
	WeaponLarge
)

func (s WeaponSize) String() string {
	switch s {
	case WeaponSmall:
		return "small"
	case WeaponLarge:
		return "large"
	default:
		return "medium"
	}
}

func ParseWeaponSize(s string) (WeaponSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return WeaponSmall, nil
	case "", "medium":
		return WeaponMedium, nil
	case "large":
		return WeaponLarge, nil
	default:
		return WeaponMedium, fmt.Errorf("component: unknown weapon size %q", s)
	}
}

// Damage and multipliers used when a combatant has no weapon.
const (
	DefaultWeaponDamage    = 20.0
	DefaultSpeedMultiplier = 1.0
	DefaultForceMultiplier = 1.0

	// DefaultProfileDamage is the damage of a catalog weapon that omits it.
	DefaultProfileDamage = 25.0
)

// WeaponProfile is immutable tuning shared by every combatant wielding it.
type WeaponProfile struct {
	Name                 string
	Damage               float64
	SpeedMultiplier      float64
	LungeForceMultiplier float64
	Size                 WeaponSize
}

// Weapon binds a combatant to a profile. A nil Profile means unarmed.
type Weapon struct {
	Profile *WeaponProfile
}

var WeaponComponent = NewComponent[Weapon]()

// Stats returns damage and multipliers, falling back to the unarmed defaults
// when no profile is attached. ok is false for the fallback.
func (w *Weapon) Stats() (damage, speedMul, forceMul float64, ok bool) {
	if w == nil || w.Profile == nil {
		return DefaultWeaponDamage, DefaultSpeedMultiplier, DefaultForceMultiplier, false
	}
	p := w.Profile
	speedMul, forceMul = p.SpeedMultiplier, p.LungeForceMultiplier
	if speedMul <= 0 {
		speedMul = DefaultSpeedMultiplier
	}
	if forceMul <= 0 {
		forceMul = DefaultForceMultiplier
	}
	return p.Damage, speedMul, forceMul, true
}
