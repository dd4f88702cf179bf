package component

import "github.com/milk9111/goofballs/common"

// LungeState is the phase of a combatant's lunge attack.
type LungeState uint8

const (
	LungeIdle LungeState = iota
	LungeLunging
	LungeCooldown
)

func (s LungeState) String() string {
	switch s {
	case LungeLunging:
		return "lunging"
	case LungeCooldown:
		return "cooldown"
	default:
		return "idle"
	}
}

// Lunge is a short forward burst that can damage one target per activation.
// Timers are in seconds.
type Lunge struct {
	BaseForce       float64
	ForceMultiplier float64
	Duration        float64
	Cooldown        float64
	Damage          float64
	Enabled         bool

	lunging        bool
	lungeTimer     float64
	cooldownTimer  float64
	hasDealtDamage bool
}

var LungeComponent = NewComponent[Lunge]()

// Request starts a lunge along forward when the lunge is enabled, not already
// active and off cooldown. It returns the impulse to apply as a velocity
// change; ok is false when the request was refused.
func (l *Lunge) Request(forward common.Vec3) (impulse common.Vec3, ok bool) {
	if l == nil || !l.Ready() {
		return common.Vec3{}, false
	}
	l.lunging = true
	l.lungeTimer = l.Duration
	l.cooldownTimer = l.Cooldown
	l.hasDealtDamage = false
	return forward.Flat().Normalized().Scale(l.Force()), true
}

// Tick advances both timers by dt. The lunge ends when its timer runs out;
// the cooldown counts down regardless of state and stops at zero.
func (l *Lunge) Tick(dt float64) {
	if l == nil {
		return
	}
	if l.lunging {
		l.lungeTimer -= dt
		if l.lungeTimer <= 0 {
			l.lungeTimer = 0
			l.lunging = false
		}
	}
	if l.cooldownTimer > 0 {
		l.cooldownTimer -= dt
		if l.cooldownTimer < 0 {
			l.cooldownTimer = 0
		}
	}
}

// TryHit reports whether a contact during the current lunge may deal damage.
// It returns true at most once per activation.
func (l *Lunge) TryHit() bool {
	if l == nil || !l.lunging || l.hasDealtDamage {
		return false
	}
	l.hasDealtDamage = true
	return true
}

// Disable stops any active lunge and refuses further requests until Reset.
func (l *Lunge) Disable() {
	if l == nil {
		return
	}
	l.Enabled = false
	l.lunging = false
	l.lungeTimer = 0
}

// Reset clears all timers and re-enables the lunge, as on respawn.
func (l *Lunge) Reset() {
	if l == nil {
		return
	}
	l.Enabled = true
	l.lunging = false
	l.lungeTimer = 0
	l.cooldownTimer = 0
	l.hasDealtDamage = false
}

func (l *Lunge) Force() float64 {
	mul := l.ForceMultiplier
	if mul <= 0 {
		mul = DefaultForceMultiplier
	}
	return l.BaseForce * mul
}

func (l *Lunge) Ready() bool {
	return l != nil && l.Enabled && !l.lunging && l.cooldownTimer <= 0
}

func (l *Lunge) IsLunging() bool { return l != nil && l.lunging }

func (l *Lunge) HasDealtDamage() bool { return l != nil && l.hasDealtDamage }

func (l *Lunge) State() LungeState {
	switch {
	case l == nil:
		return LungeIdle
	case l.lunging:
		return LungeLunging
	case l.cooldownTimer > 0:
		return LungeCooldown
	default:
		return LungeIdle
	}
}

// CooldownRemaining is the seconds left before the next lunge is allowed.
func (l *Lunge) CooldownRemaining() float64 {
	if l == nil {
		return 0
	}
	return l.cooldownTimer
}

// CooldownFraction is remaining/total in [0, 1], for cooldown indicators.
func (l *Lunge) CooldownFraction() float64 {
	if l == nil || l.Cooldown <= 0 {
		return 0
	}
	return common.Clamp01(l.cooldownTimer / l.Cooldown)
}
