package component

// DamageResult reports what a damage call did.
type DamageResult struct {
	Applied float64
	Current float64
	Max     float64
	// Killed is true only on the call that took the target to zero.
	Killed bool
	// Ignored is true when the target was already dead or the amount was not
	// positive.
	Ignored bool
}

// Health is the hit point pool of a combatant.
type Health struct {
	Max     float64
	Current float64
	Dead    bool
}

var HealthComponent = NewComponent[Health]()

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage subtracts amount and clamps to [0, Max]. Dead latches the
// first time Current reaches zero; later calls are ignored.
func (h *Health) ApplyDamage(amount float64) DamageResult {
	if h == nil {
		return DamageResult{Ignored: true}
	}
	if h.Dead || !(amount > 0) {
		return DamageResult{Current: h.Current, Max: h.Max, Ignored: true}
	}
	before := h.Current
	h.Current = clampHP(h.Current-amount, h.Max)
	res := DamageResult{Applied: before - h.Current, Current: h.Current, Max: h.Max}
	if h.Current <= 0 {
		h.Dead = true
		res.Killed = true
	}
	return res
}

// Reset restores full health and clears the dead latch for a new life.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	h.Current = h.Max
	h.Dead = false
}

// Fraction returns Current/Max for UI bars.
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

func clampHP(v, max float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
