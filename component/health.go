package component

// Health is a reusable health component for any entity that can take damage.
type Health struct {
	Max     int
	Current int
	Dead    bool

	OnDamage func(h *Health, evt CombatEvent)
	OnDeath  func(h *Health, evt CombatEvent)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage applies damage. Returns true if damage was applied. Dead targets
// ignore further damage.
func (h *Health) ApplyDamage(amount int, evt CombatEvent) bool {
	if h == nil || h.Dead || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.OnDamage != nil {
		h.OnDamage(h, evt)
	}
	if h.Current <= 0 {
		h.Dead = true
		if h.OnDeath != nil {
			h.OnDeath(h, evt)
		}
	}
	return true
}

// Heal restores health up to Max.
func (h *Health) Heal(amount int) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Revive restores a dead component to full health.
func (h *Health) Revive() {
	if h == nil {
		return
	}
	h.Dead = false
	h.Current = h.Max
}

// Fraction returns Current/Max in [0,1].
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}
