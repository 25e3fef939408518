package shard

// UltimateCharge is a resource clamped to [0, Max].
type UltimateCharge struct {
	value float64
	max   float64
}

func NewUltimateCharge(max float64) *UltimateCharge {
	if max < 0 {
		max = 0
	}
	return &UltimateCharge{max: max}
}

// Add raises the charge, saturating at Max. Negative amounts are ignored.
func (u *UltimateCharge) Add(amount float64) {
	if u == nil || amount <= 0 {
		return
	}
	u.value += amount
	if u.value > u.max {
		u.value = u.max
	}
}

// Consume lowers the charge, saturating at 0. Negative amounts are ignored.
func (u *UltimateCharge) Consume(amount float64) {
	if u == nil || amount <= 0 {
		return
	}
	u.value -= amount
	if u.value < 0 {
		u.value = 0
	}
}

// SetMax changes the cap and clamps the current value.
func (u *UltimateCharge) SetMax(max float64) {
	if u == nil {
		return
	}
	if max < 0 {
		max = 0
	}
	u.max = max
	if u.value > max {
		u.value = max
	}
}

func (u *UltimateCharge) Value() float64 {
	if u == nil {
		return 0
	}
	return u.value
}

func (u *UltimateCharge) Max() float64 {
	if u == nil {
		return 0
	}
	return u.max
}

func (u *UltimateCharge) Full() bool {
	return u != nil && u.max > 0 && u.value >= u.max
}
