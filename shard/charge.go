package shard

// ChargeGesture measures how long the charge button is held.
type ChargeGesture struct {
	charging bool
	start    float64
	current  float64
}

// Begin starts charging at now.
func (g *ChargeGesture) Begin(now float64) {
	if g == nil {
		return
	}
	g.charging = true
	g.start = now
	g.current = 0
}

// Update refreshes the held time and returns it.
func (g *ChargeGesture) Update(now float64) float64 {
	if g == nil || !g.charging {
		return 0
	}
	g.current = now - g.start
	if g.current < 0 {
		g.current = 0
	}
	return g.current
}

// Release ends charging and returns the held time.
func (g *ChargeGesture) Release(now float64) (float64, bool) {
	if g == nil || !g.charging {
		return 0, false
	}
	held := g.Update(now)
	g.Cancel()
	return held, true
}

// Cancel drops the charge without firing.
func (g *ChargeGesture) Cancel() {
	if g == nil {
		return
	}
	g.charging = false
	g.start = 0
	g.current = 0
}

func (g *ChargeGesture) Charging() bool {
	return g != nil && g.charging
}

// Current returns the held time as of the last Update.
func (g *ChargeGesture) Current() float64 {
	if g == nil {
		return 0
	}
	return g.current
}

// ChargeLevel buckets a held time: below t[0] is level 1, [t[0],t[1]) level
// 2, [t[1],t[2]) level 3 and anything longer level 4.
func ChargeLevel(held float64, t [3]float64) int {
	level := 1
	for _, threshold := range t {
		if held >= threshold {
			level++
		}
	}
	return level
}
