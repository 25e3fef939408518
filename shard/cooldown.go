package shard

import (
	"fmt"
	"log/slog"
)

// Cooldowns tracks when each ability last fired. An ability may fire when
// at least its duration has elapsed since then; one that never fired may
// fire at once.
type Cooldowns struct {
	clock     Clock
	durations map[AbilityID]float64
	last      map[AbilityID]float64

	// Strict makes lookups of unknown abilities panic instead of logging.
	Strict bool
}

func NewCooldowns(clock Clock, durations map[AbilityID]float64) *Cooldowns {
	c := &Cooldowns{
		clock:     clock,
		durations: make(map[AbilityID]float64, len(durations)),
		last:      make(map[AbilityID]float64),
	}
	for id, d := range durations {
		c.durations[id] = d
	}
	return c
}

// SetDurations replaces the duration table and keeps fire timestamps.
func (c *Cooldowns) SetDurations(durations map[AbilityID]float64) {
	if c == nil {
		return
	}
	c.durations = make(map[AbilityID]float64, len(durations))
	for id, d := range durations {
		c.durations[id] = d
	}
}

func (c *Cooldowns) now() float64 {
	if c.clock == nil {
		return 0
	}
	return c.clock.Now()
}

func (c *Cooldowns) known(id AbilityID) bool {
	if _, ok := c.durations[id]; ok {
		return true
	}
	if c.Strict {
		panic(fmt.Sprintf("shard: unknown cooldown %q", id))
	}
	slog.Warn("shard: unknown cooldown", "ability", id)
	return false
}

// CanFire reports whether id is off cooldown. Unknown ids never fire.
func (c *Cooldowns) CanFire(id AbilityID) bool {
	if c == nil || !c.known(id) {
		return false
	}
	last, ok := c.last[id]
	if !ok {
		return true
	}
	return c.now()-last >= c.durations[id]
}

// RecordFire starts the cooldown of id now.
func (c *Cooldowns) RecordFire(id AbilityID) {
	if c == nil || !c.known(id) {
		return
	}
	c.last[id] = c.now()
}

// Extend pushes the last fire time of id forward by delta, lengthening the
// remaining cooldown. An ability that never fired gets a remaining cooldown
// of delta.
func (c *Cooldowns) Extend(id AbilityID, delta float64) {
	if c == nil || !c.known(id) {
		return
	}
	last, ok := c.last[id]
	if !ok {
		last = c.now() - c.durations[id]
	}
	c.last[id] = last + delta
}

// Remaining returns how long until id may fire again.
func (c *Cooldowns) Remaining(id AbilityID) float64 {
	if c == nil {
		return 0
	}
	last, ok := c.last[id]
	if !ok {
		return 0
	}
	r := c.durations[id] - (c.now() - last)
	if r < 0 {
		return 0
	}
	return r
}

// Duration returns the configured cooldown of id.
func (c *Cooldowns) Duration(id AbilityID) float64 {
	if c == nil {
		return 0
	}
	return c.durations[id]
}
