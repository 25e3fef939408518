package shard

import "github.com/Questionxble/2dgameproject-sub002/ecs"

// Click is the classification of a primary press.
type Click int

const (
	ClickNone Click = iota
	ClickSingle
	ClickDouble
	ClickTriple
)

// ClickSequence counts primary presses inside a window. The first press of a
// sequence is a single click, the second a double and the third a triple,
// which ends the sequence. Every press restarts the window; when it runs out
// the count returns to 0.
type ClickSequence struct {
	Window float64

	sched  *ecs.Scheduler
	owner  ecs.Entity
	count  int
	first  float64
	last   float64
	expiry ecs.TimerID
}

func NewClickSequence(sched *ecs.Scheduler, owner ecs.Entity, window float64) *ClickSequence {
	return &ClickSequence{Window: window, sched: sched, owner: owner}
}

// Press classifies a press at now.
func (c *ClickSequence) Press(now float64) Click {
	if c == nil {
		return ClickNone
	}
	if c.count > 0 && now-c.last > c.Window {
		c.reset()
	}
	c.count++
	c.last = now
	switch c.count {
	case 1:
		c.first = now
		c.arm()
		return ClickSingle
	case 2:
		c.arm()
		return ClickDouble
	default:
		c.reset()
		return ClickTriple
	}
}

// Count returns the presses in the current sequence.
func (c *ClickSequence) Count() int {
	if c == nil {
		return 0
	}
	return c.count
}

// Started returns when the current sequence began.
func (c *ClickSequence) Started() float64 {
	if c == nil {
		return 0
	}
	return c.first
}

// Reset abandons the current sequence.
func (c *ClickSequence) Reset() {
	if c == nil {
		return
	}
	c.reset()
}

func (c *ClickSequence) arm() {
	c.sched.Cancel(c.expiry)
	c.expiry = c.sched.After(c.owner, c.Window, func() {
		c.expiry = 0
		c.count = 0
	})
}

func (c *ClickSequence) reset() {
	c.sched.Cancel(c.expiry)
	c.expiry = 0
	c.count = 0
}
