package shard

import "log/slog"

// BuffSink is the external buff system.
type BuffSink interface {
	ApplyShield(percent, duration float64)
	ApplyStat(stat Stat, percent, duration float64)
}

// Outcome is an ability result that may grant a buff.
type Outcome int

const (
	OutcomeFlip Outcome = iota
	OutcomeWaveMax
	OutcomeChain
)

// KillStacks is a bounded set of stacks, each expiring Duration after it was
// acquired.
type KillStacks struct {
	Max      int
	Duration float64

	acquired []float64
}

// Add acquires a stack at now. It fails when the stack is full.
func (k *KillStacks) Add(now float64) bool {
	if k == nil {
		return false
	}
	k.Prune(now)
	if len(k.acquired) >= k.Max {
		return false
	}
	k.acquired = append(k.acquired, now)
	return true
}

// Prune drops stacks whose time ran out and returns how many remain.
func (k *KillStacks) Prune(now float64) int {
	if k == nil {
		return 0
	}
	kept := k.acquired[:0]
	for _, at := range k.acquired {
		if now-at < k.Duration {
			kept = append(kept, at)
		}
	}
	k.acquired = kept
	return len(k.acquired)
}

func (k *KillStacks) Len() int {
	if k == nil {
		return 0
	}
	return len(k.acquired)
}

// BuffDispatcher turns ability outcomes and kills into calls on a BuffSink.
type BuffDispatcher struct {
	Sink BuffSink

	cfg    BuffConfig
	clock  Clock
	stacks map[WeaponID]*KillStacks
}

func NewBuffDispatcher(clock Clock, sink BuffSink, cfg BuffConfig) *BuffDispatcher {
	d := &BuffDispatcher{Sink: sink, clock: clock, stacks: make(map[WeaponID]*KillStacks)}
	d.SetConfig(cfg)
	return d
}

// SetConfig replaces the buff table. Existing stacks keep their timestamps.
func (d *BuffDispatcher) SetConfig(cfg BuffConfig) {
	if d == nil {
		return
	}
	d.cfg = cfg
	for w, kb := range cfg.Kills {
		ks := d.stacks[w]
		if ks == nil {
			ks = &KillStacks{}
			d.stacks[w] = ks
		}
		ks.Max = kb.MaxStacks
		ks.Duration = kb.Duration
	}
}

// Dispatch applies the buff mapped to an outcome, if any.
func (d *BuffDispatcher) Dispatch(weapon WeaponID, outcome Outcome) {
	if d == nil || d.Sink == nil {
		return
	}
	switch {
	case weapon == WeaponValor && outcome == OutcomeFlip:
		if d.cfg.FlipShield.Percent > 0 {
			d.Sink.ApplyShield(d.cfg.FlipShield.Percent, d.cfg.FlipShield.Duration)
		}
	case weapon == WeaponValor && outcome == OutcomeWaveMax:
		d.applyStat(d.cfg.WaveMax)
	case weapon == WeaponStorm && outcome == OutcomeChain:
		d.applyStat(d.cfg.ChainHaste)
	}
}

func (d *BuffDispatcher) applyStat(b StatBuff) {
	if b.Stat == "" || b.Percent == 0 {
		return
	}
	d.Sink.ApplyStat(b.Stat, b.Percent, b.Duration)
}

// OnKill grants a kill stack for weapon. It reports false when the weapon
// has no kill buff or its stacks are full.
func (d *BuffDispatcher) OnKill(weapon WeaponID) bool {
	if d == nil {
		return false
	}
	ks := d.stacks[weapon]
	if ks == nil {
		return false
	}
	now := d.now()
	if !ks.Add(now) {
		slog.Debug("shard: kill stack rejected", "weapon", weapon, "stacks", ks.Len())
		return false
	}
	kb := d.cfg.Kills[weapon]
	if d.Sink != nil && kb.Stat != "" {
		d.Sink.ApplyStat(kb.Stat, kb.Percent, kb.Duration)
	}
	return true
}

// Prune expires stale stacks of every weapon.
func (d *BuffDispatcher) Prune() {
	if d == nil {
		return
	}
	now := d.now()
	for _, ks := range d.stacks {
		ks.Prune(now)
	}
}

// Stacks returns the live stack count of weapon.
func (d *BuffDispatcher) Stacks(weapon WeaponID) int {
	if d == nil {
		return 0
	}
	return d.stacks[weapon].Len()
}

func (d *BuffDispatcher) now() float64 {
	if d.clock == nil {
		return 0
	}
	return d.clock.Now()
}
