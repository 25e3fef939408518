package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/Questionxble/2dgameproject-sub002/shard"
)

// abilities lists each shard's cooldown-tracked abilities for the HUD.
var abilities = map[shard.WeaponID][]shard.AbilityID{
	shard.WeaponValor:   {shard.AbilitySword, shard.AbilityWave, shard.AbilityFlip},
	shard.WeaponWhisper: {shard.AbilityDaggerMelee, shard.AbilityDaggerThrow, shard.AbilityFlurry, shard.AbilityFan},
	shard.WeaponStorm:   {shard.AbilityBolt, shard.AbilitySurge, shard.AbilityTempest, shard.AbilityArc},
}

type activeBuff struct {
	label   string
	percent float64
	until   float64
}

// buffSink collects the buffs shards grant so the HUD can show them. The
// sandbox has no stat system to feed them into.
type buffSink struct {
	clock  shard.Clock
	active []activeBuff
}

func (b *buffSink) ApplyShield(percent, duration float64) {
	b.add("shield", percent, duration)
}

func (b *buffSink) ApplyStat(stat shard.Stat, percent, duration float64) {
	b.add(string(stat), percent, duration)
}

func (b *buffSink) add(label string, percent, duration float64) {
	b.active = append(b.active, activeBuff{label: label, percent: percent, until: b.clock.Now() + duration})
}

func (b *buffSink) prune() {
	now := b.clock.Now()
	kept := b.active[:0]
	for _, buf := range b.active {
		if now < buf.until {
			kept = append(kept, buf)
		}
	}
	b.active = kept
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	c := g.controller
	var sb strings.Builder
	fmt.Fprintf(&sb, "FPS: %.0f  Kills: %d\n", ebiten.ActualFPS(), g.killFeed.Kills())
	for i := 0; i < shard.SlotCount; i++ {
		marker := " "
		if i == c.ActiveSlot() {
			marker = ">"
		}
		fmt.Fprintf(&sb, "%s[%d] %s\n", marker, i+1, c.Slot(i).Name())
	}
	now := g.world.Now()
	for _, id := range abilities[c.ActiveWeapon()] {
		if r := c.Cooldowns().Remaining(id); r > 0 {
			fmt.Fprintf(&sb, "  %s %.1fs\n", id, r)
		}
	}
	if held, level, ok := c.Charge(); ok {
		fmt.Fprintf(&sb, "Charge: %.2fs (level %d)\n", held, level)
	}
	fmt.Fprintf(&sb, "Ultimate: %.0f / %.0f\n", c.UltimateCharge(), c.UltimateMax())
	for _, w := range shard.Weapons {
		if n := c.Buffs().Stacks(w); n > 0 {
			fmt.Fprintf(&sb, "%s stacks: %d\n", w.Name(), n)
		}
	}
	for _, b := range g.buffs.active {
		fmt.Fprintf(&sb, "%s +%.0f%% %.1fs\n", b.label, b.percent, b.until-now)
	}
	if g.dead {
		sb.WriteString("Defeated...\n")
	}
	if g.opts.Debug && c.LastError() != nil {
		fmt.Fprintf(&sb, "last: %v\n", c.LastError())
	}
	ebitenutil.DebugPrintAt(screen, sb.String(), 10, 10)
}
