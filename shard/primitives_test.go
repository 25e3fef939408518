package shard

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

func TestChargeLevel(t *testing.T) {
	th := [3]float64{0.5, 0.8, 1.2}
	cases := []struct {
		held float64
		want int
	}{
		{0, 1},
		{0.49, 1},
		{0.5, 2},
		{0.6, 2},
		{0.8, 3},
		{1.19, 3},
		{1.2, 4},
		{5, 4},
	}
	for _, c := range cases {
		if got := ChargeLevel(c.held, th); got != c.want {
			t.Fatalf("held %v: expected level %d, got %d", c.held, c.want, got)
		}
	}
}

func TestChargeGesture(t *testing.T) {
	var g ChargeGesture
	if _, ok := g.Release(1); ok {
		t.Fatalf("release without begin should not fire")
	}
	g.Begin(2)
	if held := g.Update(2.3); held < 0.29 || held > 0.31 {
		t.Fatalf("expected ~0.3 held, got %v", held)
	}
	held, ok := g.Release(2.6)
	if !ok || held < 0.59 || held > 0.61 {
		t.Fatalf("expected ~0.6 on release, got %v ok=%v", held, ok)
	}
	if g.Charging() || g.Current() != 0 {
		t.Fatalf("charge should reset after release")
	}
}

func TestUltimateChargeStaysInBounds(t *testing.T) {
	u := NewUltimateCharge(100)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		amount := rng.Float64()*80 - 20
		if rng.Intn(2) == 0 {
			u.Add(amount)
		} else {
			u.Consume(amount)
		}
		if v := u.Value(); v < 0 || v > u.Max() {
			t.Fatalf("step %d: charge %v out of [0,%v]", i, v, u.Max())
		}
	}

	u.Add(1000)
	if !u.Full() || u.Value() != 100 {
		t.Fatalf("expected saturation at max, got %v", u.Value())
	}
	u.Consume(1000)
	if u.Value() != 0 {
		t.Fatalf("expected saturation at 0, got %v", u.Value())
	}
	u.Add(50)
	u.SetMax(30)
	if u.Value() != 30 {
		t.Fatalf("expected value clamped to new max, got %v", u.Value())
	}
}

func TestSlots(t *testing.T) {
	var s Slots
	if s.Active() != WeaponNone {
		t.Fatalf("slots should start empty")
	}
	if i, err := s.Equip(WeaponValor); err != nil || i != 0 {
		t.Fatalf("expected slot 0, got %d %v", i, err)
	}
	if s.Active() != WeaponValor {
		t.Fatalf("first equip should become active")
	}
	if _, err := s.Equip(WeaponValor); !errors.Is(err, ErrDuplicateWeapon) {
		t.Fatalf("expected ErrDuplicateWeapon, got %v", err)
	}
	if i, err := s.Equip(WeaponStorm); err != nil || i != 1 {
		t.Fatalf("expected slot 1, got %d %v", i, err)
	}
	if _, err := s.Equip(WeaponWhisper); !errors.Is(err, ErrNoEmptySlot) {
		t.Fatalf("expected ErrNoEmptySlot, got %v", err)
	}
	if _, err := s.Swap(WeaponValor, 1); !errors.Is(err, ErrDuplicateWeapon) {
		t.Fatalf("swap must not duplicate a weapon, got %v", err)
	}
	prev, err := s.Swap(WeaponWhisper, 1)
	if err != nil || prev != WeaponStorm {
		t.Fatalf("expected storm replaced, got %v %v", prev, err)
	}
	if _, err := s.Swap(WeaponStorm, 2); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}
	if err := s.SetActive(1); err != nil || s.Active() != WeaponWhisper {
		t.Fatalf("expected whisper active, got %v %v", s.Active(), err)
	}
	if _, err := s.Equip(WeaponNone); !errors.Is(err, ErrUnknownWeapon) {
		t.Fatalf("expected ErrUnknownWeapon, got %v", err)
	}
}

func TestClickSequence(t *testing.T) {
	cases := []struct {
		name      string
		presses   []float64
		want      []Click
		countEnd  int
		advanceTo float64
	}{
		{"single_then_expire", []float64{0}, []Click{ClickSingle}, 0, 0.81},
		{"double", []float64{0, 0.1}, []Click{ClickSingle, ClickDouble}, 2, 0.5},
		{"triple", []float64{0, 0.1, 0.2}, []Click{ClickSingle, ClickDouble, ClickTriple}, 0, 0.2},
		{"late_second_starts_over", []float64{0, 1}, []Click{ClickSingle, ClickSingle}, 1, 1},
		{"fourth_starts_over", []float64{0, 0.1, 0.2, 0.3}, []Click{ClickSingle, ClickDouble, ClickTriple, ClickSingle}, 1, 0.3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := ecs.NewScheduler()
			seq := NewClickSequence(s, 1, 0.8)
			var got []Click
			for _, at := range c.presses {
				s.AdvanceTo(at)
				got = append(got, seq.Press(at))
			}
			s.AdvanceTo(c.advanceTo)
			if len(got) != len(c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("press %d: expected %v, got %v", i, c.want[i], got[i])
				}
			}
			if seq.Count() != c.countEnd {
				t.Fatalf("expected count %d, got %d", c.countEnd, seq.Count())
			}
		})
	}
}

func TestKillStacksDecayIndependently(t *testing.T) {
	clock := &ManualClock{}
	sink := &recordingSink{}
	cfg := DefaultConfig().Buffs
	cfg.Kills[WeaponWhisper] = KillBuff{Stat: StatMoveSpeed, Percent: 4, MaxStacks: 5, Duration: 10}
	d := NewBuffDispatcher(clock, sink, cfg)

	accepted := 0
	for i := 0; i < 6; i++ {
		clock.T = float64(i)
		if d.OnKill(WeaponWhisper) {
			accepted++
		}
	}
	if accepted != 5 || d.Stacks(WeaponWhisper) != 5 {
		t.Fatalf("expected 5 stacks, got accepted=%d stacks=%d", accepted, d.Stacks(WeaponWhisper))
	}
	if len(sink.stats) != 5 {
		t.Fatalf("expected 5 stat applications, got %d", len(sink.stats))
	}

	steps := []struct {
		at   float64
		want int
	}{
		{9.5, 5},
		{10, 4},
		{11, 3},
		{12.5, 2},
		{14, 0},
	}
	for _, s := range steps {
		clock.T = s.at
		d.Prune()
		if got := d.Stacks(WeaponWhisper); got != s.want {
			t.Fatalf("at %v: expected %d stacks, got %d", s.at, s.want, got)
		}
	}
	if !d.OnKill(WeaponWhisper) {
		t.Fatalf("expected a kill to be accepted after stacks decayed")
	}
}

func TestBuffDispatchOutcomes(t *testing.T) {
	sink := &recordingSink{}
	d := NewBuffDispatcher(&ManualClock{}, sink, DefaultConfig().Buffs)
	d.Dispatch(WeaponValor, OutcomeFlip)
	d.Dispatch(WeaponValor, OutcomeWaveMax)
	d.Dispatch(WeaponStorm, OutcomeChain)
	d.Dispatch(WeaponWhisper, OutcomeFlip)
	if sink.shields != 1 {
		t.Fatalf("expected one shield, got %d", sink.shields)
	}
	if len(sink.stats) != 2 || sink.stats[0] != StatAttack || sink.stats[1] != StatHaste {
		t.Fatalf("unexpected stat buffs %v", sink.stats)
	}
}

type recordingSink struct {
	shields int
	stats   []Stat
}

func (s *recordingSink) ApplyShield(percent, duration float64) { s.shields++ }
func (s *recordingSink) ApplyStat(stat Stat, percent, duration float64) {
	s.stats = append(s.stats, stat)
}
