package ecs

import "testing"

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if w.EntityCount() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, w.EntityCount())
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
			}
		})
	}
}

func TestRecycledEntityIsNotAlias(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	w.DestroyEntity(a)
	b := w.CreateEntity()
	if a.Index() != b.Index() {
		t.Fatalf("expected slot reuse, got %d and %d", a.Index(), b.Index())
	}
	if a == b {
		t.Fatalf("recycled handle must differ from the stale one")
	}
	if w.IsAlive(a) || !w.IsAlive(b) {
		t.Fatalf("stale handle alive=%v, fresh handle alive=%v", w.IsAlive(a), w.IsAlive(b))
	}
}

func TestDestroyEntityCancelsContinuations(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	ran := false
	w.Scheduler().After(e, 0.5, func() { ran = true })
	w.DestroyEntity(e)
	w.Update(1)
	if ran {
		t.Fatalf("continuation of destroyed owner should not run")
	}
}

type countingSystem struct {
	calls int
	seen  []float64
}

func (s *countingSystem) Update(w *World) {
	s.calls++
	s.seen = append(s.seen, w.Now())
}

func TestWorldUpdateRunsSystemsAfterClock(t *testing.T) {
	w := NewWorld()
	sys := &countingSystem{}
	w.AddSystem(sys)
	w.AddSystem(nil)
	w.Update(0.25)
	w.Update(0.25)
	if sys.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", sys.calls)
	}
	if sys.seen[0] != 0.25 || sys.seen[1] != 0.5 {
		t.Fatalf("expected clock 0.25/0.5, got %v", sys.seen)
	}
	if w.Frame() != 2 || w.DT() != 0.25 {
		t.Fatalf("expected frame 2 dt 0.25, got %d %v", w.Frame(), w.DT())
	}
}

func TestSparseSetSwapRemove(t *testing.T) {
	w := NewWorld()
	var set SparseSet[string]
	a, b, c := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	set.Set(a, "a")
	set.Set(b, "b")
	set.Set(c, "c")
	if !set.Remove(a) {
		t.Fatalf("expected remove to succeed")
	}
	if set.Has(a) || set.Len() != 2 {
		t.Fatalf("expected a removed, len 2; has=%v len=%d", set.Has(a), set.Len())
	}
	if v, ok := set.Get(c); !ok || v != "c" {
		t.Fatalf("expected c intact, got %q ok=%v", v, ok)
	}
	if got := set.Entities()[0]; got != c {
		t.Fatalf("expected last element swapped into hole, got %v", got)
	}
	set.Set(c, "c2")
	if v, _ := set.Get(c); v != "c2" {
		t.Fatalf("expected update in place, got %q", v)
	}
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue[int]
	q.Push(1)
	q.Push(2)
	if q.Len() != 2 {
		t.Fatalf("expected 2 pending, got %d", q.Len())
	}
	got := q.Drain()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected drain %v", got)
	}
	if q.Drain() != nil {
		t.Fatalf("expected empty queue after drain")
	}
}
