package ecs

import "container/heap"

// TimerID identifies a scheduled continuation.
type TimerID uint64

type timer struct {
	id    TimerID
	at    float64
	seq   uint64
	owner Entity
	fn    func()
	index int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler runs continuations at a simulated time. Every continuation has an
// owner so that destroying the owner can drop everything it still has pending.
// Continuations due at the same instant run in the order they were scheduled.
// While a continuation runs, Now reports its due time.
type Scheduler struct {
	now     float64
	seq     uint64
	nextID  TimerID
	queue   timerHeap
	byID    map[TimerID]*timer
	byOwner map[Entity]map[TimerID]struct{}
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		byID:    make(map[TimerID]*timer),
		byOwner: make(map[Entity]map[TimerID]struct{}),
	}
}

// Now returns the current simulated time in seconds.
func (s *Scheduler) Now() float64 {
	if s == nil {
		return 0
	}
	return s.now
}

// After schedules fn to run delay seconds from now. A non-positive delay
// runs fn on the next Advance, never re-entrantly.
func (s *Scheduler) After(owner Entity, delay float64, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	return s.At(owner, s.Now()+delay, fn)
}

// At schedules fn at an absolute time.
func (s *Scheduler) At(owner Entity, at float64, fn func()) TimerID {
	if s == nil || fn == nil {
		return 0
	}
	if s.byID == nil {
		s.byID = make(map[TimerID]*timer)
		s.byOwner = make(map[Entity]map[TimerID]struct{})
	}
	s.nextID++
	s.seq++
	t := &timer{id: s.nextID, at: at, seq: s.seq, owner: owner, fn: fn}
	heap.Push(&s.queue, t)
	s.byID[t.id] = t
	owned := s.byOwner[owner]
	if owned == nil {
		owned = make(map[TimerID]struct{})
		s.byOwner[owner] = owned
	}
	owned[t.id] = struct{}{}
	return t.id
}

// Cancel drops a pending continuation. It reports whether anything was removed.
func (s *Scheduler) Cancel(id TimerID) bool {
	if s == nil || id == 0 {
		return false
	}
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	s.forget(t)
	return true
}

// CancelOwner drops every pending continuation of owner and returns how many
// were removed.
func (s *Scheduler) CancelOwner(owner Entity) int {
	if s == nil {
		return 0
	}
	owned := s.byOwner[owner]
	n := 0
	for id := range owned {
		if s.Cancel(id) {
			n++
		}
	}
	delete(s.byOwner, owner)
	return n
}

// Pending returns the number of continuations owner still has queued.
func (s *Scheduler) Pending(owner Entity) int {
	if s == nil {
		return 0
	}
	return len(s.byOwner[owner])
}

// IsPending reports whether id is still queued.
func (s *Scheduler) IsPending(id TimerID) bool {
	if s == nil {
		return false
	}
	_, ok := s.byID[id]
	return ok
}

// Advance moves time forward by dt and runs everything that became due.
func (s *Scheduler) Advance(dt float64) {
	if s == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.AdvanceTo(s.now + dt)
}

// AdvanceTo runs every continuation due at or before target, in time order,
// then leaves the clock at target. Continuations scheduled while advancing
// that are already due wait for the next call.
func (s *Scheduler) AdvanceTo(target float64) {
	if s == nil {
		return
	}
	limit := s.seq
	var deferred []*timer
	for len(s.queue) > 0 && s.queue[0].at <= target {
		t := heap.Pop(&s.queue).(*timer)
		if t.seq > limit {
			deferred = append(deferred, t)
			continue
		}
		s.forget(t)
		if t.at > s.now {
			s.now = t.at
		}
		t.fn()
	}
	for _, t := range deferred {
		if _, ok := s.byID[t.id]; ok {
			heap.Push(&s.queue, t)
		}
	}
	if target > s.now {
		s.now = target
	}
}

func (s *Scheduler) forget(t *timer) {
	delete(s.byID, t.id)
	if owned := s.byOwner[t.owner]; owned != nil {
		delete(owned, t.id)
		if len(owned) == 0 {
			delete(s.byOwner, t.owner)
		}
	}
}
