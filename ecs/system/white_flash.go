package system

import (
	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
)

const (
	whiteFlashFrames   = 12
	whiteFlashInterval = 3
)

type whiteFlash struct {
	frames int
	timer  int
	on     bool
}

// WhiteFlashSystem blinks actors white for a few frames after they take
// damage.
type WhiteFlashSystem struct {
	flashes map[ecs.Entity]*whiteFlash
}

func NewWhiteFlashSystem(emitter *component.CombatEventEmitter) *WhiteFlashSystem {
	s := &WhiteFlashSystem{flashes: make(map[ecs.Entity]*whiteFlash)}
	emitter.Subscribe(func(evt component.CombatEvent) {
		if evt.Type == component.EventDamageApplied {
			s.flashes[evt.Target] = &whiteFlash{frames: whiteFlashFrames, on: true}
		}
	})
	return s
}

// On reports whether e is in the white phase of a flash.
func (s *WhiteFlashSystem) On(e ecs.Entity) bool {
	if s == nil {
		return false
	}
	wf, ok := s.flashes[e]
	return ok && wf.on
}

func (s *WhiteFlashSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for e, wf := range s.flashes {
		wf.timer++
		if wf.timer >= whiteFlashInterval {
			wf.timer = 0
			wf.on = !wf.on
			wf.frames -= whiteFlashInterval
		}
		if wf.frames <= 0 || !w.IsAlive(e) {
			delete(s.flashes, e)
		}
	}
}
