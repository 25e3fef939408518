package ecs

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, the simulated clock, the continuation scheduler and
// system order.
type World struct {
	entities  entityStore
	systems   []System
	scheduler *Scheduler

	frame uint64
	dt    float64

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{scheduler: NewScheduler()}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity marks an entity as dead and drops its pending continuations.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	w.scheduler.CancelOwner(e)
	if w.physicsWorld != nil {
		w.physicsWorld.RemoveBody(e)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	if w == nil {
		return 0
	}
	return w.entities.alive
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update advances the clock by dt, runs the continuations that became due and
// then every system once.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.frame++
	w.dt = dt
	w.scheduler.Advance(dt)
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
}

// Now returns the simulated time in seconds.
func (w *World) Now() float64 {
	if w == nil {
		return 0
	}
	return w.scheduler.Now()
}

// DT returns the step used by the current frame.
func (w *World) DT() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Frame returns the number of completed Update calls.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Scheduler returns the world's continuation scheduler.
func (w *World) Scheduler() *Scheduler {
	if w == nil {
		return nil
	}
	return w.scheduler
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}
