package ecs

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeDynamic
	collisionTypeGroundSensor
)

const (
	terrainCategory uint = 1 << iota
	actorCategory
)

const groundGraceFrames = 6

const (
	WallNone = iota
	WallLeft
	WallRight
)

var (
	terrainFilter = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: terrainCategory, Mask: cp.ALL_CATEGORIES}
	actorFilter   = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: actorCategory, Mask: terrainCategory}
	queryTerrain  = cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: terrainCategory}
)

// Body is a dynamic actor body registered with the physics world.
type Body struct {
	Body        *cp.Body
	Shape       *cp.Shape
	GroundShape *cp.Shape
	Width       float64
	Height      float64

	gravity bool
}

// Contact is the per-frame collision state of a body.
type Contact struct {
	Grounded    bool
	GroundGrace int
	Wall        int
}

// PhysicsWorld owns the Chipmunk space, static terrain and actor bodies. It
// also answers the terrain queries gameplay code needs (linecasts, point
// overlap, ground probes).
type PhysicsWorld struct {
	space         *cp.Space
	handlersReady bool

	bodies         map[Entity]*Body
	shapeToEntity  map[*cp.Shape]Entity
	groundToEntity map[*cp.Shape]Entity
	contacts       map[Entity]*Contact
}

// NewPhysicsWorld creates a physics world with downward gravity.
func NewPhysicsWorld(gravity float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	pw := &PhysicsWorld{
		space:          space,
		bodies:         make(map[Entity]*Body),
		shapeToEntity:  make(map[*cp.Shape]Entity),
		groundToEntity: make(map[*cp.Shape]Entity),
		contacts:       make(map[Entity]*Contact),
	}
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddTerrain adds a static solid box.
func (pw *PhysicsWorld) AddTerrain(bb cp.BB) {
	if pw == nil || pw.space == nil {
		return
	}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(terrainFilter)
	pw.space.AddShape(shape)
}

// AddBounds walls in the rectangle [0,w]x[0,h] with thin segments.
func (pw *PhysicsWorld) AddBounds(w, h float64) {
	if pw == nil || pw.space == nil || w <= 0 || h <= 0 {
		return
	}
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: w, Y: 0}},
		{a: cp.Vector{X: 0, Y: h}, b: cp.Vector{X: w, Y: h}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: h}},
		{a: cp.Vector{X: w, Y: 0}, b: cp.Vector{X: w, Y: h}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(terrainFilter)
		pw.space.AddShape(shape)
	}
}

// AddBody creates a dynamic, rotation-locked box body centred on center.
func (pw *PhysicsWorld) AddBody(e Entity, center cp.Vector, width, height float64) *Body {
	if pw == nil || pw.space == nil || !e.Valid() || width <= 0 || height <= 0 {
		return nil
	}
	if b, ok := pw.bodies[e]; ok {
		return b
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(center)
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeDynamic)
	shape.SetFilter(actorFilter)

	bb := cp.BB{L: -width * 0.45, B: height / 2, R: width * 0.45, T: height/2 + 2}
	ground := cp.NewBox2(body, bb, 0)
	ground.SetSensor(true)
	ground.SetCollisionType(collisionTypeGroundSensor)
	ground.SetFilter(actorFilter)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.space.AddShape(ground)

	b := &Body{Body: body, Shape: shape, GroundShape: ground, Width: width, Height: height, gravity: true}
	pw.bodies[e] = b
	pw.shapeToEntity[shape] = e
	pw.groundToEntity[ground] = e
	pw.contacts[e] = &Contact{}
	slog.Debug("physics: body added", "entity", e, "w", width, "h", height)
	return b
}

// RemoveBody removes an entity's body, if any.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	b, ok := pw.bodies[e]
	if !ok {
		return
	}
	pw.space.RemoveShape(b.GroundShape)
	pw.space.RemoveShape(b.Shape)
	pw.space.RemoveBody(b.Body)
	delete(pw.shapeToEntity, b.Shape)
	delete(pw.groundToEntity, b.GroundShape)
	delete(pw.bodies, e)
	delete(pw.contacts, e)
}

// Body returns the body registered for e.
func (pw *PhysicsWorld) Body(e Entity) (*Body, bool) {
	if pw == nil {
		return nil, false
	}
	b, ok := pw.bodies[e]
	return b, ok
}

// SetGravityEnabled toggles gravity integration for a single body.
func (pw *PhysicsWorld) SetGravityEnabled(e Entity, enabled bool) {
	b, ok := pw.Body(e)
	if !ok || b.gravity == enabled {
		return
	}
	b.gravity = enabled
	if enabled {
		b.Body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)
		return
	}
	b.Body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})
}

// Position returns the body centre.
func (pw *PhysicsWorld) Position(e Entity) (cp.Vector, bool) {
	b, ok := pw.Body(e)
	if !ok {
		return cp.Vector{}, false
	}
	return b.Body.Position(), true
}

// SetPosition teleports a body.
func (pw *PhysicsWorld) SetPosition(e Entity, p cp.Vector) {
	if b, ok := pw.Body(e); ok {
		b.Body.SetPosition(p)
	}
}

// Velocity returns the body velocity.
func (pw *PhysicsWorld) Velocity(e Entity) (cp.Vector, bool) {
	b, ok := pw.Body(e)
	if !ok {
		return cp.Vector{}, false
	}
	return b.Body.Velocity(), true
}

// SetVelocity sets the body velocity.
func (pw *PhysicsWorld) SetVelocity(e Entity, v cp.Vector) {
	if b, ok := pw.Body(e); ok {
		b.Body.SetVelocityVector(v)
	}
}

// Contact returns the collision state gathered during the last Step.
func (pw *PhysicsWorld) Contact(e Entity) Contact {
	if pw == nil {
		return Contact{}
	}
	if c := pw.contacts[e]; c != nil {
		return *c
	}
	return Contact{}
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	for _, c := range pw.contacts {
		if c.GroundGrace > 0 {
			c.GroundGrace--
		}
		c.Grounded = c.GroundGrace > 0
		c.Wall = WallNone
	}
	pw.space.Step(dt)
}

// Linecast returns the first terrain point hit on the segment a→b.
func (pw *PhysicsWorld) Linecast(a, b cp.Vector) (cp.Vector, bool) {
	if pw == nil || pw.space == nil {
		return cp.Vector{}, false
	}
	info := pw.space.SegmentQueryFirst(a, b, 0, queryTerrain)
	if info.Shape == nil {
		return cp.Vector{}, false
	}
	return info.Point, true
}

// PointOverlap reports whether p lies inside terrain.
func (pw *PhysicsWorld) PointOverlap(p cp.Vector) bool {
	if pw == nil || pw.space == nil {
		return false
	}
	info := pw.space.PointQueryNearest(p, 0, queryTerrain)
	return info != nil && info.Shape != nil && info.Distance <= 0
}

// GroundRaycast probes straight down from p and returns the distance to the
// first terrain surface within maxDist.
func (pw *PhysicsWorld) GroundRaycast(p cp.Vector, maxDist float64) (float64, bool) {
	hit, ok := pw.Linecast(p, cp.Vector{X: p.X, Y: p.Y + maxDist})
	if !ok {
		return 0, false
	}
	return hit.Y - p.Y, true
}

func (pw *PhysicsWorld) setupHandlers() {
	if pw == nil || pw.handlersReady || pw.space == nil {
		return
	}

	wallHandler := pw.space.NewCollisionHandler(collisionTypeDynamic, collisionTypeSolid)
	wallHandler.UserData = pw
	wallHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		e, okA := world.shapeToEntity[shapeA]
		isA := okA
		if !okA {
			var okB bool
			e, okB = world.shapeToEntity[shapeB]
			if !okB {
				return true
			}
		}
		state := world.contacts[e]
		if state == nil {
			return true
		}
		n := arb.Normal()
		if !isA {
			n = n.Neg()
		}
		if n.X < -0.5 {
			state.Wall = WallLeft
		} else if n.X > 0.5 {
			state.Wall = WallRight
		}
		return true
	}

	groundHandler := pw.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypeSolid)
	groundHandler.UserData = pw
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		e, ok := world.groundToEntity[shapeA]
		if !ok {
			e, ok = world.groundToEntity[shapeB]
			if !ok {
				return true
			}
		}
		if state := world.contacts[e]; state != nil {
			state.Grounded = true
			state.GroundGrace = groundGraceFrames
		}
		return true
	}

	pw.handlersReady = true
}
