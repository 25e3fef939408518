package system

import (
	"image/color"
	"log/slog"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
	"github.com/Questionxble/2dgameproject-sub002/prefabs"
	"github.com/Questionxble/2dgameproject-sub002/shard"
)

const (
	arcLifetime     = 0.15
	healthBarHeight = 4
	daggerLength    = 14
)

type arcLine struct {
	from, to cp.Vector
	until    float64
}

// RenderSystem draws the arena with flat shapes. It also receives effect
// hooks so short-lived visuals like chain arcs can be shown.
type RenderSystem struct {
	arena    *prefabs.ArenaSpec
	registry *component.Registry
	effects  *shard.EffectManager
	ctrl     *shard.Controller
	clock    shard.Clock
	flash    *WhiteFlashSystem

	arcs []arcLine
}

func NewRenderSystem(arena *prefabs.ArenaSpec, registry *component.Registry, effects *shard.EffectManager, clock shard.Clock) *RenderSystem {
	return &RenderSystem{arena: arena, registry: registry, effects: effects, clock: clock}
}

// SetController sets the controller whose daggers are drawn.
func (r *RenderSystem) SetController(c *shard.Controller) {
	if r == nil {
		return
	}
	r.ctrl = c
}

// SetFlash makes actors blink white while flash reports them.
func (r *RenderSystem) SetFlash(f *WhiteFlashSystem) {
	if r == nil {
		return
	}
	r.flash = f
}

// SetArena replaces the drawn arena.
func (r *RenderSystem) SetArena(arena *prefabs.ArenaSpec) {
	if r == nil {
		return
	}
	r.arena = arena
}

func (r *RenderSystem) OnSpawn(e ecs.Entity, kind shard.AbilityID, pos cp.Vector) {
	slog.Debug("render: spawn", "entity", e, "ability", kind, "x", pos.X, "y", pos.Y)
}

func (r *RenderSystem) OnDespawn(e ecs.Entity, kind shard.AbilityID) {
	slog.Debug("render: despawn", "entity", e, "ability", kind)
}

func (r *RenderSystem) OnArc(from, to cp.Vector) {
	if r == nil {
		return
	}
	r.arcs = append(r.arcs, arcLine{from: from, to: to, until: r.now() + arcLifetime})
}

func (r *RenderSystem) now() float64 {
	if r.clock == nil {
		return 0
	}
	return r.clock.Now()
}

func (r *RenderSystem) Draw(screen *ebiten.Image) {
	if r == nil || screen == nil {
		return
	}
	r.drawArena(screen)
	r.drawActors(screen)
	r.drawEffects(screen)
	r.drawDaggers(screen)
	r.drawArcs(screen)
}

func (r *RenderSystem) drawArena(screen *ebiten.Image) {
	if r.arena == nil {
		return
	}
	screen.Fill(r.arena.Background.Or(colornames.Midnightblue))
	for _, t := range r.arena.Terrain {
		fillBB(screen, t.BB(), t.Color.Or(colornames.Slategray))
	}
	for _, l := range r.arena.Ladders {
		bb := l.BB()
		c := l.Color.Or(colornames.Peru)
		strokeBB(screen, bb, c)
		for y := bb.B + 12; y < bb.T; y += 16 {
			vector.StrokeLine(screen, float32(bb.L), float32(y), float32(bb.R), float32(y), 2, c, false)
		}
	}
}

func (r *RenderSystem) drawActors(screen *ebiten.Image) {
	if r.registry == nil {
		return
	}
	actors := r.registry.Actors()
	sort.SliceStable(actors, func(i, j int) bool {
		return actors[i].Entity.Index() < actors[j].Entity.Index()
	})
	for _, a := range actors {
		var c color.Color = colornames.Crimson
		switch {
		case !a.IsAlive():
			c = colornames.Dimgray
		case r.flash.On(a.Entity):
			c = colornames.White
		case a.Team == component.FactionPlayer:
			c = colornames.Lightskyblue
		}
		bb := a.Bounds()
		fillBB(screen, bb, c)

		// eye on the facing side
		f := a.Facing()
		eye := cp.Vector{X: a.Pos.X + f.X*a.Width/4, Y: a.Pos.Y - a.Height/4}
		vector.DrawFilledCircle(screen, float32(eye.X), float32(eye.Y), 3, colornames.White, false)

		if a.Health != nil && a.Health.Max > 0 {
			w := float32(a.Width)
			x, y := float32(bb.L), float32(bb.B)-healthBarHeight-3
			vector.DrawFilledRect(screen, x, y, w, healthBarHeight, colornames.Black, false)
			vector.DrawFilledRect(screen, x, y, w*float32(a.Health.Fraction()), healthBarHeight, colornames.Limegreen, false)
		}
	}
}

func (r *RenderSystem) drawEffects(screen *ebiten.Image) {
	if r.effects == nil {
		return
	}
	for _, e := range r.effects.Live() {
		c := colornames.Orange
		if e.Faction != component.FactionPlayer {
			c = colornames.Orangered
		}
		if e.Visual {
			c = colornames.Yellow
		}
		switch e.Shape.Kind {
		case component.ShapeCircle:
			vector.StrokeCircle(screen, float32(e.Pos.X), float32(e.Pos.Y), float32(e.Shape.Radius), 2, c, false)
		default:
			strokeBB(screen, e.Shape.Bounds(e.Pos), c)
		}
	}
}

func (r *RenderSystem) drawDaggers(screen *ebiten.Image) {
	if r.ctrl == nil || r.ctrl.Projectiles() == nil {
		return
	}
	for _, p := range r.ctrl.Projectiles().Live() {
		c := colornames.Silver
		switch p.State {
		case shard.Homing:
			c = colornames.Violet
		case shard.Stuck:
			c = colornames.Gray
		}
		tail := p.Pos.Sub(p.Heading().Mult(daggerLength))
		vector.StrokeLine(screen, float32(tail.X), float32(tail.Y), float32(p.Pos.X), float32(p.Pos.Y), 3, c, false)
	}
}

func (r *RenderSystem) drawArcs(screen *ebiten.Image) {
	now := r.now()
	kept := r.arcs[:0]
	for _, a := range r.arcs {
		if now > a.until {
			continue
		}
		vector.StrokeLine(screen, float32(a.from.X), float32(a.from.Y), float32(a.to.X), float32(a.to.Y), 2, colornames.Aqua, true)
		kept = append(kept, a)
	}
	r.arcs = kept
}

func fillBB(screen *ebiten.Image, bb cp.BB, c color.Color) {
	vector.DrawFilledRect(screen, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), c, false)
}

func strokeBB(screen *ebiten.Image, bb cp.BB, c color.Color) {
	vector.StrokeRect(screen, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), 2, c, false)
}
