package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/Questionxble/2dgameproject-sub002/common"
	"github.com/Questionxble/2dgameproject-sub002/component"
	"github.com/Questionxble/2dgameproject-sub002/ecs"
	"github.com/Questionxble/2dgameproject-sub002/ecs/system"
	"github.com/Questionxble/2dgameproject-sub002/prefabs"
	"github.com/Questionxble/2dgameproject-sub002/replay"
	"github.com/Questionxble/2dgameproject-sub002/shard"
)

// playerRespawnDelay is how long the player stays down before reviving.
const playerRespawnDelay = 2.0

// pickupKeys equip a shard, standing in for world pickups.
var pickupKeys = map[ebiten.Key]shard.WeaponID{
	ebiten.KeyQ: shard.WeaponValor,
	ebiten.KeyE: shard.WeaponWhisper,
	ebiten.KeyR: shard.WeaponStorm,
}

type Options struct {
	Debug  bool
	Level  string
	Record string
	All    bool
}

type Game struct {
	opts Options

	world    *ecs.World
	pw       *ecs.PhysicsWorld
	registry *component.Registry
	emitter  *component.CombatEventEmitter
	resolver *component.CombatResolver
	effects  *shard.EffectManager

	arena    *prefabs.ArenaSpec
	cfg      shard.Config
	spawn    cp.Vector
	loadout  []shard.WeaponID
	movement *component.Player

	player     *component.Actor
	controller *shard.Controller
	buffs      *buffSink

	input     *system.InputSystem
	playerCtl *system.PlayerControllerSystem
	combat    *system.CombatSystem
	ai        *system.DummyAISystem
	killFeed  *system.KillFeedSystem
	render    *system.RenderSystem

	recorder *replay.Recorder
	watcher  *prefabs.Watcher
	swapUI   *ebitenui.UI

	dead   bool
	diedAt float64
	freeze int
}

func NewGame(opts Options) (*Game, error) {
	cfg, err := prefabs.LoadShardsConfig()
	if err != nil {
		return nil, err
	}
	arena, err := prefabs.LoadArenaSpec(opts.Level)
	if err != nil {
		return nil, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	loadout, err := playerSpec.Loadout()
	if err != nil {
		return nil, err
	}
	if opts.All {
		loadout = shard.Weapons[:shard.SlotCount]
	}

	g := &Game{
		opts:     opts,
		world:    ecs.NewWorld(),
		pw:       ecs.NewPhysicsWorld(common.Gravity),
		registry: component.NewRegistry(),
		emitter:  &component.CombatEventEmitter{},
		arena:    arena,
		cfg:      cfg,
		spawn:    arena.Player.Vector(),
		loadout:  loadout,
	}
	movement := playerSpec.Movement()
	g.movement = &movement
	g.world.SetPhysicsWorld(g.pw)
	g.resolver = component.NewCombatResolver(g.emitter)
	g.buffs = &buffSink{clock: g.world}

	for _, t := range arena.Terrain {
		g.pw.AddTerrain(t.BB())
	}
	g.pw.AddBounds(arena.Width, arena.Height)

	g.effects = shard.NewEffectManager(g.world, g.registry, g.resolver, nil)
	g.render = system.NewRenderSystem(arena, g.registry, g.effects, g.world)
	g.effects.SetHooks(g.render)

	e := g.world.CreateEntity()
	g.player = &component.Actor{
		Entity: e,
		Name:   playerSpec.Name,
		Team:   component.FactionPlayer,
		Pos:    g.spawn,
		Width:  playerSpec.Collider.Width,
		Height: playerSpec.Collider.Height,
		Health: component.NewHealth(playerSpec.Health),
	}
	g.pw.AddBody(e, g.spawn, g.player.Width, g.player.Height)
	g.registry.Add(g.player)
	g.controller = g.newController()

	g.input = system.NewInputSystem(nil)
	g.playerCtl = system.NewPlayerControllerSystem(g.player, g.movement, g.input, g.controller, arena.LadderComponents())
	g.combat = system.NewCombatSystem(g.input, g.controller, g.effects)
	g.ai = system.NewDummyAISystem(g.registry, g.effects)
	knockback := system.NewKnockbackSystem(g.emitter, g.registry)
	g.ai.SetStagger(knockback)
	g.killFeed = system.NewKillFeedSystem(g.emitter, g.controller, e)
	g.render.SetController(g.controller)

	g.world.AddSystem(g.input)
	g.world.AddSystem(g.playerCtl)
	g.world.AddSystem(system.NewPhysicsSystem(g.registry))
	g.world.AddSystem(g.combat)
	g.world.AddSystem(g.ai)
	g.world.AddSystem(system.NewClusterRepulsionSystem(g.registry))
	g.world.AddSystem(knockback)
	g.world.AddSystem(g.killFeed)
	flash := system.NewWhiteFlashSystem(g.emitter)
	g.render.SetFlash(flash)
	g.world.AddSystem(flash)
	g.world.AddSystem(system.NewHitFreezeSystem(g.emitter, e, func(frames int) {
		g.freeze = max(g.freeze, frames)
	}))
	g.world.AddSystem(system.NewCleanupSystem(g.registry))

	if err := g.spawnDummies(); err != nil {
		return nil, err
	}

	if opts.Record != "" {
		f, err := os.Create(opts.Record)
		if err != nil {
			return nil, fmt.Errorf("game: create record file: %w", err)
		}
		g.recorder = replay.NewRecorder(f, g.world)
		g.recorder.Attach(g.emitter)
	}

	if info, err := os.Stat("prefabs"); err == nil && info.IsDir() {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			slog.Warn("game: hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) newController() *shard.Controller {
	c := shard.NewController(g.cfg, shard.Deps{
		World:    g.world,
		Owner:    g.player,
		Registry: g.registry,
		Resolver: g.resolver,
		Effects:  g.effects,
		Geometry: g.pw,
		Buffs:    g.buffs,
		Hooks:    g.render,
	})
	c.OnFire = func(ev shard.FireEvent) {
		slog.Debug("game: fire", "weapon", ev.Weapon, "ability", ev.Ability, "gesture", ev.Gesture, "level", ev.Level, "units", ev.Units)
	}
	for _, id := range g.loadout {
		if _, err := c.Equip(id); err != nil {
			slog.Warn("game: equip loadout", "weapon", id, "err", err)
		}
	}
	return c
}

func (g *Game) spawnDummies() error {
	specs := make(map[string]system.DummyConfig)
	for _, sp := range g.arena.Dummies {
		cfg, ok := specs[sp.Prefab]
		if !ok {
			spec, err := prefabs.LoadDummySpec(sp.Prefab)
			if err != nil {
				return err
			}
			cfg = system.NewDummyConfig(*spec)
			specs[sp.Prefab] = cfg
		}
		g.ai.Spawn(g.world, cfg, cp.Vector{X: sp.X, Y: sp.Y})
	}
	return nil
}

func (g *Game) Update() error {
	g.pollReload()

	if g.swapUI != nil {
		g.swapUI.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.swapUI = nil
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.opts.Debug = !g.opts.Debug
	}
	if g.freeze > 0 {
		g.freeze--
		return nil
	}
	if !g.dead {
		g.handleShardKeys()
	}

	g.world.Update(common.FrameDT)
	g.buffs.prune()

	switch {
	case !g.dead && !g.player.IsAlive():
		g.dead = true
		g.diedAt = g.world.Now()
		g.controller.Destroy()
		slog.Info("game: player defeated", "kills", g.killFeed.Kills())
	case g.dead && g.world.Now()-g.diedAt >= playerRespawnDelay:
		g.revive()
	}
	return nil
}

func (g *Game) handleShardKeys() {
	for i, key := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2} {
		if inpututil.IsKeyJustPressed(key) {
			if err := g.controller.SwitchActive(i); err != nil {
				slog.Debug("game: switch slot", "slot", i, "err", err)
			}
		}
	}
	for key, id := range pickupKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.pickup(id)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		c := g.controller
		if c.UltimateMax() > 0 && c.UltimateCharge() >= c.UltimateMax() {
			c.ConsumeUltimateCharge(c.UltimateMax())
			slog.Info("game: ultimate unleashed", "weapon", c.ActiveWeapon())
		}
	}
}

func (g *Game) pickup(id shard.WeaponID) {
	slot, err := g.controller.Equip(id)
	switch {
	case err == nil:
		slog.Info("game: equipped shard", "weapon", id, "slot", slot)
	case errors.Is(err, shard.ErrNoEmptySlot):
		g.swapUI = NewSwapUI(g, id)
	case errors.Is(err, shard.ErrDuplicateWeapon):
		slog.Debug("game: shard already equipped", "weapon", id)
	default:
		slog.Warn("game: equip shard", "weapon", id, "err", err)
	}
}

func (g *Game) revive() {
	g.dead = false
	g.player.Health.Revive()
	g.player.Pos = g.spawn
	g.pw.SetPosition(g.player.Entity, g.spawn)
	g.pw.SetVelocity(g.player.Entity, cp.Vector{})

	g.controller = g.newController()
	g.playerCtl.SetLock(g.controller)
	g.combat.SetController(g.controller)
	g.killFeed.SetController(g.controller, g.player.Entity)
	g.render.SetController(g.controller)
	slog.Info("game: player revived")
}

// pollReload applies pending prefab changes without blocking.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			slog.Warn("game: prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch prefabs.Classify(name) {
	case prefabs.ChangeShards:
		cfg, err := prefabs.LoadShardsConfig()
		if err != nil {
			slog.Warn("game: reload shards", "err", err)
			return
		}
		g.cfg = cfg
		g.controller.SetConfig(cfg)
		slog.Info("game: shard tuning reloaded")
	case prefabs.ChangeScript:
		g.ai.Reload()
		slog.Info("game: ai scripts reloaded", "file", name)
	case prefabs.ChangeSpec:
		if filepath.Base(name) != "player.yaml" {
			slog.Info("game: prefab changed, restart to apply", "file", name)
			return
		}
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			slog.Warn("game: reload player", "err", err)
			return
		}
		*g.movement = spec.Movement()
		slog.Info("game: player movement reloaded")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(screen)
	if g.opts.Debug {
		system.DrawPhysicsDebug(g.pw, screen)
		system.DrawPlayerStateDebug(g.world, g.playerCtl, g.player, screen, common.BaseWidth-200, 10)
	}
	g.drawHUD(screen)
	if g.swapUI != nil {
		g.swapUI.Draw(screen)
	}
}

// Close stops hot reload and flushes the combat log.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			slog.Warn("game: close watcher", "err", err)
		}
	}
	if g.recorder != nil {
		if err := g.recorder.Close(); err != nil {
			slog.Warn("game: close recorder", "err", err)
		}
		slog.Info("game: combat log written", "file", g.opts.Record, "frames", g.recorder.Count())
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
