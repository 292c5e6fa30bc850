package main

import (
	"fmt"
	"image/color"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/ecs/entity"
	"github.com/milk9111/tilephysics/ecs/system"
	"github.com/milk9111/tilephysics/levels"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
	"golang.org/x/image/colornames"
)

type Options struct {
	Level string
	Debug bool
	Watch bool
}

type Game struct {
	opts  Options
	level *levels.Level
	spec  *prefabs.PhysicsSpec

	world     *ecs.World
	engine    *physics.Engine
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	scripts   *system.CollisionScriptSystem

	watcher *prefabs.Watcher
	debug   bool
	colors  system.DebugColors
	frames  int
}

func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadPhysicsSpec()
	if err != nil {
		return nil, err
	}
	lvl, err := levels.LoadLevelFromFS(levelFile(opts.Level))
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:   opts,
		level:  lvl,
		spec:   spec,
		debug:  opts.Debug || spec.Debug.Enabled,
		colors: system.DebugColorsFromSpec(spec.Debug),
	}
	if err := g.reset(); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.DiskDir())
		if err != nil {
			log.Warn("prefab hot reload disabled", "dir", prefabs.DiskDir(), "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func levelFile(name string) string {
	name = strings.TrimSpace(name)
	if path.Ext(name) == "" {
		name += ".json"
	}
	return name
}

// reset rebuilds the world from the level and the current physics spec.
func (g *Game) reset() error {
	world := ecs.NewWorld()
	engine := physics.NewEngine(world)
	if err := entity.LoadLevelToWorld(world, engine, g.level); err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	entity.ApplyPhysicsSpec(engine, g.spec)

	g.world = world
	g.engine = engine
	g.physics = system.NewPhysicsSystem(engine, g.step())
	g.scripts = system.NewCollisionScriptSystem(engine, nil)
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(nil),
		system.NewPlayerControllerSystem(engine),
		g.physics,
		system.NewHazardSystem(engine),
		g.scripts,
	)
	log.Info("world ready", "bodies", len(engine.Bodies()), "layers", len(engine.Layers()))
	return nil
}

func (g *Game) TPS() int {
	if g.spec == nil || g.spec.TicksPerSec <= 0 {
		return ebiten.DefaultTPS
	}
	return g.spec.TicksPerSec
}

func (g *Game) step() float64 {
	return 1.0 / float64(g.TPS())
}

// Size returns the level size in pixels.
func (g *Game) Size() (int, int) {
	w, h := g.level.PixelSize()
	return int(w), int(h)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			log.Error("reset failed", "err", err)
		}
	}

	g.scheduler.Update(g.world)

	for _, ev := range g.world.Events().Drain() {
		log.Debug("event", "type", ev.Type, "entity", ev.Entity, "data", ev.Data)
	}
	return nil
}

// pollWatcher applies pending prefab edits without blocking the frame.
func (g *Game) pollWatcher() {
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
			log.Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch {
	case name == "physics.yaml":
		spec, err := prefabs.LoadPhysicsSpec()
		if err != nil {
			log.Error("physics.yaml reload failed", "err", err)
			return
		}
		g.spec = spec
		g.colors = system.DebugColorsFromSpec(spec.Debug)
		entity.ApplyPhysicsSpec(g.engine, spec)
		g.physics.SetStep(g.step())
		ebiten.SetTPS(g.TPS())
		log.Info("physics reloaded", "gravity", g.engine.Gravity(), "max_speed", g.engine.MaxSpeed())
	case strings.HasPrefix(name, "scripts/"):
		g.scripts.Reload()
		log.Info("scripts reloaded", "file", name)
	default:
		log.Info("prefab changed, press R to rebuild the world", "file", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	g.drawTiles(screen)
	g.drawBodies(screen)

	if g.debug {
		system.DrawPhysicsDebug(g.engine, g.world, screen, g.colors)
		system.DrawContactsDebug(g.engine, g.world, screen)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.0f  F3 debug  R reset", ebiten.ActualTPS()), 10, g.screenHeight()-20)
}

func (g *Game) screenHeight() int {
	_, h := g.Size()
	return h
}

func tileColor(t component.TileType) (color.Color, bool) {
	switch t {
	case component.TileSolid:
		return colornames.Slategray, true
	case component.TileUniSolid:
		return colornames.Lightslategray, true
	case component.TileHazard:
		return colornames.Crimson, true
	case component.TileLadder:
		return colornames.Saddlebrown, true
	default:
		if t.IsSlope() {
			return colornames.Darkslategray, true
		}
		return nil, false
	}
}

func (g *Game) drawTiles(screen *ebiten.Image) {
	ecs.ForEach(g.world, component.TileLayerComponent.Kind(), func(_ ecs.Entity, layer *component.TileLayer) {
		ts := layer.GetTileSize()
		for y := 0; y < layer.MapHeight; y++ {
			for x := 0; x < layer.MapWidth; x++ {
				clr, ok := tileColor(layer.TileTypeAt(x, y))
				if !ok {
					continue
				}
				vector.FillRect(screen, float32(float64(x)*ts.X), float32(float64(y)*ts.Y), float32(ts.X), float32(ts.Y), clr, false)
			}
		}
	})
}

func (g *Game) drawBodies(screen *ebiten.Image) {
	for _, e := range g.engine.Bodies() {
		t, ok := ecs.Get(g.world, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		c, ok := ecs.Get(g.world, e, component.ColliderComponent.Kind())
		if !ok {
			continue
		}
		box := physics.Place(c, t).Box()
		clr := color.Color(colornames.Whitesmoke)
		if ecs.Has(g.world, e, component.PlayerTagComponent.Kind()) {
			clr = colornames.Deepskyblue
		}
		vector.FillRect(screen, float32(box.Left()), float32(box.Top()), float32(box.Size.X), float32(box.Size.Y), clr, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Size()
}
