package entity

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/levels"
	"github.com/milk9111/tilephysics/physics"
)

// LoadLevelToWorld creates one TileLayer entity per level layer, registers
// the physics layers with the engine, bounds the world to the level and
// spawns the level's bodies from their prefabs ("<type>.yaml").
func LoadLevelToWorld(w *ecs.World, engine *physics.Engine, lvl *levels.Level) error {
	if w == nil {
		return ecs.ErrNilWorld
	}
	if engine == nil {
		return ErrNilEngine
	}
	if lvl == nil {
		return fmt.Errorf("entity: nil level")
	}

	width, height := lvl.PixelSize()
	boundsEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, boundsEntity, component.LevelBoundsComponent.Kind(), component.LevelBounds{
		Width:  width,
		Height: height,
	}); err != nil {
		return err
	}
	engine.SetWorldBounds(common.NewRect(0, 0, width, height))

	tileSize := cp.Vector{X: float64(lvl.TileSize), Y: float64(lvl.TileSize)}
	for i, codes := range lvl.Layers {
		layer, err := tileLayerFromCodes(lvl.LayerName(i), tileSize, lvl.Width, lvl.Height, codes)
		if err != nil {
			return err
		}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TileLayerComponent.Kind(), layer); err != nil {
			return err
		}
		if lvl.HasPhysics(i) {
			engine.RegisterCollisionLayer(e)
		}
	}

	for _, ent := range lvl.Entities {
		prefab := strings.ToLower(ent.Type) + ".yaml"
		if _, err := BuildBodyAt(w, engine, prefab, float64(ent.X), float64(ent.Y)); err != nil {
			return fmt.Errorf("level entity %s: %w", ent.Type, err)
		}
	}

	return nil
}

func tileLayerFromCodes(name string, tileSize cp.Vector, width, height int, codes []int) (component.TileLayer, error) {
	layer := component.NewTileLayer(name, tileSize, width, height)
	for idx, code := range codes {
		t := component.TileType(code)
		if code < 0 || int(t) != code || !t.Valid() {
			return component.TileLayer{}, fmt.Errorf("entity: layer %s: tile %d has unknown code %d", name, idx, code)
		}
		layer.SetTile(idx%width, idx/width, t)
	}
	return layer, nil
}
