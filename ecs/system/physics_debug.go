package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
	"golang.org/x/image/colornames"
)

const debugCircleSegments = 24

// DebugColors selects the overlay palette.
type DebugColors struct {
	Body    color.Color
	Solid   color.Color
	Trigger color.Color
	Contact color.Color
	Tile    color.Color
}

func DefaultDebugColors() DebugColors {
	return DebugColors{
		Body:    colornames.Lime,
		Solid:   colornames.Steelblue,
		Trigger: colornames.Gold,
		Contact: colornames.Orangered,
		Tile:    color.RGBA{R: 255, G: 255, B: 255, A: 64},
	}
}

// DebugColorsFromSpec fills unset spec colors from DefaultDebugColors.
func DebugColorsFromSpec(spec prefabs.DebugSpec) DebugColors {
	def := DefaultDebugColors()
	return DebugColors{
		Body:    spec.BodyColor.ColorOr(def.Body),
		Solid:   spec.SolidColor.ColorOr(def.Solid),
		Trigger: spec.TriggerColor.ColorOr(def.Trigger),
		Contact: spec.ContactColor.ColorOr(def.Contact),
		Tile:    spec.TileColor.ColorOr(def.Tile),
	}
}

// DrawPhysicsDebug outlines the non-empty tiles of every collision layer and
// the collider of every registered body. Bodies touching something are drawn
// in the contact color.
func DrawPhysicsDebug(engine *physics.Engine, w *ecs.World, screen *ebiten.Image, colors DebugColors) {
	if engine == nil || w == nil || screen == nil {
		return
	}

	for _, e := range engine.Layers() {
		layer, ok := ecs.Get(w, e, component.TileLayerComponent.Kind())
		if !ok {
			continue
		}
		drawTileLayer(screen, layer, colors)
	}

	for _, e := range engine.Bodies() {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !ok {
			continue
		}
		clr := colors.Body
		switch {
		case c.Trigger:
			clr = colors.Trigger
		case isSolid(w, e):
			clr = colors.Solid
		}
		if engine.Contacts(e).Any() {
			clr = colors.Contact
		}
		drawPlaced(screen, physics.Place(c, t), clr)
	}
}

// DrawContactsDebug prints the contact flags of the player, if any.
func DrawContactsDebug(engine *physics.Engine, w *ecs.World, screen *ebiten.Image) {
	if engine == nil || w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	c := engine.Contacts(player)
	text := fmt.Sprintf("Below: %v\nAbove: %v\nLeft: %v\nRight: %v\nLadder: %v\nLadderTop: %v\nPairs: %d",
		c.Below(), c.Above(), c.Left(), c.Right(), c.OnLadder(), c.OnLadderTop(), len(engine.CollisionPairs()))
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func isSolid(w *ecs.World, e ecs.Entity) bool {
	tag, ok := ecs.Get(w, e, component.TagComponent.Kind())
	return ok && tag.IsSolid()
}

func drawTileLayer(screen *ebiten.Image, layer *component.TileLayer, colors DebugColors) {
	ts := layer.GetTileSize()
	if ts.X <= 0 || ts.Y <= 0 {
		return
	}
	for y := 0; y < layer.MapHeight; y++ {
		for x := 0; x < layer.MapWidth; x++ {
			t := layer.TileTypeAt(x, y)
			if t == component.TileEmpty {
				continue
			}
			clr := colors.Tile
			if t == component.TileHazard || t == component.TileLadder {
				clr = colors.Trigger
			}
			px, py := float64(x)*ts.X, float64(y)*ts.Y
			if t.IsSlope() {
				drawSlope(screen, t, px, py, ts, clr)
				continue
			}
			vector.StrokeRect(screen, float32(px), float32(py), float32(ts.X), float32(ts.Y), 1, clr, false)
		}
	}
}

// drawSlope traces the walkable surface of a slope tile.
func drawSlope(screen *ebiten.Image, t component.TileType, px, py float64, ts cp.Vector, clr color.Color) {
	hl := physics.SlopeHeight(0, t, ts)
	hr := physics.SlopeHeight(ts.X, t, ts)
	bottom := py + ts.Y
	vector.StrokeLine(screen, float32(px), float32(bottom-hl), float32(px+ts.X), float32(bottom-hr), 1, clr, false)
	vector.StrokeLine(screen, float32(px), float32(bottom), float32(px+ts.X), float32(bottom), 1, clr, false)
}

func drawPlaced(screen *ebiten.Image, p physics.Placed, clr color.Color) {
	box := p.Box()
	if box.Empty() {
		return
	}
	if p.Shape.Kind == component.ShapeCircle {
		drawCircle(screen, box, clr)
		return
	}
	vector.StrokeRect(screen, float32(box.Left()), float32(box.Top()), float32(box.Size.X), float32(box.Size.Y), 1, clr, false)
}

func drawCircle(screen *ebiten.Image, box common.Rect, clr color.Color) {
	center := box.Center()
	radius := box.Size.X / 2
	prev := cp.Vector{X: center.X + radius, Y: center.Y}
	for i := 1; i <= debugCircleSegments; i++ {
		a := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		next := cp.Vector{X: center.X + math.Cos(a)*radius, Y: center.Y + math.Sin(a)*radius}
		vector.StrokeLine(screen, float32(prev.X), float32(prev.Y), float32(next.X), float32(next.Y), 1, clr, true)
		prev = next
	}
}
