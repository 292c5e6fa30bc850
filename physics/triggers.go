package physics

import (
	"math"
	"slices"

	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs/component"
)

// checkTileTriggers classifies the tiles under every body's final box.
// Hazards become one event per body and type across all layers; ladders only
// set the on-ladder contact.
func (e *Engine) checkTileTriggers(layers []*component.TileLayer) {
	if len(layers) == 0 {
		return
	}
	var hits []component.TileType
	for _, ent := range e.bodies {
		ref, ok := e.resolveBody(ent)
		if !ok || !ref.collidable() || ref.collider.Trigger {
			continue
		}
		box := ref.collider.WorldAABB(ref.transform)
		if box.Empty() {
			continue
		}

		hits = hits[:0]
		for _, layer := range layers {
			hits = collectTriggerTiles(layer, box, ref.contacts, hits)
		}
		for _, t := range hits {
			e.triggers = append(e.triggers, TileTriggerEvent{Entity: ent, Type: t})
		}
	}
}

// collectTriggerTiles appends each trigger type under box that is not already
// in hits.
func collectTriggerTiles(layer *component.TileLayer, box common.Rect, contacts *Contacts, hits []component.TileType) []component.TileType {
	ts := layer.GetTileSize()
	if ts.X <= 0 || ts.Y <= 0 {
		return hits
	}
	x0, x1 := tileSpan(box.Left(), box.Right(), ts.X)
	y0, y1 := tileSpan(box.Top(), box.Bottom(), ts.Y)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			switch t := layer.TileTypeAt(x, y); t {
			case component.TileHazard:
				if !slices.Contains(hits, t) {
					hits = append(hits, t)
				}
			case component.TileLadder:
				contacts.ladder = true
			}
		}
	}
	return hits
}

// tileSpan returns the half-open tile range covering [lo, hi) on one axis.
// The trailing edge is pulled in by the tile tolerance so a box ending
// exactly on a boundary does not reach the next tile.
func tileSpan(lo, hi, size float64) (int, int) {
	start := common.TileCoord(lo, size)
	end := int(math.Ceil((hi - tileTolerance) / size))
	if end <= start {
		end = start + 1
	}
	return start, end
}
