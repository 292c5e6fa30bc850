package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs/component"
)

// SlopeHeight returns the walkable surface height of a slope tile, measured
// up from the tile's bottom edge, at width pixels from its left edge. Width is
// clamped into the tile. Non-slope tiles have height 0.
func SlopeHeight(width float64, tile component.TileType, tileSize cp.Vector) float64 {
	if tileSize.X <= 0 {
		return 0
	}
	rel := cp.Clamp(width/tileSize.X, 0, 1)
	h := tileSize.Y
	switch tile {
	case component.TileSlope0_1:
		return rel * h
	case component.TileSlope0_2:
		return rel * h * 0.5
	case component.TileSlope2_1:
		return rel*h*0.5 + h*0.5
	case component.TileSlope1_0:
		return (1 - rel) * h
	case component.TileSlope2_0:
		return (1 - rel) * h * 0.5
	case component.TileSlope1_2:
		return (1-rel)*h*0.5 + h*0.5
	default:
		return 0
	}
}
