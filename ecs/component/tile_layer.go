package component

import "github.com/jakecoffman/cp"

// TileType classifies a tile for collision.
type TileType uint8

const (
	TileEmpty TileType = iota
	TileNormal
	TileSolid
	TileHazard
	TileLadder
	TileUniSolid
	// Slopes are named by their left and right surface heights:
	// 0 = bottom of the tile, 1 = full tile height, 2 = half tile height.
	TileSlope0_1
	TileSlope0_2
	TileSlope2_1
	TileSlope1_0
	TileSlope2_0
	TileSlope1_2
)

var tileTypeNames = [...]string{
	TileEmpty:    "empty",
	TileNormal:   "normal",
	TileSolid:    "solid",
	TileHazard:   "hazard",
	TileLadder:   "ladder",
	TileUniSolid: "unisolid",
	TileSlope0_1: "slope_0_1",
	TileSlope0_2: "slope_0_2",
	TileSlope2_1: "slope_2_1",
	TileSlope1_0: "slope_1_0",
	TileSlope2_0: "slope_2_0",
	TileSlope1_2: "slope_1_2",
}

func (t TileType) String() string {
	if int(t) < len(tileTypeNames) {
		return tileTypeNames[t]
	}
	return "unknown"
}

// Valid reports whether t is a known tile type.
func (t TileType) Valid() bool {
	return int(t) < len(tileTypeNames)
}

func (t TileType) IsSlope() bool {
	return t >= TileSlope0_1 && t <= TileSlope1_2
}

// TileLayer is a grid of tile types. Tiles is row-major with MapWidth
// columns.
type TileLayer struct {
	Name      string
	TileSize  cp.Vector
	MapWidth  int
	MapHeight int
	Tiles     []TileType

	// Collision is set while the layer is registered with a physics engine.
	Collision bool
}

// NewTileLayer allocates an empty layer.
func NewTileLayer(name string, tileSize cp.Vector, width, height int) TileLayer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return TileLayer{
		Name:      name,
		TileSize:  tileSize,
		MapWidth:  width,
		MapHeight: height,
		Tiles:     make([]TileType, width*height),
	}
}

// TileTypeAt returns the tile at grid coordinate (x, y); anything outside the
// map is empty.
func (l *TileLayer) TileTypeAt(x, y int) TileType {
	if l == nil || x < 0 || y < 0 || x >= l.MapWidth || y >= l.MapHeight {
		return TileEmpty
	}
	idx := y*l.MapWidth + x
	if idx >= len(l.Tiles) {
		return TileEmpty
	}
	return l.Tiles[idx]
}

// SetTile writes a tile; out-of-range coordinates are ignored.
func (l *TileLayer) SetTile(x, y int, t TileType) {
	if l == nil || x < 0 || y < 0 || x >= l.MapWidth || y >= l.MapHeight {
		return
	}
	idx := y*l.MapWidth + x
	if idx < len(l.Tiles) {
		l.Tiles[idx] = t
	}
}

func (l *TileLayer) GetTileSize() cp.Vector {
	if l == nil {
		return cp.Vector{}
	}
	return l.TileSize
}

var TileLayerComponent = NewComponent[TileLayer]()
