package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultTileSize is used when a level does not set tile_size.
const DefaultTileSize = 32

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is a tile map. Each layer is a flat, row-major array of Width*Height
// tile codes; the codes match component.TileType.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  int         `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Name    string `json:"name,omitempty"`
	Physics bool   `json:"physics"`
}

// Entity places a body prefab; X and Y are in pixels.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", clean, err)
	}
	return lvl, nil
}

// Parse decodes and validates a level.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrInvalidLevel, i, len(layer), lvl.Width*lvl.Height)
		}
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = DefaultTileSize
	}
	return &lvl, nil
}

// HasPhysics reports whether layer i takes part in collision.
func (l *Level) HasPhysics(i int) bool {
	if l == nil || i < 0 || i >= len(l.LayerMeta) {
		return false
	}
	return l.LayerMeta[i].Physics
}

func (l *Level) LayerName(i int) string {
	if l != nil && i >= 0 && i < len(l.LayerMeta) && l.LayerMeta[i].Name != "" {
		return l.LayerMeta[i].Name
	}
	return fmt.Sprintf("layer_%d", i)
}

// PixelSize returns the map size in pixels.
func (l *Level) PixelSize() (float64, float64) {
	if l == nil {
		return 0, 0
	}
	ts := float64(l.TileSize)
	return float64(l.Width) * ts, float64(l.Height) * ts
}
