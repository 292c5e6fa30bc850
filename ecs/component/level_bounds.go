package component

// LevelBounds stores the world-space size of the current level. The level
// origin is always (0,0).
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
