package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// ClampVec clamps each component of v into [lo, hi].
func ClampVec(v cp.Vector, lo, hi float64) cp.Vector {
	return cp.Vector{X: cp.Clamp(v.X, lo, hi), Y: cp.Clamp(v.Y, lo, hi)}
}

// MulVec multiplies two vectors component-wise.
func MulVec(a, b cp.Vector) cp.Vector {
	return cp.Vector{X: a.X * b.X, Y: a.Y * b.Y}
}

// AbsVec returns the component-wise absolute value of v.
func AbsVec(v cp.Vector) cp.Vector {
	return cp.Vector{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

// TileCoord converts a world coordinate into a tile index along one axis.
func TileCoord(v, tileSize float64) int {
	return int(math.Floor(v / tileSize))
}
