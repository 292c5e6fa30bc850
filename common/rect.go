package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned rectangle in world space. Position is the top-left
// corner; Y grows downward.
type Rect struct {
	Position cp.Vector
	Size     cp.Vector
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{Position: cp.Vector{X: x, Y: y}, Size: cp.Vector{X: w, Y: h}}
}

func (r Rect) Left() float64   { return r.Position.X }
func (r Rect) Top() float64    { return r.Position.Y }
func (r Rect) Right() float64  { return r.Position.X + r.Size.X }
func (r Rect) Bottom() float64 { return r.Position.Y + r.Size.Y }

// Max returns the bottom-right corner.
func (r Rect) Max() cp.Vector {
	return r.Position.Add(r.Size)
}

func (r Rect) Center() cp.Vector {
	return r.Position.Add(r.Size.Mult(0.5))
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Size.X <= 0 || r.Size.Y <= 0
}

// Intersects reports whether r and other share any area. Touching edges do
// not count, and an empty rect never intersects anything.
func (r *Rect) Intersects(other *Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.Left() < other.Right() &&
		r.Right() > other.Left() &&
		r.Top() < other.Bottom() &&
		r.Bottom() > other.Top()
}
