package component

import "github.com/jakecoffman/cp"

type Transform struct {
	Position cp.Vector
	Scale    cp.Vector
	Rotation float64
}

// NewTransform returns a transform at pos with unit scale.
func NewTransform(pos cp.Vector) Transform {
	return Transform{Position: pos, Scale: cp.Vector{X: 1, Y: 1}}
}

// Translate moves the transform origin by delta. Physics writes positions
// only through here, so a collider offset never has to be undone by callers.
func (t *Transform) Translate(delta cp.Vector) {
	if t == nil {
		return
	}
	t.Position = t.Position.Add(delta)
}

var TransformComponent = NewComponent[Transform]()
