package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs/component"
)

// Placed is a collider shape positioned in world space. Position is the
// top-left corner of the shape's enclosing box.
type Placed struct {
	Shape    component.Shape
	Position cp.Vector
	Scale    cp.Vector
}

// Place positions a collider using its owner's transform.
func Place(c *component.Collider, t *component.Transform) Placed {
	if c == nil || t == nil {
		return Placed{}
	}
	return Placed{Shape: c.Shape, Position: t.Position.Add(c.Offset), Scale: t.Scale}
}

// Box returns the scaled enclosing box.
func (p Placed) Box() common.Rect {
	return common.Rect{Position: p.Position, Size: common.MulVec(p.Shape.BoxSize(), p.Scale)}
}

type shapePair struct {
	a, b component.ShapeKind
}

// CheckCollision reports whether two placed shapes overlap. The enclosing
// boxes are tested first; the narrow phase only runs when they overlap.
func CheckCollision(a, b Placed) bool {
	aBox, bBox := a.Box(), b.Box()
	if !CheckRectOverlap(aBox, bBox) {
		return false
	}

	switch (shapePair{a.Shape.Kind, b.Shape.Kind}) {
	case shapePair{component.ShapeAABB, component.ShapeAABB}:
		return true
	case shapePair{component.ShapeCircle, component.ShapeCircle}:
		return CheckCircleOverlap(aBox.Center(), aBox.Size.X/2, bBox.Center(), bBox.Size.X/2)
	case shapePair{component.ShapeAABB, component.ShapeCircle}:
		return checkBoxCircle(aBox, bBox)
	case shapePair{component.ShapeCircle, component.ShapeAABB}:
		return checkBoxCircle(bBox, aBox)
	default:
		return false
	}
}

// checkBoxCircle tests a box against the circle inscribed in circleBox.
func checkBoxCircle(box, circleBox common.Rect) bool {
	center := circleBox.Center()
	return CheckPointInCircle(NearestPoint(center, box), center, circleBox.Size.X/2)
}

// CheckAABBOverlap reports whether two boxes given by top-left and size
// overlap. Boxes that only touch along an edge do not overlap.
func CheckAABBOverlap(aPos, aSize, bPos, bSize cp.Vector) bool {
	return CheckRectOverlap(common.Rect{Position: aPos, Size: aSize}, common.Rect{Position: bPos, Size: bSize})
}

func CheckRectOverlap(a, b common.Rect) bool {
	return a.Intersects(&b)
}

// CheckCircleOverlap reports whether the distance between centres is
// strictly less than the sum of the radii.
func CheckCircleOverlap(aCenter cp.Vector, aRadius float64, bCenter cp.Vector, bRadius float64) bool {
	return aCenter.Distance(bCenter) < aRadius+bRadius
}

// CheckPointInCircle reports whether p lies strictly inside the circle.
func CheckPointInCircle(p, center cp.Vector, radius float64) bool {
	return p.Distance(center) < radius
}

// NearestPoint clamps p into r.
func NearestPoint(p cp.Vector, r common.Rect) cp.Vector {
	return cp.Vector{
		X: cp.Clamp(p.X, r.Left(), r.Right()),
		Y: cp.Clamp(p.Y, r.Top(), r.Bottom()),
	}
}
