package component

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

// ShapeKind discriminates the Shape variant.
type ShapeKind uint8

const (
	ShapeNone ShapeKind = iota
	ShapeAABB
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeAABB:
		return "aabb"
	case ShapeCircle:
		return "circle"
	default:
		return "none"
	}
}

// Shape is a closed variant: Size is meaningful for ShapeAABB, Radius for
// ShapeCircle.
type Shape struct {
	Kind   ShapeKind
	Size   cp.Vector
	Radius float64
}

func AABB(size cp.Vector) Shape {
	return Shape{Kind: ShapeAABB, Size: size}
}

func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// BoxSize returns the size of the smallest axis-aligned box enclosing the
// shape, before scaling.
func (s Shape) BoxSize() cp.Vector {
	switch s.Kind {
	case ShapeAABB:
		return s.Size
	case ShapeCircle:
		return cp.Vector{X: s.Radius * 2, Y: s.Radius * 2}
	default:
		return cp.Vector{}
	}
}

// Alignment anchors a collider box to the transform origin.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignTopLeft
	AlignTopCenter
	AlignTopRight
	AlignCenterLeft
	AlignCenter
	AlignCenterRight
	AlignBottomLeft
	AlignBottomCenter
	AlignBottomRight
)

var alignmentNames = map[string]Alignment{
	"":              AlignNone,
	"none":          AlignNone,
	"top_left":      AlignTopLeft,
	"top_center":    AlignTopCenter,
	"top_right":     AlignTopRight,
	"center_left":   AlignCenterLeft,
	"center":        AlignCenter,
	"center_right":  AlignCenterRight,
	"bottom_left":   AlignBottomLeft,
	"bottom_center": AlignBottomCenter,
	"bottom_right":  AlignBottomRight,
}

func ParseAlignment(s string) (Alignment, error) {
	a, ok := alignmentNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return AlignNone, fmt.Errorf("component: unknown alignment %q", s)
	}
	return a, nil
}

// anchor returns the fraction of the box size the top-left corner sits
// behind the origin on each axis.
func (a Alignment) anchor() (cp.Vector, bool) {
	switch a {
	case AlignTopLeft:
		return cp.Vector{X: 0, Y: 0}, true
	case AlignTopCenter:
		return cp.Vector{X: 0.5, Y: 0}, true
	case AlignTopRight:
		return cp.Vector{X: 1, Y: 0}, true
	case AlignCenterLeft:
		return cp.Vector{X: 0, Y: 0.5}, true
	case AlignCenter:
		return cp.Vector{X: 0.5, Y: 0.5}, true
	case AlignCenterRight:
		return cp.Vector{X: 1, Y: 0.5}, true
	case AlignBottomLeft:
		return cp.Vector{X: 0, Y: 1}, true
	case AlignBottomCenter:
		return cp.Vector{X: 0.5, Y: 1}, true
	case AlignBottomRight:
		return cp.Vector{X: 1, Y: 1}, true
	default:
		return cp.Vector{}, false
	}
}

// Collider places a Shape relative to its owner's transform. Offset is the
// top-left of the enclosing box relative to the transform origin.
type Collider struct {
	Shape     Shape
	Alignment Alignment
	Offset    cp.Vector
	Trigger   bool
	Active    bool
}

// NewCollider returns an active collider with its offset computed for scale.
func NewCollider(shape Shape, alignment Alignment, scale cp.Vector) Collider {
	c := Collider{Shape: shape, Alignment: alignment, Active: true}
	c.UpdateOffset(scale)
	return c
}

// UpdateOffset recomputes Offset from the alignment, box size and scale.
// AlignNone keeps a manually set offset; a degenerate box resets it.
func (c *Collider) UpdateOffset(scale cp.Vector) {
	if c == nil {
		return
	}
	size := c.Shape.BoxSize()
	if size.X <= 0 || size.Y <= 0 {
		c.Offset = cp.Vector{}
		return
	}
	frac, ok := c.Alignment.anchor()
	if !ok {
		return
	}
	c.Offset = cp.Vector{X: -size.X * frac.X * scale.X, Y: -size.Y * frac.Y * scale.Y}
}

// SetAlignment changes the anchor and recomputes the offset.
func (c *Collider) SetAlignment(a Alignment, scale cp.Vector) {
	if c == nil {
		return
	}
	c.Alignment = a
	c.UpdateOffset(scale)
}

// WorldAABB returns the collider's enclosing box in world space.
func (c *Collider) WorldAABB(t *Transform) common.Rect {
	if c == nil || t == nil {
		return common.Rect{}
	}
	return common.Rect{
		Position: t.Position.Add(c.Offset),
		Size:     common.MulVec(c.Shape.BoxSize(), t.Scale),
	}
}

var ColliderComponent = NewComponent[Collider]()
