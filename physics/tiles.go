package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs/component"
)

// tileMove carries one body's displacement through the axis passes of every
// layer. from is the box position at the start of the frame and never
// changes; to accumulates the corrections.
type tileMove struct {
	ref  bodyRef
	from cp.Vector
	to   cp.Vector
	size cp.Vector
	ds   cp.Vector
}

// resolveTileCollisions moves a body by velocity*dt, stopping it against the
// registered tile layers. X is resolved before Y.
func (e *Engine) resolveTileCollisions(ref bodyRef, layers []*component.TileLayer, dt float64) {
	if ref.transform == nil || ref.collider == nil || ref.collider.Trigger {
		return
	}
	box := ref.collider.WorldAABB(ref.transform)
	if box.Empty() {
		return
	}

	ds := ref.body.Velocity.Mult(dt)
	if !ref.collider.Active {
		ref.transform.Translate(ds)
		return
	}

	m := &tileMove{ref: ref, from: box.Position, to: box.Position.Add(ds), size: box.Size, ds: ds}
	for _, layer := range layers {
		ts := layer.GetTileSize()
		if ts.X <= 0 || ts.Y <= 0 {
			continue
		}
		m.resolveX(layer, ts)
		m.resolveY(layer, ts)
	}

	ref.transform.Translate(m.to.Sub(m.from))
}

func (m *tileMove) resolveX(layer *component.TileLayer, ts cp.Vector) {
	if m.ds.X == 0 {
		return
	}
	rowTop := common.TileCoord(m.from.Y, ts.Y)
	rowBottom := common.TileCoord(m.from.Y+m.size.Y-tileTolerance, ts.Y)

	var col int
	if m.ds.X > 0 {
		col = common.TileCoord(m.to.X+m.size.X, ts.X)
	} else {
		col = common.TileCoord(m.to.X, ts.X)
	}
	top := layer.TileTypeAt(col, rowTop)
	bottom := layer.TileTypeAt(col, rowBottom)

	if top == component.TileSolid || bottom == component.TileSolid {
		m.ref.body.Velocity.X = 0
		if m.ds.X > 0 {
			m.to.X = float64(col)*ts.X - m.size.X
			m.ref.contacts.right = true
		} else {
			m.to.X = float64(col+1) * ts.X
			m.ref.contacts.left = true
		}
		return
	}

	// Not blocked: let the leading bottom corner ride up a slope.
	var width float64
	if m.ds.X > 0 {
		width = m.to.X + m.size.X - float64(col)*ts.X
	} else {
		width = m.to.X - float64(col)*ts.X
	}
	height := SlopeHeight(width, bottom, ts)
	if height <= 0 {
		return
	}
	surface := float64(rowBottom+1)*ts.Y - m.size.Y - height
	if m.to.Y > surface {
		m.to.Y = surface
		m.ref.body.Velocity.Y = 0
		m.ref.contacts.below = true
	}
}

func (m *tileMove) resolveY(layer *component.TileLayer, ts cp.Vector) {
	if m.ds.Y == 0 {
		return
	}
	colLeft := common.TileCoord(m.from.X, ts.X)
	colRight := common.TileCoord(m.from.X+m.size.X-tileTolerance, ts.X)

	if m.ds.Y < 0 {
		row := common.TileCoord(m.to.Y, ts.Y)
		if layer.TileTypeAt(colLeft, row) == component.TileSolid || layer.TileTypeAt(colRight, row) == component.TileSolid {
			m.to.Y = float64(row+1) * ts.Y
			m.ref.body.Velocity.Y = 0
			m.ref.contacts.above = true
		}
		return
	}

	row := common.TileCoord(m.to.Y+m.size.Y, ts.Y)
	left := layer.TileTypeAt(colLeft, row)
	right := layer.TileTypeAt(colRight, row)

	switch {
	case isFloor(left) || isFloor(right):
		m.land(row, ts)
	case left == component.TileLadder && right == component.TileLadder:
		aboveLeft := layer.TileTypeAt(colLeft, row-1)
		aboveRight := layer.TileTypeAt(colRight, row-1)
		if aboveLeft == component.TileLadder || aboveRight == component.TileLadder {
			return
		}
		// Top rung. A climbing body has gravity off and passes through.
		if m.ref.body.UseGravity {
			m.land(row, ts)
			m.ref.contacts.ladderTop = true
		}
	default:
		hl := SlopeHeight(m.from.X-float64(colLeft)*ts.X, left, ts)
		hr := SlopeHeight(m.from.X+m.size.X-float64(colRight)*ts.X, right, ts)
		height := math.Max(hl, hr)
		if height <= 0 {
			return
		}
		surface := float64(row+1)*ts.Y - m.size.Y - height
		if m.to.Y > surface {
			m.to.Y = surface
			m.ref.body.Velocity.Y = 0
			m.ref.contacts.below = true
		}
	}
}

// land puts the box's bottom on the top edge of row.
func (m *tileMove) land(row int, ts cp.Vector) {
	m.to.Y = float64(row)*ts.Y - m.size.Y
	m.ref.body.Velocity.Y = 0
	m.ref.contacts.below = true
}

func isFloor(t component.TileType) bool {
	return t == component.TileSolid || t == component.TileUniSolid
}
