package physics

import "github.com/jakecoffman/cp"

// applyWorldBounds keeps a body's box inside the left, top and right edges of
// the configured bounds. The bottom is open so bodies can fall out of the
// world.
func (e *Engine) applyWorldBounds(ref bodyRef) {
	if e.cfg.WorldBounds == nil || ref.transform == nil || ref.collider == nil {
		return
	}
	box := ref.collider.WorldAABB(ref.transform)
	if box.Empty() {
		return
	}
	bounds := *e.cfg.WorldBounds

	var delta cp.Vector
	if box.Left() < bounds.Left() {
		delta.X = bounds.Left() - box.Left()
		ref.body.Velocity.X = 0
		ref.contacts.left = true
	}
	if box.Top() < bounds.Top() {
		delta.Y = bounds.Top() - box.Top()
		ref.body.Velocity.Y = 0
		ref.contacts.above = true
	}
	// Checked independently of the left edge: a body wider than the bounds
	// ends up flush with the right edge with both flags set.
	if box.Right() > bounds.Right() {
		delta.X = bounds.Right() - box.Right()
		ref.body.Velocity.X = 0
		ref.contacts.right = true
	}

	if delta != (cp.Vector{}) {
		ref.transform.Translate(delta)
	}
}
