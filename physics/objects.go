package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

// checkObjectCollisions tests every unordered pair of collidable bodies once.
// A pair with exactly one solid side is pushed apart on the spot, whether or
// not the mover is a trigger; any other overlapping pair is recorded for
// gameplay code.
func (e *Engine) checkObjectCollisions() {
	refs := make([]bodyRef, 0, len(e.bodies))
	for _, ent := range e.bodies {
		ref, ok := e.resolveBody(ent)
		if !ok || !ref.collidable() {
			continue
		}
		refs = append(refs, ref)
	}

	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			a, b := refs[i], refs[j]
			// Placement is recomputed per pair since an earlier push-out may
			// have moved either body.
			if !CheckCollision(Place(a.collider, a.transform), Place(b.collider, b.transform)) {
				continue
			}
			switch {
			case a.solid && !b.solid:
				e.resolveSolidObject(b, a)
			case b.solid && !a.solid:
				e.resolveSolidObject(a, b)
			default:
				e.pairs = append(e.pairs, CollisionPair{A: a.entity, B: b.entity})
			}
		}
	}
}

// resolveSolidObject pushes mover out of solid along the axis of least
// overlap. Only the mover is displaced.
func (e *Engine) resolveSolidObject(mover, solid bodyRef) {
	mb := Place(mover.collider, mover.transform).Box()
	sb := Place(solid.collider, solid.transform).Box()

	delta := mb.Center().Sub(sb.Center())
	half := mb.Size.Add(sb.Size).Mult(0.5)
	overlap := half.Sub(common.AbsVec(delta))
	if overlap.X < mtvEpsilon && overlap.Y < mtvEpsilon {
		return
	}

	vel := &mover.body.Velocity
	if overlap.X < overlap.Y {
		dir := sign(delta.X)
		mover.transform.Translate(cp.Vector{X: dir * overlap.X})
		// Velocity pointing opposite to the push direction points into the
		// solid.
		if vel.X*dir < 0 {
			vel.X = 0
			if dir < 0 {
				mover.contacts.right = true
			} else {
				mover.contacts.left = true
			}
		}
		return
	}

	dir := sign(delta.Y)
	mover.transform.Translate(cp.Vector{Y: dir * overlap.Y})
	if vel.Y*dir < 0 {
		vel.Y = 0
		if dir < 0 {
			mover.contacts.below = true
		} else {
			mover.contacts.above = true
		}
	}
}

// sign returns -1 for negative values and 1 otherwise, so a mover centred
// exactly on the solid is pushed toward +X/+Y.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
