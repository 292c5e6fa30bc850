package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
)

// ApplyPhysicsSpec pushes a physics.yaml spec into the engine. World bounds
// are only replaced when the spec sets them, so level bounds survive a
// reload.
func ApplyPhysicsSpec(engine *physics.Engine, spec *prefabs.PhysicsSpec) {
	if engine == nil || spec == nil {
		return
	}
	engine.SetGravity(cp.Vector{X: spec.Gravity.X, Y: spec.Gravity.Y})
	engine.SetMaxSpeed(spec.MaxSpeed)
	if b := spec.WorldBounds; b != nil {
		engine.SetWorldBounds(common.NewRect(b.X, b.Y, b.Width, b.Height))
	}
}
