package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
)

// Respawn moves e back to its last safe position and stops it. It reports
// false when e has no initialized SafeRespawn.
func Respawn(w *ecs.World, e ecs.Entity) bool {
	safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
	if !ok || !safe.Initialized {
		return false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	t.Position = safe.Position

	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Velocity = cp.Vector{}
		body.ClearForce()
	}
	if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		player.Climbing = false
	}

	w.Events().Push(ecs.Event{Type: ecs.EventRespawned, Entity: e, Data: safe.Position})
	return true
}
