package system

import (
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/physics"
)

// HazardSystem consumes the engine's hazard trigger events. Every hit is
// published as EventHazardHit; bodies with a SafeRespawn are sent back to
// the last spot they stood on safely.
type HazardSystem struct {
	engine *physics.Engine
	hit    map[ecs.Entity]bool
}

func NewHazardSystem(engine *physics.Engine) *HazardSystem {
	return &HazardSystem{engine: engine, hit: make(map[ecs.Entity]bool)}
}

func (s *HazardSystem) Update(w *ecs.World) {
	if s == nil || s.engine == nil || w == nil {
		return
	}
	clear(s.hit)

	for _, ev := range s.engine.TileTriggerEvents() {
		if ev.Type != component.TileHazard || s.hit[ev.Entity] {
			continue
		}
		s.hit[ev.Entity] = true
		w.Events().Push(ecs.Event{Type: ecs.EventHazardHit, Entity: ev.Entity, Data: ev.Type})
		Respawn(w, ev.Entity)
	}

	ecs.ForEach(w, component.SafeRespawnComponent.Kind(), func(e ecs.Entity, safe *component.SafeRespawn) {
		if s.hit[e] || !s.engine.Contacts(e).Below() {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		safe.Position = t.Position
		safe.Initialized = true
	})
}
