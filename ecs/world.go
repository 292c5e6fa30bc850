package ecs

import (
	"errors"

	"github.com/milk9111/tilephysics/ecs/component"
)

var ErrNilWorld = errors.New("ecs: world is nil")

// World owns entities and their component storages.
type World struct {
	entities   entityStore
	components map[component.ComponentID]*SparseSet
	events     EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{components: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity marks an entity as dead and drops all of its components.
// Handles held elsewhere stay safe to use; they simply stop resolving.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, set := range w.components {
		set.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) storage(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	set := w.components[id]
	if set == nil && create {
		if w.components == nil {
			w.components = make(map[component.ComponentID]*SparseSet)
		}
		set = &SparseSet{}
		w.components[id] = set
	}
	return set
}
