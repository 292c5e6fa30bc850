package ecs

import "github.com/milk9111/tilephysics/ecs/component"

// Add stores value for e. The world keeps its own copy; use Get to mutate it
// in place.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value T) error {
	if w == nil {
		return ErrNilWorld
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	v := value
	w.storage(kind.ID(), true).Set(e, &v)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.storage(kind.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.storage(kind.ID(), false).Has(e)
}

// Get returns a pointer to the stored component, valid until it is removed.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	raw := w.storage(kind.ID(), false).Get(e)
	if raw == nil {
		return nil, false
	}
	v, ok := raw.(*T)
	return v, ok && v != nil
}

// ForEach calls fn for every entity holding a component of kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	set := w.storage(kind.ID(), false)
	if set == nil || fn == nil {
		return
	}
	ents := append([]Entity(nil), set.Entities()...)
	for _, e := range ents {
		if v, ok := set.Get(e).(*T); ok && v != nil {
			fn(e, v)
		}
	}
}
