package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys a world's storage map. Zero is reserved for the invalid
// kind.
type ComponentID uint32

var lastComponentID atomic.Uint32

// Kind lets queries mix kinds of different component types, e.g. the
// transform, collider and body a physics query needs together.
type Kind interface {
	ID() ComponentID
}

// ComponentKind is the typed key used by ecs.Add/Get/Has/Remove.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind allocates a fresh id. Kinds are created once, at package
// init, by NewComponent.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(lastComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

// Valid is false for the zero ComponentKind.
func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// ComponentHandle is the package-level registration of a component type,
// such as PhysicsBodyComponent or TileLayerComponent.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
