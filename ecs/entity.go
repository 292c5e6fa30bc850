package ecs

import "fmt"

// Entity packs a slot and a generation into one value so physics code can
// keep handles across frames. Slot ids start at 1; the zero Entity is never
// issued. Destroying an entity bumps its slot's generation, which turns every
// handle still held by the engine or a system into a stale one that IsAlive
// rejects.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

const (
	entityIDBits = 32
	entityIDMask = 1<<entityIDBits - 1
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(gen)<<entityIDBits | Entity(id)
}

func (e Entity) id() entityID {
	return entityID(e & entityIDMask)
}

func (e Entity) generation() generation {
	return generation(e >> entityIDBits)
}

// String prints slot and generation, e.g. "3v1", which is how handles show
// up in engine log lines.
func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.id(), e.generation())
}

// Valid reports whether e names a slot at all. It says nothing about
// liveness; use IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() != 0
}
