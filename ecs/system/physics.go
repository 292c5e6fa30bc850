package system

import (
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/physics"
)

// DefaultStep is one tick at 60 ticks per second.
const DefaultStep = 1.0 / 60.0

// PhysicsSystem advances the engine by a fixed step every tick. Systems that
// read contacts, pairs or trigger events must be scheduled after it.
type PhysicsSystem struct {
	engine *physics.Engine
	step   float64
}

func NewPhysicsSystem(engine *physics.Engine, step float64) *PhysicsSystem {
	ps := &PhysicsSystem{engine: engine}
	ps.SetStep(step)
	return ps
}

func (ps *PhysicsSystem) Engine() *physics.Engine {
	if ps == nil {
		return nil
	}
	return ps.engine
}

// SetStep changes the tick length in seconds; non-positive values use
// DefaultStep.
func (ps *PhysicsSystem) SetStep(step float64) {
	if ps == nil {
		return
	}
	if step <= 0 {
		step = DefaultStep
	}
	ps.step = step
}

func (ps *PhysicsSystem) Step() float64 {
	if ps == nil {
		return DefaultStep
	}
	return ps.step
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.engine == nil || w == nil {
		return
	}
	ps.engine.Update(ps.step)
}
