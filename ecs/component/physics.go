package component

import "github.com/jakecoffman/cp"

const defaultMass = 1.0

// PhysicsBody stores the per-entity simulation state read and written by the
// physics engine. Contact flags are not stored here; the engine owns them
// and hands out read-only snapshots.
type PhysicsBody struct {
	Velocity   cp.Vector
	Force      cp.Vector
	Mass       float64
	UseGravity bool
	Enabled    bool
}

// NewPhysicsBody returns an enabled body. A non-positive mass falls back to 1.
func NewPhysicsBody(useGravity bool, mass float64) PhysicsBody {
	b := PhysicsBody{UseGravity: useGravity, Enabled: true}
	b.SetMass(mass)
	return b
}

// SetMass stores m, or the default mass when m is not strictly positive.
func (b *PhysicsBody) SetMass(m float64) {
	if b == nil {
		return
	}
	if m > 0 {
		b.Mass = m
		return
	}
	b.Mass = defaultMass
}

// EffectiveMass is the mass used for integration; it is always > 0.
func (b *PhysicsBody) EffectiveMass() float64 {
	if b == nil || b.Mass <= 0 {
		return defaultMass
	}
	return b.Mass
}

// AddForce accumulates f for the next integration step. Disabled bodies
// ignore forces.
func (b *PhysicsBody) AddForce(f cp.Vector) {
	if b == nil || !b.Enabled {
		return
	}
	b.Force = b.Force.Add(f)
}

func (b *PhysicsBody) ClearForce() {
	if b == nil {
		return
	}
	b.Force = cp.Vector{}
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
