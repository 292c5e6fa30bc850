// Package physics simulates tile-aware 2D bodies stored in an ecs.World.
//
// The engine never owns entities. Bodies and tile layers are registered as
// entity handles and resolved against the world on every access, so an
// entity destroyed without being unregistered is skipped and forgotten.
package physics

import (
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
)

const (
	// DefaultMaxSpeed caps each velocity component, in pixels per second.
	DefaultMaxSpeed = 500.0

	// tileTolerance keeps the trailing right/bottom edge from sampling the
	// next tile column/row when it sits exactly on a tile boundary.
	tileTolerance = 1.0

	// mtvEpsilon is the overlap below which two solid boxes are treated as
	// merely touching.
	mtvEpsilon = 0.1
)

// DefaultGravity points down; 100 px is roughly one metre.
var DefaultGravity = cp.Vector{X: 0, Y: 980}

// Config holds the tunable engine parameters.
type Config struct {
	Gravity  cp.Vector
	MaxSpeed float64
	// WorldBounds limits the left, top and right edges of every body. Nil
	// leaves the world unbounded.
	WorldBounds *common.Rect
}

func DefaultConfig() Config {
	return Config{Gravity: DefaultGravity, MaxSpeed: DefaultMaxSpeed}
}

// CollisionPair is an overlap between two bodies that the engine did not
// resolve itself.
type CollisionPair struct {
	A ecs.Entity
	B ecs.Entity
}

// TileTriggerEvent reports a body overlapping a trigger tile.
type TileTriggerEvent struct {
	Entity ecs.Entity
	Type   component.TileType
}

// Engine runs the per-frame simulation.
type Engine struct {
	world  *ecs.World
	cfg    Config
	logger *log.Logger

	bodies []ecs.Entity
	layers []ecs.Entity

	contacts map[ecs.Entity]*Contacts

	pairs    []CollisionPair
	triggers []TileTriggerEvent
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "physics"})
}

// NewEngine creates an engine bound to w. A nil world is logged and yields an
// engine whose operations are no-ops.
func NewEngine(w *ecs.World) *Engine {
	e := &Engine{
		world:    w,
		cfg:      DefaultConfig(),
		logger:   newLogger(),
		contacts: make(map[ecs.Entity]*Contacts),
	}
	if w == nil {
		e.logger.Error("engine created without a world; simulation disabled")
	}
	return e
}

// SetLogger replaces the engine logger.
func (e *Engine) SetLogger(l *log.Logger) {
	if e == nil || l == nil {
		return
	}
	e.logger = l
}

func (e *Engine) Config() Config {
	if e == nil {
		return DefaultConfig()
	}
	return e.cfg
}

// ApplyConfig replaces gravity, max speed and world bounds at once.
func (e *Engine) ApplyConfig(cfg Config) {
	if e == nil {
		return
	}
	e.SetGravity(cfg.Gravity)
	e.SetMaxSpeed(cfg.MaxSpeed)
	if cfg.WorldBounds != nil {
		e.SetWorldBounds(*cfg.WorldBounds)
	} else {
		e.ClearWorldBounds()
	}
}

func (e *Engine) SetGravity(g cp.Vector) {
	if e == nil {
		return
	}
	e.cfg.Gravity = g
}

func (e *Engine) Gravity() cp.Vector {
	return e.Config().Gravity
}

// SetMaxSpeed sets the per-axis speed cap. Non-positive values restore the
// default.
func (e *Engine) SetMaxSpeed(s float64) {
	if e == nil {
		return
	}
	if s <= 0 {
		e.logger.Warn("ignoring non-positive max speed", "value", s, "using", DefaultMaxSpeed)
		s = DefaultMaxSpeed
	}
	e.cfg.MaxSpeed = s
}

func (e *Engine) MaxSpeed() float64 {
	return e.Config().MaxSpeed
}

func (e *Engine) SetWorldBounds(r common.Rect) {
	if e == nil {
		return
	}
	e.cfg.WorldBounds = &r
}

func (e *Engine) ClearWorldBounds() {
	if e == nil {
		return
	}
	e.cfg.WorldBounds = nil
}

// WorldBounds returns the configured bounds, if any.
func (e *Engine) WorldBounds() (common.Rect, bool) {
	if e == nil || e.cfg.WorldBounds == nil {
		return common.Rect{}, false
	}
	return *e.cfg.WorldBounds, true
}

// RegisterBody adds an entity carrying a PhysicsBody to the simulation.
// Missing co-components are reported once here; the per-frame steps that
// need them are skipped silently afterwards.
func (e *Engine) RegisterBody(ent ecs.Entity) {
	if e == nil || e.world == nil {
		return
	}
	if slices.Contains(e.bodies, ent) {
		return
	}
	if !ecs.Has(e.world, ent, component.PhysicsBodyComponent.Kind()) {
		e.logger.Warn("registered entity has no physics body", "entity", ent)
	}
	if !ecs.Has(e.world, ent, component.TransformComponent.Kind()) {
		e.logger.Warn("registered body has no transform; movement disabled", "entity", ent)
	}
	if !ecs.Has(e.world, ent, component.ColliderComponent.Kind()) {
		e.logger.Warn("registered body has no collider; collisions disabled", "entity", ent)
	}
	e.bodies = append(e.bodies, ent)
	e.contacts[ent] = &Contacts{}
	e.logger.Debug("body registered", "entity", ent)
}

// UnregisterBody removes a body. Unknown handles are ignored.
func (e *Engine) UnregisterBody(ent ecs.Entity) {
	if e == nil {
		return
	}
	n := len(e.bodies)
	e.bodies = slices.DeleteFunc(e.bodies, func(b ecs.Entity) bool { return b == ent })
	if len(e.bodies) != n {
		delete(e.contacts, ent)
		e.logger.Debug("body unregistered", "entity", ent)
	}
}

// RegisterCollisionLayer adds an entity carrying a TileLayer to tile
// collision and marks the layer as collidable.
func (e *Engine) RegisterCollisionLayer(ent ecs.Entity) {
	if e == nil || e.world == nil {
		return
	}
	if slices.Contains(e.layers, ent) {
		return
	}
	layer, ok := ecs.Get(e.world, ent, component.TileLayerComponent.Kind())
	if !ok {
		e.logger.Warn("collision layer entity has no tile layer", "entity", ent)
	} else {
		layer.Collision = true
	}
	e.layers = append(e.layers, ent)
	e.logger.Debug("collision layer registered", "entity", ent)
}

// UnregisterCollisionLayer removes a layer. Unknown handles are ignored.
func (e *Engine) UnregisterCollisionLayer(ent ecs.Entity) {
	if e == nil {
		return
	}
	n := len(e.layers)
	e.layers = slices.DeleteFunc(e.layers, func(l ecs.Entity) bool { return l == ent })
	if len(e.layers) == n {
		return
	}
	if layer, ok := ecs.Get(e.world, ent, component.TileLayerComponent.Kind()); ok {
		layer.Collision = false
	}
	e.logger.Debug("collision layer unregistered", "entity", ent)
}

// Bodies returns the registered body handles in registration order.
func (e *Engine) Bodies() []ecs.Entity {
	if e == nil {
		return nil
	}
	return slices.Clone(e.bodies)
}

// Layers returns the registered layer handles in registration order.
func (e *Engine) Layers() []ecs.Entity {
	if e == nil {
		return nil
	}
	return slices.Clone(e.layers)
}

// CollisionPairs returns the unresolved overlaps found by the last Update.
// The slice is reused by the next Update.
func (e *Engine) CollisionPairs() []CollisionPair {
	if e == nil {
		return nil
	}
	return e.pairs
}

// TileTriggerEvents returns the trigger tiles touched during the last Update.
// The slice is reused by the next Update.
func (e *Engine) TileTriggerEvents() []TileTriggerEvent {
	if e == nil {
		return nil
	}
	return e.triggers
}

// Contacts returns the contact flags computed for ent by the last Update.
func (e *Engine) Contacts(ent ecs.Entity) Contacts {
	if e == nil {
		return Contacts{}
	}
	if c, ok := e.contacts[ent]; ok && c != nil {
		return *c
	}
	return Contacts{}
}

// bodyRef is one registered body with its co-components resolved for the
// current frame. transform and collider may be nil.
type bodyRef struct {
	entity    ecs.Entity
	body      *component.PhysicsBody
	transform *component.Transform
	collider  *component.Collider
	solid     bool
	contacts  *Contacts
}

func (e *Engine) resolveBody(ent ecs.Entity) (bodyRef, bool) {
	body, ok := ecs.Get(e.world, ent, component.PhysicsBodyComponent.Kind())
	if !ok {
		return bodyRef{}, false
	}
	ref := bodyRef{entity: ent, body: body, contacts: e.contacts[ent]}
	if ref.contacts == nil {
		ref.contacts = &Contacts{}
		e.contacts[ent] = ref.contacts
	}
	ref.transform, _ = ecs.Get(e.world, ent, component.TransformComponent.Kind())
	ref.collider, _ = ecs.Get(e.world, ent, component.ColliderComponent.Kind())
	if tag, ok := ecs.Get(e.world, ent, component.TagComponent.Kind()); ok {
		ref.solid = tag.IsSolid()
	}
	return ref, true
}

// collidable reports whether the body takes part in object and trigger
// checks.
func (r bodyRef) collidable() bool {
	return r.body.Enabled && r.transform != nil && r.collider != nil && r.collider.Active
}

func (e *Engine) pruneDead() {
	dead := func(ent ecs.Entity) bool {
		if ecs.IsAlive(e.world, ent) {
			return false
		}
		delete(e.contacts, ent)
		e.logger.Debug("dropping handle of destroyed entity", "entity", ent)
		return true
	}
	e.bodies = slices.DeleteFunc(e.bodies, dead)
	e.layers = slices.DeleteFunc(e.layers, dead)
}

func (e *Engine) tileLayers() []*component.TileLayer {
	out := make([]*component.TileLayer, 0, len(e.layers))
	for _, ent := range e.layers {
		if layer, ok := ecs.Get(e.world, ent, component.TileLayerComponent.Kind()); ok {
			out = append(out, layer)
		}
	}
	return out
}

// Update advances the simulation by dt seconds. Contact flags, collision
// pairs and trigger events are valid from its return until the next call.
func (e *Engine) Update(dt float64) {
	if e == nil {
		return
	}
	e.pairs = e.pairs[:0]
	e.triggers = e.triggers[:0]
	if e.world == nil {
		return
	}
	e.pruneDead()

	layers := e.tileLayers()
	for _, ent := range e.bodies {
		ref, ok := e.resolveBody(ent)
		if !ok {
			continue
		}
		ref.contacts.reset()
		if !ref.body.Enabled {
			continue
		}

		mass := ref.body.EffectiveMass()
		if ref.body.UseGravity {
			ref.body.AddForce(e.cfg.Gravity.Mult(mass))
		}
		ref.body.Velocity = ref.body.Velocity.Add(ref.body.Force.Mult(dt / mass))
		ref.body.ClearForce()

		e.resolveTileCollisions(ref, layers, dt)
		e.clampVelocity(ref.body)
		e.applyWorldBounds(ref)
	}

	e.checkObjectCollisions()
	e.checkTileTriggers(layers)
}

func (e *Engine) clampVelocity(b *component.PhysicsBody) {
	b.Velocity = common.ClampVec(b.Velocity, -e.cfg.MaxSpeed, e.cfg.MaxSpeed)
}
