package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
)

var (
	ErrNilEngine    = errors.New("entity: nil physics engine")
	ErrUnknownShape = errors.New("entity: unknown collider shape")
)

type componentBuildFn func(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error

// Order matters: the collider offset is computed from the transform scale.
var bodyBuilders = []struct {
	name  string
	build componentBuildFn
}{
	{"transform", addTransform},
	{"collider", addCollider},
	{"physics_body", addPhysicsBody},
	{"tag", addTag},
	{"player", addPlayer},
	{"script", addScript},
}

// BuildBody creates an entity from a body prefab and registers it with the
// engine.
func BuildBody(w *ecs.World, engine *physics.Engine, prefabPath string) (ecs.Entity, error) {
	spec, err := prefabs.LoadBodySpec(prefabPath)
	if err != nil {
		return 0, err
	}
	return BuildBodyFromSpec(w, engine, spec)
}

// BuildBodyAt is BuildBody with the prefab position replaced by (x, y).
func BuildBodyAt(w *ecs.World, engine *physics.Engine, prefabPath string, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadBodySpec(prefabPath)
	if err != nil {
		return 0, err
	}
	spec.Transform.X = x
	spec.Transform.Y = y
	return BuildBodyFromSpec(w, engine, spec)
}

func BuildBodyFromSpec(w *ecs.World, engine *physics.Engine, spec *prefabs.BodySpec) (ecs.Entity, error) {
	if w == nil {
		return 0, ecs.ErrNilWorld
	}
	if engine == nil {
		return 0, ErrNilEngine
	}
	if spec == nil {
		return 0, fmt.Errorf("entity: nil body spec")
	}

	e := ecs.CreateEntity(w)
	for _, b := range bodyBuilders {
		if err := b.build(w, e, spec); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("%s: %s: %w", spec.Name, b.name, err)
		}
	}
	engine.RegisterBody(e)
	return e, nil
}

// DestroyBody unregisters e from the engine and destroys it.
func DestroyBody(w *ecs.World, engine *physics.Engine, e ecs.Entity) bool {
	engine.UnregisterBody(e)
	return ecs.DestroyEntity(w, e)
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		nt := component.NewTransform(cp.Vector{X: x, Y: y})
		nt.Rotation = rotation
		return ecs.Add(w, e, component.TransformComponent.Kind(), nt)
	}
	t.Position = cp.Vector{X: x, Y: y}
	t.Rotation = rotation
	return nil
}

// SetScale rescales e and keeps its collider anchored.
func SetScale(w *ecs.World, e ecs.Entity, scale cp.Vector) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("entity: set scale on %v: no transform", e)
	}
	t.Scale = scale
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		c.UpdateOffset(scale)
	}
	return nil
}

func addTransform(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error {
	t := component.NewTransform(cp.Vector{X: spec.Transform.X, Y: spec.Transform.Y})
	if spec.Transform.ScaleX != 0 {
		t.Scale.X = spec.Transform.ScaleX
	}
	if spec.Transform.ScaleY != 0 {
		t.Scale.Y = spec.Transform.ScaleY
	}
	t.Rotation = spec.Transform.Rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addCollider(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error {
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	c, err := colliderFromSpec(spec.Collider, t.Scale)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), c)
}

func colliderFromSpec(cs prefabs.ColliderSpec, scale cp.Vector) (component.Collider, error) {
	var shape component.Shape
	switch strings.ToLower(strings.TrimSpace(cs.Shape)) {
	case "aabb", "box", "":
		shape = component.AABB(cp.Vector{X: cs.Width, Y: cs.Height})
	case "circle":
		shape = component.Circle(cs.Radius)
	default:
		return component.Collider{}, fmt.Errorf("%w: %q", ErrUnknownShape, cs.Shape)
	}

	align, err := component.ParseAlignment(cs.Alignment)
	if err != nil {
		return component.Collider{}, err
	}

	c := component.NewCollider(shape, align, scale)
	if align == component.AlignNone {
		c.Offset = cp.Vector{X: cs.OffsetX, Y: cs.OffsetY}
	}
	c.Trigger = cs.Trigger
	c.Active = cs.IsActive()
	return c, nil
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error {
	b := component.NewPhysicsBody(spec.Body.UseGravity, spec.Body.Mass)
	b.Enabled = spec.Body.IsEnabled()
	b.Velocity = cp.Vector{X: spec.Body.Velocity.X, Y: spec.Body.Velocity.Y}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), b)
}

func addTag(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error {
	if spec.Tag == "" {
		return nil
	}
	return ecs.Add(w, e, component.TagComponent.Kind(), component.Tag{Name: spec.Tag})
}

func addPlayer(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error {
	if spec.Player == nil {
		return nil
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), component.PlayerTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), component.Input{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.SafeRespawnComponent.Kind(), component.SafeRespawn{
		Position:    cp.Vector{X: spec.Transform.X, Y: spec.Transform.Y},
		Initialized: true,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), component.Player{
		MoveSpeed:  spec.Player.MoveSpeed,
		JumpSpeed:  spec.Player.JumpSpeed,
		ClimbSpeed: spec.Player.ClimbSpeed,
	})
}

func addScript(w *ecs.World, e ecs.Entity, spec *prefabs.BodySpec) error {
	if spec.Script == "" {
		return nil
	}
	return ecs.Add(w, e, component.CollisionScriptComponent.Kind(), component.CollisionScript{Path: spec.Script})
}
