package system

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
)

const collisionDispatchScript = `
if __phase == "collision" {
	on_collision(__engine, __a, __b)
}
`

// ScriptLoader returns the source of a script by name.
type ScriptLoader func(name string) ([]byte, error)

// CollisionScriptSystem hands every unresolved collision pair to the tengo
// scripts of the entities involved. A script defines
// on_collision(engine, a, b) and uses the engine functions to inspect and
// push the bodies.
type CollisionScriptSystem struct {
	engine *physics.Engine
	load   ScriptLoader
	cache  map[string]*scriptRuntime
}

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	err      error
}

// NewCollisionScriptSystem loads scripts with load, or from the prefabs
// package when load is nil.
func NewCollisionScriptSystem(engine *physics.Engine, load ScriptLoader) *CollisionScriptSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &CollisionScriptSystem{
		engine: engine,
		load:   load,
		cache:  make(map[string]*scriptRuntime),
	}
}

// Reload drops every compiled script so edited sources are picked up on the
// next collision.
func (s *CollisionScriptSystem) Reload() {
	if s == nil {
		return
	}
	clear(s.cache)
}

func (s *CollisionScriptSystem) Update(w *ecs.World) {
	if s == nil || s.engine == nil || w == nil {
		return
	}

	var engine *tengo.ImmutableMap
	for _, pair := range s.engine.CollisionPairs() {
		paths := scriptPaths(w, pair.A, pair.B)
		if len(paths) == 0 {
			continue
		}
		if engine == nil {
			engine = buildCollisionScriptEngine(w)
		}
		for _, path := range paths {
			rt := s.runtime(path)
			if rt.err != nil {
				continue
			}
			if err := rt.run(engine, pair); err != nil {
				log.Warn("collision script failed", "script", path, "a", pair.A, "b", pair.B, "err", err)
			}
		}
	}
}

// scriptPaths returns the distinct scripts attached to a and b.
func scriptPaths(w *ecs.World, a, b ecs.Entity) []string {
	var out []string
	for _, e := range []ecs.Entity{a, b} {
		sc, ok := ecs.Get(w, e, component.CollisionScriptComponent.Kind())
		if !ok || strings.TrimSpace(sc.Path) == "" {
			continue
		}
		if len(out) == 1 && out[0] == sc.Path {
			continue
		}
		out = append(out, sc.Path)
	}
	return out
}

func (s *CollisionScriptSystem) runtime(path string) *scriptRuntime {
	if rt, ok := s.cache[path]; ok {
		return rt
	}
	rt := &scriptRuntime{path: path}
	rt.compiled, rt.err = s.compile(path)
	if rt.err != nil {
		log.Error("collision script disabled", "script", path, "err", rt.err)
	}
	s.cache[path] = rt
	return rt
}

func (s *CollisionScriptSystem) compile(path string) (*tengo.Compiled, error) {
	src, err := s.load(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + collisionDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__a", 0)
	_ = script.Add("__b", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}

func (rt *scriptRuntime) run(engine *tengo.ImmutableMap, pair physics.CollisionPair) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", "collision"); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__a", int64(pair.A)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__b", int64(pair.B)); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildCollisionScriptEngine(w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["get_tag"] = &tengo.UserFunction{Name: "get_tag", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok {
			return &tengo.String{}, nil
		}
		tag, ok := ecs.Get(w, e, component.TagComponent.Kind())
		if !ok {
			return &tengo.String{}, nil
		}
		return &tengo.String{Value: tag.Name}, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok {
			return vectorObject(cp.Vector{}), nil
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return vectorObject(cp.Vector{}), nil
		}
		return vectorObject(t.Position), nil
	}}

	values["get_velocity"] = &tengo.UserFunction{Name: "get_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok {
			return vectorObject(cp.Vector{}), nil
		}
		b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			return vectorObject(cp.Vector{}), nil
		}
		return vectorObject(b.Velocity), nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok || len(args) < 3 {
			return tengo.FalseValue, nil
		}
		x, xok := tengo.ToFloat64(args[1])
		y, yok := tengo.ToFloat64(args[2])
		if !xok || !yok {
			return tengo.FalseValue, nil
		}
		b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		b.Velocity = cp.Vector{X: x, Y: y}
		return tengo.TrueValue, nil
	}}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		e, _ := entityArg(args, 1)
		w.Events().Push(ecs.Event{Type: ecs.EventScriptSignal, Entity: e, Data: name})
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func entityArg(args []tengo.Object, i int) (ecs.Entity, bool) {
	if i >= len(args) {
		return 0, false
	}
	id, ok := tengo.ToInt64(args[i])
	if !ok || id <= 0 {
		return 0, false
	}
	e := ecs.Entity(id)
	return e, e.Valid()
}

func vectorObject(v cp.Vector) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
