package entity

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/levels"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
)

func newTestEngine() (*ecs.World, *physics.Engine) {
	w := ecs.NewWorld()
	e := physics.NewEngine(w)
	e.SetLogger(log.New(io.Discard))
	return w, e
}

func TestBuildBodyPrefabs(t *testing.T) {
	for _, name := range prefabs.BodyNames() {
		t.Run(name, func(t *testing.T) {
			w, engine := newTestEngine()
			e, err := BuildBodyAt(w, engine, name, 100, 50)
			if err != nil {
				t.Fatalf("BuildBodyAt(%s): %v", name, err)
			}
			if len(engine.Bodies()) != 1 || engine.Bodies()[0] != e {
				t.Fatalf("body should be registered, got %v", engine.Bodies())
			}
			tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
			if !ok || tr.Position != (cp.Vector{X: 100, Y: 50}) {
				t.Fatalf("expected transform at (100,50), got %+v", tr)
			}
			if _, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); !ok {
				t.Fatalf("missing collider")
			}
			body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			if !ok || body.EffectiveMass() <= 0 {
				t.Fatalf("missing or invalid body %+v", body)
			}
		})
	}
}

func TestBuildPlayer(t *testing.T) {
	w, engine := newTestEngine()
	e, err := NewPlayerAt(w, engine, 40, 80)
	if err != nil {
		t.Fatalf("NewPlayerAt: %v", err)
	}
	for _, k := range []component.Kind{
		component.PlayerComponent.Kind(),
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.SafeRespawnComponent.Kind(),
	} {
		if ent, ok := w.First(k); !ok || ent != e {
			t.Fatalf("player is missing component %d", k.ID())
		}
	}
	respawn, _ := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
	if !respawn.Initialized || respawn.Position != (cp.Vector{X: 40, Y: 80}) {
		t.Fatalf("respawn should start at the spawn point, got %+v", respawn)
	}
	col, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	box := col.WorldAABB(tr)
	if box.Bottom() != 80 || box.Center().X != 40 {
		t.Fatalf("player collider should be anchored bottom-center, got %+v", box)
	}
}

func TestBuildBodyFromSpecErrors(t *testing.T) {
	w, engine := newTestEngine()

	cases := []struct {
		name    string
		spec    prefabs.BodySpec
		wantErr error
	}{
		{"unknown_shape", prefabs.BodySpec{Name: "blob", Collider: prefabs.ColliderSpec{Shape: "hexagon"}}, ErrUnknownShape},
		{"bad_alignment", prefabs.BodySpec{Name: "box", Collider: prefabs.ColliderSpec{Shape: "aabb", Alignment: "middle"}}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			before := len(ecs.Entities(w))
			_, err := BuildBodyFromSpec(w, engine, &c.spec)
			if err == nil {
				t.Fatalf("expected error")
			}
			if c.wantErr != nil && !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
			if len(ecs.Entities(w)) != before {
				t.Fatalf("failed build should not leak an entity")
			}
			if len(engine.Bodies()) != 0 {
				t.Fatalf("failed build should not register a body")
			}
		})
	}

	if _, err := BuildBodyFromSpec(nil, engine, &prefabs.BodySpec{}); !errors.Is(err, ecs.ErrNilWorld) {
		t.Fatalf("expected ErrNilWorld, got %v", err)
	}
	if _, err := BuildBodyFromSpec(w, nil, &prefabs.BodySpec{}); !errors.Is(err, ErrNilEngine) {
		t.Fatalf("expected ErrNilEngine, got %v", err)
	}
	if _, err := BuildBody(w, engine, "missing.yaml"); err == nil {
		t.Fatalf("expected error for a missing prefab")
	}
}

func TestManualColliderOffset(t *testing.T) {
	w, engine := newTestEngine()
	spec := &prefabs.BodySpec{
		Name:     "probe",
		Collider: prefabs.ColliderSpec{Shape: "aabb", Width: 4, Height: 4, OffsetX: 3, OffsetY: -2},
	}
	e, err := BuildBodyFromSpec(w, engine, spec)
	if err != nil {
		t.Fatalf("BuildBodyFromSpec: %v", err)
	}
	col, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
	if col.Offset != (cp.Vector{X: 3, Y: -2}) {
		t.Fatalf("manual offset not kept, got %v", col.Offset)
	}
	if !col.Active {
		t.Fatalf("collider should default to active")
	}
}

func TestDestroyBody(t *testing.T) {
	w, engine := newTestEngine()
	e, err := BuildBody(w, engine, "crate.yaml")
	if err != nil {
		t.Fatalf("BuildBody: %v", err)
	}
	if !DestroyBody(w, engine, e) {
		t.Fatalf("DestroyBody should report the entity was alive")
	}
	if len(engine.Bodies()) != 0 || ecs.IsAlive(w, e) {
		t.Fatalf("body should be unregistered and destroyed")
	}
	if DestroyBody(w, engine, e) {
		t.Fatalf("second DestroyBody should return false")
	}
}

func TestSetScaleUpdatesColliderOffset(t *testing.T) {
	w, engine := newTestEngine()
	e, err := BuildBody(w, engine, "crate.yaml")
	if err != nil {
		t.Fatalf("BuildBody: %v", err)
	}
	if err := SetScale(w, e, cp.Vector{X: 2, Y: 3}); err != nil {
		t.Fatalf("SetScale: %v", err)
	}
	col, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
	// crate is 16x16 anchored bottom-center.
	if want := (cp.Vector{X: -16, Y: -48}); col.Offset != want {
		t.Fatalf("expected offset %v, got %v", want, col.Offset)
	}

	if err := SetScale(w, ecs.CreateEntity(w), cp.Vector{X: 1, Y: 1}); err == nil {
		t.Fatalf("expected error for entity without transform")
	}
}

func TestSetEntityTransform(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := SetEntityTransform(w, e, 5, 6, 0.5); err != nil {
		t.Fatalf("SetEntityTransform: %v", err)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Position != (cp.Vector{X: 5, Y: 6}) || tr.Scale != (cp.Vector{X: 1, Y: 1}) || tr.Rotation != 0.5 {
		t.Fatalf("unexpected transform %+v", tr)
	}
	if err := SetEntityTransform(w, e, 7, 8, 0); err != nil {
		t.Fatalf("SetEntityTransform: %v", err)
	}
	if tr.Position != (cp.Vector{X: 7, Y: 8}) {
		t.Fatalf("existing transform should be updated in place, got %v", tr.Position)
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("sandbox.json")
	if err != nil {
		t.Fatalf("LoadLevelFromFS: %v", err)
	}
	w, engine := newTestEngine()
	if err := LoadLevelToWorld(w, engine, lvl); err != nil {
		t.Fatalf("LoadLevelToWorld: %v", err)
	}

	layers := w.Query(component.TileLayerComponent.Kind())
	if len(layers) != len(lvl.Layers) {
		t.Fatalf("expected %d layers, got %d", len(lvl.Layers), len(layers))
	}
	if n := len(engine.Layers()); n != 1 {
		t.Fatalf("expected one collision layer, got %d", n)
	}
	ground, _ := ecs.Get(w, engine.Layers()[0], component.TileLayerComponent.Kind())
	if !ground.Collision || ground.TileTypeAt(0, lvl.Height-1) != component.TileSolid {
		t.Fatalf("ground layer not loaded: %+v", ground.Name)
	}

	bounds, ok := engine.WorldBounds()
	if !ok || bounds.Size != (cp.Vector{X: 640, Y: 384}) {
		t.Fatalf("expected level-sized bounds, got %+v", bounds)
	}
	if n := len(engine.Bodies()); n != len(lvl.Entities) {
		t.Fatalf("expected %d bodies, got %d", len(lvl.Entities), n)
	}
	if _, ok := w.First(component.PlayerComponent.Kind()); !ok {
		t.Fatalf("expected a player")
	}

	// The level should settle without anything falling out of it.
	for i := 0; i < 120; i++ {
		engine.Update(1.0 / 60.0)
	}
	for _, e := range engine.Bodies() {
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if tr.Position.Y > 384 {
			t.Fatalf("body %v fell out of the level: %v", e, tr.Position)
		}
	}
}

func TestLoadLevelToWorldErrors(t *testing.T) {
	w, engine := newTestEngine()
	if err := LoadLevelToWorld(w, nil, &levels.Level{}); !errors.Is(err, ErrNilEngine) {
		t.Fatalf("expected ErrNilEngine, got %v", err)
	}
	bad := &levels.Level{Width: 1, Height: 1, TileSize: 32, Layers: [][]int{{99}}}
	if err := LoadLevelToWorld(w, engine, bad); err == nil {
		t.Fatalf("expected error for unknown tile code")
	}
	missing := &levels.Level{Width: 1, Height: 1, TileSize: 32, Entities: []levels.Entity{{Type: "dragon"}}}
	if err := LoadLevelToWorld(w, engine, missing); err == nil {
		t.Fatalf("expected error for unknown entity prefab")
	}
}

func TestApplyPhysicsSpec(t *testing.T) {
	_, engine := newTestEngine()
	engine.SetWorldBounds(common.NewRect(0, 0, 10, 10))

	spec, err := prefabs.LoadPhysicsSpec()
	if err != nil {
		t.Fatalf("LoadPhysicsSpec: %v", err)
	}
	ApplyPhysicsSpec(engine, spec)
	if engine.Gravity() != (cp.Vector{X: 0, Y: 980}) || engine.MaxSpeed() != 500 {
		t.Fatalf("spec not applied: %+v", engine.Config())
	}
	if b, ok := engine.WorldBounds(); !ok || b.Size.X != 10 {
		t.Fatalf("bounds without an override should be kept, got %+v", b)
	}

	spec.WorldBounds = &prefabs.RectSpec{Width: 50, Height: 60}
	ApplyPhysicsSpec(engine, spec)
	if b, _ := engine.WorldBounds(); b.Size != (cp.Vector{X: 50, Y: 60}) {
		t.Fatalf("bounds override not applied, got %+v", b)
	}
}
