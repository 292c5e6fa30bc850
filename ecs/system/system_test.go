package system

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/ecs/entity"
	"github.com/milk9111/tilephysics/physics"
)

type fixedInput component.Input

func (f *fixedInput) Sample() component.Input { return component.Input(*f) }

func newTestEngine() (*ecs.World, *physics.Engine) {
	w := ecs.NewWorld()
	e := physics.NewEngine(w)
	e.SetLogger(log.New(io.Discard))
	return w, e
}

// addFloor registers a 10x10 layer of 32px tiles with a solid floor on row 5
// plus the given extra tiles.
func addFloor(t *testing.T, w *ecs.World, engine *physics.Engine, extra map[[2]int]component.TileType) {
	t.Helper()
	layer := component.NewTileLayer("floor", cp.Vector{X: 32, Y: 32}, 10, 10)
	for x := 0; x < 10; x++ {
		layer.SetTile(x, 5, component.TileSolid)
	}
	for xy, tile := range extra {
		layer.SetTile(xy[0], xy[1], tile)
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TileLayerComponent.Kind(), layer); err != nil {
		t.Fatalf("add layer: %v", err)
	}
	engine.RegisterCollisionLayer(e)
}

func addBox(t *testing.T, w *ecs.World, engine *physics.Engine, pos, size cp.Vector, tag string) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(pos)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), tr); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), component.NewPhysicsBody(false, 1)); err != nil {
		t.Fatalf("add body: %v", err)
	}
	col := component.NewCollider(component.AABB(size), component.AlignTopLeft, tr.Scale)
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), col); err != nil {
		t.Fatalf("add collider: %v", err)
	}
	if tag != "" {
		if err := ecs.Add(w, e, component.TagComponent.Kind(), component.Tag{Name: tag}); err != nil {
			t.Fatalf("add tag: %v", err)
		}
	}
	engine.RegisterBody(e)
	return e
}

func newPlayer(t *testing.T, w *ecs.World, engine *physics.Engine, x, y float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayerAt(w, engine, x, y)
	if err != nil {
		t.Fatalf("NewPlayerAt: %v", err)
	}
	return e
}

func setInput(t *testing.T, w *ecs.World, e ecs.Entity, in component.Input) {
	t.Helper()
	input, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no input", e)
	}
	*input = in
}

func bodyOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.PhysicsBody {
	t.Helper()
	b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no body", e)
	}
	return b
}

func TestPhysicsSystemStep(t *testing.T) {
	w, engine := newTestEngine()
	ps := NewPhysicsSystem(engine, 0)
	if ps.Step() != DefaultStep {
		t.Fatalf("expected default step, got %v", ps.Step())
	}
	ps.SetStep(-1)
	if ps.Step() != DefaultStep {
		t.Fatalf("negative step should fall back to default, got %v", ps.Step())
	}
	if ps.Engine() != engine {
		t.Fatalf("Engine() should return the wrapped engine")
	}

	e := addBox(t, w, engine, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 8, Y: 8}, "")
	bodyOf(t, w, e).Velocity = cp.Vector{X: 60}
	ps.Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if math.Abs(tr.Position.X-11) > 1e-9 || tr.Position.Y != 10 {
		t.Fatalf("expected body at (11,10) after one step, got %+v", tr.Position)
	}
}

func TestInputSystemWritesEveryInput(t *testing.T) {
	w := ecs.NewWorld()
	src := &fixedInput{MoveX: 1, JumpPressed: true}
	sys := NewInputSystem(src)

	var ents []ecs.Entity
	for i := 0; i < 2; i++ {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.InputComponent.Kind(), component.Input{}); err != nil {
			t.Fatalf("add input: %v", err)
		}
		ents = append(ents, e)
	}
	sys.Update(w)

	for _, e := range ents {
		in, _ := ecs.Get(w, e, component.InputComponent.Kind())
		if in.MoveX != 1 || !in.JumpPressed {
			t.Fatalf("entity %v did not receive the sampled input: %+v", e, in)
		}
	}
}

func TestPlayerControllerJump(t *testing.T) {
	tests := []struct {
		name   string
		y      float64
		jumped bool
	}{
		{name: "grounded", y: 160, jumped: true},
		{name: "airborne", y: 64, jumped: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, engine := newTestEngine()
			addFloor(t, w, engine, nil)
			player := newPlayer(t, w, engine, 40, tc.y)
			engine.Update(DefaultStep)

			setInput(t, w, player, component.Input{MoveX: 1, JumpPressed: true})
			NewPlayerControllerSystem(engine).Update(w)

			body := bodyOf(t, w, player)
			if body.Velocity.X != 160 {
				t.Fatalf("expected run speed 160, got %v", body.Velocity.X)
			}
			if jumped := body.Velocity.Y == -380; jumped != tc.jumped {
				t.Fatalf("jumped = %v, want %v (vel %+v)", jumped, tc.jumped, body.Velocity)
			}
		})
	}
}

func TestPlayerControllerLadder(t *testing.T) {
	w, engine := newTestEngine()
	ladder := map[[2]int]component.TileType{
		{2, 2}: component.TileLadder,
		{2, 3}: component.TileLadder,
		{2, 4}: component.TileLadder,
	}
	addFloor(t, w, engine, ladder)
	player := newPlayer(t, w, engine, 80, 160)
	engine.Update(DefaultStep)
	if c := engine.Contacts(player); !c.OnLadder() || !c.Below() {
		t.Fatalf("player should stand on the floor inside the ladder, got %+v", c)
	}

	ctrl := NewPlayerControllerSystem(engine)
	setInput(t, w, player, component.Input{MoveY: -1})
	ctrl.Update(w)

	body := bodyOf(t, w, player)
	state, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !state.Climbing || body.UseGravity || body.Velocity.Y != -100 {
		t.Fatalf("up on a ladder should start climbing, got climbing=%v gravity=%v vel=%+v", state.Climbing, body.UseGravity, body.Velocity)
	}

	setInput(t, w, player, component.Input{JumpPressed: true})
	ctrl.Update(w)
	if state.Climbing || !body.UseGravity || body.Velocity.Y != -380 {
		t.Fatalf("jump should leave the ladder, got climbing=%v gravity=%v vel=%+v", state.Climbing, body.UseGravity, body.Velocity)
	}
}

func TestHazardRespawn(t *testing.T) {
	w, engine := newTestEngine()
	addFloor(t, w, engine, map[[2]int]component.TileType{{2, 4}: component.TileHazard})
	player := newPlayer(t, w, engine, 40, 160)
	hazards := NewHazardSystem(engine)

	engine.Update(DefaultStep)
	hazards.Update(w)
	safe, _ := ecs.Get(w, player, component.SafeRespawnComponent.Kind())
	if safe.Position != (cp.Vector{X: 40, Y: 160}) {
		t.Fatalf("safe position should track the grounded player, got %+v", safe.Position)
	}
	if evs := w.Events().Drain(); len(evs) != 0 {
		t.Fatalf("expected no events on safe ground, got %+v", evs)
	}

	if err := entity.SetEntityTransform(w, player, 80, 160, 0); err != nil {
		t.Fatalf("SetEntityTransform: %v", err)
	}
	engine.Update(DefaultStep)
	hazards.Update(w)

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.Position != (cp.Vector{X: 40, Y: 160}) {
		t.Fatalf("player should respawn at (40,160), got %+v", tr.Position)
	}
	if safe.Position != (cp.Vector{X: 40, Y: 160}) {
		t.Fatalf("a hit must not move the safe position, got %+v", safe.Position)
	}
	evs := w.Events().Drain()
	if len(evs) != 2 || evs[0].Type != ecs.EventHazardHit || evs[1].Type != ecs.EventRespawned {
		t.Fatalf("expected hazard hit then respawn, got %+v", evs)
	}
	if evs[0].Entity != player || evs[1].Entity != player {
		t.Fatalf("events should name the player, got %+v", evs)
	}
}

func TestRespawnWithoutSafePosition(t *testing.T) {
	w, engine := newTestEngine()
	e := addBox(t, w, engine, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 8, Y: 8}, "")
	if Respawn(w, e) {
		t.Fatalf("Respawn should fail without a SafeRespawn")
	}
	if w.Events().Len() != 0 {
		t.Fatalf("no event expected")
	}
}

func TestCollisionScriptKicksBall(t *testing.T) {
	w, engine := newTestEngine()
	ball := addBox(t, w, engine, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 12, Y: 12}, "ball")
	other := addBox(t, w, engine, cp.Vector{X: 14, Y: 10}, cp.Vector{X: 12, Y: 12}, "player")
	if err := ecs.Add(w, ball, component.CollisionScriptComponent.Kind(), component.CollisionScript{Path: "collision.tengo"}); err != nil {
		t.Fatalf("add script: %v", err)
	}

	engine.Update(DefaultStep)
	if len(engine.CollisionPairs()) != 1 {
		t.Fatalf("expected one collision pair, got %+v", engine.CollisionPairs())
	}
	NewCollisionScriptSystem(engine, nil).Update(w)

	if v := bodyOf(t, w, ball).Velocity; v != (cp.Vector{X: -220, Y: -260}) {
		t.Fatalf("ball should be kicked away from the player, got %+v", v)
	}
	if v := bodyOf(t, w, other).Velocity; v != (cp.Vector{}) {
		t.Fatalf("other body should not move, got %+v", v)
	}
	evs := w.Events().Drain()
	if len(evs) != 1 || evs[0].Type != ecs.EventScriptSignal || evs[0].Entity != ball || evs[0].Data != "kick" {
		t.Fatalf("expected one kick signal for the ball, got %+v", evs)
	}
}

func TestCollisionScriptCachesCompileErrors(t *testing.T) {
	w, engine := newTestEngine()
	a := addBox(t, w, engine, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 12, Y: 12}, "")
	b := addBox(t, w, engine, cp.Vector{X: 14, Y: 10}, cp.Vector{X: 12, Y: 12}, "")
	for _, e := range []ecs.Entity{a, b} {
		if err := ecs.Add(w, e, component.CollisionScriptComponent.Kind(), component.CollisionScript{Path: "broken.tengo"}); err != nil {
			t.Fatalf("add script: %v", err)
		}
	}

	loads := 0
	sys := NewCollisionScriptSystem(engine, func(name string) ([]byte, error) {
		loads++
		if name != "broken.tengo" {
			return nil, errors.New("unexpected script")
		}
		return []byte("on_collision := func(engine, a, b {"), nil
	})

	for i := 0; i < 3; i++ {
		engine.Update(DefaultStep)
		sys.Update(w)
	}
	if loads != 1 {
		t.Fatalf("a shared broken script should load once, got %d", loads)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("broken script must not emit events")
	}

	sys.Reload()
	engine.Update(DefaultStep)
	sys.Update(w)
	if loads != 2 {
		t.Fatalf("Reload should drop the cache, got %d loads", loads)
	}
}

func TestCollisionScriptSkipsPairsWithoutScripts(t *testing.T) {
	w, engine := newTestEngine()
	addBox(t, w, engine, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 12, Y: 12}, "")
	addBox(t, w, engine, cp.Vector{X: 14, Y: 10}, cp.Vector{X: 12, Y: 12}, "")

	sys := NewCollisionScriptSystem(engine, func(string) ([]byte, error) {
		t.Fatalf("no script should be loaded")
		return nil, nil
	})
	engine.Update(DefaultStep)
	sys.Update(w)
}
