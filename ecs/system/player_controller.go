package system

import (
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/physics"
)

const climbDeadzone = 0.5

// PlayerControllerSystem turns input into player velocity. It reads the
// contacts of the previous physics step, so it runs before PhysicsSystem.
type PlayerControllerSystem struct {
	engine *physics.Engine
}

func NewPlayerControllerSystem(engine *physics.Engine) *PlayerControllerSystem {
	return &PlayerControllerSystem{engine: engine}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || p.engine == nil || w == nil {
		return
	}

	entities := w.Query(
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !body.Enabled {
			continue
		}
		contacts := p.engine.Contacts(e)

		body.Velocity.X = input.MoveX * player.MoveSpeed

		if !player.Climbing && wantsClimb(contacts, input) {
			player.Climbing = true
		}
		if player.Climbing && (input.JumpPressed || !(contacts.OnLadder() || contacts.OnLadderTop())) {
			player.Climbing = false
		}

		if player.Climbing {
			body.UseGravity = false
			body.Velocity.Y = input.MoveY * player.ClimbSpeed
			continue
		}

		body.UseGravity = true
		if input.JumpPressed && (contacts.Below() || contacts.OnLadder()) {
			body.Velocity.Y = -player.JumpSpeed
		}
	}
}

// wantsClimb reports whether the player grabs a ladder: up while overlapping
// one, or down while standing on its top rung.
func wantsClimb(c physics.Contacts, in *component.Input) bool {
	if in.JumpPressed {
		return false
	}
	if c.OnLadder() && in.MoveY < -climbDeadzone {
		return true
	}
	return c.OnLadderTop() && in.MoveY > climbDeadzone
}
