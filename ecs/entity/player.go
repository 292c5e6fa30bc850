package entity

import (
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/physics"
)

func NewPlayer(w *ecs.World, engine *physics.Engine) (ecs.Entity, error) {
	return BuildBody(w, engine, "player.yaml")
}

func NewPlayerAt(w *ecs.World, engine *physics.Engine, x, y float64) (ecs.Entity, error) {
	return BuildBodyAt(w, engine, "player.yaml", x, y)
}
