package component

type Player struct {
	MoveSpeed  float64
	JumpSpeed  float64
	ClimbSpeed float64
	Climbing   bool
}

var PlayerComponent = NewComponent[Player]()
