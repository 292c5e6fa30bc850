package physics

// Contacts is a read-only snapshot of the contact flags the engine computed
// for one body during the last Update.
type Contacts struct {
	below     bool
	above     bool
	left      bool
	right     bool
	ladder    bool
	ladderTop bool
}

func (c Contacts) Below() bool { return c.below }
func (c Contacts) Above() bool { return c.above }
func (c Contacts) Left() bool  { return c.left }
func (c Contacts) Right() bool { return c.right }

// OnLadder reports whether the body overlapped a ladder tile.
func (c Contacts) OnLadder() bool { return c.ladder }

// OnLadderTop reports whether the body is standing on the topmost tile of a
// ladder.
func (c Contacts) OnLadderTop() bool { return c.ladderTop }

// Any reports whether any directional flag is set.
func (c Contacts) Any() bool {
	return c.below || c.above || c.left || c.right
}

func (c *Contacts) reset() {
	*c = Contacts{}
}
