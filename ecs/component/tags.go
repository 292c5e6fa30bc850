package component

// TagSolid marks a static obstacle: bodies overlapping it are pushed out
// instead of being reported as a collision pair.
const TagSolid = "solid"

// Tag is a free-form label gameplay code can branch on.
type Tag struct {
	Name string
}

func (t Tag) IsSolid() bool {
	return t.Name == TagSolid
}

var TagComponent = NewComponent[Tag]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
