package component

// CollisionScript names the tengo script run when the entity ends up in an
// unresolved collision pair.
type CollisionScript struct {
	Path string
}

var CollisionScriptComponent = NewComponent[CollisionScript]()
