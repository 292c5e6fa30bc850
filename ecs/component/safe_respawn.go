package component

import "github.com/jakecoffman/cp"

// SafeRespawn stores the last position where the entity stood on ground
// without touching a hazard.
type SafeRespawn struct {
	Position    cp.Vector
	Initialized bool
}

var SafeRespawnComponent = NewComponent[SafeRespawn]()
