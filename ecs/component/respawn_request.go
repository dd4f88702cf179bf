package component

import "github.com/milk9111/goofballs/common"

// RespawnRequest asks RespawnSystem to start a new life at Position. It runs
// after physics so the body can be moved without fighting the solver.
type RespawnRequest struct {
	Position common.Vec3
	Yaw      float64
}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
