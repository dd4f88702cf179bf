package component

import "github.com/milk9111/goofballs/common"

// Transform is the world pose. Physics owns Position for bodies it simulates.
type Transform struct {
	Position common.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]()

// Forward is the unit facing direction on the floor plane.
func (t *Transform) Forward() common.Vec3 {
	return common.Forward(t.Yaw)
}
