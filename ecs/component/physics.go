package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Chipmunk simulates the floor plane; vertical motion is integrated
// separately in VerticalVelocity against the ground height.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool

	VerticalVelocity float64
	Grounded         bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
