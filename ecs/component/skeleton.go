package component

// Skeleton is the ragdoll body heading. It lags the logical heading and is
// pulled back toward it by a corrective torque so actors wobble without
// falling over.
type Skeleton struct {
	Yaw             float64
	AngularVelocity float64
	TorqueGain      float64
	AngularDamping  float64
}

var SkeletonComponent = NewComponent[Skeleton]()
