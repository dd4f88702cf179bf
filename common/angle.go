package common

import "math"

// Headings are yaw angles in radians around the up axis. Yaw 0 faces +Z and
// positive yaw turns toward +X.

// YawOf returns the heading of a direction on the XZ plane.
func YawOf(dir Vec3) float64 {
	return math.Atan2(dir.X, dir.Z)
}

// Forward returns the unit XZ direction for a heading.
func Forward(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// WrapAngle maps an angle into (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// DeltaAngle is the signed shortest rotation from a to b.
func DeltaAngle(a, b float64) float64 {
	return WrapAngle(b - a)
}

// LerpAngle interpolates along the shortest arc, so headings never spin the
// long way round.
func LerpAngle(a, b, t float64) float64 {
	return WrapAngle(a + DeltaAngle(a, b)*Clamp01(t))
}

func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
