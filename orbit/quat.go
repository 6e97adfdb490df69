package orbit

import "github.com/go-gl/mathgl/mgl64"

var (
	AxisX = mgl64.Vec3{1, 0, 0}
	AxisY = mgl64.Vec3{0, 1, 0}
	AxisZ = mgl64.Vec3{0, 0, 1}
)

// AxisAngle returns the rotation of rad radians about axis.
func AxisAngle(axis mgl64.Vec3, rad float64) mgl64.Quat {
	return mgl64.QuatRotate(rad, axis.Normalize())
}

// Compose multiplies rotations left to right, so the last one is applied to
// a vector first.
func Compose(rotations ...mgl64.Quat) mgl64.Quat {
	q := mgl64.QuatIdent()
	for _, r := range rotations {
		q = q.Mul(r)
	}
	return q
}

// Integrate advances orientation q by a body-frame angular velocity over dt seconds.
func Integrate(q mgl64.Quat, angularVelocity mgl64.Vec3, dt float64) mgl64.Quat {
	rate := angularVelocity.Len()
	if rate*dt == 0 {
		return q
	}
	return q.Mul(mgl64.QuatRotate(rate*dt, angularVelocity.Mul(1/rate))).Normalize()
}
