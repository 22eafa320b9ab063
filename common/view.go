package common

import "github.com/go-gl/mathgl/mgl64"

// ToView projects a world point onto the view plane of yaw: u runs along the
// screen-right axis, v is screen-down (negated height). d is the depth along
// the view forward axis.
func ToView(p mgl64.Vec3, yawDeg float64) (u, v, d float64) {
	return p.Dot(Right(yawDeg)), -p.Z(), p.Dot(Forward(yawDeg))
}

// FromView is the inverse of ToView.
func FromView(u, v, d, yawDeg float64) mgl64.Vec3 {
	p := Forward(yawDeg).Mul(d).Add(Right(yawDeg).Mul(u))
	p[2] = -v
	return p
}

// BoxViewRange returns the extent of an axis-aligned box along the
// screen-right axis of yaw.
func BoxViewRange(lo3, hi3 mgl64.Vec3, yawDeg float64) (lo, hi float64) {
	r := Right(yawDeg)
	for i := 0; i < 2; i++ {
		a, b := r[i]*lo3[i], r[i]*hi3[i]
		if a > b {
			a, b = b, a
		}
		lo += a
		hi += b
	}
	return lo, hi
}
