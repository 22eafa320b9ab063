package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// NormalizeDegrees folds an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// WrapDegrees folds an angle into (-180, 180].
func WrapDegrees(deg float64) float64 {
	deg = NormalizeDegrees(deg)
	if deg > 180 {
		deg -= 360
	}
	return deg
}

// DeltaDegrees is the signed shortest turn from one yaw to another.
func DeltaDegrees(from, to float64) float64 {
	return WrapDegrees(to - from)
}

// SnapDegrees rounds to the nearest whole degree and folds into [0, 360).
func SnapDegrees(deg float64) float64 {
	return NormalizeDegrees(math.Round(deg))
}

// Forward is the horizontal unit vector a camera with this yaw looks along.
func Forward(yawDeg float64) mgl64.Vec3 {
	r := mgl64.DegToRad(yawDeg)
	return mgl64.Vec3{cleanZero(math.Cos(r)), cleanZero(math.Sin(r)), 0}
}

// Right is the screen-right axis for a camera with this yaw.
func Right(yawDeg float64) mgl64.Vec3 {
	r := mgl64.DegToRad(yawDeg)
	return mgl64.Vec3{cleanZero(-math.Sin(r)), cleanZero(math.Cos(r)), 0}
}

func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// cleanZero drops the float noise cos/sin leave at quarter turns.
func cleanZero(v float64) float64 {
	if math.Abs(v) < 1e-12 {
		return 0
	}
	return v
}
