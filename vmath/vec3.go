package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a float64 3D vector; simulation runs in the xy plane with Z kept for cross products
type Vec3 = mgl64.Vec3

// V3 builds a vector from components
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// V2 builds a planar vector with Z = 0
func V2(x, y float64) Vec3 {
	return Vec3{x, y, 0}
}

// Unit axes in world space, Y up
var (
	Up    = Vec3{0, 1, 0}
	Down  = Vec3{0, -1, 0}
	Right = Vec3{1, 0, 0}
	Left  = Vec3{-1, 0, 0}
)

func V3Add(a, b Vec3) Vec3 {
	return a.Add(b)
}

func V3Sub(a, b Vec3) Vec3 {
	return a.Sub(b)
}

func V3Scale(v Vec3, s float64) Vec3 {
	return v.Mul(s)
}

func V3Dot(a, b Vec3) float64 {
	return a.Dot(b)
}

func V3Cross(a, b Vec3) Vec3 {
	return a.Cross(b)
}

func V3Mag(v Vec3) float64 {
	return v.Len()
}

func V3MagSq(v Vec3) float64 {
	return v.LenSqr()
}

// V3Normalize returns the unit vector, or zero for a zero-length input
// mgl64's Normalize divides unconditionally and yields NaN on zero
func V3Normalize(v Vec3) Vec3 {
	mag := v.Len()
	if mag == 0 {
		return Vec3{}
	}
	return v.Mul(1.0 / mag)
}

// V3Distance returns |a - b|
func V3Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// V3Finite reports whether every component is neither NaN nor ±Inf
func V3Finite(v Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

// V3Lerp interpolates a→b by t, unclamped
func V3Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
