package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat3 is a column-major 3x3 float64 matrix
type Mat3 = mgl64.Mat3

// DegenerateDet is the relative determinant threshold below which M3Inverse refuses to invert
// Scaled by the cube of the mean diagonal magnitude so the test is unit-independent
const DegenerateDet = 1e-12

// M3Identity returns the identity matrix
func M3Identity() Mat3 {
	return mgl64.Ident3()
}

// M3Zero returns the zero matrix
func M3Zero() Mat3 {
	return Mat3{}
}

// M3FromRows builds a matrix from row vectors
func M3FromRows(r0, r1, r2 Vec3) Mat3 {
	return mgl64.Mat3FromRows(r0, r1, r2)
}

// CrossMatrix returns the skew-symmetric matrix R such that R·u == r×u for any u
func CrossMatrix(r Vec3) Mat3 {
	return M3FromRows(
		Vec3{0, -r[2], r[1]},
		Vec3{r[2], 0, -r[0]},
		Vec3{-r[1], r[0], 0},
	)
}

func M3Mul(a, b Mat3) Mat3 {
	return a.Mul3(b)
}

func M3Scale(m Mat3, s float64) Mat3 {
	return m.Mul(s)
}

func M3MulVec(m Mat3, v Vec3) Vec3 {
	return m.Mul3x1(v)
}

func M3Add(a, b Mat3) Mat3 {
	return a.Add(b)
}

func M3Transpose(m Mat3) Mat3 {
	return m.Transpose()
}

// M3Det expands the determinant along the first row
func M3Det(m Mat3) float64 {
	a := func(r, c int) float64 { return m.At(r, c) }
	x := a(0, 0) * (a(1, 1)*a(2, 2) - a(1, 2)*a(2, 1))
	y := a(0, 1) * (a(1, 0)*a(2, 2) - a(1, 2)*a(2, 0))
	z := a(0, 2) * (a(1, 0)*a(2, 1) - a(1, 1)*a(2, 0))
	return x - y + z
}

// M3Inverse inverts by cofactor expansion and 1/det scaling
// Returns ok=false, and the zero matrix, when det is zero relative to the matrix scale or the result is non-finite
func M3Inverse(m Mat3) (Mat3, bool) {
	det := M3Det(m)

	scale := (math.Abs(m.At(0, 0)) + math.Abs(m.At(1, 1)) + math.Abs(m.At(2, 2))) / 3
	if det == 0 || math.Abs(det) <= DegenerateDet*scale*scale*scale {
		return Mat3{}, false
	}

	a := func(r, c int) float64 { return m.At(r, c) }
	adj := M3FromRows(
		Vec3{
			a(1, 1)*a(2, 2) - a(1, 2)*a(2, 1),
			a(0, 2)*a(2, 1) - a(0, 1)*a(2, 2),
			a(0, 1)*a(1, 2) - a(0, 2)*a(1, 1),
		},
		Vec3{
			a(1, 2)*a(2, 0) - a(1, 0)*a(2, 2),
			a(0, 0)*a(2, 2) - a(0, 2)*a(2, 0),
			a(0, 2)*a(1, 0) - a(0, 0)*a(1, 2),
		},
		Vec3{
			a(1, 0)*a(2, 1) - a(1, 1)*a(2, 0),
			a(0, 1)*a(2, 0) - a(0, 0)*a(2, 1),
			a(0, 0)*a(1, 1) - a(0, 1)*a(1, 0),
		},
	)

	inv := adj.Mul(1.0 / det)
	if !M3Finite(inv) {
		return Mat3{}, false
	}
	return inv, true
}

// M3Finite reports whether all nine entries are finite
func M3Finite(m Mat3) bool {
	for _, f := range m {
		if !finite(f) {
			return false
		}
	}
	return true
}
