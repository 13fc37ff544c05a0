package physics

import (
	"github.com/lixenwraith/pbd/vmath"
)

// DampVelocities pulls each dynamic vertex velocity of b toward rigid motion of the body
// (Müller et al. 2006, §3.5): Δv_i = (v_cm - v_i) + ω × r_i, v_i += k·Δv_i
// Linear momentum is preserved exactly; angular momentum is preserved when the inertia tensor is invertible
// Anchors (w == 0) are excluded from every sum
// Returns false when ω had to be zeroed because the inertia tensor was singular
func DampVelocities(b *Body, k float64) bool {
	var (
		mass float64
		xcm  vmath.Vec3
		vcm  vmath.Vec3
		n    int
	)
	for _, v := range b.vertices {
		if v.IsAnchor() {
			continue
		}
		mass += v.mass
		xcm = xcm.Add(v.pos.Mul(v.mass))
		vcm = vcm.Add(v.vel.Mul(v.mass))
		n++
	}
	// A lone vertex already moves rigidly
	if n < 2 || mass == 0 {
		return true
	}
	xcm = xcm.Mul(1.0 / mass)
	vcm = vcm.Mul(1.0 / mass)

	// Angular momentum L and inertia I about the center of mass
	var (
		angular vmath.Vec3
		inertia vmath.Mat3
	)
	for _, v := range b.vertices {
		if v.IsAnchor() {
			continue
		}
		r := v.pos.Sub(xcm)
		angular = angular.Add(r.Cross(v.vel.Mul(v.mass)))

		rx := vmath.CrossMatrix(r)
		inertia = inertia.Add(rx.Mul3(rx.Transpose()).Mul(v.mass))
	}

	// Collinear planar offsets leave I singular: no defined rotation, keep only the linear term
	var omega vmath.Vec3
	invertible := false
	if inv, ok := vmath.M3Inverse(inertia); ok {
		omega = inv.Mul3x1(angular)
		if vmath.V3Finite(omega) {
			invertible = true
		} else {
			omega = vmath.Vec3{}
		}
	}

	for _, v := range b.vertices {
		if v.IsAnchor() {
			continue
		}
		r := v.pos.Sub(xcm)
		dv := vcm.Sub(v.vel).Add(omega.Cross(r))
		v.vel = v.vel.Add(dv.Mul(k))
	}

	return invertible
}
