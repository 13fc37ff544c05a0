package vmath

import (
	"math"
	"testing"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func vecApprox(a, b Vec3, tol float64) bool {
	return approx(a[0], b[0], tol) && approx(a[1], b[1], tol) && approx(a[2], b[2], tol)
}

func TestVectorOps(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	if got := V3Add(a, b); got != V3(5, -3, 9) {
		t.Errorf("Add: got %v", got)
	}
	if got := V3Sub(a, b); got != V3(-3, 7, -3) {
		t.Errorf("Sub: got %v", got)
	}
	if got := V3Scale(a, 2); got != V3(2, 4, 6) {
		t.Errorf("Scale: got %v", got)
	}
	if got := V3Dot(a, b); got != 12 {
		t.Errorf("Dot: expected 12, got %v", got)
	}
	if got := V3Cross(Right, Up); got != V3(0, 0, 1) {
		t.Errorf("Cross x×y: expected z, got %v", got)
	}
	if got := V3Mag(V2(3, 4)); got != 5 {
		t.Errorf("Mag: expected 5, got %v", got)
	}
	if got := V3Distance(V2(1, 1), V2(4, 5)); got != 5 {
		t.Errorf("Distance: expected 5, got %v", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := V3Normalize(Vec3{}); got != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", got)
	}
	if got := V3Normalize(V2(0, -7)); got != Down {
		t.Errorf("Expected (0,-1,0), got %v", got)
	}
}

func TestFinite(t *testing.T) {
	if !V3Finite(V3(1, 2, 3)) {
		t.Error("Expected finite vector")
	}
	if V3Finite(V3(math.NaN(), 0, 0)) {
		t.Error("NaN component reported finite")
	}
	if V3Finite(V3(0, math.Inf(-1), 0)) {
		t.Error("Inf component reported finite")
	}
	m := M3Identity()
	m[4] = math.Inf(1)
	if M3Finite(m) {
		t.Error("Inf entry reported finite")
	}
}

func TestCrossMatrix(t *testing.T) {
	r := V3(1.5, -2, 0.25)
	for _, u := range []Vec3{V3(1, 0, 0), V3(0.3, 7, -2), V3(-4, 1, 9)} {
		want := V3Cross(r, u)
		got := M3MulVec(CrossMatrix(r), u)
		if !vecApprox(got, want, 1e-12) {
			t.Errorf("CrossMatrix(%v)·%v = %v, want %v", r, u, got, want)
		}
	}
}

func TestDeterminantAndTranspose(t *testing.T) {
	m := M3FromRows(V3(2, 0, 1), V3(1, 3, 2), V3(1, 1, 2))
	if got := M3Det(m); !approx(got, 6, 1e-12) {
		t.Errorf("Det: expected 6, got %v", got)
	}
	mt := M3Transpose(m)
	if mt.At(0, 1) != m.At(1, 0) || mt.At(2, 0) != m.At(0, 2) {
		t.Errorf("Transpose mismatch: %v vs %v", mt, m)
	}
	if got := M3Det(mt); !approx(got, 6, 1e-12) {
		t.Errorf("Det of transpose: expected 6, got %v", got)
	}
}

func TestInverse(t *testing.T) {
	m := M3FromRows(V3(4, 7, 2), V3(3, 6, 1), V3(2, 5, 3))
	inv, ok := M3Inverse(m)
	if !ok {
		t.Fatal("Expected invertible matrix")
	}
	prod := M3Mul(m, inv)
	id := M3Identity()
	for i := range prod {
		if !approx(prod[i], id[i], 1e-12) {
			t.Fatalf("M·M⁻¹ is not identity: %v", prod)
		}
	}

	// Scalar multiple scales the inverse by 1/s
	inv2, ok := M3Inverse(M3Scale(m, 2))
	if !ok {
		t.Fatal("Expected invertible scaled matrix")
	}
	for i := range inv2 {
		if !approx(inv2[i], inv[i]/2, 1e-12) {
			t.Fatalf("Scaled inverse mismatch at %d: %v vs %v", i, inv2[i], inv[i]/2)
		}
	}
}

func TestInverseSingular(t *testing.T) {
	cases := []struct {
		name string
		m    Mat3
	}{
		{"zero", M3Zero()},
		{"rank-deficient", M3FromRows(V3(1, 2, 3), V3(2, 4, 6), V3(0, 1, 1))},
		// Collinear planar offsets: inertia of points on the x axis
		{"collinear-inertia", M3Add(
			M3Scale(M3Mul(CrossMatrix(V2(3, 0)), M3Transpose(CrossMatrix(V2(3, 0)))), 1),
			M3Scale(M3Mul(CrossMatrix(V2(-3, 0)), M3Transpose(CrossMatrix(V2(-3, 0)))), 1),
		)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv, ok := M3Inverse(tc.m)
			if ok {
				t.Errorf("Expected singular, got inverse %v", inv)
			}
			if inv != M3Zero() {
				t.Errorf("Expected zero matrix on failure, got %v", inv)
			}
		})
	}
}

func TestPlaneIntersect(t *testing.T) {
	p := NewPlane(V2(0, 10), V2(0, 5))
	if p.Normal != Up {
		t.Fatalf("Expected normalized normal, got %v", p.Normal)
	}

	tHit, ok := p.Intersect(Ray{Origin: V2(3, 20), Direction: V2(0, -20)})
	if !ok || !approx(tHit, 0.5, 1e-12) {
		t.Errorf("Expected t=0.5, got %v ok=%v", tHit, ok)
	}

	if _, ok := p.Intersect(Ray{Origin: V2(3, 20), Direction: V2(1, 0)}); ok {
		t.Error("Parallel ray should not intersect")
	}
	if _, ok := p.Intersect(Ray{Origin: V2(3, 20)}); ok {
		t.Error("Zero direction should not intersect")
	}
	if d := p.SignedDistance(V2(0, 7)); d != -3 {
		t.Errorf("Expected signed distance -3, got %v", d)
	}
}

func TestNearestOnSegment(t *testing.T) {
	a, b := V2(0, 0), V2(10, 0)
	cases := []struct {
		q, want Vec3
	}{
		{V2(5, 3), V2(5, 0)},
		{V2(-4, 1), V2(0, 0)},
		{V2(14, -2), V2(10, 0)},
	}
	for _, tc := range cases {
		if got := NearestOnSegment(a, b, tc.q); got != tc.want {
			t.Errorf("NearestOnSegment(%v) = %v, want %v", tc.q, got, tc.want)
		}
	}
	if got := NearestOnSegment(a, a, V2(1, 1)); got != a {
		t.Errorf("Degenerate segment: got %v", got)
	}
}

func TestAABBContains(t *testing.T) {
	box := AABBOf(V2(10, 0), V2(0, 10))
	edge := V2(0, 5)
	if !box.ContainsClosed(edge, 0) {
		t.Error("Closed bounds should contain boundary point")
	}
	if box.ContainsOpen(edge) {
		t.Error("Open bounds should exclude boundary point")
	}
	if !box.ContainsClosed(V2(-1e-10, 5), 1e-9) {
		t.Error("Tolerance should admit point just outside")
	}
	if !box.Overlaps(AABBOf(V2(5, 5), V2(20, 20))) {
		t.Error("Expected overlap")
	}
	if box.Overlaps(AABBOf(V2(11, 0), V2(20, 20))) {
		t.Error("Expected no overlap")
	}
}
