package vmath

import "math"

// ParallelEpsilon bounds |n·d| below which a ray is treated as parallel to a plane
const ParallelEpsilon = 1e-12

// Ray is an origin and an unnormalized direction; points are Origin + t*Direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at parameter t
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane passes through Point with unit Normal
type Plane struct {
	Point  Vec3
	Normal Vec3
}

// NewPlane normalizes the supplied normal
func NewPlane(point, normal Vec3) Plane {
	return Plane{Point: point, Normal: V3Normalize(normal)}
}

// SignedDistance is positive on the side the normal points to
func (p Plane) SignedDistance(q Vec3) float64 {
	return q.Sub(p.Point).Dot(p.Normal)
}

// Intersect finds where the infinite line through r meets the plane
// Returns t along r.Direction; ok=false when the line is parallel or the direction is zero
func (p Plane) Intersect(r Ray) (t float64, ok bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < ParallelEpsilon {
		return 0, false
	}
	t = p.Normal.Dot(p.Point.Sub(r.Origin)) / denom
	if !finite(t) {
		return 0, false
	}
	return t, true
}

// AABB is an axis-aligned box in the xy plane
type AABB struct {
	Min, Max Vec3
}

// AABBOf returns the box spanning two points
func AABBOf(a, b Vec3) AABB {
	return AABB{
		Min: Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), 0},
		Max: Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), 0},
	}
}

// ContainsClosed tests with inclusive bounds, expanded by tol on every side
func (b AABB) ContainsClosed(q Vec3, tol float64) bool {
	return q[0] >= b.Min[0]-tol && q[0] <= b.Max[0]+tol &&
		q[1] >= b.Min[1]-tol && q[1] <= b.Max[1]+tol
}

// ContainsOpen tests with exclusive bounds; points on the boundary are outside
func (b AABB) ContainsOpen(q Vec3) bool {
	return q[0] > b.Min[0] && q[0] < b.Max[0] &&
		q[1] > b.Min[1] && q[1] < b.Max[1]
}

// Overlaps uses inclusive bounds
func (b AABB) Overlaps(o AABB) bool {
	return b.Min[0] <= o.Max[0] && b.Max[0] >= o.Min[0] &&
		b.Min[1] <= o.Max[1] && b.Max[1] >= o.Min[1]
}

// NearestOnSegment clamps the projection of q onto segment a→b
// A zero-length segment returns a
func NearestOnSegment(a, b, q Vec3) Vec3 {
	seg := b.Sub(a)
	lenSq := seg.LenSqr()
	if lenSq == 0 {
		return a
	}
	t := q.Sub(a).Dot(seg) / lenSq
	t = math.Max(0, math.Min(1, t))
	return a.Add(seg.Mul(t))
}
