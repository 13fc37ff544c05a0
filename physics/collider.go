package physics

import (
	"fmt"
	"math"
	"strings"

	"github.com/lixenwraith/pbd/parameter"
	"github.com/lixenwraith/pbd/vmath"
)

// RayHit is the nearest entering intersection found by a ray cast
// Point, Normal and Distance are meaningful only when Intersected is true
type RayHit struct {
	Intersected bool
	Point       vmath.Vec3
	Normal      vmath.Vec3
	Distance    float64
}

// Collider is static geometry tested against vertex motion segments
type Collider interface {
	Drawable
	RayCast(from, to vmath.Vec3) RayHit
	Contains(q vmath.Vec3) bool
}

// --- Policy ---

// Boundary selects whether points exactly on a collider face count as inside
type Boundary uint8

const (
	// BoundaryClosed treats faces as inside, so a vertex resting on a face gets a static constraint and cannot oscillate across it
	BoundaryClosed Boundary = iota
	// BoundaryOpen treats faces as outside
	BoundaryOpen
)

// Reject selects the fast-rejection test run before per-segment ray casts
type Reject uint8

const (
	// RejectSwept skips only when the motion segment's bounding box misses the collider; catches full tunneling
	RejectSwept Reject = iota
	// RejectOutsideBoth skips when neither endpoint is inside
	RejectOutsideBoth
	// RejectOutsideTo skips when the end point is outside; static resolution then needs both endpoints inside
	RejectOutsideTo
)

// CollisionPolicy is the boundary/rejection pair; the zero value is the default
type CollisionPolicy struct {
	Boundary Boundary
	Reject   Reject
}

var (
	boundaryNames = [...]string{"closed", "open"}
	rejectNames   = [...]string{"swept", "outside-both", "outside-to"}
)

func (b Boundary) String() string {
	if int(b) < len(boundaryNames) {
		return boundaryNames[b]
	}
	return fmt.Sprintf("boundary(%d)", b)
}

func (r Reject) String() string {
	if int(r) < len(rejectNames) {
		return rejectNames[r]
	}
	return fmt.Sprintf("reject(%d)", r)
}

// ParseBoundary accepts "closed" or "open", case-insensitive
func ParseBoundary(s string) (Boundary, error) {
	for i, n := range boundaryNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return Boundary(i), nil
		}
	}
	return 0, fmt.Errorf("boundary %q: %w", s, ErrInvalidConfig)
}

// ParseReject accepts "swept", "outside-both" or "outside-to", case-insensitive
func ParseReject(s string) (Reject, error) {
	for i, n := range rejectNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return Reject(i), nil
		}
	}
	return 0, fmt.Errorf("reject %q: %w", s, ErrInvalidConfig)
}

// --- Segment ---

// ColliderSegment is one oriented face; Normal points out of the solid
type ColliderSegment struct {
	Start  vmath.Vec3
	End    vmath.Vec3
	Normal vmath.Vec3
}

func NewColliderSegment(start, end, normal vmath.Vec3) ColliderSegment {
	return ColliderSegment{Start: start, End: end, Normal: vmath.V3Normalize(normal)}
}

func (s ColliderSegment) bounds() vmath.AABB {
	return vmath.AABBOf(s.Start, s.End)
}

// RayCast finds where the finite motion from→to crosses this face while entering against the normal
func (s ColliderSegment) RayCast(from, to vmath.Vec3) (vmath.Vec3, bool) {
	dir := to.Sub(from)

	// Exits and grazing motion are not contacts
	if s.Normal.Dot(dir) > 0 {
		return vmath.Vec3{}, false
	}

	ray := vmath.Ray{Origin: from, Direction: dir}
	t, ok := vmath.Plane{Point: s.Start, Normal: s.Normal}.Intersect(ray)
	if !ok || t < 0 || t > 1 {
		return vmath.Vec3{}, false
	}

	point := ray.At(t)
	if !s.bounds().ContainsClosed(point, parameter.SegmentTolerance) {
		return vmath.Vec3{}, false
	}
	return point, true
}

// LineIntersection tests the infinite line through from and to against the finite face, in either direction
func (s ColliderSegment) LineIntersection(from, to vmath.Vec3) (vmath.Vec3, bool) {
	ray := vmath.Ray{Origin: from, Direction: to.Sub(from)}
	t, ok := vmath.Plane{Point: s.Start, Normal: s.Normal}.Intersect(ray)
	if !ok {
		return vmath.Vec3{}, false
	}
	point := ray.At(t)
	if !s.bounds().ContainsClosed(point, parameter.SegmentTolerance) {
		return vmath.Vec3{}, false
	}
	return point, true
}

// NearestPoint clamps q onto the face
func (s ColliderSegment) NearestPoint(q vmath.Vec3) vmath.Vec3 {
	return vmath.NearestOnSegment(s.Start, s.End, q)
}

// --- Axis-aligned rectangle ---

// AARectangleCollider is an axis-aligned box in the xy plane built from four outward faces
// Faces are ordered top, right, bottom, left
type AARectangleCollider struct {
	center   vmath.Vec3
	width    float64
	height   float64
	bounds   vmath.AABB
	segments [4]ColliderSegment
	policy   CollisionPolicy
}

// NewAARectangleCollider builds the collider with the default policy
func NewAARectangleCollider(center vmath.Vec3, width, height float64) (*AARectangleCollider, error) {
	return NewAARectangleColliderWithPolicy(center, width, height, CollisionPolicy{})
}

func NewAARectangleColliderWithPolicy(center vmath.Vec3, width, height float64, policy CollisionPolicy) (*AARectangleCollider, error) {
	if !validSize(width) || !validSize(height) {
		return nil, fmt.Errorf("rectangle %gx%g: %w", width, height, ErrInvalidSize)
	}

	hw, hh := 0.5*width, 0.5*height
	topLeft := vmath.V2(center[0]-hw, center[1]+hh)
	topRight := vmath.V2(center[0]+hw, center[1]+hh)
	bottomRight := vmath.V2(center[0]+hw, center[1]-hh)
	bottomLeft := vmath.V2(center[0]-hw, center[1]-hh)

	return &AARectangleCollider{
		center: vmath.V2(center[0], center[1]),
		width:  width,
		height: height,
		bounds: vmath.AABB{Min: bottomLeft, Max: topRight},
		segments: [4]ColliderSegment{
			NewColliderSegment(topLeft, topRight, vmath.Up),
			NewColliderSegment(topRight, bottomRight, vmath.Right),
			NewColliderSegment(bottomRight, bottomLeft, vmath.Down),
			NewColliderSegment(bottomLeft, topLeft, vmath.Left),
		},
		policy: policy,
	}, nil
}

func validSize(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}

func (c *AARectangleCollider) Kind() Kind { return KindCollider }

func (c *AARectangleCollider) Center() vmath.Vec3           { return c.center }
func (c *AARectangleCollider) Size() (w, h float64)         { return c.width, c.height }
func (c *AARectangleCollider) Bounds() vmath.AABB           { return c.bounds }
func (c *AARectangleCollider) Segments() [4]ColliderSegment { return c.segments }
func (c *AARectangleCollider) Policy() CollisionPolicy      { return c.policy }

// Contains applies the collider's boundary policy
func (c *AARectangleCollider) Contains(q vmath.Vec3) bool {
	if c.policy.Boundary == BoundaryOpen {
		return c.bounds.ContainsOpen(q)
	}
	return c.bounds.ContainsClosed(q, 0)
}

func (c *AARectangleCollider) rejects(from, to vmath.Vec3) bool {
	switch c.policy.Reject {
	case RejectOutsideBoth:
		return !c.Contains(from) && !c.Contains(to)
	case RejectOutsideTo:
		return !c.Contains(to)
	default:
		return !c.bounds.Overlaps(vmath.AABBOf(from, to))
	}
}

// RayCast returns the nearest face hit for motion from→to
// When from is already inside, falls back to the nearest surface point to from (static resolution)
func (c *AARectangleCollider) RayCast(from, to vmath.Vec3) RayHit {
	if c.rejects(from, to) {
		return RayHit{}
	}

	static := c.Contains(from)

	best := RayHit{Distance: math.Inf(1)}
	for _, s := range c.segments {
		var point vmath.Vec3
		if static {
			point = s.NearestPoint(from)
		} else {
			var ok bool
			if point, ok = s.RayCast(from, to); !ok {
				continue
			}
		}

		if d := vmath.V3Distance(point, from); d < best.Distance {
			best = RayHit{Intersected: true, Point: point, Normal: s.Normal, Distance: d}
		}
	}

	if !best.Intersected {
		return RayHit{}
	}
	return best
}
