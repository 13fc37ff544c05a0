package physics

import (
	"fmt"
	"math"

	"github.com/lixenwraith/pbd/parameter"
	"github.com/lixenwraith/pbd/vmath"
)

// Constraint projects vertex positions toward satisfying a condition
// Lists are sorted by descending Priority; priority 0 projects last in every pass and so overrides
type Constraint interface {
	Drawable
	Priority() int
	// Project runs one correction; iterations is the pass count of the current solve
	Project(iterations int)
	// AttachedTo reports whether any vertex of b is referenced
	AttachedTo(b *Body) bool
}

// EffectiveStiffness maps k so that n passes compound to a total correction of k
// k_eff = 1 - (1-k)^(1/n)
func EffectiveStiffness(k float64, iterations int) float64 {
	if iterations < 1 {
		iterations = 1
	}
	return 1 - math.Pow(1-k, 1/float64(iterations))
}

// --- Distance ---

// DistanceConstraint keeps two vertices at a rest distance, corrections split by inverse mass
type DistanceConstraint struct {
	a, b      *Vertex
	stiffness float64
	rest      float64
}

func NewDistanceConstraint(k float64, a, b *Vertex, rest float64) (*DistanceConstraint, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("distance constraint: %w", ErrNilVertex)
	}
	if !(k >= 0 && k <= 1) {
		return nil, fmt.Errorf("distance constraint k=%g: %w", k, ErrInvalidStiffness)
	}
	if !(rest >= 0) || math.IsInf(rest, 0) {
		return nil, fmt.Errorf("distance constraint rest=%g: %w", rest, ErrInvalidDistance)
	}
	return &DistanceConstraint{a: a, b: b, stiffness: k, rest: rest}, nil
}

// NewDistanceConstraintAtRest uses the current separation as the rest distance
func NewDistanceConstraintAtRest(k float64, a, b *Vertex) (*DistanceConstraint, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("distance constraint: %w", ErrNilVertex)
	}
	return NewDistanceConstraint(k, a, b, vmath.V3Distance(a.pos, b.pos))
}

func (c *DistanceConstraint) Kind() Kind    { return KindDistance }
func (c *DistanceConstraint) Priority() int { return parameter.PriorityDistance }

func (c *DistanceConstraint) Vertices() (*Vertex, *Vertex) { return c.a, c.b }
func (c *DistanceConstraint) Stiffness() float64           { return c.stiffness }
func (c *DistanceConstraint) RestDistance() float64        { return c.rest }

func (c *DistanceConstraint) AttachedTo(b *Body) bool {
	return b.Contains(c.a) || b.Contains(c.b)
}

func (c *DistanceConstraint) Project(iterations int) {
	w1, w2 := c.a.w, c.b.w
	wSum := w1 + w2
	if wSum == 0 {
		return
	}

	delta := c.a.proj.Sub(c.b.proj)
	d := delta.Len()
	if d < parameter.DegenerateDistance {
		return
	}

	k := EffectiveStiffness(c.stiffness, iterations)
	s := (d - c.rest) / d
	s1 := -w1 / wSum * s
	s2 := w2 / wSum * s

	c.a.proj = c.a.proj.Add(delta.Mul(s1 * k))
	c.b.proj = c.b.proj.Add(delta.Mul(s2 * k))
}

// --- Anchor ---

// AnchorConstraint pins a vertex: confirmed and projected positions are overwritten each pass
type AnchorConstraint struct {
	v      *Vertex
	target vmath.Vec3
}

func NewAnchorConstraint(v *Vertex, x, y float64) (*AnchorConstraint, error) {
	if v == nil {
		return nil, fmt.Errorf("anchor constraint: %w", ErrNilVertex)
	}
	return &AnchorConstraint{v: v, target: vmath.V2(x, y)}, nil
}

func (c *AnchorConstraint) Kind() Kind    { return KindAnchor }
func (c *AnchorConstraint) Priority() int { return parameter.PriorityAnchor }

func (c *AnchorConstraint) Vertex() *Vertex        { return c.v }
func (c *AnchorConstraint) Target() vmath.Vec3     { return c.target }
func (c *AnchorConstraint) SetTarget(p vmath.Vec3) { c.target = p }

func (c *AnchorConstraint) AttachedTo(b *Body) bool {
	return b.Contains(c.v)
}

func (c *AnchorConstraint) Project(int) {
	c.v.pos = c.target
	c.v.proj = c.target
}

// --- Collision ---

// CollisionConstraint is a one-sided contact against a static surface, rebuilt every sub-step
type CollisionConstraint struct {
	v      *Vertex
	point  vmath.Vec3
	normal vmath.Vec3
}

func NewCollisionConstraint(v *Vertex, point, normal vmath.Vec3) *CollisionConstraint {
	return &CollisionConstraint{v: v, point: point, normal: vmath.V3Normalize(normal)}
}

func (c *CollisionConstraint) Kind() Kind    { return KindCollision }
func (c *CollisionConstraint) Priority() int { return parameter.PriorityCollision }

func (c *CollisionConstraint) Vertex() *Vertex    { return c.v }
func (c *CollisionConstraint) Point() vmath.Vec3  { return c.point }
func (c *CollisionConstraint) Normal() vmath.Vec3 { return c.normal }

func (c *CollisionConstraint) AttachedTo(b *Body) bool {
	return b.Contains(c.v)
}

// Separation is the signed distance of the projected position from the surface, negative when penetrating
func (c *CollisionConstraint) Separation() float64 {
	return c.v.proj.Sub(c.point).Dot(c.normal)
}

// Project pushes the vertex back onto the surface with stiffness 1 when C(p) < 0
func (c *CollisionConstraint) Project(int) {
	sep := c.Separation()
	if sep >= 0 {
		return
	}
	c.v.proj = c.v.proj.Add(c.normal.Mul(-sep))
}
