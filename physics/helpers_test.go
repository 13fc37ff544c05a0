package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/pbd/vmath"
)

const h = 1.0 / 60

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func vecApprox(a, b vmath.Vec3, tol float64) bool {
	return approx(a[0], b[0], tol) && approx(a[1], b[1], tol) && approx(a[2], b[2], tol)
}

// newTestSystem builds a zero-gravity system with the given pass count and damping
func newTestSystem(iterations int, damping float64) *System {
	cfg := DefaultConfig()
	cfg.SolverIterations = iterations
	cfg.Damping = damping
	cfg.Gravity = 0
	return NewSystem(cfg)
}

func mustVertex(t *testing.T, x, y, mass float64) *Vertex {
	t.Helper()
	v, err := NewVertex(x, y, mass)
	if err != nil {
		t.Fatalf("NewVertex(%g, %g, %g): %v", x, y, mass, err)
	}
	return v
}

func mustDistance(t *testing.T, k float64, a, b *Vertex, rest float64) *DistanceConstraint {
	t.Helper()
	c, err := NewDistanceConstraint(k, a, b, rest)
	if err != nil {
		t.Fatalf("NewDistanceConstraint: %v", err)
	}
	return c
}

func mustBody(t *testing.T, name string, vs ...*Vertex) *Body {
	t.Helper()
	b := NewBody(name)
	for _, v := range vs {
		if err := b.AddVertex(v); err != nil {
			t.Fatalf("AddVertex: %v", err)
		}
	}
	return b
}

func mustRect(t *testing.T, cx, cy, w, hgt float64, policy CollisionPolicy) *AARectangleCollider {
	t.Helper()
	c, err := NewAARectangleColliderWithPolicy(vmath.V2(cx, cy), w, hgt, policy)
	if err != nil {
		t.Fatalf("NewAARectangleCollider: %v", err)
	}
	return c
}

func momentum(b *Body) vmath.Vec3 {
	var p vmath.Vec3
	for _, v := range b.vertices {
		if v.IsAnchor() {
			continue
		}
		p = p.Add(v.vel.Mul(v.mass))
	}
	return p
}
