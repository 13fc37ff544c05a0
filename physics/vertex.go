package physics

import (
	"fmt"
	"math"

	"github.com/lixenwraith/pbd/parameter"
	"github.com/lixenwraith/pbd/vmath"
)

// Vertex is a point mass, the unit of simulation
// pos is the confirmed position from the last finalized step, proj the tentative position the solver works on
type Vertex struct {
	pos   vmath.Vec3
	proj  vmath.Vec3
	accel vmath.Vec3
	vel   vmath.Vec3
	mass  float64
	w     float64 // inverse mass, exactly 0 for anchors

	body *Body
}

// NewVertex creates a dynamic vertex at (x, y)
func NewVertex(x, y, mass float64) (*Vertex, error) {
	if !validMass(mass) {
		return nil, fmt.Errorf("vertex at (%g, %g) mass %g: %w", x, y, mass, ErrInvalidMass)
	}
	p := vmath.V2(x, y)
	return &Vertex{
		pos:  p,
		proj: p,
		mass: mass,
		w:    1.0 / mass,
	}, nil
}

// NewAnchorVertex creates an immovable vertex: zero inverse mass, forces ignored
// Mass reads as 0; the operative invariant is w == 0, never an infinite mass
func NewAnchorVertex(x, y float64) *Vertex {
	p := vmath.V2(x, y)
	return &Vertex{pos: p, proj: p}
}

func validMass(m float64) bool {
	return m > 0 && !math.IsInf(m, 0) && !math.IsNaN(m)
}

func (v *Vertex) Kind() Kind { return KindVertex }

// IsAnchor reports whether dynamics leave this vertex in place
func (v *Vertex) IsAnchor() bool { return v.w == 0 }

func (v *Vertex) Position() vmath.Vec3          { return v.pos }
func (v *Vertex) ProjectedPosition() vmath.Vec3 { return v.proj }
func (v *Vertex) Velocity() vmath.Vec3          { return v.vel }
func (v *Vertex) Acceleration() vmath.Vec3      { return v.accel }
func (v *Vertex) Mass() float64                 { return v.mass }
func (v *Vertex) InverseMass() float64          { return v.w }

// Body returns the owning body, nil until added to one
func (v *Vertex) Body() *Body { return v.body }

// SetMass changes the mass of a dynamic vertex
func (v *Vertex) SetMass(mass float64) error {
	if v.IsAnchor() {
		return ErrAnchorMass
	}
	if !validMass(mass) {
		return fmt.Errorf("set mass %g: %w", mass, ErrInvalidMass)
	}
	v.mass = mass
	v.w = 1.0 / mass
	return nil
}

// SetPosition moves both the confirmed and projected position
func (v *Vertex) SetPosition(p vmath.Vec3) {
	v.pos = p
	v.proj = p
}

func (v *Vertex) SetVelocity(vel vmath.Vec3) {
	v.vel = vel
}

// AddForce accumulates f/m into the acceleration; no-op on anchors
func (v *Vertex) AddForce(f vmath.Vec3) {
	if v.IsAnchor() {
		return
	}
	v.accel = v.accel.Add(f.Mul(v.w))
}

// AddAcceleration accumulates a directly; no-op on anchors
func (v *Vertex) AddAcceleration(a vmath.Vec3) {
	if v.IsAnchor() {
		return
	}
	v.accel = v.accel.Add(a)
}

// ClearAcceleration drops all accumulated forces
func (v *Vertex) ClearAcceleration() {
	v.accel = vmath.Vec3{}
}

// HitTest reports whether (x, y) lies within the pick radius of the confirmed position
func (v *Vertex) HitTest(x, y float64) bool {
	return vmath.V3Distance(v.pos, vmath.V2(x, y)) <= parameter.VertexHitRadius
}

// updateVelocity applies v += a*h
func (v *Vertex) updateVelocity(h float64) {
	if v.IsAnchor() {
		return
	}
	v.vel = v.vel.Add(v.accel.Mul(h))
}

// predict sets p = x + v*h
func (v *Vertex) predict(h float64) {
	v.proj = v.pos.Add(v.vel.Mul(h))
}

// finalize derives velocity from the converged displacement, then commits p
func (v *Vertex) finalize(h float64) {
	v.vel = v.proj.Sub(v.pos).Mul(1.0 / h)
	v.pos = v.proj
}
