package physics

import (
	"io"
	"log"
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/pbd/status"
	"github.com/lixenwraith/pbd/vmath"
)

// System owns bodies, persistent constraints and colliders and advances them on a fixed step
// Single-threaded: all calls, including mutation, must come from the goroutine that calls Update
type System struct {
	bodies      []*Body
	constraints []Constraint
	colliders   []Collider

	iterations int
	damping    float64
	gravity    float64
	policy     CollisionPolicy

	clock   Clock
	elapsed float64

	// Reused per sub-step; never holds collision constraints past ProjectConstraints
	solve []Constraint

	logger *log.Logger

	// Cached metric pointers, nil until AttachRegistry
	reg           *status.Registry
	statFrames    *atomic.Int64
	statSubsteps  *atomic.Int64
	statContacts  *atomic.Int64
	statPeak      *atomic.Int64
	statCons      *atomic.Int64
	statVertices  *atomic.Int64
	statSingular  *atomic.Int64
	statIter      *atomic.Int64
	statPaused    *atomic.Bool
	statElapsed   *status.AtomicFloat
	statDamping   *status.AtomicFloat
	lastContacts  int
	singularCount int64
}

// NewSystem builds a System from cfg; out-of-range iterations and damping are clamped
// An invalid step or frame cap falls back to defaults; call cfg.Validate first to reject instead
func NewSystem(cfg Config) *System {
	s := &System{
		gravity: cfg.Gravity,
		policy:  cfg.Collision,
		clock:   NewClock(cfg.Step, cfg.MaxFrameTime),
		logger:  log.New(io.Discard, "", 0),
	}
	s.SetSolverIterations(cfg.SolverIterations)
	s.SetDamping(cfg.Damping)
	return s
}

// SetLogger routes configuration notices; nil restores the discarding logger
func (s *System) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	s.logger = l
}

// AttachRegistry publishes simulation counters into reg after every Update
func (s *System) AttachRegistry(reg *status.Registry) {
	s.reg = reg
	if reg == nil {
		return
	}
	s.statFrames = reg.Ints.Get(status.KeyFrames)
	s.statSubsteps = reg.Ints.Get(status.KeySubsteps)
	s.statContacts = reg.Ints.Get(status.KeyCollisions)
	s.statPeak = reg.Ints.Get(status.KeyContactsPeak)
	s.statCons = reg.Ints.Get(status.KeyConstraints)
	s.statVertices = reg.Ints.Get(status.KeyVertices)
	s.statSingular = reg.Ints.Get(status.KeySingular)
	s.statIter = reg.Ints.Get(status.KeyIterations)
	s.statPaused = reg.Bools.Get(status.KeyPaused)
	s.statElapsed = reg.Floats.Get(status.KeyElapsed)
	s.statDamping = reg.Floats.Get(status.KeyDamping)
	s.publish()
}

// --- Configuration ---

// SetSolverIterations clamps n to [1,25] and returns the value in effect
func (s *System) SetSolverIterations(n int) int {
	clamped := ClampIterations(n)
	if clamped != n {
		s.logger.Printf("pbd: solver iterations %d clamped to %d", n, clamped)
	}
	s.iterations = clamped
	return clamped
}

func (s *System) SolverIterations() int { return s.iterations }

// SetDamping clamps k to [0,1] and returns the value in effect
func (s *System) SetDamping(k float64) float64 {
	clamped := ClampDamping(k)
	if clamped != k {
		s.logger.Printf("pbd: damping %g clamped to %g", k, clamped)
	}
	s.damping = clamped
	return clamped
}

func (s *System) Damping() float64 { return s.damping }

// Gravity is the configured acceleration magnitude for shape builders
func (s *System) Gravity() float64 { return s.gravity }

// CollisionPolicy is applied to colliders created through AddRectangle
func (s *System) CollisionPolicy() CollisionPolicy { return s.policy }

// Clock exposes pause and single-step control
func (s *System) Clock() *Clock { return &s.clock }

// ElapsedTime is total simulated seconds
func (s *System) ElapsedTime() float64 { return s.elapsed }

// --- Mutation ---

func (s *System) AddBody(b *Body) {
	if b == nil || slices.Contains(s.bodies, b) {
		return
	}
	s.bodies = append(s.bodies, b)
}

// RemoveBody drops b and every persistent constraint touching its vertices
func (s *System) RemoveBody(b *Body) bool {
	i := slices.Index(s.bodies, b)
	if i < 0 {
		return false
	}
	s.constraints = slices.DeleteFunc(s.constraints, func(c Constraint) bool {
		return c.AttachedTo(b)
	})
	s.bodies = slices.Delete(s.bodies, i, i+1)
	return true
}

func (s *System) AddConstraint(c Constraint) {
	if c == nil {
		return
	}
	s.constraints = append(s.constraints, c)
}

func (s *System) RemoveConstraint(c Constraint) bool {
	i := slices.Index(s.constraints, c)
	if i < 0 {
		return false
	}
	s.constraints = slices.Delete(s.constraints, i, i+1)
	return true
}

func (s *System) AddCollider(c Collider) {
	if c == nil {
		return
	}
	s.colliders = append(s.colliders, c)
}

// AddRectangle creates an axis-aligned collider with the system's collision policy and adds it
func (s *System) AddRectangle(center vmath.Vec3, width, height float64) (*AARectangleCollider, error) {
	c, err := NewAARectangleColliderWithPolicy(center, width, height, s.policy)
	if err != nil {
		return nil, err
	}
	s.AddCollider(c)
	return c, nil
}

func (s *System) RemoveCollider(c Collider) bool {
	i := slices.Index(s.colliders, c)
	if i < 0 {
		return false
	}
	s.colliders = slices.Delete(s.colliders, i, i+1)
	return true
}

// MoveVertex teleports v to (x, y) and zeroes its velocity, for interactive dragging
func (s *System) MoveVertex(v *Vertex, x, y float64) {
	if v == nil {
		return
	}
	v.SetPosition(vmath.V2(x, y))
	v.SetVelocity(vmath.Vec3{})
}

// --- Queries ---

// FindVertexAt returns the first vertex, in body then insertion order, whose pick radius covers (x, y)
func (s *System) FindVertexAt(x, y float64) *Vertex {
	for _, b := range s.bodies {
		if v := b.FindVertexAt(x, y); v != nil {
			return v
		}
	}
	return nil
}

func (s *System) Bodies() []*Body           { return slices.Clone(s.bodies) }
func (s *System) Constraints() []Constraint { return slices.Clone(s.constraints) }
func (s *System) Colliders() []Collider     { return slices.Clone(s.colliders) }

// Drawables flattens bodies' vertices in insertion order, then constraints, then colliders
func (s *System) Drawables() []Drawable {
	n := len(s.constraints) + len(s.colliders)
	for _, b := range s.bodies {
		n += len(b.vertices)
	}
	out := make([]Drawable, 0, n)
	for _, b := range s.bodies {
		for _, v := range b.vertices {
			out = append(out, v)
		}
	}
	for _, c := range s.constraints {
		out = append(out, c)
	}
	for _, c := range s.colliders {
		out = append(out, c)
	}
	return out
}

// RayCast returns the nearest hit across all colliders, for probes
func (s *System) RayCast(from, to vmath.Vec3) RayHit {
	var best RayHit
	for _, c := range s.colliders {
		hit := c.RayCast(from, to)
		if hit.Intersected && (!best.Intersected || hit.Distance < best.Distance) {
			best = hit
		}
	}
	return best
}

// --- Simulation ---

// Update consumes one host frame of elapsed wall-clock seconds and runs the whole sub-steps it covers
// Returns the number of sub-steps executed
func (s *System) Update(elapsed float64) int {
	n := s.clock.Advance(elapsed)
	h := s.clock.StepSize()
	for range n {
		s.Step(h)
	}
	s.publish()
	return n
}

// Step runs one fixed sub-step of size h through the full pipeline
func (s *System) Step(h float64) {
	s.UpdateVelocities(h)
	for _, b := range s.bodies {
		s.DampVelocities(b)
	}
	s.PredictPositions(h)
	collisions := s.GenerateCollisionConstraints()
	s.ProjectConstraints(collisions)
	s.FinalizeState(h)
	s.elapsed += h
	s.lastContacts = len(collisions)
}

// UpdateVelocities applies v += a*h to every vertex
func (s *System) UpdateVelocities(h float64) {
	for _, b := range s.bodies {
		for _, v := range b.vertices {
			v.updateVelocity(h)
		}
	}
}

// DampVelocities damps b with the system coefficient and counts singular-inertia fallbacks
func (s *System) DampVelocities(b *Body) {
	if !DampVelocities(b, s.damping) {
		s.singularCount++
	}
}

// PredictPositions sets p = x + v*h for every vertex
func (s *System) PredictPositions(h float64) {
	for _, b := range s.bodies {
		for _, v := range b.vertices {
			v.predict(h)
		}
	}
}

// GenerateCollisionConstraints ray casts each dynamic vertex's motion x→p against every collider
// and returns one constraint per vertex for the nearest hit; ties keep the earlier collider
func (s *System) GenerateCollisionConstraints() []*CollisionConstraint {
	if len(s.colliders) == 0 {
		return nil
	}

	var out []*CollisionConstraint
	for _, b := range s.bodies {
		for _, v := range b.vertices {
			if v.IsAnchor() {
				continue
			}
			var best RayHit
			for _, c := range s.colliders {
				hit := c.RayCast(v.pos, v.proj)
				if hit.Intersected && (!best.Intersected || hit.Distance < best.Distance) {
					best = hit
				}
			}
			if best.Intersected {
				out = append(out, NewCollisionConstraint(v, best.Point, best.Normal))
			}
		}
	}
	return out
}

// ProjectConstraints merges persistent and transient constraints, stable-sorts by descending priority
// and runs the configured number of passes over the whole list
func (s *System) ProjectConstraints(collisions []*CollisionConstraint) {
	list := append(s.solve[:0], s.constraints...)
	for _, c := range collisions {
		list = append(list, c)
	}

	slices.SortStableFunc(list, func(a, b Constraint) int {
		return b.Priority() - a.Priority()
	})

	for range s.iterations {
		for _, c := range list {
			c.Project(s.iterations)
		}
	}

	clear(list)
	s.solve = list[:0]
}

// FinalizeState sets v = (p - x)/h, then x = p, for every vertex
func (s *System) FinalizeState(h float64) {
	for _, b := range s.bodies {
		for _, v := range b.vertices {
			v.finalize(h)
		}
	}
}

func (s *System) publish() {
	if s.reg == nil {
		return
	}
	vertices := 0
	for _, b := range s.bodies {
		vertices += len(b.vertices)
	}
	s.statFrames.Store(int64(s.clock.Frames()))
	s.statSubsteps.Store(int64(s.clock.Substeps()))
	s.statContacts.Store(int64(s.lastContacts))
	if int64(s.lastContacts) > s.statPeak.Load() {
		s.statPeak.Store(int64(s.lastContacts))
	}
	s.statCons.Store(int64(len(s.constraints)))
	s.statVertices.Store(int64(vertices))
	s.statSingular.Store(s.singularCount)
	s.statIter.Store(int64(s.iterations))
	s.statPaused.Store(s.clock.Paused())
	s.statElapsed.Set(s.elapsed)
	s.statDamping.Set(s.damping)
}
