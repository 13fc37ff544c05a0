package parameter

// Solver
const (
	// SolverIterations is the default number of projection passes per sub-step
	SolverIterations = 3

	// SolverIterationsMin and SolverIterationsMax bound the configurable pass count
	SolverIterationsMin = 1
	SolverIterationsMax = 25

	// Damping is the default velocity damping coefficient, in [0,1]
	Damping = 0.1
)

// Numeric guards
const (
	// DegenerateDistance is the separation below which a distance constraint skips projection
	DegenerateDistance = 1e-9

	// SegmentTolerance widens collider segment bounds to absorb plane-intersection round-off
	SegmentTolerance = 1e-9
)

// Interaction
const (
	// VertexHitRadius is the pick radius used by FindVertexAt, in world units
	VertexHitRadius = 10.0

	// Gravity is the default downward acceleration magnitude used by shape builders, world units/s²
	Gravity = 1200.0
)
