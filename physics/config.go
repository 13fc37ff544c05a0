package physics

import (
	"fmt"
	"math"

	"github.com/lixenwraith/pbd/parameter"
)

// Config holds the tunables a System is built from
type Config struct {
	Step             float64 // fixed sub-step, seconds
	MaxFrameTime     float64 // per-Update clamp on elapsed time, seconds
	SolverIterations int
	Damping          float64
	Gravity          float64 // downward acceleration magnitude used by shape builders
	Collision        CollisionPolicy
}

func DefaultConfig() Config {
	return Config{
		Step:             parameter.PhysicsStep,
		MaxFrameTime:     parameter.MaxFrameTime,
		SolverIterations: parameter.SolverIterations,
		Damping:          parameter.Damping,
		Gravity:          parameter.Gravity,
	}
}

// Validate rejects values that cannot be clamped into something meaningful
// Out-of-range iterations and damping are clamped by NewSystem instead
func (c Config) Validate() error {
	if !(c.Step > 0) || math.IsInf(c.Step, 0) {
		return fmt.Errorf("step %g: %w", c.Step, ErrInvalidConfig)
	}
	if !(c.MaxFrameTime >= c.Step) || math.IsInf(c.MaxFrameTime, 0) {
		return fmt.Errorf("max frame time %g below step %g: %w", c.MaxFrameTime, c.Step, ErrInvalidConfig)
	}
	if math.IsNaN(c.Damping) {
		return fmt.Errorf("damping NaN: %w", ErrInvalidConfig)
	}
	if math.IsNaN(c.Gravity) || math.IsInf(c.Gravity, 0) {
		return fmt.Errorf("gravity %g: %w", c.Gravity, ErrInvalidConfig)
	}
	if int(c.Collision.Boundary) >= len(boundaryNames) {
		return fmt.Errorf("%s: %w", c.Collision.Boundary, ErrInvalidConfig)
	}
	if int(c.Collision.Reject) >= len(rejectNames) {
		return fmt.Errorf("%s: %w", c.Collision.Reject, ErrInvalidConfig)
	}
	return nil
}

// ClampIterations bounds n to the supported pass range
func ClampIterations(n int) int {
	return min(max(n, parameter.SolverIterationsMin), parameter.SolverIterationsMax)
}

// ClampDamping bounds k to [0,1]; NaN maps to 0
func ClampDamping(k float64) float64 {
	if !(k > 0) {
		return 0
	}
	return math.Min(k, 1)
}
