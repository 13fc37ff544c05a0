package parameter

import "time"

// Fixed-Step Clock
const (
	// PhysicsStep is the fixed sub-step size in seconds (60 Hz)
	PhysicsStep = 1.0 / 60

	// PhysicsStepFine is the finer sub-step used by the low-latency variant (120 Hz)
	PhysicsStepFine = 1.0 / 120

	// MaxFrameTime caps elapsed wall-clock time per Update so a stalled host does not trigger a catch-up burst
	MaxFrameTime = 1.0

	// StepCountEpsilon absorbs float error when elapsed time is an exact multiple of the step
	StepCountEpsilon = 1e-9
)

// Sandbox Host Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// FPSSampleInterval is how often the sandbox recomputes its frame-rate readout
	FPSSampleInterval = time.Second
)
