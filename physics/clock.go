package physics

import (
	"math"

	"github.com/lixenwraith/pbd/parameter"
)

// Clock converts variable frame time into a whole number of fixed sub-steps
// Leftover time carries into the next frame so the simulation rate is independent of the frame rate
type Clock struct {
	step     float64
	maxFrame float64
	leftover float64

	// Pause gating: while paused only explicitly requested steps run
	paused  bool
	pending int

	frames   uint64
	substeps uint64
}

// NewClock falls back to package defaults for non-positive arguments
func NewClock(step, maxFrame float64) Clock {
	if !(step > 0) || math.IsInf(step, 0) {
		step = parameter.PhysicsStep
	}
	if !(maxFrame > 0) || math.IsInf(maxFrame, 0) {
		maxFrame = parameter.MaxFrameTime
	}
	return Clock{step: step, maxFrame: maxFrame}
}

// Advance accounts one host frame of elapsed seconds and returns how many sub-steps to run
// Elapsed is clamped to [0, maxFrame] before accumulation; NaN counts as 0
func (c *Clock) Advance(elapsed float64) int {
	c.frames++

	if c.paused {
		n := c.pending
		c.pending = 0
		c.substeps += uint64(n)
		return n
	}

	if !(elapsed > 0) {
		elapsed = 0
	}
	if elapsed > c.maxFrame {
		elapsed = c.maxFrame
	}

	dt := elapsed + c.leftover
	n := int(math.Floor(dt/c.step + parameter.StepCountEpsilon))
	c.leftover = dt - float64(n)*c.step
	if c.leftover < 0 {
		c.leftover = 0
	}

	c.substeps += uint64(n)
	return n
}

// StepSize returns the fixed sub-step in seconds
func (c *Clock) StepSize() float64 { return c.step }

// Leftover returns accumulated time not yet consumed by a whole step
func (c *Clock) Leftover() float64 { return c.leftover }

func (c *Clock) Frames() uint64   { return c.frames }
func (c *Clock) Substeps() uint64 { return c.substeps }

// Pause stops time accumulation; the leftover is dropped so resuming does not burst
func (c *Clock) Pause() {
	c.paused = true
	c.leftover = 0
}

func (c *Clock) Resume() {
	c.paused = false
	c.pending = 0
}

func (c *Clock) Paused() bool { return c.paused }

// StepOnce queues n sub-steps for the next Advance while paused; ignored when running
func (c *Clock) StepOnce(n int) {
	if !c.paused || n <= 0 {
		return
	}
	c.pending += n
}
