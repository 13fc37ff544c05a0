package physics

import "errors"

var (
	ErrInvalidMass      = errors.New("mass must be finite and positive")
	ErrInvalidStiffness = errors.New("stiffness must be in [0,1]")
	ErrInvalidDistance  = errors.New("rest distance must be finite and non-negative")
	ErrInvalidSize      = errors.New("size must be finite and positive")
	ErrInvalidConfig    = errors.New("invalid physics config")
	ErrNilVertex        = errors.New("vertex is nil")
	ErrVertexOwned      = errors.New("vertex already belongs to a body")
	ErrAnchorMass       = errors.New("anchor vertices have no mass to set")
)
