package parameter

// Constraint Priorities (higher value projects first, lower value projects last and wins)
const (
	PriorityDistance  = 1
	PriorityAnchor    = 0
	PriorityCollision = 0
)
