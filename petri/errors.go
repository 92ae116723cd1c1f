package petri

import "errors"

// Error types for the petri package. All are construction-time faults:
// once a net is assembled without error, Enabled and Fire never fail.
var (
	// ErrInvalidEdge is returned when an edge connects two nodes of the
	// same kind (place-place or transition-transition).
	ErrInvalidEdge = errors.New("invalid edge: endpoints must be one place and one transition")

	// ErrPlaceNotFound is returned when an edge references an undeclared place.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrTransitionNotFound is returned when an edge references an undeclared transition.
	ErrTransitionNotFound = errors.New("transition not found")

	// ErrDuplicateNode is returned when a place or transition name is already taken.
	ErrDuplicateNode = errors.New("node name already declared")

	// ErrMultipleOutputs is returned when a transition is given a second
	// outgoing edge. A transition models a component with a single return
	// value; multi-output components are unsupported.
	ErrMultipleOutputs = errors.New("transition already has an output edge")

	// ErrNonPositiveWeight is returned for edge weights below 1.
	ErrNonPositiveWeight = errors.New("edge weight must be a positive integer")
)
