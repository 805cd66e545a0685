package battle

import "errors"

// Placement and input errors. All are recoverable: callers re-prompt or retry.
var (
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrOutOfBounds        = errors.New("vessel extends past the board edge")
	ErrOverlap            = errors.New("vessel overlaps another vessel")
	ErrVesselPlaced       = errors.New("vessel already placed")
	ErrUnknownVessel      = errors.New("unknown vessel")
	ErrPlacementExhausted = errors.New("no legal placement left")
)

// Match flow errors. These indicate a caller driving the state machine out of
// order, not bad player input.
var (
	ErrWrongPhase      = errors.New("operation not allowed in current phase")
	ErrNotAutomated    = errors.New("active side is not automated")
	ErrFleetIncomplete = errors.New("fleet not fully placed")
	ErrReplayMismatch  = errors.New("journal does not replay")
)
