package sim

import "errors"

// Scheduling and lifecycle misuses are programming errors in the client
// code. They are reported immediately instead of being clamped, as a
// silently adjusted fire time would corrupt the event ordering that every
// model depends on.
var (
	// ErrInvalidTime reports an attempt to schedule an event strictly
	// before the current virtual time.
	ErrInvalidTime = errors.New("sim: cannot schedule an event in the past")

	// ErrInvalidDuration reports a negative duration passed to relative
	// scheduling.
	ErrInvalidDuration = errors.New("sim: negative scheduling duration")

	// ErrAlreadyRunning reports a reentrant top-level Run call.
	ErrAlreadyRunning = errors.New("sim: engine is already running")

	// ErrInvalidState reports a lifecycle operation that is not allowed
	// in the engine's current state, such as Destroy while running.
	ErrInvalidState = errors.New("sim: operation not allowed while the engine is running")
)
