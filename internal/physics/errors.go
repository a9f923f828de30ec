package physics

import "errors"

var (
	// ErrVersionMismatch is returned when an engine is created for a different SDK version.
	ErrVersionMismatch = errors.New("physics: sdk version mismatch")

	// ErrEngineReleased is returned by operations on a released engine.
	ErrEngineReleased = errors.New("physics: engine released")

	// ErrHardwareUnavailable is returned when a hardware scene is requested
	// and the engine has no parallel backend.
	ErrHardwareUnavailable = errors.New("physics: hardware simulation unavailable")

	// ErrSceneReleased is returned by operations on a released scene.
	ErrSceneReleased = errors.New("physics: scene released")

	// ErrStepPending is returned by Simulate while a previous step has not been fetched.
	ErrStepPending = errors.New("physics: step already in flight")

	// ErrInvalidDesc is returned when an actor descriptor fails validation.
	ErrInvalidDesc = errors.New("physics: invalid actor descriptor")
)
