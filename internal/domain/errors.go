package domain

import "errors"

var (
	// ErrNoFunction is returned when a sweep has no target to run.
	ErrNoFunction = errors.New("no function specified")
	// ErrInvalidParameters is returned when the target fails with an error
	// that was not declared as expected, which means the sweep handed it
	// arguments it cannot work with.
	ErrInvalidParameters = errors.New("invalid parameters")
	// ErrInvalidConfig is returned when the sweep configuration itself is malformed.
	ErrInvalidConfig = errors.New("invalid sweep configuration")
	// ErrInsufficientData is returned when fewer than two distinct sizes were recorded.
	ErrInsufficientData = errors.New("insufficient data to fit a growth model")
	// ErrUnknownTarget is returned when a named target is not registered.
	ErrUnknownTarget = errors.New("unknown target")
)
