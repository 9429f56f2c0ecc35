package health

import "errors"

var (
	// ErrNilCheck is reported for a check registered without a function.
	ErrNilCheck = errors.New("health: nil check")

	// ErrCheckTimeout wraps a check error caused by the probe deadline.
	ErrCheckTimeout = errors.New("health: check timeout")
)
