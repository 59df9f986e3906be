package core

import "errors"

// Common errors.
var (
	// ErrNotFound signals a lookup miss. It is a branchable condition for
	// callers, not a fault.
	ErrNotFound = errors.New("record not found")

	// ErrLockTimeout signals that the store lock could not be acquired
	// within the configured timeout. Callers should report busy and retry.
	ErrLockTimeout = errors.New("timed out waiting for store lock")
)
