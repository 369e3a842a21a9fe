package port

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrNoAvailableSlot is returned when a booking is attempted against a
	// slot set with no (longer) qualifying free entry.
	ErrNoAvailableSlot = errors.New("no available slot")

	// ErrInvalidEntity is returned when an entity fails its range or schema
	// constraints. It is usually wrapped with field context.
	ErrInvalidEntity = errors.New("invalid entity")
)
