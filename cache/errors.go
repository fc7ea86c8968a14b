package cache

import (
	"errors"

	"github.com/IvanBrykalov/popcache/boundedmap"
)

var (
	// ErrInvalidArgument is returned by constructors for a negative capacity,
	// an empty name or a nil loader. It is the same value as
	// boundedmap.ErrInvalidArgument.
	ErrInvalidArgument = boundedmap.ErrInvalidArgument

	// ErrInvariantViolation is returned when a loader produces a nil value.
	// This is a bug in the loader, not a transient condition.
	ErrInvariantViolation = errors.New("cache: value to cache must not be nil")
)
