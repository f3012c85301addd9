package model

import "errors"

var (
	// ErrNotFound means the challenge id does not exist.
	ErrNotFound = errors.New("challenge not found")

	// ErrInvalidDateRange means a log date falls outside the
	// challenge's [start, end] range, or a challenge range is
	// inverted.
	ErrInvalidDateRange = errors.New("date outside challenge range")

	// ErrInactiveChallenge means a manual log was attempted after
	// the challenge went inactive. Historical reads stay allowed.
	ErrInactiveChallenge = errors.New("challenge is inactive")

	// ErrMalformedEvent means an event is missing required fields
	// or carries a status callers may not write.
	ErrMalformedEvent = errors.New("malformed event")
)
