package domain

import "errors"

// Caller input errors; never retried, mapped to 4xx at the boundary.
var (
	ErrFacilityNotFound = errors.New("facility not found")
	ErrInvalidRange     = errors.New("start must be less than or equal to end")
	ErrInvalidCursor    = errors.New("after_ts and after_id must be provided together")
)
