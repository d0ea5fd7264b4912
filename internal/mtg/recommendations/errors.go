package recommendations

import "errors"

var (
	// ErrLeadNotFound is returned when no corpus card matches the
	// requested lead name.
	ErrLeadNotFound = errors.New("lead card not found")

	// ErrNoCorpus is returned when the card corpus is unavailable or
	// empty. Distinct from ErrLeadNotFound so callers can tell a bad
	// request from a missing data source.
	ErrNoCorpus = errors.New("card corpus unavailable or empty")
)
