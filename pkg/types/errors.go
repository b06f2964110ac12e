package types

import "errors"

// Index load errors
var (
	// ErrFetch indicates a non-success HTTP status or transport failure.
	ErrFetch = errors.New("index fetch failed")
	// ErrParse indicates the response body is not a JSON document array.
	ErrParse = errors.New("index payload is not a document array")
	// ErrAborted indicates the load was cancelled. Not a failure: the
	// caller treats it as "no index available" and may retry later.
	ErrAborted = errors.New("index load aborted")
)

// Domain errors for result validation
var (
	ErrInvalidScore  = errors.New("match score must be > 0")
	ErrMissingURL    = errors.New("result URL is required")
	ErrInvalidWeight = errors.New("document weight must be >= 1.0")
)
