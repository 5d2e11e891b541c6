package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrMissingAddr = errors.New("missing addr")
	ErrQueryClaims = errors.New("Error querying claims") //nolint:staticcheck // message is part of the public contract
	ErrUnavailable = errors.New("service unavailable")
)
