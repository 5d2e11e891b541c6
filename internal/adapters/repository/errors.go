package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrConnect          = errors.New("connect to store failed")
	ErrQueryWins        = errors.New("query wins failed")
	ErrQueryClaims      = errors.New("query claims failed")
	ErrUnknownQueryMode = errors.New("unknown query mode")
	ErrSeed             = errors.New("load seed failed")
)
