package service

import "errors"

// Sentinel kinds for service lifecycle errors.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrUnknownStore = errors.New("unknown store")
	ErrNotReady     = errors.New("store not ready")
)
