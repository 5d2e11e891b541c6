package pending

import "errors"

// Sentinel kinds for resolver errors.
var (
	// ErrQuery marks a lookup that failed because the store was unreachable or
	// rejected the query. Callers match it with errors.Is.
	ErrQuery = errors.New("query pending claims failed")
)

// QueryError carries the store failure behind an ErrQuery.
type QueryError struct {
	Op    string
	Cause error
}

func (e *QueryError) Error() string {
	msg := ErrQuery.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *QueryError) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrQuery) match any QueryError.
func (e *QueryError) Is(target error) bool { return target == ErrQuery }
