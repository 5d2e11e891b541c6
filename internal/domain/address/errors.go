package address

import (
	"errors"
	"fmt"
)

// Sentinel kinds for address errors.
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrEmptyAddress   = fmt.Errorf("%w: empty", ErrInvalidAddress)
	ErrOutOfRange     = fmt.Errorf("%w: not below the field prime", ErrInvalidAddress)
)
