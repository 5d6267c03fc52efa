package machines

import "errors"

var (
	ErrArityMismatch = errors.New("arity mismatch")
	ErrUnknownState  = errors.New("unknown state")
	ErrUnknownTape   = errors.New("unknown tape")
	ErrNoTapes       = errors.New("machine has no tapes")
)
