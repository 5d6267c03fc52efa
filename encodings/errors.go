package encodings

import "errors"

var (
	ErrInvalidMachine      = errors.New("invalid machine")
	ErrMalformedTransition = errors.New("malformed transition")
)
