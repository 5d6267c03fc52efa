package universal

import "errors"

var (
	ErrMachineNotFound = errors.New("machine not found")
	ErrNoMachineLoaded = errors.New("no machine loaded")
	ErrInvalidInput    = errors.New("invalid input")
)
