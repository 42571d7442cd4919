package lab

import "errors"

var (
	// ErrUnknownLab indicates a lab name missing from the registry.
	ErrUnknownLab = errors.New("lab: unknown lab")

	// ErrNotMounted indicates a frame for a lab that is no longer mounted.
	ErrNotMounted = errors.New("lab: not mounted")
)
