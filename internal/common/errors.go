// Package common defines sentinel errors shared by the directory, session
// and cli layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Directory-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrorConflict        = errors.New("already exists")
	ErrorCapacity        = errors.New("table full")
	ErrorInvalidCapacity = errors.New("invalid capacity")

	// Session-level errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInvalidState = errors.New("invalid state")

	// Input errors.
	ErrorInvalidArgument = errors.New("invalid argument")
	ErrorUnsupported     = errors.New("unsupported command")
)
