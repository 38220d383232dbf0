package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidName    = errors.New("name must contain only letters")

	// Session errors
	ErrSessionOver = errors.New("session is already over")

	// Storage errors
	ErrMalformedRecord = errors.New("malformed player record")
)

// StorageError reports a failure reading or writing the player ledger.
// It is fatal for the program run.
type StorageError struct {
	Op   string // "load", "save", "list"
	Path string // store location, may be empty for non-file backends
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return "storage " + e.Op + ": " + e.Err.Error()
	}
	return "storage " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
