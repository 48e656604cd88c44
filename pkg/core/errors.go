package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrReadOnly         = errors.New("store is in read-only mode")
	ErrNotFound         = errors.New("key not found")
	ErrInvalidKey       = errors.New("invalid key")
	ErrStorageCorrupt   = errors.New("stored value is corrupt")
	ErrStorageWrite     = errors.New("failed to persist value")
	ErrValidation       = errors.New("validation failed")
	ErrAuth             = errors.New("invalid credentials")
	ErrFetch            = errors.New("remote fetch failed")
	ErrWatchUnsupported = errors.New("store does not support watching")
)

// ValidationError reports user input rejected locally.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FetchError reports a remote call that returned a non-success status
// or a body that could not be decoded.
type FetchError struct {
	Resource string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Resource, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFetch) match any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
