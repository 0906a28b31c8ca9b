// Package repository defines error values that are reused across multiple
// repositories. The legacy system collapsed every failure into one opaque
// error; these sentinels keep that behavior at the HTTP boundary (handlers
// still answer with a generic message) while letting services and tests
// distinguish the failure kind.
package repository

import "errors"

// ErrNotFound is returned when a looked-up record (user, session target,
// media row) does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned for malformed input: an unknown media type,
// empty required text, or a rating outside the accepted bounds.
var ErrInvalidInput = errors.New("invalid input")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting existing state.
var ErrConflict = errors.New("conflict")
