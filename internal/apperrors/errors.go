package apperrors

import "errors"

// ErrNotFound indicates that a requested document could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrStorage indicates that the underlying store rejected or failed a
// batch commit. Batches are all-or-nothing, so no partial state persisted.
var ErrStorage = errors.New("storage failure")
