package services

import "errors"

// Sentinel errors handlers translate into the response envelope; anything
// that does not match one of these surfaces as a generic internal error,
// so store failures never leak detail to the caller.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("operation not permitted")
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("duplicate resource")
)

// apiError pairs a caller-facing message with one of the sentinels, so
// errors.Is classification works while the message stays clean.
type apiError struct {
	kind    error
	message string
}

func (e *apiError) Error() string { return e.message }
func (e *apiError) Unwrap() error { return e.kind }

func notFoundError(message string) error   { return &apiError{kind: ErrNotFound, message: message} }
func forbiddenError(message string) error  { return &apiError{kind: ErrForbidden, message: message} }
func validationError(message string) error { return &apiError{kind: ErrValidation, message: message} }
func duplicateError(message string) error  { return &apiError{kind: ErrDuplicate, message: message} }
