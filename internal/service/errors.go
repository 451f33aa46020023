package service

import (
	"errors"

	"fitsync/training-service/internal/repository"
	"fitsync/training-service/internal/repository/query"
)

// Stable machine-readable codes returned to callers.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeNoUpdates          = "NO_UPDATES"
	CodeClientNotFound     = "CLIENT_NOT_FOUND"
	CodeInvalidRole        = "INVALID_ROLE"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeValidation         = "VALIDATION_ERROR"
	CodeForbidden          = "FORBIDDEN"
)

// Error is a classified failure. Anything that is not an *Error is opaque.
type Error struct {
	Code    string
	Message string
	// Err is the underlying cause. It is logged, never returned to callers.
	Err error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Code, so ErrExerciseNotFound is also ErrNotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// --- Error Definitions ---
var (
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "Resource not found"}
	ErrNoUpdates          = &Error{Code: CodeNoUpdates, Message: "No valid fields to update"}
	ErrClientNotFound     = &Error{Code: CodeClientNotFound, Message: "Client not found"}
	ErrInvalidRole        = &Error{Code: CodeInvalidRole, Message: "Target user must be a client"}
	ErrServiceUnavailable = &Error{Code: CodeServiceUnavailable, Message: "Unable to validate client"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "Validation failed"}
	ErrForbidden          = &Error{Code: CodeForbidden, Message: "Insufficient permissions"}

	ErrExerciseNotFound    = &Error{Code: CodeNotFound, Message: "Exercise not found"}
	ErrWorkoutPlanNotFound = &Error{Code: CodeNotFound, Message: "Workout plan not found"}
	ErrDietPlanNotFound    = &Error{Code: CodeNotFound, Message: "Diet plan not found"}
	ErrProgramNotFound     = &Error{Code: CodeNotFound, Message: "Program not found"}
	ErrMediaNotFound       = &Error{Code: CodeNotFound, Message: "Exercise has no media"}
	ErrMediaUnavailable    = &Error{Code: CodeServiceUnavailable, Message: "Media storage is not configured"}
)

func validationError(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// translate maps repository failures onto service errors; notFound is the
// entity specific not-found value. Unclassified errors pass through.
func translate(err error, notFound *Error) error {
	var fieldErr *query.FieldError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrNoUpdates):
		return ErrNoUpdates
	case errors.As(err, &fieldErr):
		return &Error{Code: CodeValidation, Message: "Invalid value for " + fieldErr.Field, Err: fieldErr}
	}
	return err
}
