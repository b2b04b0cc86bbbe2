package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")

	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	ErrInvalidTransition = errors.New("invalid transition")
	// ErrStatusConflict is returned by conditional updates whose guard no longer holds.
	ErrStatusConflict = errors.New("record changed concurrently")

	ErrCalendarNotAuthorized = errors.New("calendar is not connected")
	ErrCalendarRemote        = errors.New("calendar provider error")
)

type InvalidTransitionError struct{ Reason string }

func (e *InvalidTransitionError) Error() string        { return e.Reason }
func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

type ForbiddenError struct{ Reason string }

func (e *ForbiddenError) Error() string        { return e.Reason }
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

type UserAlreadyExistsError struct{ Email, Handle string }

func (e *UserAlreadyExistsError) Error() string {
	return fmt.Sprintf("user with email '%s' or user id '%s' already exists", e.Email, e.Handle)
}
func (e *UserAlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

// InvalidInputError carries a client-facing reason for rejected input.
type InvalidInputError struct{ Reason string }

func (e *InvalidInputError) Error() string        { return ErrValidation.Error() + ": " + e.Reason }
func (e *InvalidInputError) Is(target error) bool { return target == ErrValidation }
