// Package apierror defines the API-facing error taxonomy.
//
// Database failures and handler-level conditions are surfaced as these
// types instead of driver or ORM errors, so the web layer can map them to
// HTTP responses without knowing which database produced them.
package apierror

import (
	"fmt"
	"net/http"
)

// APIError is implemented by every error in this package. Status is the
// HTTP status code the web layer should respond with, Kind a stable
// machine-readable tag for the error body.
type APIError interface {
	error
	Status() int
	Kind() string
}

// ValueNotUniqueError reports a write that violated a uniqueness
// constraint. Handlers map this to HTTP 409.
type ValueNotUniqueError struct {
	Model string
	Cause error
}

// NewValueNotUniqueError builds a ValueNotUniqueError for the given model,
// keeping the underlying driver error as the cause.
func NewValueNotUniqueError(model string, cause error) *ValueNotUniqueError {
	return &ValueNotUniqueError{Model: model, Cause: cause}
}

func (e *ValueNotUniqueError) Error() string {
	return fmt.Sprintf("cannot create `%s`, value already in use [%v]", e.Model, e.Cause)
}

func (e *ValueNotUniqueError) Status() int { return http.StatusConflict }

func (e *ValueNotUniqueError) Kind() string { return "value_not_unique" }

func (e *ValueNotUniqueError) Unwrap() error { return e.Cause }

// IntegrityViolationError reports a write that violated a database
// constraint other than uniqueness (foreign key, not-null, check).
// Handlers map this to HTTP 400.
type IntegrityViolationError struct {
	Cause error
}

// NewIntegrityViolationError wraps a constraint failure.
func NewIntegrityViolationError(cause error) *IntegrityViolationError {
	return &IntegrityViolationError{Cause: cause}
}

func (e *IntegrityViolationError) Error() string {
	return fmt.Sprintf("database integrity violated [%v]", e.Cause)
}

func (e *IntegrityViolationError) Status() int { return http.StatusBadRequest }

func (e *IntegrityViolationError) Kind() string { return "integrity_violation" }

func (e *IntegrityViolationError) Unwrap() error { return e.Cause }

// DatabaseError reports an operational failure: lost connection, busy or
// locked database, server shutdown. Handlers map this to HTTP 500.
type DatabaseError struct {
	Cause error
}

// NewDatabaseError wraps an operational database failure.
func NewDatabaseError(cause error) *DatabaseError {
	return &DatabaseError{Cause: cause}
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database operational error [%v]", e.Cause)
}

func (e *DatabaseError) Status() int { return http.StatusInternalServerError }

func (e *DatabaseError) Kind() string { return "database_error" }

func (e *DatabaseError) Unwrap() error { return e.Cause }

// BadRequestError reports a malformed or semantically invalid request.
type BadRequestError struct {
	Message string
}

// NewBadRequestError builds a BadRequestError with the given message.
func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

func (e *BadRequestError) Error() string { return e.Message }

func (e *BadRequestError) Status() int { return http.StatusBadRequest }

func (e *BadRequestError) Kind() string { return "bad_request" }

// UnauthorizedError reports a missing or invalid credential.
type UnauthorizedError struct {
	Message string
}

// NewUnauthorizedError builds an UnauthorizedError with the given message.
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func (e *UnauthorizedError) Error() string { return e.Message }

func (e *UnauthorizedError) Status() int { return http.StatusUnauthorized }

func (e *UnauthorizedError) Kind() string { return "unauthorized" }

// ForbiddenError reports an authenticated caller acting outside its rights.
type ForbiddenError struct {
	Message string
}

// NewForbiddenError builds a ForbiddenError with the given message.
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string { return e.Message }

func (e *ForbiddenError) Status() int { return http.StatusForbidden }

func (e *ForbiddenError) Kind() string { return "forbidden" }

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string
}

// NewNotFoundError builds a NotFoundError for the named resource.
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Resource) }

func (e *NotFoundError) Status() int { return http.StatusNotFound }

func (e *NotFoundError) Kind() string { return "not_found" }
