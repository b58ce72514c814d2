package errs

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoRecord is returned by repositories when a lookup matched no row.
// Callers turn it into a NotFoundError with the resource name they know about.
var ErrNoRecord = errors.New("no record found")

// ValidationError reports malformed or missing input.
// Fields carries every violation found, not only the first one.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %d invalid field(s)", e.Message, len(e.Fields))
}

// NewValidation builds a ValidationError. Field errors are sorted by field
// name so responses are stable across runs.
func NewValidation(message string, fields ...FieldError) *ValidationError {
	sorted := append([]FieldError(nil), fields...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Field < sorted[j].Field })
	return &ValidationError{Message: message, Fields: sorted}
}

// NewFieldValidation is shorthand for a ValidationError on a single field.
func NewFieldValidation(field, message string) *ValidationError {
	return NewValidation("Validation failed", FieldError{Field: field, Error: message})
}

// DuplicateResourceError reports that a uniqueness rule would be violated.
type DuplicateResourceError struct {
	Field string
	Value any
}

func NewDuplicateResource(field string, value any) *DuplicateResourceError {
	return &DuplicateResourceError{Field: field, Value: value}
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("%s '%v' is already in use", e.Field, e.Value)
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       any
}

func NewNotFound(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id '%v'", e.Resource, e.ID)
}

// InvalidOperationError reports an operation forbidden by the current state,
// such as deleting a record that other rows still reference.
type InvalidOperationError struct {
	Operation string
	Reason    string
}

func NewInvalidOperation(operation, reason string) *InvalidOperationError {
	return &InvalidOperationError{Operation: operation, Reason: reason}
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("operation '%s' not allowed: %s", e.Operation, e.Reason)
}

// DatabaseError wraps a persistence failure unrelated to the caller's input.
// The cause is kept for logs; clients only ever see a generic message.
type DatabaseError struct {
	Operation string
	Err       error
}

func NewDatabase(operation string, err error) *DatabaseError {
	return &DatabaseError{Operation: operation, Err: err}
}

func (e *DatabaseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("database error during '%s'", e.Operation)
	}
	return fmt.Sprintf("database error during '%s': %v", e.Operation, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// IsDomain reports whether err already carries one of the domain kinds (or an
// HTTPError), i.e. it must be propagated as-is instead of being wrapped again.
func IsDomain(err error) bool {
	var (
		validationErr *ValidationError
		duplicateErr  *DuplicateResourceError
		notFoundErr   *NotFoundError
		invalidOpErr  *InvalidOperationError
		databaseErr   *DatabaseError
		httpErr       *HTTPError
	)
	return errors.As(err, &validationErr) ||
		errors.As(err, &duplicateErr) ||
		errors.As(err, &notFoundErr) ||
		errors.As(err, &invalidOpErr) ||
		errors.As(err, &databaseErr) ||
		errors.As(err, &httpErr)
}

// ToHTTPError maps a domain error kind to the HTTPError written to clients:
//
//	Validation -> 400, DuplicateResource -> 409, NotFound -> 404,
//	InvalidOperation -> 422, Database -> 500 (generic message).
//
// It returns nil when err is none of the known kinds.
func ToHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewBadRequestError(validationErr.Message, true, nil, validationErr.Fields, nil)
	}

	var duplicateErr *DuplicateResourceError
	if errors.As(err, &duplicateErr) {
		code := "DUPLICATE_RESOURCE"
		return NewConflictError(duplicateErr.Error(), true, &code, []FieldError{
			{Field: duplicateErr.Field, Error: "is already in use"},
		})
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return NewNotFoundError(notFoundErr.Error(), true, nil)
	}

	var invalidOpErr *InvalidOperationError
	if errors.As(err, &invalidOpErr) {
		code := "INVALID_OPERATION"
		return NewUnprocessableEntityError(invalidOpErr.Error(), true, &code)
	}

	var databaseErr *DatabaseError
	if errors.As(err, &databaseErr) {
		return NewInternalServerError()
	}

	return nil
}
