// Package apierror provides standardized error response structures for the API
// plus the domain error taxonomy (not-found vs. business rule violations).
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "fmt"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// NotFoundError indicates that a referenced entity does not exist.
// Mapped to 404 by the handler layer; never retried.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s con id %s no encontrado", e.Resource, e.ID)
}

func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// BusinessError indicates a domain invariant would be broken (overpayment,
// editing a non-PENDIENTE estimate, deleting a paid invoice, ...).
// Mapped to 400 by the handler layer with a human-readable message.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

func NewBusiness(msg string) error {
	return &BusinessError{Message: msg}
}

func NewBusinessf(format string, args ...interface{}) error {
	return &BusinessError{Message: fmt.Sprintf(format, args...)}
}
