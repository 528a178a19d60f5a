// Package apperrors defines the error taxonomy shared across layers.
// Handlers map these types to HTTP status codes; business code never
// swallows them.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports malformed, missing or out-of-range input.
type ValidationError struct {
	Fields []string // offending field names, in the order they were checked
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	if e.Reason != "" {
		return fmt.Sprintf("validation failed for %s: %s", strings.Join(e.Fields, ", "), e.Reason)
	}
	return fmt.Sprintf("validation failed for %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []string{field}, Reason: reason}
}

// NotFoundError reports an unknown application or reference.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// InvalidTransitionError reports an illegal application status change.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// UpstreamError reports a collaborator (extraction, storage, assistant,
// registry) failure after retries were exhausted.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream service %s failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ErrVersionConflict is returned by repositories when an optimistic
// concurrency check fails on update.
var ErrVersionConflict = errors.New("application was modified concurrently")

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
