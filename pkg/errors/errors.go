// Package errors defines the error taxonomy shared by the validator, stores
// and services. Every failure the core hands to a caller is one of these
// kinds; transport mapping is the HTTP layer's concern.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind string

const (
	// KindRequiredField means a mandatory input was null or blank.
	KindRequiredField Kind = "required_field"
	// KindInvalidInput means a present input violates a format or range rule.
	KindInvalidInput Kind = "invalid_input"
	// KindInvalidSearchQuery means a non-empty search string violates the
	// search character or length rule.
	KindInvalidSearchQuery Kind = "invalid_search_query"
	// KindNotFound means a referenced id does not exist in the store.
	KindNotFound Kind = "not_found"
	// KindOperationFailure wraps an unexpected store or cache failure.
	KindOperationFailure Kind = "operation_failure"
)

// Error is the concrete error type carried by all failures raised in the core.
type Error struct {
	Kind   Kind
	Entity string
	Field  string
	ID     int64
	Reason string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRequiredField:
		return fmt.Sprintf("required field '%s' is missing or empty", e.Field)
	case KindInvalidInput:
		return fmt.Sprintf("invalid input for field '%s': %s", e.Field, e.Reason)
	case KindInvalidSearchQuery:
		return fmt.Sprintf("invalid search query: %s", e.Reason)
	case KindNotFound:
		return fmt.Sprintf("%s not found with id %d", e.Entity, e.ID)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Reason, e.Err)
		}
		return e.Reason
	}
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// RequiredField reports a missing mandatory input.
func RequiredField(field string) *Error {
	return &Error{Kind: KindRequiredField, Field: field}
}

// InvalidInput reports a present input that violates a format or range rule.
func InvalidInput(field, reason string) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Reason: reason}
}

// InvalidSearchQuery reports a search string violating the search rule.
func InvalidSearchQuery(reason string) *Error {
	return &Error{Kind: KindInvalidSearchQuery, Reason: reason}
}

// NotFound reports a referenced id that does not exist.
func NotFound(entity string, id int64) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

// OperationFailure wraps an unexpected failure without exposing internals.
func OperationFailure(reason string, cause error) *Error {
	return &Error{Kind: KindOperationFailure, Reason: reason, Err: cause}
}

// KindOf returns the kind of err, or an empty Kind for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsValidation reports whether err is any validation-class failure.
func IsValidation(err error) bool {
	switch KindOf(err) {
	case KindRequiredField, KindInvalidInput, KindInvalidSearchQuery:
		return true
	}
	return false
}
