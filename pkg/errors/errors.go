// Package errors carries the error taxonomy shared by the store clients and
// the report services. A legitimately empty stage is never an error here;
// empty-as-valid and empty-as-masked-failure stay distinguishable because
// clients always return the error alongside the (possibly empty) result.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound marks a scoped lookup miss (named group, department id).
// Callers decide whether a miss aborts assembly or is tolerated.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or missing request fields. It is
// detected before any external call is issued and surfaces as HTTP 400.
type ValidationError struct {
	Fields []string // the offending fields
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("validation failed on %s: %s", strings.Join(e.Fields, ", "), e.Reason)
	}
	return fmt.Sprintf("validation failed on %s", strings.Join(e.Fields, ", "))
}

// NewValidation builds a ValidationError for the given fields.
func NewValidation(reason string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError marks a backend as unavailable or a query as failed. It names
// the store and the logical operation so logs carry query context, while the
// HTTP layer surfaces only a generic message.
type StoreError struct {
	Store string // "elasticsearch", "neo4j", "redis", "postgres", "mongodb"
	Op    string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Store, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStore wraps a backend failure with store identity and operation name.
func NewStore(store, op string, err error) *StoreError {
	return &StoreError{Store: store, Op: op, Err: err}
}

// IsStore reports whether err is (or wraps) a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
