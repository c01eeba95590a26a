// Package apperr classifies application errors so HTTP handlers can map
// them to status codes without sniffing message text.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the error category exposed to the HTTP layer.
type Kind int

const (
	// Validation covers missing or malformed request fields.
	Validation Kind = iota
	// Auth covers a missing or invalid session.
	Auth
	// Forbidden covers a valid session with an insufficient role.
	Forbidden
	// NotFound covers a referenced record that does not exist.
	NotFound
	// Upstream covers a failed third-party dependency call.
	Upstream
	// Storage covers a backing-store read or write failure.
	Storage
)

// Error is an application error with a classification.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the classification from an error chain. Unclassified
// errors report Storage, the generic 500 category.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Storage
}

// IsNotFound reports whether err is classified NotFound.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == NotFound
}
