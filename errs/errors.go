// Package errs provides the error type shared by every schemato package.
//
// The model, the generator and the execution layer all return *errs.Error so
// callers can tell a bad schema definition apart from a dialect gap or a
// failed database round trip without matching on message text.
//
//	if err := users.UniqueConstraint("email"); errs.IsValidation(err) {
//	    // fix the schema definition
//	}
package errs

import (
	"errors"
	"fmt"
)

// Kind categorises an error.
type Kind int

const (
	KindUnknown    Kind = iota
	KindValidation      // schema definition rejected by the model
	KindUnmapped        // enum value without a dialect mapping
	KindExecution       // the database rejected or failed to run the script
	KindConfig          // unreadable or invalid configuration
	KindNotFound        // missing file, table or column lookup
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnmapped:
		return "unmapped"
	case KindExecution:
		return "execution"
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by schemato packages.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an *Error with the given kind and message and no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with fmt.Sprintf formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsValidation reports whether err is a rejected schema definition.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsUnmapped reports whether err is a missing type or action mapping.
func IsUnmapped(err error) bool {
	return KindOf(err) == KindUnmapped
}

// IsExecution reports whether err came from running SQL against a database.
func IsExecution(err error) bool {
	return KindOf(err) == KindExecution
}

// IsConfig reports whether err is a configuration problem.
func IsConfig(err error) bool {
	return KindOf(err) == KindConfig
}

// IsNotFound reports whether err is a failed lookup.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// KindOf extracts the Kind from the first *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
