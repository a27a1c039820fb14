// Package errs holds the error taxonomy shared by the scheduling services.
package errs

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound       Kind = "notFound"
	KindNotSchedulable Kind = "notSchedulable"
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthorization  Kind = "authorization"
)

// Error is a domain failure reported to the caller as-is.
type Error struct {
	Kind    Kind
	Field   string // offending field path, validation errors only
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NotSchedulable(format string, args ...any) error {
	return &Error{Kind: KindNotSchedulable, Message: fmt.Sprintf(format, args...)}
}

// Validation reports a malformed field. field is a path such as "days.monday.slots[0].end".
func Validation(field, format string, args ...any) error {
	return &Error{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Authorization(format string, args ...any) error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the taxonomy kind of err, or "" for infrastructure failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// FieldOf returns the offending field of a validation error.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
