package errs

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the service can surface. Each failure is
// scoped to one request; nothing here is fatal to the process.
type Kind string

const (
	KindAuthorizationDenied Kind = "AUTHORIZATION_DENIED"
	KindValidation          Kind = "VALIDATION_ERROR"
	KindGatingViolation     Kind = "GATING_VIOLATION"
	KindStaleWriteConflict  Kind = "STALE_WRITE_CONFLICT"
	KindTransport           Kind = "TRANSPORT_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func AuthorizationDenied(msg string) error {
	return &Error{Kind: KindAuthorizationDenied, Message: msg}
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func GatingViolation(msg string) error {
	return &Error{Kind: KindGatingViolation, Message: msg}
}

// StaleWriteConflict means the persisted state advanced past the value the
// request assumed. The caller may retry the whole action; the engine never
// retries on its own.
func StaleWriteConflict(msg string) error {
	return &Error{Kind: KindStaleWriteConflict, Message: msg}
}

func Transport(msg string, err error) error {
	return &Error{Kind: KindTransport, Message: msg, Err: err}
}

// KindOf returns the classification of err, or "" for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
