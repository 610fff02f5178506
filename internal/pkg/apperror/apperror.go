package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindAuthRequired Kind = "AUTH_REQUIRED"
	KindForbidden    Kind = "FORBIDDEN"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindValidation   Kind = "VALIDATION"
	KindInternal     Kind = "INTERNAL"
)

const CodeAdminRequired = "ADMIN_REQUIRED"

// Error is the typed failure every service returns. The HTTP layer maps Kind
// to a status code; Code refines it for clients (e.g. ADMIN_REQUIRED).
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Fields carries per-field validation rules, keyed by JSON field name.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind and Code so callers can compare against the sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

var (
	ErrAuthRequired  = &Error{Kind: KindAuthRequired, Code: string(KindAuthRequired), Message: "authentication required"}
	ErrForbidden     = &Error{Kind: KindForbidden, Code: string(KindForbidden), Message: "forbidden"}
	ErrAdminRequired = &Error{Kind: KindForbidden, Code: CodeAdminRequired, Message: "admin access required"}
	ErrNotFound      = &Error{Kind: KindNotFound, Code: string(KindNotFound), Message: "not found"}
)

func AuthRequired(message string) *Error {
	return &Error{Kind: KindAuthRequired, Code: string(KindAuthRequired), Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Code: string(KindForbidden), Message: message}
}

func AdminRequired() *Error {
	return &Error{Kind: KindForbidden, Code: CodeAdminRequired, Message: ErrAdminRequired.Message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: string(KindNotFound), Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Code: string(KindConflict), Message: message}
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: string(KindValidation), Message: message, Fields: fields}
}

// Internal wraps an unexpected failure. The wrapped error is kept for logs and
// never rendered to clients.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: string(KindInternal), Message: message, Err: err}
}

// KindOf reports the Kind of err, or KindInternal for anything untyped.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// As extracts the typed error, wrapping untyped errors as Internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}
