package errors

import (
	"fmt"
	"strings"

	"github.com/kbukum/apikit/util"
)

// Error is the unified application error rendered into the error envelope.
type Error struct {
	kind    Kind
	message *string

	// Cause is the underlying error. It is logged, never sent to clients.
	Cause error
	// Details holds extra context for logs. It is never sent to clients.
	Details map[string]any
}

// New creates an Error of the given kind without a message; the kind's
// default message is used.
func New(kind Kind) *Error {
	return &Error{kind: kind}
}

// NewWithMessage creates an Error with an explicit message.
// The message is kept as given, including the empty string.
func NewWithMessage(kind Kind, message string) *Error {
	return &Error{kind: kind, message: &message}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return NewWithMessage(kind, fmt.Sprintf(format, args...))
}

// NewOptional creates an Error whose message may be absent. A nil message
// selects the kind's default; the pointed-to string is copied.
func NewOptional(kind Kind, message *string) *Error {
	if message == nil {
		return New(kind)
	}
	return &Error{kind: kind, message: util.Ptr(*message)}
}

// Kind returns the error's kind, normalizing undeclared kinds to KindInternal.
// A nil *Error has kind zero.
func (e *Error) Kind() Kind {
	if e == nil {
		return 0
	}
	if !e.kind.Valid() {
		return KindInternal
	}
	return e.kind
}

// Status returns the HTTP status code for the error.
func (e *Error) Status() int { return e.Kind().Status() }

// Code returns the machine-readable error code.
func (e *Error) Code() Code { return e.Kind().Code() }

// Retryable reports whether the failed request may be retried.
func (e *Error) Retryable() bool { return e.Kind().Retryable() }

// HasMessage reports whether a message was supplied explicitly.
func (e *Error) HasMessage() bool { return e.message != nil }

// Message returns the supplied message or the kind's default.
func (e *Error) Message() string {
	if e.message != nil {
		return *e.message
	}
	return e.Kind().DefaultMessage()
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code(), e.Message(), e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code(), e.Message())
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same kind, so
// errors.Is(err, errors.New(errors.KindNotFound)) matches any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == nil || e == nil {
		return t == e
	}
	return e.Kind() == t.Kind()
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// --- Per-kind constructors ---
//
// Each takes an optional message. Called without arguments the default
// message applies; otherwise the parts are joined with a single space and
// kept as given.

func newKind(kind Kind, message []string) *Error {
	if len(message) == 0 {
		return New(kind)
	}
	return NewWithMessage(kind, strings.Join(message, " "))
}

// BadRequest creates a 400 error.
func BadRequest(message ...string) *Error { return newKind(KindBadRequest, message) }

// Unauthorized creates a 401 error.
func Unauthorized(message ...string) *Error { return newKind(KindUnauthorized, message) }

// Forbidden creates a 403 error.
func Forbidden(message ...string) *Error { return newKind(KindForbidden, message) }

// NotFound creates a 404 error.
func NotFound(message ...string) *Error { return newKind(KindNotFound, message) }

// MethodNotAllowed creates a 405 error.
func MethodNotAllowed(message ...string) *Error { return newKind(KindMethodNotAllowed, message) }

// Conflict creates a 409 error.
func Conflict(message ...string) *Error { return newKind(KindConflict, message) }

// PayloadTooLarge creates a 413 error.
func PayloadTooLarge(message ...string) *Error { return newKind(KindPayloadTooLarge, message) }

// TooManyRequests creates a 429 error.
func TooManyRequests(message ...string) *Error { return newKind(KindTooManyRequests, message) }

// ServiceUnavailable creates a 503 error.
func ServiceUnavailable(message ...string) *Error { return newKind(KindServiceUnavailable, message) }

// GatewayTimeout creates a 504 error.
func GatewayTimeout(message ...string) *Error { return newKind(KindGatewayTimeout, message) }

// Internal creates a 500 error keeping cause for logs. The client only ever
// sees the generic default message.
func Internal(cause error) *Error {
	return &Error{kind: KindInternal, Cause: cause}
}
