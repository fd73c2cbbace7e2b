package errors

import (
	"context"
	stderrors "errors"
)

// Body is the error branch of the response envelope. It always serializes to
// exactly {"code": ..., "message": ...}.
type Body struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Body converts the error to its wire representation.
func (e *Error) Body() Body {
	return Body{
		Code:    e.Code(),
		Message: e.Message(),
	}
}

// FromBody rebuilds an Error from a decoded wire body. Unknown codes become
// internal errors that keep the received message.
func FromBody(b Body) *Error {
	kind, _ := KindFromCode(b.Code)
	return NewWithMessage(kind, b.Message)
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind err would be reported with, following the same
// rules as Wrap. It returns zero for nil.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	return Wrap(err).Kind()
}

// Wrap converts any error into an *Error. An *Error anywhere in the chain is
// returned unchanged; deadline expiry becomes a gateway timeout; everything
// else becomes an internal error whose cause is err.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return GatewayTimeout().WithCause(err)
	}
	return Internal(err)
}
