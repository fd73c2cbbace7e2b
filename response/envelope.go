package response

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/kbukum/apikit/errors"
)

// Envelope keys. Changing them is a breaking change for every client.
const (
	KeySuccess = "success"
	KeyError   = "error"
)

var (
	// ErrEmptyEnvelope is returned when decoding an object with neither branch.
	ErrEmptyEnvelope = stderrors.New("response: envelope has neither success nor error")
	// ErrAmbiguousEnvelope is returned when decoding an object with both branches.
	ErrAmbiguousEnvelope = stderrors.New("response: envelope has both success and error")
)

// Never is the payload type of envelopes that can only carry an error.
type Never struct{}

// Envelope holds either a success payload or an error, never both, together
// with the HTTP status it is written with. The zero value is a 200 success
// carrying the zero T.
type Envelope[T any] struct {
	data   T
	err    *errors.Error
	status int
}

type successBody[T any] struct {
	Success T `json:"success"`
}

type errorBody struct {
	Error errors.Body `json:"error"`
}

// Success wraps payload with status 200.
func Success[T any](payload T) Envelope[T] {
	return Envelope[T]{data: payload, status: http.StatusOK}
}

// SuccessWithStatus wraps payload with an explicit 2xx status. Any other
// status is replaced by 200.
func SuccessWithStatus[T any](status int, payload T) Envelope[T] {
	if status < 200 || status > 299 {
		status = http.StatusOK
	}
	return Envelope[T]{data: payload, status: status}
}

// Created wraps payload with status 201.
func Created[T any](payload T) Envelope[T] {
	return SuccessWithStatus(http.StatusCreated, payload)
}

// Error wraps err in the error branch. err is converted with errors.Wrap, so
// foreign errors become internal errors; a nil error is also reported as an
// internal error.
func Error[T any](err error) Envelope[T] {
	appErr := errors.Wrap(err)
	if appErr == nil {
		appErr = errors.Internal(stderrors.New("response: error envelope built from nil error"))
	}
	return Envelope[T]{err: appErr, status: appErr.Status()}
}

// Fail is Error for envelopes that never carry a payload.
func Fail(err error) Envelope[Never] {
	return Error[Never](err)
}

// IsSuccess reports whether the envelope carries a payload.
func (e Envelope[T]) IsSuccess() bool {
	return e.err == nil
}

// Data returns the payload and whether the envelope is a success.
func (e Envelope[T]) Data() (T, bool) {
	return e.data, e.err == nil
}

// Err returns the carried error, or nil for successes.
func (e Envelope[T]) Err() *errors.Error {
	return e.err
}

// Status returns the HTTP status the envelope is written with.
func (e Envelope[T]) Status() int {
	if e.err != nil {
		return e.err.Status()
	}
	if e.status == 0 {
		return http.StatusOK
	}
	return e.status
}

// Result unpacks the envelope into Go's (value, error) convention.
func (e Envelope[T]) Result() (T, error) {
	if e.err != nil {
		var zero T
		return zero, e.err
	}
	return e.data, nil
}

// MarshalJSON encodes the envelope as {"success": ...} or
// {"error": {"code": ..., "message": ...}}.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	if e.err != nil {
		return json.Marshal(errorBody{Error: e.err.Body()})
	}
	return json.Marshal(successBody[T]{Success: e.data})
}

// UnmarshalJSON decodes an envelope. Exactly one branch must be present. The
// status is restored from the error kind, or 200 for successes.
func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("response: decoding envelope: %w", err)
	}

	successRaw, hasSuccess := raw[KeySuccess]
	errorRaw, hasError := raw[KeyError]

	switch {
	case hasSuccess && hasError:
		return ErrAmbiguousEnvelope
	case hasSuccess:
		var data T
		if err := json.Unmarshal(successRaw, &data); err != nil {
			return fmt.Errorf("response: decoding success payload: %w", err)
		}
		*e = Envelope[T]{data: data, status: http.StatusOK}
	case hasError:
		var body errors.Body
		if err := json.Unmarshal(errorRaw, &body); err != nil {
			return fmt.Errorf("response: decoding error body: %w", err)
		}
		appErr := errors.FromBody(body)
		*e = Envelope[T]{err: appErr, status: appErr.Status()}
	default:
		return ErrEmptyEnvelope
	}
	return nil
}

// Decode reads one envelope from r, typically a client's response body.
func Decode[T any](r io.Reader) (Envelope[T], error) {
	var env Envelope[T]
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return Envelope[T]{}, err
	}
	return env, nil
}
