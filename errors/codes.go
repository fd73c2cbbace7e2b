package errors

import "net/http"

// Code is the machine-readable error code sent to clients.
type Code string

// Kind is one category of the closed error taxonomy.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindMethodNotAllowed
	KindConflict
	KindPayloadTooLarge
	KindTooManyRequests
	KindInternal
	KindServiceUnavailable
	KindGatewayTimeout
)

// Wire codes. Changing any of these is a breaking change for clients.
const (
	CodeBadRequest         Code = "BAD_REQUEST"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeMethodNotAllowed   Code = "METHOD_NOT_ALLOWED"
	CodeConflict           Code = "CONFLICT"
	CodePayloadTooLarge    Code = "PAYLOAD_TOO_LARGE"
	CodeTooManyRequests    Code = "TOO_MANY_REQUESTS"
	CodeInternal           Code = "INTERNAL_ERROR"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeGatewayTimeout     Code = "GATEWAY_TIMEOUT"
)

// Kinds returns every kind of the taxonomy in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindBadRequest,
		KindUnauthorized,
		KindForbidden,
		KindNotFound,
		KindMethodNotAllowed,
		KindConflict,
		KindPayloadTooLarge,
		KindTooManyRequests,
		KindInternal,
		KindServiceUnavailable,
		KindGatewayTimeout,
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindBadRequest && k <= KindGatewayTimeout
}

// Status returns the HTTP status code for the kind.
// Undeclared kinds are reported as internal errors.
func (k Kind) Status() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindConflict:
		return http.StatusConflict
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindGatewayTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the wire code for the kind.
func (k Kind) Code() Code {
	switch k {
	case KindBadRequest:
		return CodeBadRequest
	case KindUnauthorized:
		return CodeUnauthorized
	case KindForbidden:
		return CodeForbidden
	case KindNotFound:
		return CodeNotFound
	case KindMethodNotAllowed:
		return CodeMethodNotAllowed
	case KindConflict:
		return CodeConflict
	case KindPayloadTooLarge:
		return CodePayloadTooLarge
	case KindTooManyRequests:
		return CodeTooManyRequests
	case KindServiceUnavailable:
		return CodeServiceUnavailable
	case KindGatewayTimeout:
		return CodeGatewayTimeout
	default:
		return CodeInternal
	}
}

// DefaultMessage returns the message used when none is supplied.
// It is the standard reason phrase of the kind's status, which keeps the
// internal error message generic.
func (k Kind) DefaultMessage() string {
	return http.StatusText(k.Status())
}

// Retryable reports whether clients may retry a request that failed with k.
func (k Kind) Retryable() bool {
	switch k {
	case KindTooManyRequests, KindServiceUnavailable, KindGatewayTimeout:
		return true
	default:
		return false
	}
}

// String returns the wire code of the kind.
func (k Kind) String() string {
	return string(k.Code())
}

// KindFromCode maps a wire code back to its kind.
func KindFromCode(code Code) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Code() == code {
			return k, true
		}
	}
	return KindInternal, false
}
