// Package errors defines the closed error taxonomy used by apikit responses.
//
// Every Kind maps to exactly one HTTP status and one machine-readable Code.
// An Error carries a Kind and an optional message: when no message is
// supplied the kind's default is used, while an explicitly supplied message
// (even an empty one) is preserved.
//
// # Usage
//
//	err := errors.NewWithMessage(errors.KindBadRequest, "invalid id")
//	err.Status() // 400
//	err.Body()   // {"code":"BAD_REQUEST","message":"invalid id"}
//
//	errors.NotFound().Message() // "Not Found"
package errors
