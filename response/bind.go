package response

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kbukum/apikit/errors"
	"github.com/kbukum/apikit/validation"
)

// Bind decodes the JSON request body into a T and runs struct validation.
// Decode failures become BAD_REQUEST, or PAYLOAD_TOO_LARGE when the body
// limit was exceeded.
func Bind[T any](c *gin.Context) (T, *errors.Error) {
	var v T
	if err := c.ShouldBindJSON(&v); err != nil {
		return v, bindError(err)
	}
	if err := validation.Validate(&v); err != nil {
		return v, err
	}
	return v, nil
}

func bindError(err error) *errors.Error {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return errors.PayloadTooLarge(fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)).WithCause(err)
	}
	if stderrors.Is(err, io.EOF) {
		return errors.BadRequest("request body is required").WithCause(err)
	}
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		return validation.FromError(err)
	}
	return errors.BadRequest("malformed JSON body").WithCause(err)
}
