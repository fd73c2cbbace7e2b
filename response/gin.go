package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/kbukum/apikit/errors"
	"github.com/kbukum/apikit/logger"
)

var jsonContentType = []string{"application/json; charset=utf-8"}

var _ render.Render = Envelope[Never]{}

// Render writes the encoded envelope to w. It lets an envelope be passed
// straight to gin.Context.Render.
func (e Envelope[T]) Render(w http.ResponseWriter) error {
	body, err := e.MarshalJSON()
	if err != nil {
		return err
	}
	return rawJSON(body).Render(w)
}

// WriteContentType sets the JSON content type unless one is already present.
func (e Envelope[T]) WriteContentType(w http.ResponseWriter) {
	writeContentType(w)
}

// Write renders the envelope on c with its status. Error envelopes are also
// attached to c.Errors for the logging and tracing middleware. A payload that
// cannot be encoded is replaced by an internal error envelope.
func (e Envelope[T]) Write(c *gin.Context) {
	body, err := e.MarshalJSON()
	if err != nil {
		Fail(fmt.Errorf("encoding response payload: %w", err)).Write(c)
		return
	}
	if e.err != nil {
		_ = c.Error(e.err)
		logError(c, e.err)
	}
	c.Render(e.Status(), rawJSON(body))
}

// Handle adapts a function returning a payload or an error into a Gin
// handler. Errors that are not *errors.Error are reported as internal errors.
func Handle[T any](fn func(*gin.Context) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := fn(c)
		if appErr := errors.Wrap(err); appErr != nil {
			Error[T](appErr).Write(c)
			return
		}
		Success(data).Write(c)
	}
}

// HandleEnvelope adapts a function building its own envelope into a Gin
// handler.
func HandleEnvelope[T any](fn func(*gin.Context) Envelope[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		fn(c).Write(c)
	}
}

// OK writes data in a 200 success envelope.
func OK(c *gin.Context, data any) {
	Success(data).Write(c)
}

// OKWithStatus writes data in a success envelope with a 2xx status.
func OKWithStatus(c *gin.Context, status int, data any) {
	SuccessWithStatus(status, data).Write(c)
}

// CreatedJSON writes data in a 201 success envelope.
func CreatedJSON(c *gin.Context, data any) {
	Created(data).Write(c)
}

// NoContent writes 204 with no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondWithError writes err in an error envelope.
func RespondWithError(c *gin.Context, err error) {
	Fail(err).Write(c)
}

// Abort stops the handler chain and writes err in an error envelope.
func Abort(c *gin.Context, err error) {
	c.Abort()
	Fail(err).Write(c)
}

func logError(c *gin.Context, err *errors.Error) {
	log := logger.Get("response")
	if c.Request != nil {
		log = log.WithContext(c.Request.Context())
	}
	fields := logger.Fields(
		logger.FieldStatus, err.Status(),
		logger.FieldErrorCode, string(err.Code()),
	)
	if c.Request != nil {
		fields[logger.FieldMethod] = c.Request.Method
		fields[logger.FieldPath] = c.Request.URL.Path
	}

	if err.Kind() == errors.KindInternal {
		if err.Cause != nil {
			fields[logger.FieldError] = err.Cause.Error()
		}
		log.Error("request failed", fields)
		return
	}
	log.Debug(err.Message(), fields)
}

// rawJSON renders bytes that are already encoded.
type rawJSON []byte

func (r rawJSON) Render(w http.ResponseWriter) error {
	writeContentType(w)
	_, err := w.Write(r)
	return err
}

func (r rawJSON) WriteContentType(w http.ResponseWriter) {
	writeContentType(w)
}

func writeContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = jsonContentType
	}
}
