package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/apikit/errors"
	"github.com/kbukum/apikit/logger"
	"github.com/kbukum/apikit/response"
)

// Recovery returns server-level middleware that turns a panic into an
// INTERNAL_ERROR envelope. If the handler already started the response only
// the log line is written.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logPanic(log, r, rec)
					if sw.committed() {
						log.WithContext(r.Context()).Warn("Panic after response started", logger.Fields(
							logger.FieldStatus, sw.status,
							logger.FieldPath, r.URL.Path,
						))
						return
					}
					env := response.Fail(errors.Internal(fmt.Errorf("panic: %v", rec)))
					env.WriteContentType(sw)
					sw.WriteHeader(env.Status())
					_ = env.Render(sw)
				}
			}()
			next.ServeHTTP(sw, r)
		})
	}
}

// GinRecovery is Recovery for the Gin chain. The internal error is attached
// to the context, so request logging and tracing still see it.
func GinRecovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logPanic(log, c.Request, rec)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.Abort(c, errors.Internal(fmt.Errorf("panic: %v", rec)))
			}
		}()
		c.Next()
	}
}

func logPanic(log *logger.Logger, r *http.Request, rec any) {
	log.WithContext(r.Context()).Error("Panic recovered", logger.Fields(
		logger.FieldError, fmt.Sprintf("%v", rec),
		"stack", string(debug.Stack()),
		logger.FieldPath, r.URL.Path,
		logger.FieldMethod, r.Method,
	))
}
