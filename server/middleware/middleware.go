package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/apikit/errors"
)

// Middleware wraps an http.Handler with additional behavior. It is used at
// the server level, outside Gin, so it also covers handlers mounted beside
// the Gin engine.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// GinWrap adapts a standard Middleware for use in a Gin middleware chain.
//
// Middleware that replaces http.ResponseWriter does not integrate with
// gin.Context.Writer; apply such middleware at the server level instead.
func GinWrap(mw Middleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})
		mw(next).ServeHTTP(c.Writer, c.Request)
	}
}

// contextError returns the most recent *errors.Error attached to c by the
// response package, or nil.
func contextError(c *gin.Context) *errors.Error {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		if e, ok := errors.As(c.Errors[i].Err); ok && e != nil {
			return e
		}
	}
	return nil
}
