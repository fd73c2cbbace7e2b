package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/apikit/errors"
	"github.com/kbukum/apikit/logger"
	"github.com/kbukum/apikit/observability"
)

const tracerName = "github.com/kbukum/apikit/server/middleware"

// Tracing starts a server span per request, continuing any trace propagated
// in the request headers. The span carries the route, the status and, for
// error envelopes, the error code; 5xx responses mark the span as failed.
// Request and error metrics are recorded when metrics is non-nil.
func Tracing(serviceName string, metrics *observability.Metrics) gin.HandlerFunc {
	tracer := observability.Tracer(tracerName)

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		spanName := c.Request.Method + " " + route

		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String(observability.AttrServiceName, serviceName),
				attribute.String(observability.AttrHTTPMethod, c.Request.Method),
				attribute.String(observability.AttrHTTPRoute, route),
				attribute.String(observability.AttrURLPath, c.Request.URL.Path),
			),
		)
		defer span.End()

		if id := logger.RequestIDFromContext(ctx); id != "" {
			span.SetAttributes(attribute.String(observability.AttrRequestID, id))
		}
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		if metrics != nil {
			metrics.RecordRequestStart(ctx)
		}

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, status))

		appErr := contextError(c)
		if appErr != nil {
			span.SetAttributes(
				attribute.String(observability.AttrErrorCode, string(appErr.Code())),
				attribute.String(observability.AttrErrorMessage, appErr.Message()),
			)
			if appErr.Kind() == errors.KindInternal && appErr.Cause != nil {
				span.RecordError(appErr.Cause)
			}
		}
		if status >= http.StatusInternalServerError {
			span.SetStatus(otelcodes.Error, http.StatusText(status))
		}

		if metrics != nil {
			metrics.RecordRequestEnd(ctx, serviceName, spanName, strconv.Itoa(status), time.Since(start))
			if appErr != nil {
				metrics.RecordResponseError(ctx, serviceName, string(appErr.Code()))
			}
		}
	}
}
