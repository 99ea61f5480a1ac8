package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

// ContextMiddleware seeds the request context with the values every log
// line carries: request id, correlation id, client ip, user agent and the
// start time. The request id is echoed in X-Request-ID.
func ContextMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		correlationID := c.GetHeader(constants.HeaderXCorrelationID)
		if correlationID == "" {
			correlationID = requestID
		}

		ctx := c.Request.Context()
		ctx = ctxutil.WithValue(ctx, ctxutil.RequestIDKey, requestID)
		ctx = ctxutil.WithValue(ctx, ctxutil.CorrelationIDKey, correlationID)
		if traceID := c.GetHeader(constants.HeaderXTraceID); traceID != "" {
			ctx = ctxutil.WithValue(ctx, ctxutil.TraceIDKey, traceID)
		}
		ctx = ctxutil.WithValue(ctx, ctxutil.ClientIPKey, c.ClientIP())
		ctx = ctxutil.WithValue(ctx, ctxutil.UserAgentKey, c.GetHeader(constants.HeaderUserAgent))
		ctx = ctxutil.WithValue(ctx, ctxutil.StartTimeKey, time.Now())

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		c.Request = c.Request.WithContext(ctx)
		c.Set(constants.GinKeyRequestID, requestID)
		c.Header(constants.HeaderXRequestID, requestID)
		c.Header(constants.HeaderXCorrelationID, correlationID)

		logger.DebugWithContext(ctx, "Request started").
			Method(c.Request.Method).
			Path(c.Request.URL.Path).
			String("query", c.Request.URL.RawQuery).
			Log()

		c.Next()

		logger.InfoWithContext(ctx, "Request completed").
			Method(c.Request.Method).
			Path(c.Request.URL.Path).
			StatusCode(c.Writer.Status()).
			Int("response_size", c.Writer.Size()).
			Duration(ctxutil.GetDuration(ctx)).
			Log()
	}
}

// ContextValidationMiddleware rejects requests whose context is already
// cancelled.
func ContextValidationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := ctx.Err(); err != nil {
			logger.WarnWithContext(ctx, "Context already cancelled").
				Err(err).
				Log()
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse("Request cancelled", err.Error()))
			return
		}

		c.Next()
	}
}
