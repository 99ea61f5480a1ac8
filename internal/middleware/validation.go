package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/validation"
)

type ValidationMiddleware struct {
	validate *validator.Validate
}

func NewValidationMiddleware(validate *validator.Validate) *ValidationMiddleware {
	if validate == nil {
		validate = validation.New()
	}
	return &ValidationMiddleware{validate: validate}
}

// ValidateRequestBody decodes the body into factory() and validates it.
// factory must return a pointer. A pointer to a slice is validated element
// by element and failures are keyed "[i].field". On success the decoded
// value is stored under GinKeyValidatedBody.
func (m *ValidationMiddleware) ValidateRequestBody(factory func() any) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		logger.GetLogger().Debug("Middleware: Validation request processing",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", clientIP),
			zap.String("content_type", c.GetHeader(constants.HeaderContentType)),
		)

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(c.Request.Body)
			if err != nil {
				logger.GetLogger().Error("Middleware: Failed to read request body",
					zap.String("client_ip", clientIP),
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
				c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, nil))
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		request := factory()
		if len(bytes.TrimSpace(bodyBytes)) == 0 || bytes.Equal(bytes.TrimSpace(bodyBytes), []byte("null")) {
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, "request body is required"))
			return
		}
		if err := json.Unmarshal(bodyBytes, request); err != nil {
			logger.GetLogger().Warn("Middleware: JSON unmarshaling failed",
				zap.String("client_ip", clientIP),
				zap.String("path", c.Request.URL.Path),
				zap.Int("body_size", len(bodyBytes)),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidJSON, err.Error()))
			return
		}

		if fieldErrors := m.validateValue(request); len(fieldErrors) > 0 {
			logger.GetLogger().Warn("Middleware: Request validation failed",
				zap.String("client_ip", clientIP),
				zap.String("path", c.Request.URL.Path),
				zap.Int("error_count", len(fieldErrors)),
			)
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity,
				constants.BuildValidationErrorResponse(constants.MsgValidationFailed, fieldErrors))
			return
		}

		c.Set(constants.GinKeyValidatedBody, request)
		c.Next()
	}
}

func (m *ValidationMiddleware) validateValue(request any) map[string]string {
	value := reflect.Indirect(reflect.ValueOf(request))
	if value.Kind() != reflect.Slice {
		return validation.Messages(m.validate.Struct(request))
	}

	out := make(map[string]string)
	for i := 0; i < value.Len(); i++ {
		elem := value.Index(i)
		if elem.Kind() != reflect.Struct {
			continue
		}
		prefix := "[" + strconv.Itoa(i) + "]."
		for field, msg := range validation.Messages(m.validate.Struct(elem.Interface())) {
			out[prefix+field] = msg
		}
	}
	return out
}
