package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	apperrors "github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/errors"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/service"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/validation"
)

// parseID reads a positive integer path parameter, answering 400 otherwise.
func parseID(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidID, map[string]string{name: raw}))
		return 0, false
	}
	return id, true
}

// negotiate parses the Accept header, answering 400 when it is missing or
// malformed.
func negotiate(c *gin.Context) (shaping.MediaType, bool) {
	mt, err := shaping.ParseMediaType(c.GetHeader(constants.HeaderAccept))
	switch {
	case errors.Is(err, shaping.ErrMissingMediaType):
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgAcceptMissing, nil))
		return shaping.MediaType{}, false
	case err != nil:
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgMediaTypeInvalid, nil))
		return shaping.MediaType{}, false
	}
	return mt, true
}

// requestBaseURL is the configured public URL, or the scheme and host the
// request arrived on.
func requestBaseURL(c *gin.Context, configured string) string {
	if configured != "" {
		return strings.TrimSuffix(configured, "/")
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

func representation(c *gin.Context, mt shaping.MediaType, baseURL string) service.Representation {
	return service.Representation{
		MediaType: mt,
		Fields:    c.Query(constants.QueryParamFields),
		BaseURL:   requestBaseURL(c, baseURL),
	}
}

// writeBody renders body as JSON under the negotiated media type.
func writeBody(c *gin.Context, status int, mt shaping.MediaType, body any) {
	if mt.IsHateoas() {
		c.Header(constants.HeaderContentType, mt.String())
	}
	c.JSON(status, body)
}

func writePagination(c *gin.Context, meta shaping.MetaData) {
	encoded, err := json.Marshal(meta)
	if err != nil {
		return
	}
	c.Header(constants.HeaderXPagination, string(encoded))
}

// respondError writes the error response for err. Internal failures never
// expose their cause.
func respondError(c *gin.Context, ctx context.Context, message string, err error) {
	status := apperrors.ToHTTPStatus(err)

	event := logger.WarnWithContext(ctx, message)
	if status >= http.StatusInternalServerError {
		event = logger.ErrorWithContext(ctx, message)
	}
	event.Int("http_status", status).Err(err).Log()

	if fields := apperrors.GetFieldErrors(err); fields != nil {
		c.JSON(status, constants.BuildValidationErrorResponse(apperrors.GetErrorMessage(err), fields))
		return
	}
	if status >= http.StatusInternalServerError {
		c.JSON(status, constants.BuildErrorResponse(message, nil))
		return
	}
	c.JSON(status, constants.BuildErrorResponse(message, apperrors.GetErrorMessage(err)))
}

// bindJSON decodes and validates the body into req. Malformed JSON is a 400,
// failed validation a 422.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity,
				constants.BuildValidationErrorResponse(constants.MsgValidationFailed, validation.Messages(err)))
			return false
		}
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidJSON, err.Error()))
		return false
	}
	return true
}

// readPatch returns the raw JSON patch document.
func readPatch(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(strings.TrimSpace(string(body))) == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, "patch document is required"))
		return nil, false
	}
	return body, true
}

// validatedBody returns the body decoded by the validation middleware.
func validatedBody[T any](c *gin.Context) (T, bool) {
	var zero T
	v, ok := c.Get(constants.GinKeyValidatedBody)
	if !ok {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, "request body is required"))
		return zero, false
	}
	body, ok := v.(*T)
	if !ok || body == nil {
		c.JSON(http.StatusInternalServerError, constants.BuildErrorResponse(constants.MsgInternalError, nil))
		return zero, false
	}
	return *body, true
}
