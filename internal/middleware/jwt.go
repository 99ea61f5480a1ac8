package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	ctxutil "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/context"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.RegisteredClaims, error)
}

type JWTMiddleware struct {
	tokens  TokenValidator
	enabled bool
}

// NewJWTMiddleware guards routes with tokens. When enabled is false every
// request passes untouched.
func NewJWTMiddleware(tokens TokenValidator, enabled bool) *JWTMiddleware {
	return &JWTMiddleware{
		tokens:  tokens,
		enabled: enabled && tokens != nil,
	}
}

// RequireAuth validates the bearer token and stores its subject.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			logger.GetLogger().Warn("Missing Authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			unauthorized(c)
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			logger.GetLogger().Warn("Invalid Authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			unauthorized(c)
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			unauthorized(c)
			return
		}

		c.Set(constants.GinKeySubject, claims.Subject)
		c.Request = c.Request.WithContext(ctxutil.WithSubject(c.Request.Context(), claims.Subject))

		logger.GetLogger().Debug("Request authenticated",
			zap.String("subject", claims.Subject),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))

		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Bearer realm="wwi"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
}
