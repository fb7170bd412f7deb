package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/core/internal/pkg/jwt"
	"github.com/inkwell/core/internal/pkg/response"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "user_email"

	accessTokenCookie = "accessToken"
)

// Auth returns a middleware that enforces access-token authentication.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwt.ParseAccess(extractToken(c))
		if err != nil || claims.UserID == "" {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Next()
	}
}

// OptionalAuth sets the user ID if a valid token is present, but does not block the request.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := jwt.ParseAccess(extractToken(c)); err == nil && claims.UserID != "" {
			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyEmail, claims.Email)
		}
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentEmail extracts the authenticated user email from context.
func CurrentEmail(c *gin.Context) string {
	v, _ := c.Get(ContextKeyEmail)
	email, _ := v.(string)
	return email
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	if cookie, err := c.Cookie(accessTokenCookie); err == nil {
		return NormalizeToken(cookie)
	}
	return ""
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
