package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	jwtpkg "github.com/inkwell/core/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": CurrentUserID(c)})
	})
	r.GET("/open", OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authed": IsAuthenticated(c)})
	})
	return r
}

func TestAuthRejectsMissingAndGarbageTokens(t *testing.T) {
	jwtpkg.SetSecrets("access-secret", "refresh-secret")
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsBearerHeaderAndCookie(t *testing.T) {
	jwtpkg.SetSecrets("access-secret", "refresh-secret")
	r := setupRouter()

	token, err := jwtpkg.SignAccess("user-1", "a@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthNeverBlocks(t *testing.T) {
	jwtpkg.SetSecrets("access-secret", "refresh-secret")
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")

	token, err := jwtpkg.SignAccess("user-1", "a@example.com")
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "true")
}
