package category

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/core/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, db := testService(t)
	require.NoError(t, svc.EnsureGlobalCatalog())
	u := seedUser(t, db, "a@example.com")

	r := gin.New()
	authMW := func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, u.ID)
		c.Next()
	}
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"), authMW)
	return r, svc
}

func postCategory(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateNameConflictsReturnBadRequest(t *testing.T) {
	r, _ := testRouter(t)

	w := postCategory(t, r, `{"name":"Meeting"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "reserved")

	w = postCategory(t, r, `{"name":"Research"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postCategory(t, r, `{"name":"research"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}
