package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/utils"
)

func setupAuthRouter(t *testing.T, extra ...gin.HandlerFunc) *gin.Engine {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/inkwell_test")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthRequired()}, extra...)
	handlers = append(handlers, func(ctx *gin.Context) {
		role, _ := ctx.Get(ContextRoleKey)
		ctx.JSON(http.StatusOK, gin.H{"role": role})
	})
	r.GET("/secure", handlers...)
	return r
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	r := setupAuthRouter(t)
	w := request(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredBadFormat(t *testing.T) {
	r := setupAuthRouter(t)
	assert.Equal(t, http.StatusUnauthorized, request(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer   ").Code)
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	r := setupAuthRouter(t)
	assert.Equal(t, http.StatusUnauthorized, request(r, "Bearer garbage").Code)
}

func TestAuthRequiredValidToken(t *testing.T) {
	r := setupAuthRouter(t)
	token, err := utils.GenerateToken(7, "editor@example.com", "editor", time.Hour)
	require.NoError(t, err)

	w := request(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "editor")
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	r := setupAuthRouter(t, RequireRole("admin", "editor"))
	token, err := utils.GenerateToken(7, "editor@example.com", "editor", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, request(r, "Bearer "+token).Code)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	r := setupAuthRouter(t, RequireRole("admin"))
	token, err := utils.GenerateToken(7, "user@example.com", "user", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, request(r, "Bearer "+token).Code)
}
