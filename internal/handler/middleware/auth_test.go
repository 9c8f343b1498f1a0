//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"lastbite/internal/domain/user"
	"lastbite/internal/handler/middleware"
	"lastbite/internal/pkg/config"
	"lastbite/internal/pkg/cookie"
	"lastbite/internal/testutil/authtest"
	"lastbite/internal/testutil/httptest"
	"lastbite/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newRouter(t *testing.T) (*gin.Engine, *authtest.JWTHelper) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	helper := authtest.NewJWTHelper(config.NewTestConfig().JWT)
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(helper.Service(t)))

	r := gin.New()
	r.GET("/producer", auth.RequireAuth(), auth.RequireRole(user.RoleProducer), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "role": string(role)})
	})
	return r, helper
}

func TestAuthMiddleware(t *testing.T) {
	router, helper := newRouter(t)
	producer := uuid.New()

	t.Run("bearer token with the right role", func(t *testing.T) {
		token := helper.GenerateToken(t, producer, user.RoleProducer)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/producer", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, producer.String(), body["user_id"])
		assert.Equal(t, "producer", body["role"])
	})

	t.Run("cookie token", func(t *testing.T) {
		token := helper.GenerateToken(t, producer, user.RoleProducer)
		cookies := []*http.Cookie{{Name: cookie.AccessTokenName, Value: token}}

		rec := httptest.PerformRequestWithCookies(t, router, http.MethodGet, "/producer", nil, cookies, "")
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/producer", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("expired token", func(t *testing.T) {
		token := helper.CreateExpiredToken(t, producer, user.RoleProducer)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/producer", nil, token)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("wrong role", func(t *testing.T) {
		token := helper.GenerateToken(t, uuid.New(), user.RoleConsumer)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/producer", nil, token)
		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")
	})
}
