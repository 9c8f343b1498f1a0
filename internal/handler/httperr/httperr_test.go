//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lastbite/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("writes the envelope with the request id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Set(httperr.RequestIDKey, "req-1")

		httperr.AbortWithError(c, http.StatusConflict, errors.New("taken"), "Insufficient quantity", map[string]int{"remaining": 2})

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusConflict, rec.Code)
		require.Len(t, c.Errors, 1)
		assert.True(t, c.Errors[0].IsType(gin.ErrorTypePublic))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Insufficient quantity", body["error"].(map[string]any)["message"])
		assert.Equal(t, "req-1", body["request_id"])
		assert.Equal(t, float64(2), body["detail"].(map[string]any)["remaining"])
	})

	t.Run("nil error panics", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.Panics(t, func() {
			httperr.AbortWithError(c, http.StatusBadRequest, nil, "Bad", nil)
		})
	})
}
