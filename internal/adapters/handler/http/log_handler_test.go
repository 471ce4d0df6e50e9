package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/momentumlab/momentum-engine/internal/adapters/handler/http"
	"github.com/momentumlab/momentum-engine/internal/adapters/repository"
	"github.com/momentumlab/momentum-engine/internal/core/domain"
	"github.com/momentumlab/momentum-engine/internal/core/services"
)

func setupLogRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	stateRepo := repository.NewInMemoryStateRepository()
	handler := adapterHTTP.NewLogHandler(services.NewLogService(stateRepo, nil))

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(testUserMiddleware(userID))
	handler.RegisterRoutes(api)

	return router
}

func TestLogHandler_Record(t *testing.T) {
	t.Run("Success: Snapshot target defaults to the live goal", func(t *testing.T) {
		router := setupLogRouter("u1")

		w := request(router, http.MethodPut, "/api/v1/logs/2026-03-01/reading", `{"actual": 15}`)

		require.Equal(t, http.StatusOK, w.Code)

		var rec domain.LogRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
		assert.Equal(t, 30.0, rec.Target)
		assert.Equal(t, 15.0, rec.Actual)
	})

	t.Run("Fail: Unknown activity", func(t *testing.T) {
		router := setupLogRouter("u1")

		w := request(router, http.MethodPut, "/api/v1/logs/2026-03-01/ghost", `{"actual": 15}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: Malformed date", func(t *testing.T) {
		router := setupLogRouter("u1")

		w := request(router, http.MethodPut, "/api/v1/logs/march-1st/reading", `{"actual": 15}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Negative actual", func(t *testing.T) {
		router := setupLogRouter("u1")

		w := request(router, http.MethodPut, "/api/v1/logs/2026-03-01/reading", `{"actual": -1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogHandler_DayLifecycle(t *testing.T) {
	router := setupLogRouter("u1")

	t.Run("1. Quick complete", func(t *testing.T) {
		w := request(router, http.MethodPut, "/api/v1/logs/2026-03-01/exercise/complete", "")

		require.Equal(t, http.StatusOK, w.Code)

		var rec domain.LogRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
		assert.True(t, rec.Completed())
	})

	t.Run("2. Day view shows quarter completion", func(t *testing.T) {
		w := request(router, http.MethodGet, "/api/v1/logs/2026-03-01", "")

		require.Equal(t, http.StatusOK, w.Code)

		var day services.DayProgress
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
		assert.InDelta(t, 25.0, day.DayCompletion, 0.001)
	})

	t.Run("3. Reset zeroes the day", func(t *testing.T) {
		w := request(router, http.MethodPost, "/api/v1/logs/2026-03-01/reset", "")
		require.Equal(t, http.StatusOK, w.Code)

		w = request(router, http.MethodGet, "/api/v1/logs/2026-03-01", "")
		require.Equal(t, http.StatusOK, w.Code)

		var day services.DayProgress
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
		assert.Equal(t, 0.0, day.DayCompletion)
	})

	t.Run("4. Delete prunes the date", func(t *testing.T) {
		w := request(router, http.MethodDelete, "/api/v1/logs/2026-03-01", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("5. Save reports the streak cache", func(t *testing.T) {
		w := request(router, http.MethodPost, "/api/v1/logs/2026-03-01/save", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"streak":0`)
	})
}
