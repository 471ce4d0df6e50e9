package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/momentumlab/momentum-engine/internal/adapters/handler/http"
	"github.com/momentumlab/momentum-engine/internal/adapters/repository"
	"github.com/momentumlab/momentum-engine/internal/core/domain"
	"github.com/momentumlab/momentum-engine/internal/core/services"
	"github.com/momentumlab/momentum-engine/internal/core/workers"
)

func setupServer() *gin.Engine {
	userRepo := repository.NewInMemoryUserRepository()
	stateRepo := repository.NewInMemoryStateRepository()
	achRepo := repository.NewInMemoryAchievementRepository()

	tokenService := services.NewTokenService("e2e-secret", "momentum-engine-test", 1*time.Hour, userRepo)
	authService := services.NewAuthService(userRepo, stateRepo)
	catalogService := services.NewCatalogService(stateRepo)
	statsService := services.NewStatsService(stateRepo)
	achievementService := services.NewAchievementService(stateRepo, achRepo)
	worker := workers.NewAchievementWorker(achievementService, 1*time.Hour)
	logService := services.NewLogService(stateRepo, worker)

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(authService, tokenService),
		ActivityHandler:    adapterHTTP.NewActivityHandler(catalogService),
		LogHandler:         adapterHTTP.NewLogHandler(logService),
		StatsHandler:       adapterHTTP.NewStatsHandler(statsService),
		AchievementHandler: adapterHTTP.NewAchievementHandler(achievementService),
		TokenService:       tokenService,
		StartTime:          time.Now(),
	})
}

func doJSON(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEndToEnd_TrackerLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := setupServer()
	today := domain.Today()

	var token string
	var activityKey string

	t.Run("1. Register", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "",
			`{"email": "e2e@example.com", "password": "supersecret1"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("2. Login", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/auth/login", "",
			`{"email": "e2e@example.com", "password": "supersecret1"}`)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)
		token = resp.Token
	})

	t.Run("3. Default catalog is seeded", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/activities", token, "")

		require.Equal(t, http.StatusOK, w.Code)

		var activities []domain.Activity
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &activities))
		assert.Len(t, activities, 4)
	})

	t.Run("4. Create Activity", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/activities", token,
			`{"name": "Swimming", "icon": "🏊", "unit": "minutes", "completion_type": "time", "target": 45}`)

		require.Equal(t, http.StatusCreated, w.Code)

		var activity domain.Activity
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &activity))
		assert.NotEmpty(t, activity.Key)
		activityKey = activity.Key
	})

	t.Run("5. Record progress", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/logs/%s/%s", today, activityKey)
		w := doJSON(router, http.MethodPut, path, token, `{"actual": 45}`)

		require.Equal(t, http.StatusOK, w.Code)

		var rec domain.LogRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
		assert.Equal(t, 45.0, rec.Actual)
		assert.Equal(t, 45.0, rec.Target)
	})

	t.Run("6. Day view reflects the record", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/logs/"+today, token, "")

		require.Equal(t, http.StatusOK, w.Code)

		var day services.DayProgress
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
		assert.Equal(t, today, day.Date)
		assert.Len(t, day.Activities, 5)
	})

	t.Run("7. Aggregate stats", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/stats/aggregate", token, "")

		require.Equal(t, http.StatusOK, w.Code)

		var stats domain.AggregateStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 1, stats.TotalDays)
	})

	t.Run("8. Achievement check unlocks first goal", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/achievements/check", token, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), domain.AchFirstGoal)
	})

	t.Run("9. Delete Activity", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/api/v1/activities/"+activityKey, token, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("10. Unknown activity returns 404", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/api/v1/activities/"+activityKey, token, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("11. Validation Error", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/activities", token, `{"icon": "🏃"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("12. Auth Error", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/activities", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
