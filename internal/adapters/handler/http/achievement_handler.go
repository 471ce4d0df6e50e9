package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momentumlab/momentum-engine/internal/adapters/handler/http/middleware"
	"github.com/momentumlab/momentum-engine/internal/core/services"
)

type AchievementHandler struct {
	svc *services.AchievementService
}

func NewAchievementHandler(svc *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{svc: svc}
}

func (h *AchievementHandler) RegisterRoutes(r *gin.RouterGroup) {
	achievements := r.Group("/achievements")
	{
		achievements.GET("", h.List)
		achievements.POST("/check", h.Check)
	}
}

// List godoc
//
//	@Summary	Full achievement catalog with unlock flags
//	@Tags		achievements
//	@Produce	json
//	@Success	200	{array}	domain.AchievementStatus
//	@Security	BearerAuth
//	@Router		/achievements [get]
func (h *AchievementHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve achievements"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// Check runs an immediate evaluation pass and returns only the newly
// unlocked achievements. The background worker does the same on a
// schedule; this endpoint lets a client show the unlock toast right
// after a save.
func (h *AchievementHandler) Check(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	newly, err := h.svc.Check(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "achievement check failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unlocked": newly})
}
