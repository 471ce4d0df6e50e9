package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momentumlab/momentum-engine/internal/adapters/handler/http/middleware"
	"github.com/momentumlab/momentum-engine/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/aggregate", h.GetAggregate)
		stats.GET("/activities", h.GetActivities)
	}
}

// GetAggregate godoc
//
//	@Summary	Cross-activity statistics for the current period
//	@Tags		stats
//	@Produce	json
//	@Success	200	{object}	domain.AggregateStats
//	@Security	BearerAuth
//	@Router		/stats/aggregate [get]
func (h *StatsHandler) GetAggregate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	stats, err := h.svc.GetAggregateStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetActivities godoc
//
//	@Summary	Per-activity statistics in display order
//	@Tags		stats
//	@Produce	json
//	@Success	200	{array}	domain.ActivityStats
//	@Security	BearerAuth
//	@Router		/stats/activities [get]
func (h *StatsHandler) GetActivities(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	stats, err := h.svc.GetActivityStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
