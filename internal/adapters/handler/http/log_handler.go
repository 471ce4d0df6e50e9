package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momentumlab/momentum-engine/internal/adapters/handler/http/middleware"
	"github.com/momentumlab/momentum-engine/internal/core/domain"
	"github.com/momentumlab/momentum-engine/internal/core/services"
)

type LogHandler struct {
	svc *services.LogService
}

func NewLogHandler(svc *services.LogService) *LogHandler {
	return &LogHandler{
		svc: svc,
	}
}

type recordLogRequest struct {
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`
	Notes  string  `json:"notes"`
}

type saveProgressResponse struct {
	Streak        int    `json:"streak"`
	LastCompleted string `json:"last_completed"`
}

func (h *LogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/logs")
	{
		logs.GET("/:date", h.GetDay)
		logs.PUT("/:date/:activityID", h.Record)
		// PUT keeps "complete" under the :activityID wildcard; a POST
		// here would collide with the static save/reset routes.
		logs.PUT("/:date/:activityID/complete", h.QuickComplete)
		logs.POST("/:date/save", h.Save)
		logs.POST("/:date/reset", h.Reset)
		logs.DELETE("/:date", h.DeleteDay)
	}
}

// GetDay godoc
//
//	@Summary	Progress view for one date
//	@Tags		logs
//	@Produce	json
//	@Param		date	path		string	true	"YYYY-MM-DD"
//	@Success	200		{object}	services.DayProgress
//	@Failure	400		{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/logs/{date} [get]
func (h *LogHandler) GetDay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	day, err := h.svc.GetDay(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, day)
}

// Record godoc
//
//	@Summary	Record progress for one activity on one date
//	@Tags		logs
//	@Accept		json
//	@Produce	json
//	@Param		date		path		string				true	"YYYY-MM-DD"
//	@Param		activityID	path		string				true	"activity key"
//	@Param		request		body		recordLogRequest	true	"record"
//	@Success	200			{object}	domain.LogRecord
//	@Failure	400			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/logs/{date}/{activityID} [put]
func (h *LogHandler) Record(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req recordLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	input := services.RecordLogInput{
		UserID:      userID,
		Date:        c.Param("date"),
		ActivityKey: c.Param("activityID"),
		Target:      req.Target,
		Actual:      req.Actual,
		Notes:       req.Notes,
	}

	rec, err := h.svc.RecordLog(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *LogHandler) QuickComplete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	rec, err := h.svc.QuickComplete(c.Request.Context(), userID, c.Param("date"), c.Param("activityID"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Save persists the pending day and rolls the streak forward when the
// day is fully complete.
func (h *LogHandler) Save(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	streak, lastCompleted, err := h.svc.SaveProgress(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, saveProgressResponse{
		Streak:        streak,
		LastCompleted: lastCompleted,
	})
}

func (h *LogHandler) Reset(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.ResetDay(c.Request.Context(), userID, c.Param("date")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *LogHandler) DeleteDay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.DeleteDay(c.Request.Context(), userID, c.Param("date")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})

	case errors.Is(err, domain.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})

	case errors.Is(err, domain.ErrNegativeActual) || errors.Is(err, domain.ErrNegativeTarget):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
