package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momentumlab/momentum-engine/internal/adapters/handler/http/middleware"
	"github.com/momentumlab/momentum-engine/internal/core/domain"
	"github.com/momentumlab/momentum-engine/internal/core/services"
)

type ActivityHandler struct {
	svc *services.CatalogService
}

func NewActivityHandler(svc *services.CatalogService) *ActivityHandler {
	return &ActivityHandler{
		svc: svc,
	}
}

type createActivityRequest struct {
	Name           string  `json:"name" binding:"required"`
	Icon           string  `json:"icon"`
	Color          string  `json:"color"`
	Unit           string  `json:"unit"`
	CompletionType string  `json:"completion_type"`
	Target         float64 `json:"target"`
}

type updateActivityRequest struct {
	Name           string  `json:"name" binding:"required"`
	Icon           string  `json:"icon"`
	Color          string  `json:"color"`
	Unit           string  `json:"unit"`
	CompletionType string  `json:"completion_type"`
	Target         float64 `json:"target"`
}

type reorderRequest struct {
	Keys []string `json:"keys" binding:"required"`
}

type setPeriodRequest struct {
	Period string `json:"period" binding:"required"`
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activities := router.Group("/activities")
	{
		activities.POST("", h.Create)
		activities.GET("", h.List)
		// Reorder is a collection-level PUT; a static /order sibling
		// would collide with the :id wildcard.
		activities.PUT("", h.Reorder)
		activities.PUT("/:id", h.Update)
		activities.DELETE("/:id", h.Delete)
	}

	periods := router.Group("/periods")
	{
		periods.GET("", h.ListPeriods)
		periods.PUT("/current", h.SetCurrentPeriod)
	}
}

// Create godoc
//
//	@Summary	Add an activity to the current period
//	@Tags		activities
//	@Accept		json
//	@Produce	json
//	@Param		request	body		createActivityRequest	true	"activity"
//	@Success	201		{object}	domain.Activity
//	@Failure	400		{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateActivityInput{
		UserID:         userID,
		Name:           req.Name,
		Icon:           req.Icon,
		Color:          req.Color,
		Unit:           req.Unit,
		CompletionType: req.CompletionType,
		Target:         req.Target,
	}

	activity, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// List godoc
//
//	@Summary	List the current period's activities in display order
//	@Tags		activities
//	@Produce	json
//	@Success	200	{array}	domain.Activity
//	@Security	BearerAuth
//	@Router		/activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ActivityHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	key := c.Param("id")

	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.UpdateActivityInput{
		UserID:         userID,
		Key:            key,
		Name:           req.Name,
		Icon:           req.Icon,
		Color:          req.Color,
		Unit:           req.Unit,
		CompletionType: req.CompletionType,
		Target:         req.Target,
	}

	activity, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
			return
		}
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

// Delete refuses to remove the last activity of a period: an empty
// catalog would make every day trivially perfect.
func (h *ActivityHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	key := c.Param("id")

	err := h.svc.Delete(c.Request.Context(), userID, key)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
			return
		}
		if errors.Is(err, domain.ErrLastActivity) {
			c.JSON(http.StatusConflict, gin.H{"error": "cannot delete the last activity"})
			return
		}
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ActivityHandler) Reorder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Reorder(c.Request.Context(), userID, req.Keys); err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown activity key in order"})
			return
		}
		handleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *ActivityHandler) ListPeriods(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	current, err := h.svc.CurrentPeriod(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"periods": domain.Periods(),
		"current": current,
	})
}

func (h *ActivityHandler) SetCurrentPeriod(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req setPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SetCurrentPeriod(c.Request.Context(), userID, req.Period); err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period"})
			return
		}
		handleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrActivityNameEmpty) ||
		errors.Is(err, domain.ErrActivityNameTooLong) ||
		errors.Is(err, domain.ErrInvalidColor) ||
		errors.Is(err, domain.ErrInvalidTarget) ||
		errors.Is(err, domain.ErrInvalidCompletion) ||
		errors.Is(err, domain.ErrMissingUnit)
}
