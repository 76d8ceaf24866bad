package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskpilot/internal/service"
	"taskpilot/pkg/logger"
)

type RecommendationHandler struct {
	recService   *service.RecommendationService
	briefService *service.BriefService
	logger       *zap.Logger
}

func NewRecommendationHandler(recService *service.RecommendationService, briefService *service.BriefService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService:   recService,
		briefService: briefService,
		logger:       logger,
	}
}

// List handles GET /api/recommendations
func (h *RecommendationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recs, err := h.recService.List(c.Request.Context(), userID)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("failed to list recommendations", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// Refresh handles POST /api/recommendations/refresh
func (h *RecommendationHandler) Refresh(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recs, err := h.recService.Refresh(c.Request.Context(), userID)
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("failed to refresh recommendations", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// DailyBrief handles GET /api/daily-brief. Serves the cached brief when one
// exists; the worker clears the cache when the user's records change.
func (h *RecommendationHandler) DailyBrief(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	brief, err := h.briefService.DailyBrief(c.Request.Context(), userID, c.Query("timezone"))
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("failed to build daily brief", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build daily brief"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"brief": brief})
}
