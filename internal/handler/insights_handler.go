package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskpilot/internal/ai"
	"taskpilot/pkg/logger"
)

// DegradedHeader carries the degradation reason when a fallback payload is
// served. The body shape is identical either way; callers that do not care
// can ignore the header entirely.
const DegradedHeader = "X-Degraded"

// InsightsHandler exposes the four stateless annotation endpoints. Upstream
// and parse failures never surface as errors here: the pipeline hands back a
// fallback result and the endpoint still answers 200.
type InsightsHandler struct {
	annotator *ai.Annotator
	logger    *zap.Logger
}

func NewInsightsHandler(annotator *ai.Annotator, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{annotator: annotator, logger: logger}
}

func markDegraded(c *gin.Context, deg *ai.Degradation) {
	if deg != nil {
		c.Header(DegradedHeader, deg.Reason)
	}
}

// PrioritizeTask handles POST /api/ai/prioritize-task
func (h *InsightsHandler) PrioritizeTask(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"due_date"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	insight, deg, err := h.annotator.PrioritizeTask(c.Request.Context(), ai.TaskRequest{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("prioritize-task failed unexpectedly", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    err.Error(),
			"fallback": ai.FallbackTaskInsight(),
		})
		return
	}

	markDegraded(c, deg)
	c.JSON(http.StatusOK, insight)
}

// AnalyzeEvent handles POST /api/ai/analyze-event
func (h *InsightsHandler) AnalyzeEvent(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Context     string `json:"context"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	insight, deg, err := h.annotator.AnalyzeEvent(c.Request.Context(), ai.EventRequest{
		Title:       req.Title,
		Description: req.Description,
		Context:     req.Context,
	})
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("analyze-event failed unexpectedly", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    err.Error(),
			"fallback": ai.FallbackEventInsight(),
		})
		return
	}

	markDegraded(c, deg)
	c.JSON(http.StatusOK, insight)
}

// GenerateRecommendations handles POST /api/ai/generate-recommendations
func (h *InsightsHandler) GenerateRecommendations(c *gin.Context) {
	var req struct {
		Tasks  string `json:"tasks"`
		Events string `json:"events"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	items, deg, err := h.annotator.GenerateRecommendations(c.Request.Context(), ai.RecommendationRequest{
		Tasks:  req.Tasks,
		Events: req.Events,
	})
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("generate-recommendations failed unexpectedly", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    err.Error(),
			"fallback": ai.FallbackRecommendations(),
		})
		return
	}

	markDegraded(c, deg)
	c.JSON(http.StatusOK, items)
}

// DailyBrief handles POST /api/ai/daily-brief
func (h *InsightsHandler) DailyBrief(c *gin.Context) {
	var req struct {
		Tasks        string `json:"tasks"`
		Events       string `json:"events"`
		UserTimezone string `json:"user_timezone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	brief, deg, err := h.annotator.DailyBrief(c.Request.Context(), ai.BriefRequest{
		Tasks:    req.Tasks,
		Events:   req.Events,
		Timezone: req.UserTimezone,
	})
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("daily-brief failed unexpectedly", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	markDegraded(c, deg)
	c.JSON(http.StatusOK, gin.H{"brief": brief})
}
