package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskpilot/internal/ai"
	"taskpilot/internal/model"
	"taskpilot/internal/mq"
	"taskpilot/internal/repository"
	"taskpilot/pkg/logger"
	"taskpilot/pkg/metrics"
)

type RecommendationService struct {
	recRepo   *repository.RecommendationRepository
	taskRepo  *repository.TaskRepository
	eventRepo *repository.EventRepository
	annotator *ai.Annotator
	publisher *mq.Publisher
	logger    *zap.Logger
}

func NewRecommendationService(
	recRepo *repository.RecommendationRepository,
	taskRepo *repository.TaskRepository,
	eventRepo *repository.EventRepository,
	annotator *ai.Annotator,
	publisher *mq.Publisher,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		recRepo:   recRepo,
		taskRepo:  taskRepo,
		eventRepo: eventRepo,
		annotator: annotator,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns the user's stored recommendations.
func (s *RecommendationService) List(ctx context.Context, userID int) ([]model.Recommendation, error) {
	return s.recRepo.ListByUser(ctx, userID)
}

// Refresh summarizes the user's open tasks and upcoming events, generates a
// fresh recommendation set, replaces the stored one, and publishes a
// recommendation.changed event.
func (s *RecommendationService) Refresh(ctx context.Context, userID int) ([]model.Recommendation, error) {
	tasks, err := s.taskRepo.ListPendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListUpcomingByUser(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	req := ai.RecommendationRequest{
		Tasks:  SummarizeTasks(tasks),
		Events: SummarizeEvents(events),
	}

	items, deg, err := s.annotator.GenerateRecommendations(ctx, req)
	if err != nil {
		logger.WithTrace(ctx, s.logger).Error("recommendation generation failed unexpectedly", zap.Error(err))
		items = ai.FallbackRecommendations()
	}
	if deg != nil {
		logger.WithTrace(ctx, s.logger).Warn("recommendations refreshed with fallback set",
			zap.Int("user_id", userID),
			zap.String("reason", deg.Reason),
		)
	}

	recs, err := s.recRepo.ReplaceForUser(ctx, userID, items)
	if err != nil {
		return nil, err
	}

	payload := mq.RecordChangedPayload{
		UserID:     userID,
		Action:     "updated",
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(mq.RoutingKeyRecommendationChanged, payload); err != nil {
		logger.WithTrace(ctx, s.logger).Warn("failed to publish recommendation change event", zap.Error(err))
	} else {
		metrics.IncrementRecordChange("recommendation", "updated")
	}

	return recs, nil
}

// SummarizeTasks renders up to five tasks into the free-text workload form
// the recommendation and brief prompts consume: "title (level)" pairs.
func SummarizeTasks(tasks []model.Task) string {
	if len(tasks) == 0 {
		return ""
	}
	if len(tasks) > 5 {
		tasks = tasks[:5]
	}
	parts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		parts = append(parts, fmt.Sprintf("%s (%s)", t.Title, t.PriorityLevel))
	}
	return strings.Join(parts, ", ")
}

// SummarizeEvents renders up to five event titles.
func SummarizeEvents(events []model.Event) string {
	if len(events) == 0 {
		return ""
	}
	if len(events) > 5 {
		events = events[:5]
	}
	parts := make([]string, 0, len(events))
	for _, e := range events {
		parts = append(parts, e.Title)
	}
	return strings.Join(parts, ", ")
}
