package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskpilot/internal/ai"
	"taskpilot/internal/model"
	"taskpilot/internal/mq"
	"taskpilot/internal/repository"
	"taskpilot/pkg/logger"
	"taskpilot/pkg/metrics"
)

type EventService struct {
	eventRepo *repository.EventRepository
	annotator *ai.Annotator
	publisher *mq.Publisher
	logger    *zap.Logger
}

func NewEventService(eventRepo *repository.EventRepository, annotator *ai.Annotator, publisher *mq.Publisher, logger *zap.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		annotator: annotator,
		publisher: publisher,
		logger:    logger,
	}
}

// Create annotates the event, stores it, and publishes an event.changed
// event. Annotation failure never blocks the insert.
func (s *EventService) Create(ctx context.Context, userID int, title, description string, location *string, start, end time.Time) (*model.Event, error) {
	req := ai.EventRequest{
		Title:       title,
		Description: description,
		Context:     fmt.Sprintf("%s to %s", start.Format(time.RFC3339), end.Format(time.RFC3339)),
	}

	insight, deg, err := s.annotator.AnalyzeEvent(ctx, req)
	if err != nil {
		logger.WithTrace(ctx, s.logger).Error("event annotation failed unexpectedly", zap.Error(err))
		insight = ai.FallbackEventInsight()
	}
	if deg != nil {
		logger.WithTrace(ctx, s.logger).Warn("event created with fallback annotation",
			zap.Int("user_id", userID),
			zap.String("reason", deg.Reason),
		)
	}

	e := &model.Event{
		UserID:         userID,
		Title:          title,
		Description:    description,
		Location:       location,
		StartTime:      start,
		EndTime:        end,
		PriorityScore:  insight.PriorityScore,
		AISummary:      insight.AISummary,
		SuggestedReply: insight.SuggestedReply,
	}

	if err := s.eventRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.publishChange(ctx, e.ID, userID, "created")
	return e, nil
}

// List returns the user's events in start order.
func (s *EventService) List(ctx context.Context, userID int) ([]model.Event, error) {
	return s.eventRepo.ListByUser(ctx, userID)
}

// Delete removes an event and publishes an event.changed event.
func (s *EventService) Delete(ctx context.Context, id, userID int) error {
	if err := s.eventRepo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.publishChange(ctx, id, userID, "deleted")
	return nil
}

func (s *EventService) publishChange(ctx context.Context, recordID, userID int, action string) {
	payload := mq.RecordChangedPayload{
		RecordID:   recordID,
		UserID:     userID,
		Action:     action,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(mq.RoutingKeyEventChanged, payload); err != nil {
		logger.WithTrace(ctx, s.logger).Warn("failed to publish event change event",
			zap.Int("event_id", recordID),
			zap.Error(err),
		)
		return
	}
	metrics.IncrementRecordChange("event", action)
}
