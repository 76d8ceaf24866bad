package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskpilot/internal/ai"
	"taskpilot/internal/model"
	"taskpilot/internal/mq"
	"taskpilot/internal/repository"
	"taskpilot/pkg/logger"
	"taskpilot/pkg/metrics"
)

type TaskService struct {
	taskRepo  *repository.TaskRepository
	annotator *ai.Annotator
	publisher *mq.Publisher
	logger    *zap.Logger
}

func NewTaskService(taskRepo *repository.TaskRepository, annotator *ai.Annotator, publisher *mq.Publisher, logger *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		annotator: annotator,
		publisher: publisher,
		logger:    logger,
	}
}

// Create annotates the task, stores it with the annotation columns, and
// publishes a task.changed event. Creation blocks on the annotation call;
// annotation failure never blocks the insert — the fallback is stored.
func (s *TaskService) Create(ctx context.Context, userID int, title, description string, dueDate *time.Time) (*model.Task, error) {
	req := ai.TaskRequest{Title: title, Description: description}
	if dueDate != nil {
		req.DueDate = dueDate.UTC().Format(time.RFC3339)
	}

	insight, deg, err := s.annotator.PrioritizeTask(ctx, req)
	if err != nil {
		// 标注属于增强功能，内部错误也不能挡住任务创建
		logger.WithTrace(ctx, s.logger).Error("task annotation failed unexpectedly", zap.Error(err))
		insight = ai.FallbackTaskInsight()
	}
	if deg != nil {
		logger.WithTrace(ctx, s.logger).Warn("task created with fallback annotation",
			zap.Int("user_id", userID),
			zap.String("reason", deg.Reason),
		)
	}

	t := &model.Task{
		UserID:        userID,
		Title:         title,
		Description:   description,
		DueDate:       dueDate,
		PriorityScore: insight.PriorityScore,
		PriorityLevel: insight.PriorityLevel,
		AISummary:     insight.AISummary,
		Category:      insight.SuggestedCategory,
	}

	if err := s.taskRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.publishChange(ctx, t.ID, userID, "created")
	return t, nil
}

// List returns the user's tasks, highest priority first.
func (s *TaskService) List(ctx context.Context, userID int) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

// UpdateFields holds the editable fields of a task; nil means unchanged.
type UpdateFields struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	ClearDue    bool
	Status      *string
	Category    *string
}

// Update applies a partial update and publishes a task.changed event.
func (s *TaskService) Update(ctx context.Context, id, userID int, fields UpdateFields) (*model.Task, error) {
	t, err := s.taskRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if fields.Title != nil {
		t.Title = *fields.Title
	}
	if fields.Description != nil {
		t.Description = *fields.Description
	}
	if fields.DueDate != nil {
		t.DueDate = fields.DueDate
	} else if fields.ClearDue {
		t.DueDate = nil
	}
	if fields.Status != nil {
		t.Status = *fields.Status
	}
	if fields.Category != nil {
		t.Category = *fields.Category
	}

	if err := s.taskRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.publishChange(ctx, t.ID, userID, "updated")
	return t, nil
}

// Complete marks a task completed and publishes a task.changed event.
func (s *TaskService) Complete(ctx context.Context, id, userID int) error {
	if _, err := s.taskRepo.FindByID(ctx, id, userID); err != nil {
		return err
	}
	if err := s.taskRepo.UpdateStatus(ctx, id, userID, "completed"); err != nil {
		return err
	}
	s.publishChange(ctx, id, userID, "updated")
	return nil
}

// Delete removes a task and publishes a task.changed event.
func (s *TaskService) Delete(ctx context.Context, id, userID int) error {
	if _, err := s.taskRepo.FindByID(ctx, id, userID); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.publishChange(ctx, id, userID, "deleted")
	return nil
}

// publishChange emits the change-feed event. Publish failures are logged,
// not returned: the row is already written and the feed is best-effort.
func (s *TaskService) publishChange(ctx context.Context, recordID, userID int, action string) {
	payload := mq.RecordChangedPayload{
		RecordID:   recordID,
		UserID:     userID,
		Action:     action,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(mq.RoutingKeyTaskChanged, payload); err != nil {
		logger.WithTrace(ctx, s.logger).Warn("failed to publish task change event",
			zap.Int("task_id", recordID),
			zap.Error(err),
		)
		return
	}
	metrics.IncrementRecordChange("task", action)
}
