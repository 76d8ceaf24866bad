package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskpilot/internal/ai"
	"taskpilot/internal/repository"
	"taskpilot/pkg/logger"
)

const briefCacheTTL = 15 * time.Minute

// BriefCacheKey builds the redis key for a user's cached daily brief. The
// worker invalidates with the matching BriefCachePattern on change events.
func BriefCacheKey(userID int, timezone string) string {
	if timezone == "" {
		timezone = "UTC"
	}
	return fmt.Sprintf("brief:%d:%s", userID, timezone)
}

func BriefCachePattern(userID int) string {
	return fmt.Sprintf("brief:%d:*", userID)
}

type BriefService struct {
	taskRepo  *repository.TaskRepository
	eventRepo *repository.EventRepository
	annotator *ai.Annotator
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewBriefService(
	taskRepo *repository.TaskRepository,
	eventRepo *repository.EventRepository,
	annotator *ai.Annotator,
	rdb *redis.Client,
	logger *zap.Logger,
) *BriefService {
	return &BriefService{
		taskRepo:  taskRepo,
		eventRepo: eventRepo,
		annotator: annotator,
		rdb:       rdb,
		logger:    logger,
	}
}

// DailyBrief returns the user's morning brief, serving a cached copy when a
// fresh one exists. Fallback briefs are not cached so a healthy backend can
// replace them on the next call.
func (s *BriefService) DailyBrief(ctx context.Context, userID int, timezone string) (string, error) {
	key := BriefCacheKey(userID, timezone)

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return cached, nil
	}

	tasks, err := s.taskRepo.ListPendingByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	events, err := s.eventRepo.ListUpcomingByUser(ctx, userID, time.Now())
	if err != nil {
		return "", err
	}

	req := ai.BriefRequest{
		Tasks:    SummarizeTasks(tasks),
		Events:   SummarizeEvents(events),
		Timezone: timezone,
	}

	brief, deg, err := s.annotator.DailyBrief(ctx, req)
	if err != nil {
		logger.WithTrace(ctx, s.logger).Error("daily brief generation failed unexpectedly", zap.Error(err))
		return ai.FallbackBrief(), nil
	}

	if deg == nil {
		if err := s.rdb.Set(ctx, key, brief, briefCacheTTL).Err(); err != nil {
			logger.WithTrace(ctx, s.logger).Warn("failed to cache daily brief", zap.Error(err))
		}
	}

	return brief, nil
}
