package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskpilot/internal/mq"
	"taskpilot/internal/service"
	"taskpilot/internal/util"
)

// BriefInvalidateHandler drops a user's cached daily brief whenever one of
// their records changes, so the next brief reflects the new workload.
type BriefInvalidateHandler struct {
	rdb     *redis.Client
	deduper *util.Deduper
	logger  *zap.Logger
}

func NewBriefInvalidateHandler(rdb *redis.Client, deduper *util.Deduper, logger *zap.Logger) *BriefInvalidateHandler {
	return &BriefInvalidateHandler{
		rdb:     rdb,
		deduper: deduper,
		logger:  logger,
	}
}

// HandleRecordChanged processes a record change event. Redelivered copies of
// the same event are deduped; distinct events for the same user all
// invalidate (each one may carry new workload state).
func (h *BriefInvalidateHandler) HandleRecordChanged(ctx context.Context, raw json.RawMessage) error {
	var p mq.RecordChangedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("failed to unmarshal record changed payload", zap.Error(err))
		return err
	}

	dedupKey := fmt.Sprintf("%d:%s:%d", p.RecordID, p.Action, p.OccurredAt.UnixNano())
	if !h.deduper.AcquireOnce(ctx, "brief_invalidate", dedupKey) {
		// 重复投递，跳过
		return nil
	}

	pattern := service.BriefCachePattern(p.UserID)
	iter := h.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	deleted := 0
	for iter.Next(ctx) {
		if err := h.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			h.logger.Warn("failed to delete cached brief",
				zap.String("key", iter.Val()),
				zap.Error(err),
			)
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan brief cache keys: %w", err)
	}

	if deleted > 0 {
		h.logger.Info("invalidated cached daily brief",
			zap.Int("user_id", p.UserID),
			zap.Int("keys", deleted),
		)
	}

	return nil
}
