package main

import (
	"time"

	"go.uber.org/zap"

	"taskpilot/internal/config"
	"taskpilot/internal/mq"
	"taskpilot/internal/mqhandler"
	redisclient "taskpilot/internal/redis"
	"taskpilot/internal/util"
	"taskpilot/pkg/logger"
)

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting worker...")

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, time.Hour)

	invalidateHandler := mqhandler.NewBriefInvalidateHandler(rdb, deduper, log)

	// (1) Consumer for task changes
	consumerTasks, err := mq.NewConsumer(cfg.MQ.URL, "task.changed.brief.q", mq.RoutingKeyTaskChanged, log)
	if err != nil {
		log.Fatal("failed to init task consumer", zap.Error(err))
	}
	consumerTasks.SetHandler(invalidateHandler.HandleRecordChanged)
	go func() {
		if err := consumerTasks.StartConsuming(); err != nil {
			log.Fatal("task consumer failed", zap.Error(err))
		}
	}()
	defer consumerTasks.Close()

	// (2) Consumer for event changes
	consumerEvents, err := mq.NewConsumer(cfg.MQ.URL, "event.changed.brief.q", mq.RoutingKeyEventChanged, log)
	if err != nil {
		log.Fatal("failed to init event consumer", zap.Error(err))
	}
	consumerEvents.SetHandler(invalidateHandler.HandleRecordChanged)
	go func() {
		if err := consumerEvents.StartConsuming(); err != nil {
			log.Fatal("event consumer failed", zap.Error(err))
		}
	}()
	defer consumerEvents.Close()

	log.Info("All consumers started, worker is ready")

	// Keep worker running
	select {}
}
