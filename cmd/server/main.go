package main

import (
	"time"

	"go.uber.org/zap"

	"taskpilot/internal/ai"
	"taskpilot/internal/config"
	"taskpilot/internal/db"
	"taskpilot/internal/handler"
	"taskpilot/internal/httpserver"
	"taskpilot/internal/mq"
	redisclient "taskpilot/internal/redis"
	"taskpilot/internal/repository"
	"taskpilot/internal/service"
	"taskpilot/pkg/logger"
)

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// Init RabbitMQ publisher (change-notification feed)
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	// Init annotation pipeline
	aiClient := ai.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey)
	annotator := ai.NewAnnotator(aiClient, cfg.AI.Model, log)

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	taskRepo := repository.NewTaskRepository(dbConn)
	eventRepo := repository.NewEventRepository(dbConn)
	recRepo := repository.NewRecommendationRepository(dbConn)

	// Init Services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireHours)*time.Hour)
	taskService := service.NewTaskService(taskRepo, annotator, publisher, log)
	eventService := service.NewEventService(eventRepo, annotator, publisher, log)
	recService := service.NewRecommendationService(recRepo, taskRepo, eventRepo, annotator, publisher, log)
	briefService := service.NewBriefService(taskRepo, eventRepo, annotator, rdb, log)

	// Init Handlers
	authHandler := handler.NewAuthHandler(authService, log)
	insightsHandler := handler.NewInsightsHandler(annotator, log)
	taskHandler := handler.NewTaskHandler(taskService, log)
	eventHandler := handler.NewEventHandler(eventService, log)
	recHandler := handler.NewRecommendationHandler(recService, briefService, log)

	// Router
	router := httpserver.NewRouter(
		authHandler, insightsHandler, taskHandler, eventHandler, recHandler,
		cfg.JWT.Secret,
	)

	log.Info("API server starting", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port, cfg.CORS.AllowedOrigins); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
