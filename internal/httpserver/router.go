package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"taskpilot/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	insightsHandler *handler.InsightsHandler,
	taskHandler *handler.TaskHandler,
	eventHandler *handler.EventHandler,
	recHandler *handler.RecommendationHandler,
	jwtSecret string,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery(), TraceMiddleware(), MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)

	// Stateless annotation endpoints
	aiGroup := r.Group("/api/ai")
	{
		aiGroup.POST("/prioritize-task", insightsHandler.PrioritizeTask)
		aiGroup.POST("/analyze-event", insightsHandler.AnalyzeEvent)
		aiGroup.POST("/generate-recommendations", insightsHandler.GenerateRecommendations)
		aiGroup.POST("/daily-brief", insightsHandler.DailyBrief)
	}

	// Protected
	auth := r.Group("/api")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.GET("/tasks", taskHandler.List)
		auth.POST("/tasks", taskHandler.Create)
		auth.PATCH("/tasks/:id", taskHandler.Update)
		auth.POST("/tasks/:id/complete", taskHandler.Complete)
		auth.DELETE("/tasks/:id", taskHandler.Delete)

		auth.GET("/events", eventHandler.List)
		auth.POST("/events", eventHandler.Create)
		auth.DELETE("/events/:id", eventHandler.Delete)

		auth.GET("/recommendations", recHandler.List)
		auth.POST("/recommendations/refresh", recHandler.Refresh)
		auth.GET("/daily-brief", recHandler.DailyBrief)
	}

	return &Router{Engine: r}
}

// Handler wraps the engine with the CORS allow-list. Origins support exact
// values and a "*." wildcard subdomain, e.g. "https://*.taskpilot.app".
func (r *Router) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Trace-ID"},
		AllowCredentials: true,
	})
	return c.Handler(r.Engine)
}

func (r *Router) Run(port string, allowedOrigins []string) error {
	return http.ListenAndServe(port, r.Handler(allowedOrigins))
}
