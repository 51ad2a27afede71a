// README: HTTP router registration.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"flightopt/internal/http/handlers"
	"flightopt/internal/http/middleware"
	"flightopt/internal/modules/ratelimit"
)

type RouterDeps struct {
	Analyzer handlers.Analyzer
	History  handlers.HistoryLister
	// Limiter guards /api/analyze; nil disables rate limiting.
	Limiter ratelimit.Limiter
	Logger  *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(logger), middleware.Logging(logger))

	r.GET("/health", handlers.Health)

	api := r.Group("/api")

	analyzeHandler := handlers.NewAnalyzeHandler(deps.Analyzer)
	if deps.Limiter != nil {
		api.POST("/analyze", middleware.RateLimit(deps.Limiter, logger), analyzeHandler.Analyze)
	} else {
		api.POST("/analyze", analyzeHandler.Analyze)
	}

	historyHandler := handlers.NewHistoryHandler(deps.History)
	api.GET("/history", historyHandler.List)

	return r
}
