// README: Entry point; loads config, wires adapters and optional stores, starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"flightopt/internal/ai"
	"flightopt/internal/config"
	httptransport "flightopt/internal/http"
	"flightopt/internal/flights"
	"flightopt/internal/infra"
	"flightopt/internal/modules/airport"
	"flightopt/internal/modules/history"
	"flightopt/internal/modules/ratelimit"
	"flightopt/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("flightopt-api exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := infra.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flightClient := flights.NewClient(flights.Config(cfg.Flights))
	logger.Info("flight data mode", "mode", flightClient.Mode())

	advisor := ai.NewAdvisor(ctx, cfg.Advisor)
	defer func() { _ = advisor.Close() }()

	airports, err := airport.NewService()
	if err != nil {
		return err
	}
	logger.Info("airport catalog loaded", "airports", airports.Len())

	var historyStore *history.Store
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer dbPool.Close()
		historyStore = history.NewStore(dbPool)
		if err := historyStore.Migrate(ctx); err != nil {
			return err
		}
	}
	historySvc := history.NewService(historyStore)
	logger.Info("analysis history", "enabled", historySvc.Enabled())

	limiter, err := newLimiter(ctx, cfg, logger)
	if err != nil {
		return err
	}

	analyzer := service.NewRouteAnalyzer(flightClient, advisor, airports, historySvc)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Analyzer: analyzer,
		History:  historySvc,
		Limiter:  limiter,
		Logger:   logger,
	})
	server := httptransport.NewServer(httptransport.ServerConfig{
		Addr:        cfg.HTTP.Addr,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, router, logger)

	return server.Run(ctx)
}

// newLimiter prefers Redis so several instances share one counter, and falls
// back to an in-process limiter. A zero limit disables rate limiting.
func newLimiter(ctx context.Context, cfg config.Config, logger *slog.Logger) (ratelimit.Limiter, error) {
	if cfg.RateLimit.Limit <= 0 {
		logger.Info("rate limiting disabled")
		return nil, nil
	}
	rlCfg := ratelimit.Config{Limit: cfg.RateLimit.Limit, Window: cfg.RateLimit.Window}

	if cfg.Redis.Addr != "" {
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, err
		}
		logger.Info("rate limiting", "backend", "redis", "limit", rlCfg.Limit, "window", rlCfg.Window)
		return ratelimit.NewRedisLimiter(client, rlCfg)
	}

	logger.Info("rate limiting", "backend", "memory", "limit", rlCfg.Limit, "window", rlCfg.Window)
	return ratelimit.NewMemoryLimiter(rlCfg)
}
