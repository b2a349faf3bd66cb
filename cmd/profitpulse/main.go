package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/profitpulse/profitpulse/internal/ai"
	"github.com/profitpulse/profitpulse/internal/app"
	"github.com/profitpulse/profitpulse/internal/auth"
	"github.com/profitpulse/profitpulse/internal/dashboard"
	"github.com/profitpulse/profitpulse/internal/insights"
	"github.com/profitpulse/profitpulse/internal/menu"
	"github.com/profitpulse/profitpulse/internal/observability"
	"github.com/profitpulse/profitpulse/internal/platform/cache"
	"github.com/profitpulse/profitpulse/internal/platform/db"
	"github.com/profitpulse/profitpulse/internal/shared"
	"github.com/profitpulse/profitpulse/internal/staff"
	"github.com/profitpulse/profitpulse/internal/summaries"
	"github.com/profitpulse/profitpulse/internal/trends"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, reports served uncached", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	reports := cache.NewReports(redisClient, cfg.CacheTTL)
	lock := shared.NewLock(redisClient, 2*time.Minute)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(auth.NewRepository(pool))
	authHandler := auth.NewHandler(logger, authService, tokens)

	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), reports)
	menuService := menu.NewService(menu.NewRepository(pool), reports)
	staffService := staff.NewService(staff.NewRepository(pool), reports)
	trendsService := trends.NewService(trends.NewRepository(pool), reports)
	summariesService := summaries.NewService(summaries.NewRepository(pool), reports)

	provider := ai.NewClaude(cfg.AIAPIKey, cfg.AIModel, cfg.AIMaxTokens, cfg.AIBaseURL, cfg.AITimeout)
	insightsService := insights.NewService(insights.NewRepository(pool), provider,
		dashboardService, menuService, staffService, lock, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Metrics:          observability.NewMetrics(),
		Tokens:           tokens,
		AuthHandler:      authHandler,
		DashboardHandler: dashboard.NewHandler(logger, dashboardService),
		MenuHandler:      menu.NewHandler(logger, menuService),
		StaffHandler:     staff.NewHandler(logger, staffService),
		TrendsHandler:    trends.NewHandler(logger, trendsService),
		SummariesHandler: summaries.NewHandler(logger, summariesService),
		InsightsHandler:  insights.NewHandler(logger, insightsService),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
