package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/profitpulse/profitpulse/internal/ai"
	"github.com/profitpulse/profitpulse/internal/app"
	"github.com/profitpulse/profitpulse/internal/dashboard"
	"github.com/profitpulse/profitpulse/internal/insights"
	jobmetrics "github.com/profitpulse/profitpulse/internal/jobs"
	"github.com/profitpulse/profitpulse/internal/menu"
	"github.com/profitpulse/profitpulse/internal/platform/cache"
	"github.com/profitpulse/profitpulse/internal/platform/db"
	"github.com/profitpulse/profitpulse/internal/shared"
	"github.com/profitpulse/profitpulse/internal/staff"
	"github.com/profitpulse/profitpulse/internal/trends"
	"github.com/profitpulse/profitpulse/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

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
		logger.Warn("redis ping", slog.Any("error", err))
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

	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), reports)
	menuService := menu.NewService(menu.NewRepository(pool), reports)
	staffService := staff.NewService(staff.NewRepository(pool), reports)
	trendsService := trends.NewService(trends.NewRepository(pool), reports)

	provider := ai.NewClaude(cfg.AIAPIKey, cfg.AIModel, cfg.AIMaxTokens, cfg.AIBaseURL, cfg.AITimeout)
	insightsService := insights.NewService(insights.NewRepository(pool), provider,
		dashboardService, menuService, staffService, lock, logger)

	jobMetrics := jobmetrics.NewMetrics(nil)
	briefJob := jobs.NewWeeklyBriefRegenJob(insightsService, pool, logger, jobMetrics)
	warmupJob := jobs.NewReportCacheWarmupJob(dashboardService, menuService, staffService,
		trendsService, pool, logger, jobMetrics)

	briefTask, err := jobs.NewWeeklyBriefRegenTask("all")
	if err != nil {
		logger.Error("build brief task", slog.Any("error", err))
		os.Exit(1)
	}
	warmupTask, err := jobs.NewReportCacheWarmupTask(7)
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskWeeklyBriefRegen, Handler: briefJob.Handle},
			{Type: jobs.TaskReportCacheWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			// Monday 06:00 UTC, ahead of the NZ business day wrap-up.
			{Spec: "0 6 * * 1", Task: briefTask, Options: []asynq.Option{asynq.MaxRetry(2)}},
			{Spec: "30 16 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
