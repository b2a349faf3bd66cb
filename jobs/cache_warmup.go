package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/profitpulse/profitpulse/internal/dashboard"
	jobmetrics "github.com/profitpulse/profitpulse/internal/jobs"
	"github.com/profitpulse/profitpulse/internal/menu"
	"github.com/profitpulse/profitpulse/internal/staff"
	"github.com/profitpulse/profitpulse/internal/trends"
)

// ReportCacheWarmupJob pre-populates the report caches for every cafe so
// the first dashboard load of the day is served hot.
type ReportCacheWarmupJob struct {
	Dashboard *dashboard.Service
	Menu      *menu.Service
	Staff     *staff.Service
	Trends    *trends.Service
	Pool      *pgxpool.Pool
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

// NewReportCacheWarmupJob wires dependencies for the warmup handler.
func NewReportCacheWarmupJob(dashboardSvc *dashboard.Service, menuSvc *menu.Service,
	staffSvc *staff.Service, trendsSvc *trends.Service, pool *pgxpool.Pool,
	logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportCacheWarmupJob {
	return &ReportCacheWarmupJob{
		Dashboard: dashboardSvc,
		Menu:      menuSvc,
		Staff:     staffSvc,
		Trends:    trendsSvc,
		Pool:      pool,
		Logger:    logger,
		Metrics:   metrics,
	}
}

// Handle processes report cache warmup tasks.
func (j *ReportCacheWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Dashboard == nil {
		return errors.New("cache warmup: handler not configured")
	}
	tracker := j.Metrics.Track(TaskReportCacheWarmup)
	return tracker.End(j.run(ctx, t))
}

func (j *ReportCacheWarmupJob) run(ctx context.Context, t *asynq.Task) error {
	var payload ReportCacheWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Days <= 0 {
		payload.Days = 7
	}

	logger := j.logger()
	logger.Info("starting report cache warmup", slog.Int("days", payload.Days))

	cafes, err := j.fetchCafeIDs(ctx)
	if err != nil {
		logger.Error("load cafes", slog.Any("error", err))
		return err
	}

	start := time.Now()
	for _, cafeID := range cafes {
		if err := j.warmCafe(ctx, cafeID, payload.Days); err != nil {
			logger.Error("warm cafe",
				slog.String("cafe_id", cafeID.String()), slog.Any("error", err))
			return err
		}
	}

	logger.Info("completed report cache warmup",
		slog.Int("cafes", len(cafes)), slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *ReportCacheWarmupJob) warmCafe(ctx context.Context, cafeID uuid.UUID, days int) error {
	cafeCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if _, err := j.Dashboard.Report(cafeCtx, cafeID); err != nil {
		return err
	}
	if _, err := j.Menu.Performance(cafeCtx, cafeID, days); err != nil {
		return err
	}
	if _, err := j.Staff.Costs(cafeCtx, cafeID, days); err != nil {
		return err
	}
	if _, err := j.Trends.Report(cafeCtx, cafeID, 30); err != nil {
		return err
	}
	return nil
}

func (j *ReportCacheWarmupJob) fetchCafeIDs(ctx context.Context) ([]uuid.UUID, error) {
	if j.Pool == nil {
		return nil, errors.New("cache warmup: pool not configured")
	}
	rows, err := j.Pool.Query(ctx, `SELECT id FROM cafes ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (j *ReportCacheWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskReportCacheWarmup))
	}
	return slog.Default().With(slog.String("job", TaskReportCacheWarmup))
}
