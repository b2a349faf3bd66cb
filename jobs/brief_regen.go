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

	"github.com/profitpulse/profitpulse/internal/insights"
	jobmetrics "github.com/profitpulse/profitpulse/internal/jobs"
)

// BriefGenerator produces the weekly brief for one cafe.
type BriefGenerator interface {
	GenerateBrief(ctx context.Context, cafeID uuid.UUID) (insights.Brief, error)
}

// WeeklyBriefRegenJob regenerates the current week's brief for every cafe.
// Runs Monday mornings so owners start the week with a fresh narrative.
type WeeklyBriefRegenJob struct {
	Insights BriefGenerator
	Pool     *pgxpool.Pool
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics

	listCafes func(ctx context.Context) ([]uuid.UUID, error)
}

// NewWeeklyBriefRegenJob wires dependencies for the brief handler.
func NewWeeklyBriefRegenJob(insightsSvc BriefGenerator, pool *pgxpool.Pool,
	logger *slog.Logger, metrics *jobmetrics.Metrics) *WeeklyBriefRegenJob {
	return &WeeklyBriefRegenJob{Insights: insightsSvc, Pool: pool, Logger: logger, Metrics: metrics}
}

// Handle processes weekly brief regeneration tasks.
func (j *WeeklyBriefRegenJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Insights == nil {
		return errors.New("brief regen: handler not configured")
	}
	tracker := j.Metrics.Track(TaskWeeklyBriefRegen)
	return tracker.End(j.run(ctx, t))
}

func (j *WeeklyBriefRegenJob) run(ctx context.Context, t *asynq.Task) error {
	var payload WeeklyBriefRegenPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger()
	logger.Info("starting weekly brief regeneration", slog.String("scope", payload.Scope))

	list := j.listCafes
	if list == nil {
		list = j.fetchCafeIDs
	}
	cafes, err := list(ctx)
	if err != nil {
		logger.Error("load cafes", slog.Any("error", err))
		return err
	}

	// One cafe failing must not starve the rest of the list.
	start := time.Now()
	generated := 0
	var failures []error
	for _, cafeID := range cafes {
		cafeCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		_, err := j.Insights.GenerateBrief(cafeCtx, cafeID)
		cancel()
		if err != nil {
			logger.Error("generate brief",
				slog.String("cafe_id", cafeID.String()), slog.Any("error", err))
			failures = append(failures, err)
			continue
		}
		generated++
	}

	j.Metrics.AddBriefs(generated)
	logger.Info("completed weekly brief regeneration",
		slog.Int("cafes", generated), slog.Int("failures", len(failures)),
		slog.Duration("duration", time.Since(start)))
	return errors.Join(failures...)
}

func (j *WeeklyBriefRegenJob) fetchCafeIDs(ctx context.Context) ([]uuid.UUID, error) {
	if j.Pool == nil {
		return nil, errors.New("brief regen: pool not configured")
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

func (j *WeeklyBriefRegenJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskWeeklyBriefRegen))
	}
	return slog.Default().With(slog.String("job", TaskWeeklyBriefRegen))
}
