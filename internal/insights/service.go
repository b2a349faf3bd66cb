package insights

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/profitpulse/profitpulse/internal/ai"
	"github.com/profitpulse/profitpulse/internal/dashboard"
	"github.com/profitpulse/profitpulse/internal/menu"
	"github.com/profitpulse/profitpulse/internal/shared"
	"github.com/profitpulse/profitpulse/internal/staff"
)

const (
	gatherDays = 7
	listLimit  = 50
)

// DashboardSource supplies the headline report used as grounding data.
type DashboardSource interface {
	Report(ctx context.Context, cafeID uuid.UUID) (dashboard.Report, error)
}

// MenuSource supplies menu performance used as grounding data.
type MenuSource interface {
	Performance(ctx context.Context, cafeID uuid.UUID, days int) (menu.PerformanceReport, error)
}

// StaffSource supplies staff costs used as grounding data.
type StaffSource interface {
	Costs(ctx context.Context, cafeID uuid.UUID, days int) (staff.CostReport, error)
}

// Service runs the insight generation pipeline: gather reports, prompt
// the provider, parse its reply, persist the results.
type Service struct {
	repo       Repository
	provider   ai.Provider
	dashboards DashboardSource
	menus      MenuSource
	staffs     StaffSource
	lock       *shared.Lock
	logger     *slog.Logger
	now        func() time.Time
}

// NewService wires the pipeline dependencies.
func NewService(repo Repository, provider ai.Provider, dashboards DashboardSource,
	menus MenuSource, staffs StaffSource, lock *shared.Lock, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		provider:   provider,
		dashboards: dashboards,
		menus:      menus,
		staffs:     staffs,
		lock:       lock,
		logger:     logger,
		now:        time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// GenerateInsights runs the full pipeline and returns the stored batch.
// A second concurrent run for the same cafe is rejected with ErrLocked.
// Failures are terminal; the caller re-invokes manually.
func (s *Service) GenerateInsights(ctx context.Context, cafeID uuid.UUID) ([]Insight, error) {
	key := shared.GenerationLockKey(cafeID)
	if err := s.lock.Acquire(ctx, key); err != nil {
		return nil, err
	}
	defer s.lock.Release(ctx, key)

	dash, perf, costs, err := s.gather(ctx, cafeID)
	if err != nil {
		return nil, err
	}

	prompt := buildInsightPrompt(buildInsightContext(dash, perf, costs))
	reply, err := s.provider.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		s.logger.Error("insight generation failed",
			slog.String("cafe_id", cafeID.String()), slog.Any("error", err))
		return nil, err
	}

	parsed, err := parseInsightReplies(reply)
	if err != nil {
		s.logger.Error("insight reply unparseable",
			slog.String("cafe_id", cafeID.String()), slog.Any("error", err))
		return nil, err
	}
	if len(parsed) == 0 {
		return []Insight{}, nil
	}

	createdAt := s.now().UTC()
	batch := make([]Insight, 0, len(parsed))
	for _, p := range parsed {
		batch = append(batch, Insight{
			ID:                uuid.New(),
			CafeID:            cafeID,
			Title:             p.Title,
			Summary:           p.Summary,
			DetailedAnalysis:  p.DetailedAnalysis,
			RecommendedAction: p.RecommendedAction,
			Category:          ParseCategory(p.Category),
			Priority:          ParsePriority(p.Priority),
			PotentialImpact:   p.PotentialImpact,
			Status:            StatusNew,
			CreatedAt:         createdAt,
		})
	}
	if err := s.repo.InsertInsights(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// GenerateBrief runs the weekly brief variant, replacing any existing
// brief for the current week.
func (s *Service) GenerateBrief(ctx context.Context, cafeID uuid.UUID) (Brief, error) {
	key := shared.GenerationLockKey(cafeID)
	if err := s.lock.Acquire(ctx, key); err != nil {
		return Brief{}, err
	}
	defer s.lock.Release(ctx, key)

	dash, perf, costs, err := s.gather(ctx, cafeID)
	if err != nil {
		return Brief{}, err
	}

	prompt := buildBriefPrompt(buildBriefContext(dash, perf, costs))
	reply, err := s.provider.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		s.logger.Error("brief generation failed",
			slog.String("cafe_id", cafeID.String()), slog.Any("error", err))
		return Brief{}, err
	}

	parsed, err := parseBriefReply(reply)
	if err != nil {
		s.logger.Error("brief reply unparseable",
			slog.String("cafe_id", cafeID.String()), slog.Any("error", err))
		return Brief{}, err
	}

	now := s.now().UTC()
	brief := Brief{
		ID:              uuid.New(),
		CafeID:          cafeID,
		WeekStarting:    shared.WeekStart(shared.DateOnly(now)),
		Summary:         parsed.Summary,
		Highlights:      parsed.Highlights,
		Concerns:        parsed.Concerns,
		Recommendations: parsed.Recommendations,
		CreatedAt:       now,
	}
	if err := s.repo.ReplaceBrief(ctx, brief); err != nil {
		return Brief{}, err
	}
	return brief, nil
}

func (s *Service) gather(ctx context.Context, cafeID uuid.UUID) (dashboard.Report, menu.PerformanceReport, staff.CostReport, error) {
	var (
		dash  dashboard.Report
		perf  menu.PerformanceReport
		costs staff.CostReport
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dash, err = s.dashboards.Report(ctx, cafeID)
		return err
	})
	g.Go(func() error {
		var err error
		perf, err = s.menus.Performance(ctx, cafeID, gatherDays)
		return err
	})
	g.Go(func() error {
		var err error
		costs, err = s.staffs.Costs(ctx, cafeID, gatherDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return dashboard.Report{}, menu.PerformanceReport{}, staff.CostReport{}, err
	}
	return dash, perf, costs, nil
}

// List returns the cafe's insights newest first, capped at 50.
func (s *Service) List(ctx context.Context, cafeID uuid.UUID, status *Status) ([]Insight, error) {
	return s.repo.ListInsights(ctx, cafeID, status, listLimit)
}

// UpdateStatus applies a one-way transition. New insights can be actioned
// or dismissed; re-applying the current status is a no-op; everything
// else is rejected.
func (s *Service) UpdateStatus(ctx context.Context, cafeID, id uuid.UUID, next Status) error {
	current, err := s.repo.FindInsightStatus(ctx, cafeID, id)
	if err != nil {
		return err
	}
	if current == next {
		return nil
	}
	if current != StatusNew {
		return fmt.Errorf("%w: insight already %s", shared.ErrValidation, current)
	}
	return s.repo.UpdateInsightStatus(ctx, cafeID, id, next)
}
