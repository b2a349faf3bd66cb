package summaries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/profitpulse/profitpulse/internal/metrics"
	"github.com/profitpulse/profitpulse/internal/platform/cache"
	"github.com/profitpulse/profitpulse/internal/shared"
)

// Service records and lists daily summaries.
type Service struct {
	repo  Repository
	cache *cache.Reports
	now   func() time.Time
}

// NewService wires a Repository with the report cache.
func NewService(repo Repository, reports *cache.Reports) *Service {
	return &Service{repo: repo, cache: reports, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Create stores a day's summary and invalidates cached reports.
func (s *Service) Create(ctx context.Context, cafeID uuid.UUID, summary DailySummary) (DailySummary, error) {
	summary.ID = uuid.New()
	summary.Date = shared.DateOnly(summary.Date)
	summary.TotalRevenue = metrics.Round2(summary.TotalRevenue)
	summary.FoodCost = metrics.Round2(summary.FoodCost)
	summary.LabourCost = metrics.Round2(summary.LabourCost)
	summary.OtherCosts = metrics.Round2(summary.OtherCosts)

	if err := s.repo.Insert(ctx, cafeID, summary); err != nil {
		return DailySummary{}, err
	}
	if err := s.cache.Bump(ctx); err != nil {
		return DailySummary{}, err
	}
	return summary, nil
}

// List returns the cafe's summaries over the window ending today.
func (s *Service) List(ctx context.Context, cafeID uuid.UUID, days int) ([]DailySummary, error) {
	return s.repo.ListSince(ctx, cafeID, shared.WindowStart(s.now(), days))
}
