package menu

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/profitpulse/profitpulse/internal/metrics"
	"github.com/profitpulse/profitpulse/internal/platform/cache"
	"github.com/profitpulse/profitpulse/internal/shared"
)

// Service builds menu performance reports and records daily sales.
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

// Performance reports per-item sales over the window ending today.
func (s *Service) Performance(ctx context.Context, cafeID uuid.UUID, days int) (PerformanceReport, error) {
	today := shared.DateOnly(s.now())

	key, err := s.cache.Key(ctx, "reports", "menu", cafeID.String(),
		strconv.Itoa(days), today.Format("2006-01-02"))
	if err != nil {
		return PerformanceReport{}, err
	}
	var report PerformanceReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		return s.build(ctx, cafeID, shared.WindowStart(s.now(), days), days)
	})
	if err != nil {
		return PerformanceReport{}, err
	}
	return report, nil
}

func (s *Service) build(ctx context.Context, cafeID uuid.UUID, since time.Time, days int) (PerformanceReport, error) {
	aggregates, err := s.repo.ItemAggregates(ctx, cafeID, since)
	if err != nil {
		return PerformanceReport{}, err
	}

	var totalRevenue float64
	for _, a := range aggregates {
		totalRevenue += a.Revenue
	}

	items := make([]ItemPerformance, 0, len(aggregates))
	for _, a := range aggregates {
		share := 0.0
		if totalRevenue > 0 {
			share = metrics.Round1(a.Revenue / totalRevenue * 100)
		}
		items = append(items, ItemPerformance{
			ID:            a.ID,
			Name:          a.Name,
			Category:      a.Category,
			Price:         a.Price,
			CostToMake:    a.CostToMake,
			MarginPercent: metrics.MarginPercent(a.Price, a.CostToMake),
			TotalSold:     a.TotalSold,
			Revenue:       metrics.Round2(a.Revenue),
			Profit:        metrics.Round2(a.Revenue - a.TotalCost),
			RevenueShare:  share,
		})
	}

	avgMargin := 0.0
	if len(items) > 0 {
		var sum float64
		for _, it := range items {
			sum += it.MarginPercent
		}
		avgMargin = metrics.Round1(sum / float64(len(items)))
	}

	// Items arrive revenue-sorted, so ties keep the higher earner.
	best := ""
	bestProfit := 0.0
	for i, it := range items {
		if i == 0 || it.Profit > bestProfit {
			best = it.Name
			bestProfit = it.Profit
		}
	}

	// Unsold items are excluded here but stay in the full list.
	worst := ""
	worstMargin := 0.0
	for _, it := range items {
		if it.TotalSold == 0 {
			continue
		}
		if worst == "" || it.MarginPercent < worstMargin {
			worst = it.Name
			worstMargin = it.MarginPercent
		}
	}

	return PerformanceReport{
		Items:         items,
		TotalRevenue:  metrics.Round2(totalRevenue),
		AverageMargin: avgMargin,
		BestPerformer: best,
		WorstMargin:   worst,
		Days:          days,
	}, nil
}

// RecordSale stores a day's sold quantity for one of the cafe's items and
// invalidates cached reports.
func (s *Service) RecordSale(ctx context.Context, cafeID, itemID uuid.UUID, date time.Time, quantity int) (Sale, error) {
	sale := Sale{
		ID:           uuid.New(),
		MenuItemID:   itemID,
		Date:         shared.DateOnly(date),
		QuantitySold: quantity,
	}
	if err := s.repo.InsertSale(ctx, cafeID, sale); err != nil {
		return Sale{}, err
	}
	if err := s.cache.Bump(ctx); err != nil {
		return Sale{}, err
	}
	return sale, nil
}
