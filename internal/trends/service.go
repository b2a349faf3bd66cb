package trends

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/profitpulse/profitpulse/internal/metrics"
	"github.com/profitpulse/profitpulse/internal/platform/cache"
	"github.com/profitpulse/profitpulse/internal/shared"
)

// Service builds daily and weekly trend reports.
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

// Report charts stored days over the window ending today, with a weekly
// roll-up keyed by each week's Monday.
func (s *Service) Report(ctx context.Context, cafeID uuid.UUID, days int) (Report, error) {
	today := shared.DateOnly(s.now())

	key, err := s.cache.Key(ctx, "reports", "trends", cafeID.String(),
		strconv.Itoa(days), today.Format("2006-01-02"))
	if err != nil {
		return Report{}, err
	}
	var report Report
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		return s.build(ctx, cafeID, shared.WindowStart(s.now(), days), days)
	})
	if err != nil {
		return Report{}, err
	}
	return report, nil
}

func (s *Service) build(ctx context.Context, cafeID uuid.UUID, since time.Time, days int) (Report, error) {
	summaries, err := s.repo.SummariesSince(ctx, cafeID, since)
	if err != nil {
		return Report{}, err
	}

	daily := make([]DailyPoint, 0, len(summaries))
	for _, d := range summaries {
		daily = append(daily, DailyPoint{
			Date:              shared.DateOnly(d.Date),
			Revenue:           metrics.Round2(d.TotalRevenue),
			FoodCostPercent:   metrics.PercentOf(d.FoodCost, d.TotalRevenue),
			LabourCostPercent: metrics.PercentOf(d.LabourCost, d.TotalRevenue),
			NetProfit:         metrics.Round2(d.TotalRevenue - d.FoodCost - d.LabourCost - d.OtherCosts),
			Customers:         d.CustomerCount,
			Transactions:      d.TransactionCount,
		})
	}

	weekly := rollUpWeekly(daily)

	var sumRevenue, sumFood, sumLabour float64
	for _, p := range daily {
		sumRevenue += p.Revenue
		sumFood += p.FoodCostPercent
		sumLabour += p.LabourCostPercent
	}
	avgRevenue, avgFood, avgLabour := 0.0, 0.0, 0.0
	if n := float64(len(daily)); n > 0 {
		avgRevenue = metrics.Round2(sumRevenue / n)
		avgFood = metrics.Round1(sumFood / n)
		avgLabour = metrics.Round1(sumLabour / n)
	}

	return Report{
		Daily:                daily,
		Weekly:               weekly,
		AvgDailyRevenue:      avgRevenue,
		AvgFoodCostPercent:   avgFood,
		AvgLabourCostPercent: avgLabour,
		Days:                 days,
	}, nil
}

// rollUpWeekly groups daily points under their Monday, summing revenue,
// profit and customers while averaging the cost percentages.
func rollUpWeekly(daily []DailyPoint) []WeeklyPoint {
	type bucket struct {
		revenue, food, labour, profit float64
		customers, count              int
	}
	buckets := map[time.Time]*bucket{}
	for _, p := range daily {
		week := shared.WeekStart(p.Date)
		b := buckets[week]
		if b == nil {
			b = &bucket{}
			buckets[week] = b
		}
		b.revenue += p.Revenue
		b.food += p.FoodCostPercent
		b.labour += p.LabourCostPercent
		b.profit += p.NetProfit
		b.customers += p.Customers
		b.count++
	}

	weekly := make([]WeeklyPoint, 0, len(buckets))
	for week, b := range buckets {
		n := float64(b.count)
		weekly = append(weekly, WeeklyPoint{
			WeekStart:            week,
			Revenue:              metrics.Round2(b.revenue),
			AvgFoodCostPercent:   metrics.Round1(b.food / n),
			AvgLabourCostPercent: metrics.Round1(b.labour / n),
			NetProfit:            metrics.Round2(b.profit),
			Customers:            b.customers,
			DaysInWeek:           b.count,
		})
	}
	sort.Slice(weekly, func(i, j int) bool {
		return weekly[i].WeekStart.Before(weekly[j].WeekStart)
	})
	return weekly
}
