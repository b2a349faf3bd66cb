package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/profitpulse/profitpulse/internal/metrics"
	"github.com/profitpulse/profitpulse/internal/platform/cache"
	"github.com/profitpulse/profitpulse/internal/shared"
)

// Service builds the dashboard report from stored daily summaries.
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

// Report computes the dashboard payload for the cafe's current day, ISO
// week (Monday through today), previous week and month to date.
func (s *Service) Report(ctx context.Context, cafeID uuid.UUID) (Report, error) {
	today := shared.DateOnly(s.now())

	loader := func(ctx context.Context) (interface{}, error) {
		return s.build(ctx, cafeID, today)
	}
	if s.cache == nil {
		report, err := s.build(ctx, cafeID, today)
		if err != nil {
			return Report{}, err
		}
		return report, nil
	}
	key, err := s.cache.Key(ctx, "reports", "dashboard", cafeID.String(), today.Format("2006-01-02"))
	if err != nil {
		return Report{}, err
	}
	var report Report
	if err := s.cache.FetchJSON(ctx, key, &report, loader); err != nil {
		return Report{}, err
	}
	return report, nil
}

func (s *Service) build(ctx context.Context, cafeID uuid.UUID, today time.Time) (Report, error) {
	weekStart := shared.WeekStart(today)
	lastWeekStart := weekStart.AddDate(0, 0, -7)
	monthStart := shared.MonthStart(today)

	since := lastWeekStart
	if monthStart.Before(since) {
		since = monthStart
	}
	summaries, err := s.repo.SummariesSince(ctx, cafeID, since)
	if err != nil {
		return Report{}, err
	}

	var (
		todayRevenue, weekRevenue, lastWeekRevenue, monthRevenue float64
		weekFood, weekLabour, weekOther                          float64
		lastWeekFood, lastWeekLabour                             float64
		todayCustomers, weekCustomers, lastWeekCustomers         int
		weekTransactions                                         int
	)
	for _, d := range summaries {
		date := shared.DateOnly(d.Date)
		if date.Equal(today) {
			todayRevenue = d.TotalRevenue
			todayCustomers = d.CustomerCount
		}
		switch {
		case !date.Before(weekStart) && !date.After(today):
			weekRevenue += d.TotalRevenue
			weekFood += d.FoodCost
			weekLabour += d.LabourCost
			weekOther += d.OtherCosts
			weekCustomers += d.CustomerCount
			weekTransactions += d.TransactionCount
		case !date.Before(lastWeekStart) && date.Before(weekStart):
			lastWeekRevenue += d.TotalRevenue
			lastWeekFood += d.FoodCost
			lastWeekLabour += d.LabourCost
			lastWeekCustomers += d.CustomerCount
		}
		if !date.Before(monthStart) && !date.After(today) {
			monthRevenue += d.TotalRevenue
		}
	}

	// Unrounded percentages feed alert thresholds and point deltas; the
	// rounded values are what the payload carries.
	weekFoodPct := rawPercent(weekFood, weekRevenue)
	weekLabourPct := rawPercent(weekLabour, weekRevenue)
	weekOtherPct := rawPercent(weekOther, weekRevenue)
	netMargin := 100 - weekFoodPct - weekLabourPct - weekOtherPct
	if weekRevenue <= 0 {
		netMargin = 0
	}
	lastWeekFoodPct := rawPercent(lastWeekFood, lastWeekRevenue)
	lastWeekLabourPct := rawPercent(lastWeekLabour, lastWeekRevenue)

	avgTransaction := 0.0
	if weekTransactions > 0 {
		avgTransaction = metrics.Round2(weekRevenue / float64(weekTransactions))
	}

	revTrend := metrics.PeriodDelta(weekRevenue, lastWeekRevenue)
	foodTrend := 0.0
	if lastWeekFoodPct > 0 {
		foodTrend = metrics.Round1(weekFoodPct - lastWeekFoodPct)
	}
	labourTrend := 0.0
	if lastWeekLabourPct > 0 {
		labourTrend = metrics.Round1(weekLabourPct - lastWeekLabourPct)
	}
	custTrend := metrics.PeriodDelta(float64(weekCustomers), float64(lastWeekCustomers))

	report := Report{
		Metrics: Metrics{
			TodayRevenue:        metrics.Round2(todayRevenue),
			WeekRevenue:         metrics.Round2(weekRevenue),
			MonthRevenue:        metrics.Round2(monthRevenue),
			FoodCostPercent:     metrics.Round1(weekFoodPct),
			LabourCostPercent:   metrics.Round1(weekLabourPct),
			NetProfitMargin:     metrics.Round1(netMargin),
			TodayCustomers:      todayCustomers,
			AvgTransactionValue: avgTransaction,
		},
		Trends: Trends{
			RevenueVsLastWeek:    revTrend,
			FoodCostVsLastWeek:   foodTrend,
			LabourCostVsLastWeek: labourTrend,
			CustomersVsLastWeek:  custTrend,
		},
		Alerts: buildAlerts(weekFoodPct, weekLabourPct, revTrend),
	}
	return report, nil
}

// buildAlerts evaluates the fixed rule list in order; every matching rule
// emits, and all thresholds are strict.
func buildAlerts(foodPct, labourPct, revTrend float64) []Alert {
	alerts := []Alert{}
	if foodPct > 35 {
		alerts = append(alerts, Alert{
			Type:     "food_cost",
			Message:  fmt.Sprintf("Food cost at %.1f%% — above 35%% target", foodPct),
			Severity: "warning",
		})
	}
	if labourPct > 32 {
		alerts = append(alerts, Alert{
			Type:     "labour_cost",
			Message:  fmt.Sprintf("Labour cost at %.1f%% — above 30%% target", labourPct),
			Severity: "warning",
		})
	}
	if revTrend < -10 {
		alerts = append(alerts, Alert{
			Type:     "revenue_drop",
			Message:  fmt.Sprintf("Revenue down %.1f%% vs last week", math.Abs(revTrend)),
			Severity: "danger",
		})
	}
	if revTrend > 10 {
		alerts = append(alerts, Alert{
			Type:     "revenue_up",
			Message:  fmt.Sprintf("Revenue up %.1f%% vs last week — great work!", revTrend),
			Severity: "success",
		})
	}
	return alerts
}

func rawPercent(cost, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return cost / revenue * 100
}

// LatestBrief returns the most recent stored weekly brief.
func (s *Service) LatestBrief(ctx context.Context, cafeID uuid.UUID) (*Brief, error) {
	return s.repo.LatestBrief(ctx, cafeID)
}
