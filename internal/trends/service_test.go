package trends

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	summaries []Summary
}

func (m *mockRepo) SummariesSince(ctx context.Context, cafeID uuid.UUID, since time.Time) ([]Summary, error) {
	return m.summaries, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReportDailyPoints(t *testing.T) {
	repo := &mockRepo{summaries: []Summary{
		{Date: day(2024, 6, 10), TotalRevenue: 1000, FoodCost: 350, LabourCost: 300,
			OtherCosts: 100, CustomerCount: 80, TransactionCount: 95},
		{Date: day(2024, 6, 11), TotalRevenue: 0, FoodCost: 50, CustomerCount: 0},
	}}
	svc := NewService(repo, nil)

	report, err := svc.Report(context.Background(), uuid.New(), 30)
	require.NoError(t, err)
	require.Len(t, report.Daily, 2)

	first := report.Daily[0]
	assert.Equal(t, 1000.0, first.Revenue)
	assert.Equal(t, 35.0, first.FoodCostPercent)
	assert.Equal(t, 30.0, first.LabourCostPercent)
	assert.Equal(t, 250.0, first.NetProfit)
	assert.Equal(t, 80, first.Customers)

	// Zero-revenue days chart with zero percentages, not a fault.
	second := report.Daily[1]
	assert.Equal(t, 0.0, second.FoodCostPercent)
	assert.Equal(t, -50.0, second.NetProfit)

	assert.Equal(t, 30, report.Days)
}

func TestReportWeeklyRollUp(t *testing.T) {
	repo := &mockRepo{summaries: []Summary{
		// Week of Monday 2024-06-03.
		{Date: day(2024, 6, 6), TotalRevenue: 1000, FoodCost: 300, LabourCost: 280, CustomerCount: 70},
		{Date: day(2024, 6, 8), TotalRevenue: 1500, FoodCost: 600, LabourCost: 450, CustomerCount: 110},
		// Sunday still belongs to the Monday 2024-06-03 week.
		{Date: day(2024, 6, 9), TotalRevenue: 500, FoodCost: 150, LabourCost: 150, CustomerCount: 40},
		// Week of Monday 2024-06-10.
		{Date: day(2024, 6, 10), TotalRevenue: 800, FoodCost: 240, LabourCost: 240, CustomerCount: 60},
	}}
	svc := NewService(repo, nil)

	report, err := svc.Report(context.Background(), uuid.New(), 30)
	require.NoError(t, err)
	require.Len(t, report.Weekly, 2)

	w1 := report.Weekly[0]
	assert.Equal(t, day(2024, 6, 3), w1.WeekStart)
	assert.Equal(t, 3000.0, w1.Revenue)
	assert.Equal(t, 3, w1.DaysInWeek)
	assert.Equal(t, 220, w1.Customers)
	// Mean of the daily percentages 30.0, 40.0, 30.0.
	assert.Equal(t, 33.3, w1.AvgFoodCostPercent)
	// Mean of 28.0, 30.0, 30.0.
	assert.Equal(t, 29.3, w1.AvgLabourCostPercent)

	w2 := report.Weekly[1]
	assert.Equal(t, day(2024, 6, 10), w2.WeekStart)
	assert.Equal(t, 1, w2.DaysInWeek)
}

func TestReportWindowAverages(t *testing.T) {
	repo := &mockRepo{summaries: []Summary{
		{Date: day(2024, 6, 10), TotalRevenue: 1000, FoodCost: 300, LabourCost: 250},
		{Date: day(2024, 6, 11), TotalRevenue: 1400, FoodCost: 490, LabourCost: 420},
	}}
	svc := NewService(repo, nil)

	report, err := svc.Report(context.Background(), uuid.New(), 7)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, report.AvgDailyRevenue)
	// Mean of 30.0 and 35.0 / mean of 25.0 and 30.0.
	assert.Equal(t, 32.5, report.AvgFoodCostPercent)
	assert.Equal(t, 27.5, report.AvgLabourCostPercent)
}

func TestReportEmptyWindow(t *testing.T) {
	svc := NewService(&mockRepo{}, nil)

	report, err := svc.Report(context.Background(), uuid.New(), 30)
	require.NoError(t, err)

	assert.Empty(t, report.Daily)
	assert.Empty(t, report.Weekly)
	assert.Equal(t, 0.0, report.AvgDailyRevenue)
}
