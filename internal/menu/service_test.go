package menu

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitpulse/profitpulse/internal/shared"
)

type mockRepo struct {
	aggregates []ItemAggregate
	insertErr  error
	inserted   []Sale
}

func (m *mockRepo) ItemAggregates(ctx context.Context, cafeID uuid.UUID, since time.Time) ([]ItemAggregate, error) {
	return m.aggregates, nil
}

func (m *mockRepo) InsertSale(ctx context.Context, cafeID uuid.UUID, sale Sale) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, sale)
	return nil
}

func TestPerformanceComputesItemFigures(t *testing.T) {
	repo := &mockRepo{aggregates: []ItemAggregate{
		{Name: "Flat White", Category: "Coffee", Price: 5.50, CostToMake: 1.20, TotalSold: 120, Revenue: 660, TotalCost: 144},
		{Name: "Eggs Bene", Category: "Breakfast", Price: 22, CostToMake: 8.50, TotalSold: 15, Revenue: 330, TotalCost: 127.5},
		{Name: "Muffin", Category: "Cabinet", Price: 5, CostToMake: 4.50, TotalSold: 2, Revenue: 10, TotalCost: 9},
	}}
	svc := NewService(repo, nil)

	report, err := svc.Performance(context.Background(), uuid.New(), 7)
	require.NoError(t, err)
	require.Len(t, report.Items, 3)

	assert.Equal(t, 1000.0, report.TotalRevenue)
	assert.Equal(t, 7, report.Days)

	fw := report.Items[0]
	assert.Equal(t, 78.2, fw.MarginPercent)
	assert.Equal(t, 660.0, fw.Revenue)
	assert.Equal(t, 516.0, fw.Profit)
	assert.Equal(t, 66.0, fw.RevenueShare)

	// Highest profit wins, not highest revenue share alone.
	assert.Equal(t, "Flat White", report.BestPerformer)
	assert.Equal(t, "Muffin", report.WorstMargin)
}

func TestPerformanceWorstMarginExcludesUnsold(t *testing.T) {
	repo := &mockRepo{aggregates: []ItemAggregate{
		{Name: "Long Black", Price: 5, CostToMake: 0.80, TotalSold: 50, Revenue: 250, TotalCost: 40},
		// Lowest margin on the menu but never sold in the window.
		{Name: "Seasonal Pie", Price: 10, CostToMake: 9.50, TotalSold: 0},
		{Name: "Toastie", Price: 12, CostToMake: 5, TotalSold: 10, Revenue: 120, TotalCost: 50},
	}}
	svc := NewService(repo, nil)

	report, err := svc.Performance(context.Background(), uuid.New(), 7)
	require.NoError(t, err)

	assert.Equal(t, "Toastie", report.WorstMargin)
	// The unsold item still appears in the list.
	require.Len(t, report.Items, 3)
}

func TestPerformanceEmptyMenu(t *testing.T) {
	svc := NewService(&mockRepo{}, nil)

	report, err := svc.Performance(context.Background(), uuid.New(), 7)
	require.NoError(t, err)

	assert.Empty(t, report.Items)
	assert.Equal(t, 0.0, report.TotalRevenue)
	assert.Equal(t, 0.0, report.AverageMargin)
	assert.Equal(t, "", report.BestPerformer)
	assert.Equal(t, "", report.WorstMargin)
}

func TestPerformanceAverageMargin(t *testing.T) {
	repo := &mockRepo{aggregates: []ItemAggregate{
		{Name: "A", Price: 10, CostToMake: 5, TotalSold: 1, Revenue: 10, TotalCost: 5},
		{Name: "B", Price: 10, CostToMake: 7, TotalSold: 1, Revenue: 10, TotalCost: 7},
		// Zero price yields zero margin and still counts in the average.
		{Name: "C", Price: 0, CostToMake: 1, TotalSold: 1},
	}}
	svc := NewService(repo, nil)

	report, err := svc.Performance(context.Background(), uuid.New(), 7)
	require.NoError(t, err)

	// (50 + 30 + 0) / 3
	assert.Equal(t, 26.7, report.AverageMargin)
}

func TestRecordSaleNormalisesDate(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil)
	itemID := uuid.New()

	sale, err := svc.RecordSale(context.Background(), uuid.New(), itemID,
		time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC), 12)
	require.NoError(t, err)

	assert.Equal(t, itemID, sale.MenuItemID)
	assert.Equal(t, 12, sale.QuantitySold)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), sale.Date)
	require.Len(t, repo.inserted, 1)
}

func TestRecordSalePropagatesDuplicate(t *testing.T) {
	svc := NewService(&mockRepo{insertErr: shared.ErrDuplicate}, nil)

	_, err := svc.RecordSale(context.Background(), uuid.New(), uuid.New(),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), 3)
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}
