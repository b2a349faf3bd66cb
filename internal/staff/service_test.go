package staff

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
	members  []MemberAggregate
	revenue  float64
	pay      PayRef
	payErr   error
	inserted []Shift
}

func (m *mockRepo) MemberAggregates(ctx context.Context, cafeID uuid.UUID, since time.Time) ([]MemberAggregate, error) {
	return m.members, nil
}

func (m *mockRepo) WindowRevenue(ctx context.Context, cafeID uuid.UUID, since time.Time) (float64, error) {
	return m.revenue, nil
}

func (m *mockRepo) FindPay(ctx context.Context, cafeID, staffID uuid.UUID) (PayRef, error) {
	if m.payErr != nil {
		return PayRef{}, m.payErr
	}
	return m.pay, nil
}

func (m *mockRepo) InsertShift(ctx context.Context, shift Shift) error {
	m.inserted = append(m.inserted, shift)
	return nil
}

func salary(v float64) *float64 { return &v }

func TestCostsProratesSalaryStaff(t *testing.T) {
	repo := &mockRepo{
		members: []MemberAggregate{
			{Name: "Manager", Role: "Manager", PayType: "Salary", AnnualSalary: salary(72000)},
		},
		revenue: 10000,
	}
	svc := NewService(repo, nil)

	report, err := svc.Costs(context.Background(), uuid.New(), 7)
	require.NoError(t, err)
	require.Len(t, report.Staff, 1)

	// 72000 / 365 * 7, rounded to cents.
	assert.Equal(t, 1380.82, report.Staff[0].PeriodCost)
	assert.Equal(t, 1380.82, report.TotalLabourCost)
	assert.Equal(t, 13.8, report.LabourCostPercent)
	assert.False(t, report.Staff[0].HasOvertime)
	assert.Equal(t, 0.0, report.Staff[0].AvgHoursPerDay)
}

func TestCostsHourlyStaffUseShiftTotals(t *testing.T) {
	repo := &mockRepo{
		members: []MemberAggregate{
			{Name: "Barista", Role: "Barista", PayType: "Hourly", HourlyRate: 26,
				TotalHours: 38.5, OvertimeHours: 2.5, ShiftCost: 1033.5, DaysWorked: 5},
			{Name: "Chef", Role: "Chef", PayType: "Hourly", HourlyRate: 30,
				TotalHours: 24, ShiftCost: 720, DaysWorked: 3},
		},
		revenue: 8000,
	}
	svc := NewService(repo, nil)

	report, err := svc.Costs(context.Background(), uuid.New(), 7)
	require.NoError(t, err)
	require.Len(t, report.Staff, 2)

	barista := report.Staff[0]
	assert.Equal(t, 1033.5, barista.PeriodCost)
	assert.True(t, barista.HasOvertime)
	assert.Equal(t, 7.7, barista.AvgHoursPerDay)

	chef := report.Staff[1]
	assert.Equal(t, 720.0, chef.PeriodCost)
	assert.False(t, chef.HasOvertime)
	assert.Equal(t, 8.0, chef.AvgHoursPerDay)

	assert.Equal(t, 1753.5, report.TotalLabourCost)
	assert.Equal(t, 2.5, report.TotalOvertimeHours)
	// 1753.5 / 8000 * 100
	assert.Equal(t, 21.9, report.LabourCostPercent)
}

func TestCostsZeroRevenue(t *testing.T) {
	repo := &mockRepo{
		members: []MemberAggregate{
			{Name: "Barista", PayType: "Hourly", ShiftCost: 500, DaysWorked: 2, TotalHours: 16},
		},
	}
	svc := NewService(repo, nil)

	report, err := svc.Costs(context.Background(), uuid.New(), 7)
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.LabourCostPercent)
	assert.Equal(t, 500.0, report.TotalLabourCost)
}

func TestLogShiftCostsOvertimeAtTimeAndAHalf(t *testing.T) {
	repo := &mockRepo{pay: PayRef{PayType: "Hourly", HourlyRate: 26}}
	svc := NewService(repo, nil)
	staffID := uuid.New()

	shift, err := svc.LogShift(context.Background(), uuid.New(), staffID,
		time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC), 8, 2)
	require.NoError(t, err)

	// 8*26 + 2*26*1.5
	assert.Equal(t, 286.0, shift.TotalCost)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), shift.Date)
	require.Len(t, repo.inserted, 1)
}

func TestLogShiftRejectsSalaryStaff(t *testing.T) {
	repo := &mockRepo{pay: PayRef{PayType: "Salary"}}
	svc := NewService(repo, nil)

	_, err := svc.LogShift(context.Background(), uuid.New(), uuid.New(),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), 8, 0)
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Empty(t, repo.inserted)
}

func TestLogShiftUnknownMember(t *testing.T) {
	repo := &mockRepo{payErr: shared.ErrNotFound}
	svc := NewService(repo, nil)

	_, err := svc.LogShift(context.Background(), uuid.New(), uuid.New(),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), 8, 0)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
