package staff

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/profitpulse/profitpulse/internal/metrics"
	"github.com/profitpulse/profitpulse/internal/platform/cache"
	"github.com/profitpulse/profitpulse/internal/shared"
)

// Service builds staff cost reports and records shifts.
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

// Costs reports per-member labour costs over the window ending today.
func (s *Service) Costs(ctx context.Context, cafeID uuid.UUID, days int) (CostReport, error) {
	today := shared.DateOnly(s.now())

	key, err := s.cache.Key(ctx, "reports", "staff", cafeID.String(),
		strconv.Itoa(days), today.Format("2006-01-02"))
	if err != nil {
		return CostReport{}, err
	}
	var report CostReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		return s.build(ctx, cafeID, shared.WindowStart(s.now(), days), days)
	})
	if err != nil {
		return CostReport{}, err
	}
	return report, nil
}

func (s *Service) build(ctx context.Context, cafeID uuid.UUID, since time.Time, days int) (CostReport, error) {
	members, err := s.repo.MemberAggregates(ctx, cafeID, since)
	if err != nil {
		return CostReport{}, err
	}
	revenue, err := s.repo.WindowRevenue(ctx, cafeID, since)
	if err != nil {
		return CostReport{}, err
	}

	breakdown := make([]MemberCost, 0, len(members))
	var totalLabour, totalOvertime float64
	for _, m := range members {
		// Salary staff log no shifts; prorate the annual figure over
		// the window instead.
		periodCost := m.ShiftCost
		if m.PayType == "Salary" && m.AnnualSalary != nil {
			periodCost = metrics.Round2(*m.AnnualSalary / 365 * float64(days))
		}

		avgHours := 0.0
		if m.DaysWorked > 0 {
			avgHours = metrics.Round1(m.TotalHours / float64(m.DaysWorked))
		}
		breakdown = append(breakdown, MemberCost{
			ID:             m.ID,
			Name:           m.Name,
			Role:           m.Role,
			PayType:        m.PayType,
			HourlyRate:     m.HourlyRate,
			TotalHours:     metrics.Round1(m.TotalHours),
			OvertimeHours:  metrics.Round1(m.OvertimeHours),
			DaysWorked:     m.DaysWorked,
			PeriodCost:     periodCost,
			HasOvertime:    m.OvertimeHours > 0,
			AvgHoursPerDay: avgHours,
		})
		totalLabour += periodCost
		totalOvertime += m.OvertimeHours
	}

	return CostReport{
		Staff:              breakdown,
		TotalLabourCost:    metrics.Round2(totalLabour),
		LabourCostPercent:  metrics.PercentOf(totalLabour, revenue),
		TotalOvertimeHours: metrics.Round1(totalOvertime),
		TotalRevenue:       metrics.Round2(revenue),
		Days:               days,
	}, nil
}

// LogShift records a worked day for an hourly member. The cost is fixed
// at write time from the member's current rate, with overtime at 1.5x.
func (s *Service) LogShift(ctx context.Context, cafeID, staffID uuid.UUID, date time.Time, hours, overtime float64) (Shift, error) {
	pay, err := s.repo.FindPay(ctx, cafeID, staffID)
	if err != nil {
		return Shift{}, err
	}
	if pay.PayType != "Hourly" {
		return Shift{}, fmt.Errorf("%w: shifts are only logged for hourly staff", shared.ErrValidation)
	}

	shift := Shift{
		ID:            uuid.New(),
		StaffMemberID: staffID,
		Date:          shared.DateOnly(date),
		HoursWorked:   hours,
		OvertimeHours: overtime,
		TotalCost:     metrics.Round2(hours*pay.HourlyRate + overtime*pay.HourlyRate*1.5),
	}
	if err := s.repo.InsertShift(ctx, shift); err != nil {
		return Shift{}, err
	}
	if err := s.cache.Bump(ctx); err != nil {
		return Shift{}, err
	}
	return shift, nil
}
