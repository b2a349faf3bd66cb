package staff

import (
	"time"

	"github.com/google/uuid"
)

// MemberAggregate is one active staff member with shift totals over a
// lookback window, as read from storage.
type MemberAggregate struct {
	ID            uuid.UUID
	Name          string
	Role          string
	PayType       string
	HourlyRate    float64
	AnnualSalary  *float64
	TotalHours    float64
	OvertimeHours float64
	ShiftCost     float64
	DaysWorked    int
}

// MemberCost is the per-member payload entry.
type MemberCost struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	PayType        string    `json:"payType"`
	HourlyRate     float64   `json:"hourlyRate"`
	TotalHours     float64   `json:"totalHours"`
	OvertimeHours  float64   `json:"overtimeHours"`
	DaysWorked     int       `json:"daysWorked"`
	PeriodCost     float64   `json:"periodCost"`
	HasOvertime    bool      `json:"hasOvertime"`
	AvgHoursPerDay float64   `json:"avgHoursPerDay"`
}

// CostReport is the full staff cost payload.
type CostReport struct {
	Staff              []MemberCost `json:"staff"`
	TotalLabourCost    float64      `json:"totalLabourCost"`
	LabourCostPercent  float64      `json:"labourCostPercent"`
	TotalOvertimeHours float64      `json:"totalOvertimeHours"`
	TotalRevenue       float64      `json:"totalRevenue"`
	Days               int          `json:"days"`
}

// Shift is one logged working day for an hourly staff member. TotalCost
// is fixed when the shift is recorded.
type Shift struct {
	ID            uuid.UUID
	StaffMemberID uuid.UUID
	Date          time.Time
	HoursWorked   float64
	OvertimeHours float64
	TotalCost     float64
}
