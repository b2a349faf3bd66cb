package dashboard

import "time"

// Summary is one stored day of cafe-level figures.
type Summary struct {
	Date             time.Time
	TotalRevenue     float64
	FoodCost         float64
	LabourCost       float64
	OtherCosts       float64
	CustomerCount    int
	TransactionCount int
}

// Metrics are the headline dashboard figures for the current periods.
type Metrics struct {
	TodayRevenue        float64 `json:"todayRevenue"`
	WeekRevenue         float64 `json:"weekRevenue"`
	MonthRevenue        float64 `json:"monthRevenue"`
	FoodCostPercent     float64 `json:"foodCostPercent"`
	LabourCostPercent   float64 `json:"labourCostPercent"`
	NetProfitMargin     float64 `json:"netProfitMargin"`
	TodayCustomers      int     `json:"todayCustomers"`
	AvgTransactionValue float64 `json:"avgTransactionValue"`
}

// Trends are week-over-week movements. Revenue and customers are relative
// percentages; the two cost figures are percentage-point differences.
type Trends struct {
	RevenueVsLastWeek    float64 `json:"revenueVsLastWeek"`
	FoodCostVsLastWeek   float64 `json:"foodCostVsLastWeek"`
	LabourCostVsLastWeek float64 `json:"labourCostVsLastWeek"`
	CustomersVsLastWeek  float64 `json:"customersVsLastWeek"`
}

// Alert is a rule-generated attention flag.
type Alert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Report is the full dashboard payload.
type Report struct {
	Metrics Metrics `json:"metrics"`
	Trends  Trends  `json:"trends"`
	Alerts  []Alert `json:"alerts"`
}

// Brief is the stored weekly narrative summary.
type Brief struct {
	Summary         string    `json:"summary"`
	Highlights      string    `json:"highlights"`
	Concerns        string    `json:"concerns"`
	Recommendations string    `json:"recommendations"`
	WeekStarting    time.Time `json:"weekStarting"`
}
