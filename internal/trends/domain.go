package trends

import "time"

// DailyPoint is one stored day of figures prepared for charting.
type DailyPoint struct {
	Date              time.Time `json:"date"`
	Revenue           float64   `json:"revenue"`
	FoodCostPercent   float64   `json:"foodCostPercent"`
	LabourCostPercent float64   `json:"labourCostPercent"`
	NetProfit         float64   `json:"netProfit"`
	Customers         int       `json:"customers"`
	Transactions      int       `json:"transactions"`
}

// WeeklyPoint rolls a week of daily points up under its Monday.
type WeeklyPoint struct {
	WeekStart            time.Time `json:"weekStart"`
	Revenue              float64   `json:"revenue"`
	AvgFoodCostPercent   float64   `json:"avgFoodCostPercent"`
	AvgLabourCostPercent float64   `json:"avgLabourCostPercent"`
	NetProfit            float64   `json:"netProfit"`
	Customers            int       `json:"customers"`
	DaysInWeek           int       `json:"daysInWeek"`
}

// Report is the full trends payload.
type Report struct {
	Daily                []DailyPoint  `json:"daily"`
	Weekly               []WeeklyPoint `json:"weekly"`
	AvgDailyRevenue      float64       `json:"avgDailyRevenue"`
	AvgFoodCostPercent   float64       `json:"avgFoodCostPercent"`
	AvgLabourCostPercent float64       `json:"avgLabourCostPercent"`
	Days                 int           `json:"days"`
}

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
