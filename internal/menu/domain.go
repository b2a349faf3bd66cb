package menu

import (
	"time"

	"github.com/google/uuid"
)

// ItemAggregate is one active menu item with its sales totals over a
// lookback window, as read from storage. Revenue and TotalCost are
// unrounded.
type ItemAggregate struct {
	ID         uuid.UUID
	Name       string
	Category   string
	Price      float64
	CostToMake float64
	TotalSold  int
	Revenue    float64
	TotalCost  float64
}

// ItemPerformance is the per-item payload entry.
type ItemPerformance struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	CostToMake    float64   `json:"costToMake"`
	MarginPercent float64   `json:"marginPercent"`
	TotalSold     int       `json:"totalSold"`
	Revenue       float64   `json:"revenue"`
	Profit        float64   `json:"profit"`
	RevenueShare  float64   `json:"revenueShare"`
}

// PerformanceReport is the full menu performance payload.
type PerformanceReport struct {
	Items         []ItemPerformance `json:"items"`
	TotalRevenue  float64           `json:"totalRevenue"`
	AverageMargin float64           `json:"averageMargin"`
	BestPerformer string            `json:"bestPerformer"`
	WorstMargin   string            `json:"worstMargin"`
	Days          int               `json:"days"`
}

// Sale is one day's sold quantity for a menu item.
type Sale struct {
	ID           uuid.UUID
	MenuItemID   uuid.UUID
	Date         time.Time
	QuantitySold int
}
