package summaries

import (
	"time"

	"github.com/google/uuid"
)

// DailySummary is one day of cafe-level takings and costs.
type DailySummary struct {
	ID               uuid.UUID `json:"id"`
	Date             time.Time `json:"date"`
	TotalRevenue     float64   `json:"totalRevenue"`
	FoodCost         float64   `json:"foodCost"`
	LabourCost       float64   `json:"labourCost"`
	OtherCosts       float64   `json:"otherCosts"`
	CustomerCount    int       `json:"customerCount"`
	TransactionCount int       `json:"transactionCount"`
}
