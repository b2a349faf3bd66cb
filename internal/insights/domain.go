package insights

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies what an insight is about.
type Category string

// Priority ranks how urgently an insight should be acted on.
type Priority string

// Status tracks what the owner has done with an insight.
type Status string

const (
	CategoryMenu        Category = "Menu"
	CategoryStaff       Category = "Staff"
	CategoryRevenue     Category = "Revenue"
	CategoryCost        Category = "Cost"
	CategoryOpportunity Category = "Opportunity"
	CategoryWarning     Category = "Warning"

	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"

	StatusNew       Status = "New"
	StatusActioned  Status = "Actioned"
	StatusDismissed Status = "Dismissed"
)

// ParseCategory matches case-insensitively and falls back to Revenue on
// unrecognised values rather than rejecting the whole reply.
func ParseCategory(s string) Category {
	for _, c := range []Category{CategoryMenu, CategoryStaff, CategoryRevenue,
		CategoryCost, CategoryOpportunity, CategoryWarning} {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return CategoryRevenue
}

// ParsePriority matches case-insensitively and falls back to Medium.
func ParsePriority(s string) Priority {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical} {
		if strings.EqualFold(s, string(p)) {
			return p
		}
	}
	return PriorityMedium
}

// ParseStatus matches case-insensitively. Unlike category and priority,
// status comes from API callers, so unknown values are an error.
func ParseStatus(s string) (Status, bool) {
	for _, st := range []Status{StatusNew, StatusActioned, StatusDismissed} {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Insight is one stored AI-generated recommendation.
type Insight struct {
	ID                uuid.UUID `json:"id"`
	CafeID            uuid.UUID `json:"-"`
	Title             string    `json:"title"`
	Summary           string    `json:"summary"`
	DetailedAnalysis  string    `json:"detailedAnalysis"`
	RecommendedAction string    `json:"recommendedAction"`
	Category          Category  `json:"category"`
	Priority          Priority  `json:"priority"`
	PotentialImpact   *float64  `json:"potentialImpact"`
	Status            Status    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Brief is one stored weekly narrative, at most one per cafe per week.
type Brief struct {
	ID              uuid.UUID `json:"id"`
	CafeID          uuid.UUID `json:"-"`
	WeekStarting    time.Time `json:"weekStarting"`
	Summary         string    `json:"summary"`
	Highlights      string    `json:"highlights"`
	Concerns        string    `json:"concerns"`
	Recommendations string    `json:"recommendations"`
	CreatedAt       time.Time `json:"createdAt"`
}
