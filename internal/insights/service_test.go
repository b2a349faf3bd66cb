package insights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitpulse/profitpulse/internal/dashboard"
	"github.com/profitpulse/profitpulse/internal/menu"
	"github.com/profitpulse/profitpulse/internal/shared"
	"github.com/profitpulse/profitpulse/internal/staff"
)

type mockRepo struct {
	inserted []Insight
	briefs   map[string]Brief
	listed   []Insight
	status   Status
	findErr  error
	updated  *Status
}

func newMockRepo() *mockRepo {
	return &mockRepo{briefs: map[string]Brief{}}
}

func (m *mockRepo) InsertInsights(ctx context.Context, list []Insight) error {
	m.inserted = append(m.inserted, list...)
	return nil
}

func (m *mockRepo) ListInsights(ctx context.Context, cafeID uuid.UUID, status *Status, limit int) ([]Insight, error) {
	return m.listed, nil
}

func (m *mockRepo) FindInsightStatus(ctx context.Context, cafeID, id uuid.UUID) (Status, error) {
	if m.findErr != nil {
		return "", m.findErr
	}
	return m.status, nil
}

func (m *mockRepo) UpdateInsightStatus(ctx context.Context, cafeID, id uuid.UUID, status Status) error {
	m.updated = &status
	return nil
}

func (m *mockRepo) ReplaceBrief(ctx context.Context, brief Brief) error {
	key := fmt.Sprintf("%s:%s", brief.CafeID, brief.WeekStarting.Format("2006-01-02"))
	m.briefs[key] = brief
	return nil
}

type mockProvider struct {
	reply   string
	err     error
	prompts []string
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Generate(ctx context.Context, system, user string) (string, error) {
	m.prompts = append(m.prompts, user)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

type mockSources struct{}

func (mockSources) Report(ctx context.Context, cafeID uuid.UUID) (dashboard.Report, error) {
	return dashboard.Report{
		Metrics: dashboard.Metrics{WeekRevenue: 12345.5, FoodCostPercent: 33.5},
		Trends:  dashboard.Trends{RevenueVsLastWeek: 12.0},
		Alerts: []dashboard.Alert{
			{Type: "revenue_up", Message: "Revenue up 12.0% vs last week — great work!", Severity: "success"},
		},
	}, nil
}

func (mockSources) Performance(ctx context.Context, cafeID uuid.UUID, days int) (menu.PerformanceReport, error) {
	return menu.PerformanceReport{
		Items: []menu.ItemPerformance{
			{Name: "Flat White", Revenue: 660, MarginPercent: 78.2, TotalSold: 120},
			{Name: "Muffin", Revenue: 10, MarginPercent: 10, TotalSold: 2},
			{Name: "Unsold Pie", MarginPercent: 5},
		},
		TotalRevenue:  670,
		BestPerformer: "Flat White",
		WorstMargin:   "Muffin",
		Days:          days,
	}, nil
}

func (mockSources) Costs(ctx context.Context, cafeID uuid.UUID, days int) (staff.CostReport, error) {
	return staff.CostReport{
		Staff: []staff.MemberCost{
			{Name: "Jess", Role: "Barista", OvertimeHours: 2.5, HasOvertime: true},
			{Name: "Sam", Role: "Chef"},
		},
		TotalOvertimeHours: 2.5,
		Days:               days,
	}, nil
}

func newTestService(repo *mockRepo, provider *mockProvider) *Service {
	logger := slog.New(slog.DiscardHandler)
	return NewService(repo, provider, mockSources{}, mockSources{}, mockSources{}, nil, logger)
}

const insightJSON = `[{
	"title": "Trim muffin costs",
	"summary": "Muffin margin is far below target",
	"detailedAnalysis": "Analysis text",
	"recommendedAction": "Renegotiate with the supplier",
	"category": "Cost",
	"priority": "High",
	"potentialImpact": 250.00
}]`

func TestGenerateInsightsPersistsBatch(t *testing.T) {
	repo := newMockRepo()
	provider := &mockProvider{reply: "```json\n" + insightJSON + "\n```"}
	svc := newTestService(repo, provider)
	cafeID := uuid.New()

	batch, err := svc.GenerateInsights(context.Background(), cafeID)
	require.NoError(t, err)
	require.Len(t, batch, 1)

	in := batch[0]
	assert.Equal(t, cafeID, in.CafeID)
	assert.Equal(t, "Trim muffin costs", in.Title)
	assert.Equal(t, CategoryCost, in.Category)
	assert.Equal(t, PriorityHigh, in.Priority)
	assert.Equal(t, StatusNew, in.Status)
	require.Len(t, repo.inserted, 1)

	// The prompt carries the gathered figures.
	require.Len(t, provider.prompts, 1)
	prompt := provider.prompts[0]
	assert.Contains(t, prompt, "Week Revenue: $12,345.50")
	assert.Contains(t, prompt, "Revenue vs Last Week: +12%")
	assert.Contains(t, prompt, "Best Performer: Flat White")
	assert.Contains(t, prompt, "Jess (Barista): 2.5h overtime")
	assert.Contains(t, prompt, "[success] Revenue up 12.0% vs last week")
	// Unsold items stay out of the bottom-margin ranking.
	assert.NotContains(t, prompt, "Unsold Pie: 5% margin")
}

func TestGenerateInsightsEmptyArrayNoPersist(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockProvider{reply: "[]"})

	batch, err := svc.GenerateInsights(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, batch)
	assert.Empty(t, repo.inserted)
}

func TestGenerateInsightsProviderFailureNoPersist(t *testing.T) {
	repo := newMockRepo()
	provider := &mockProvider{err: fmt.Errorf("%w: status 503", shared.ErrProvider)}
	svc := newTestService(repo, provider)

	_, err := svc.GenerateInsights(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrProvider)
	assert.Empty(t, repo.inserted)
}

func TestGenerateInsightsUnparseableReply(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockProvider{reply: "I think you should sell more coffee."})

	_, err := svc.GenerateInsights(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrBadReply)
	assert.Empty(t, repo.inserted)
}

const briefJSON = `{"summary":"%s","highlights":"• h","concerns":"• c","recommendations":"• r"}`

func TestGenerateBriefReplacesSameWeek(t *testing.T) {
	repo := newMockRepo()
	provider := &mockProvider{reply: fmt.Sprintf(briefJSON, "first")}
	svc := newTestService(repo, provider)
	svc.WithNow(func() time.Time { return time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC) })
	cafeID := uuid.New()

	first, err := svc.GenerateBrief(context.Background(), cafeID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), first.WeekStarting)

	provider.reply = fmt.Sprintf(briefJSON, "second")
	second, err := svc.GenerateBrief(context.Background(), cafeID)
	require.NoError(t, err)

	// Same week key, so exactly one brief survives with the new content.
	require.Len(t, repo.briefs, 1)
	stored := repo.briefs[fmt.Sprintf("%s:2024-06-10", cafeID)]
	assert.Equal(t, "second", stored.Summary)
	assert.Equal(t, second.ID, stored.ID)
	assert.NotEqual(t, first.ID, stored.ID)
}

func TestGenerateBriefNullReply(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockProvider{reply: "null"})

	_, err := svc.GenerateBrief(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrBadReply)
	assert.Empty(t, repo.briefs)
}

func TestGenerateBriefContextBlock(t *testing.T) {
	repo := newMockRepo()
	provider := &mockProvider{reply: fmt.Sprintf(briefJSON, "ok")}
	svc := newTestService(repo, provider)

	_, err := svc.GenerateBrief(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, provider.prompts, 1)

	prompt := provider.prompts[0]
	assert.Contains(t, prompt, "Worst Margin: Muffin (10%)")
	assert.Contains(t, prompt, "Overtime Hours: 2.5h")
	assert.True(t, strings.Contains(prompt, "Alerts: Revenue up 12.0% vs last week"))
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		next    Status
		wantErr error
		applied bool
	}{
		{"new to actioned", StatusNew, StatusActioned, nil, true},
		{"new to dismissed", StatusNew, StatusDismissed, nil, true},
		{"same status no-op", StatusActioned, StatusActioned, nil, false},
		{"actioned to dismissed", StatusActioned, StatusDismissed, shared.ErrValidation, false},
		{"dismissed back to new", StatusDismissed, StatusNew, shared.ErrValidation, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMockRepo()
			repo.status = tc.current
			svc := newTestService(repo, &mockProvider{})

			err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), tc.next)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if tc.applied {
				require.NotNil(t, repo.updated)
				assert.Equal(t, tc.next, *repo.updated)
			} else {
				assert.Nil(t, repo.updated)
			}
		})
	}
}

func TestUpdateStatusUnknownInsight(t *testing.T) {
	repo := newMockRepo()
	repo.findErr = shared.ErrNotFound
	svc := newTestService(repo, &mockProvider{})

	err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), StatusActioned)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGenerateInsightsCancelledContext(t *testing.T) {
	repo := newMockRepo()
	provider := &mockProvider{err: errors.Join(shared.ErrProvider, context.Canceled)}
	svc := newTestService(repo, provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GenerateInsights(ctx, uuid.New())
	assert.Error(t, err)
	assert.Empty(t, repo.inserted)
}
