package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskWeeklyBriefRegen regenerates the weekly brief for every cafe.
	TaskWeeklyBriefRegen = "insights:brief:regen"
	// TaskReportCacheWarmup pre-populates report caches for every cafe.
	TaskReportCacheWarmup = "reports:cache:warmup"
)

// WeeklyBriefRegenPayload scopes a brief regeneration run.
type WeeklyBriefRegenPayload struct {
	Scope string `json:"scope"`
}

// ReportCacheWarmupPayload scopes a cache warmup run.
type ReportCacheWarmupPayload struct {
	Days int `json:"days"`
}

// NewWeeklyBriefRegenTask constructs a brief regeneration task.
func NewWeeklyBriefRegenTask(scope string) (*asynq.Task, error) {
	data, err := json.Marshal(WeeklyBriefRegenPayload{Scope: scope})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWeeklyBriefRegen, data), nil
}

// NewReportCacheWarmupTask constructs a cache warmup task.
func NewReportCacheWarmupTask(days int) (*asynq.Task, error) {
	data, err := json.Marshal(ReportCacheWarmupPayload{Days: days})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportCacheWarmup, data), nil
}
