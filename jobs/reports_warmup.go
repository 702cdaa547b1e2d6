package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/tillbook/tillbook/internal/reports"
)

// ReportsWarmupJob precomputes recent daily totals so the first report
// view of the day hits a warm cache.
type ReportsWarmupJob struct {
	service *reports.Service
	logger  *slog.Logger
}

// NewReportsWarmupJob constructs the job.
func NewReportsWarmupJob(service *reports.Service, logger *slog.Logger) *ReportsWarmupJob {
	return &ReportsWarmupJob{service: service, logger: logger}
}

// Handle processes TaskReportsWarmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ReportsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	days := payload.Days
	if days <= 0 {
		days = 1
	}

	now := time.Now()
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -i)
		if err := j.service.WarmDailyTotal(ctx, day); err != nil {
			j.logger.Warn("daily total warmup failed", "date", day.Format("2006-01-02"), "error", err)
			continue
		}
	}
	j.logger.Info("report cache warmed", "days", days)
	return nil
}
