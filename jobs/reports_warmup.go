package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// MonthlyWarmer is the slice of the reports service the warmup job needs.
type MonthlyWarmer interface {
	WarmMonthly(ctx context.Context) error
}

// ReportsWarmupJob pre-populates the versioned monthly report cache so the
// first dashboard load after an invalidation finds it warm.
type ReportsWarmupJob struct {
	Reports MonthlyWarmer
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewReportsWarmupJob wires dependencies for the warmup handler.
func NewReportsWarmupJob(reportsSvc MonthlyWarmer, logger *slog.Logger) *ReportsWarmupJob {
	return &ReportsWarmupJob{
		Reports: reportsSvc,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes reports warmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("reports warmup: handler not configured")
	}
	var payload ReportsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger().With(slog.String("reason", payload.Reason))
	logger.Info("starting reports warmup")

	start := j.clock()
	if err := j.Reports.WarmMonthly(ctx); err != nil {
		logger.Error("warm monthly cache", slog.Any("error", err))
		return err
	}
	logger.Info("reports warmup finished", slog.Duration("took", j.clock().Sub(start)))
	return nil
}

func (j *ReportsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
