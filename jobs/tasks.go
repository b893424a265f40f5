package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportsWarmup refreshes the monthly report cache.
	TaskReportsWarmup = "reports:warmup"
)

// ReportsWarmupPayload parameterises a warmup run.
type ReportsWarmupPayload struct {
	Reason string `json:"reason,omitempty"`
}

// NewReportsWarmupTask constructs an Asynq task.
func NewReportsWarmupTask(payload ReportsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsWarmup, data), nil
}
