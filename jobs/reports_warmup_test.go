package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
)

type fakeWarmer struct {
	calls int
	err   error
}

func (f *fakeWarmer) WarmMonthly(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestReportsWarmupHandle(t *testing.T) {
	warmer := &fakeWarmer{}
	job := NewReportsWarmupJob(warmer, nil)

	task, err := NewReportsWarmupTask(ReportsWarmupPayload{Reason: "test"})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if warmer.calls != 1 {
		t.Fatalf("warm calls = %d, want 1", warmer.calls)
	}
}

func TestReportsWarmupPropagatesFailure(t *testing.T) {
	boom := errors.New("redis down")
	job := NewReportsWarmupJob(&fakeWarmer{err: boom}, nil)

	task, err := NewReportsWarmupTask(ReportsWarmupPayload{})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := job.Handle(context.Background(), task); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want warmer failure", err)
	}
}

func TestReportsWarmupSkipsRetryOnBadPayload(t *testing.T) {
	job := NewReportsWarmupJob(&fakeWarmer{}, nil)
	task := asynq.NewTask(TaskReportsWarmup, []byte("{not json"))

	if err := job.Handle(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("err = %v, want SkipRetry", err)
	}
}
