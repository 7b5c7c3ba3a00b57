package jobs

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeExpirer struct {
	calls []time.Time
	err   error
}

func (f *fakeExpirer) ExpireStale(_ context.Context, now time.Time) (int64, error) {
	f.calls = append(f.calls, now)
	return int64(len(f.calls)), f.err
}

func TestRunOnceUsesClock(t *testing.T) {
	fe := &fakeExpirer{}
	job := NewExpireOrdersJob(fe, "")
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	job.RunOnce()
	if len(fe.calls) != 1 || !fe.calls[0].Equal(fixed) {
		t.Fatalf("calls = %v", fe.calls)
	}

	fe.err = errors.New("db down")
	job.RunOnce()
	if len(fe.calls) != 2 {
		t.Fatalf("sweep not attempted after error")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	job := NewExpireOrdersJob(&fakeExpirer{}, "every now and then")
	if err := job.Start(); err == nil {
		t.Fatalf("expected schedule error")
	}
}

func TestStartStop(t *testing.T) {
	job := NewExpireOrdersJob(&fakeExpirer{}, "@every 1h")
	if err := job.Start(); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	job.Stop()
}
