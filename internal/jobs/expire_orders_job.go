// Package jobs runs background maintenance for the local checkout backend.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// OrderExpirer is implemented by repositories.OrderRepository.
type OrderExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// ExpireOrdersJob flips pending orders past their hold to expired so the
// finish page and the retry call agree on the stored status.
type ExpireOrdersJob struct {
	orders   OrderExpirer
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	now      func() time.Time
}

func NewExpireOrdersJob(orders OrderExpirer, schedule string) *ExpireOrdersJob {
	if schedule == "" {
		schedule = "@every 1m"
	}
	return &ExpireOrdersJob{
		orders:   orders,
		schedule: schedule,
		timeout:  30 * time.Second,
		cron:     cron.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (j *ExpireOrdersJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.RunOnce); err != nil {
		return fmt.Errorf("schedule expire orders job %q: %w", j.schedule, err)
	}
	j.cron.Start()
	log.Printf("[JOBS] expire orders job started schedule=%s", j.schedule)
	return nil
}

// RunOnce performs a single sweep.
func (j *ExpireOrdersJob) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	n, err := j.orders.ExpireStale(ctx, j.now())
	if err != nil {
		log.Printf("[JOBS] expire orders failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[JOBS] expired %d pending orders", n)
	}
}

// Stop waits for a running sweep to finish.
func (j *ExpireOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	log.Println("[JOBS] expire orders job stopped")
}
