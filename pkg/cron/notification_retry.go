// pkg/cron/notification_retry.go

package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Retrier re-sends queued notifications.
type Retrier interface {
	RetryPending(ctx context.Context) (sent, dropped int)
}

// InitNotificationRetryCron schedules the outbox retry. An empty schedule
// disables it and returns nil. Runs never overlap; a slow run makes the next
// tick skip.
func InitNotificationRetryCron(schedule string, retrier Retrier, timeout time.Duration) (*cron.Cron, error) {
	if schedule == "" {
		log.Printf("Notification retry cron disabled")
		return nil, nil
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(log.Default())),
		cron.SkipIfStillRunning(cron.PrintfLogger(log.Default())),
	))

	_, err := c.AddFunc(schedule, func() {
		retryNotifications(retrier, timeout)
	})
	if err != nil {
		log.Printf("Could not initialize notification retry cron: %v", err)
		return nil, err
	}

	c.Start()
	log.Printf("Notification retry cron initialized successfully (%s)", schedule)
	return c, nil
}

func retryNotifications(retrier Retrier, timeout time.Duration) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sent, dropped := retrier.RetryPending(ctx)
	if sent > 0 || dropped > 0 {
		log.Printf("Notification retry: %d delivered, %d given up", sent, dropped)
	}
}

// Stop waits for a running job to finish or ctx to end.
func Stop(ctx context.Context, c *cron.Cron) {
	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
		log.Printf("Notification retry cron did not stop in time: %v", ctx.Err())
	}
}
