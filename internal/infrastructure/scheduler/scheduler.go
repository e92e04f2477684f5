package scheduler

import (
	"context"
	"time"

	"parksync-service/pkg/logger"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Every runs job on a fixed interval until ctx is cancelled. Errors are
// logged and the ticker keeps going; a panicking job is recovered so one
// bad pass never takes the scheduler down. When runAtStart is set the job
// fires once immediately instead of waiting a full interval.
func Every(ctx context.Context, log logger.Logger, name string, interval time.Duration, runAtStart bool, job Job) {
	go func() {
		run := func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error("Scheduled job panicked", "job", name, "panic", r)
				}
			}()
			start := time.Now()
			if err := job(ctx); err != nil {
				log.Error("Scheduled job failed", "job", name, "error", err.Error())
				return
			}
			log.Debug("Scheduled job completed", "job", name, "duration", time.Since(start).String())
		}

		if runAtStart {
			run()
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Scheduler stopped", "job", name)
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
