package service

import (
	"context"
	"time"

	"challenge-monitor/internal/logger"
	"challenge-monitor/internal/model"
)

// TargetDate picks the day a reconciliation run settles. A run
// before the cutoff hour belongs to yesterday: the job that fires
// shortly after midnight is closing out the day that just ended.
func TargetDate(now time.Time, cutoffHour int) string {
	if now.Hour() < cutoffHour {
		now = now.AddDate(0, 0, -1)
	}
	return model.FormatDay(now)
}

// Scheduler triggers reconciliation once per day boundary. It only
// decides when to run and for which date; all skip semantics live
// in AutoSkip.
type Scheduler struct {
	autoSkip   *AutoSkip
	cutoffHour int
	interval   time.Duration
	now        func() time.Time
	lastDone   string
}

func NewScheduler(a *AutoSkip, cutoffHour int) *Scheduler {
	return &Scheduler{
		autoSkip:   a,
		cutoffHour: cutoffHour,
		interval:   time.Hour,
		now:        time.Now,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	target := TargetDate(s.now(), s.cutoffHour)
	if target == s.lastDone {
		return
	}
	if _, err := s.autoSkip.Reconcile(ctx, target); err != nil {
		// Reconcile is idempotent, so retrying on the next tick
		// cannot double-skip.
		logger.Error("autoskip.run_failed", "date", target, "err", err)
		return
	}
	s.lastDone = target
}
