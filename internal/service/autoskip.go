package service

import (
	"context"
	"fmt"

	"challenge-monitor/internal/logger"
	"challenge-monitor/internal/model"
	"challenge-monitor/internal/store"
)

// AutoSkip backfills days no one logged. For each active challenge
// whose range contains the target date, it appends a synthetic
// SKIPPED event unless some actionable event already exists for
// that date. The appended SKIPPED is itself actionable, which is
// what makes a second run for the same date a no-op.
type AutoSkip struct {
	store     store.Store
	lifecycle *Lifecycle
}

func NewAutoSkip(st store.Store, lc *Lifecycle) *AutoSkip {
	return &AutoSkip{store: st, lifecycle: lc}
}

// Reconcile processes challenges independently: one failing
// challenge is logged and skipped so the rest of the batch still
// runs, and the next scheduled run retries it. Aborting mid-batch
// via ctx leaves already-processed challenges consistent.
func (a *AutoSkip) Reconcile(ctx context.Context, targetDate string) ([]int64, error) {
	if _, err := model.ParseDay(targetDate); err != nil {
		return nil, fmt.Errorf("%w: bad target date %q", model.ErrMalformedEvent, targetDate)
	}

	challenges, err := a.store.ActiveChallengesInRange(ctx, targetDate)
	if err != nil {
		return nil, err
	}

	skipped := make([]int64, 0)
	for _, ch := range challenges {
		if err := ctx.Err(); err != nil {
			return skipped, err
		}
		did, err := a.reconcileOne(ctx, ch.ID, targetDate)
		if did {
			skipped = append(skipped, ch.ID)
		}
		if err != nil {
			logger.Error("autoskip.challenge_failed", "id", ch.ID, "date", targetDate, "err", err)
		}
	}
	logger.Info("autoskip.reconciled", "date", targetDate, "checked", len(challenges), "skipped", len(skipped))
	return skipped, nil
}

func (a *AutoSkip) reconcileOne(ctx context.Context, id int64, date string) (bool, error) {
	unlock := a.lifecycle.locks.lock(id)
	defer unlock()

	events, err := a.store.EventsForChallengeOnDate(ctx, id, date)
	if err != nil {
		return false, err
	}
	for _, e := range events {
		if e.Status.Actionable() {
			return false, nil
		}
	}

	_, err = a.store.AppendEvent(ctx, &model.DailyLogEvent{
		ChallengeID: id,
		LogDate:     date,
		Status:      model.StatusSkipped,
		Notes:       "Automatically skipped",
	})
	if err != nil {
		return false, err
	}
	return true, a.lifecycle.recompute(ctx, id)
}
