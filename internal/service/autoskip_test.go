package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"challenge-monitor/internal/model"
)

func TestReconcile_SkipsUnloggedDay(t *testing.T) {
	st := newFakeStore()
	lc := newTestLifecycle(st)
	as := NewAutoSkip(st, lc)
	ctx := context.Background()

	ch, err := lc.Create(ctx, model.CreateChallengeRequest{
		Title: "meditate", StartDate: "2024-02-01", EndDate: "2024-02-05",
	})
	require.NoError(t, err)

	// Nothing actionable for 2024-02-02 (the pre-seeded PENDING
	// marker does not count).
	ids, err := as.Reconcile(ctx, "2024-02-02")
	require.NoError(t, err)
	assert.Equal(t, []int64{ch.ID}, ids)
	assert.Equal(t, 1, st.countEvents(ch.ID, "2024-02-02", model.StatusSkipped))

	got, err := lc.Get(ctx, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.DaysLogged)

	// Idempotent: the first run's SKIPPED event is itself
	// actionable on the second run.
	ids, err = as.Reconcile(ctx, "2024-02-02")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, 1, st.countEvents(ch.ID, "2024-02-02", model.StatusSkipped))
}

func TestReconcile_ManualLogIsActionable(t *testing.T) {
	st := newFakeStore()
	lc := newTestLifecycle(st)
	as := NewAutoSkip(st, lc)
	ctx := context.Background()

	ch, err := lc.Create(ctx, model.CreateChallengeRequest{
		Title: "meditate", StartDate: "2024-02-01", EndDate: "2024-02-05",
	})
	require.NoError(t, err)
	require.NoError(t, lc.LogDay(ctx, ch.ID, "2024-02-02", model.StatusNotFollowed, ""))

	ids, err := as.Reconcile(ctx, "2024-02-02")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, 0, st.countEvents(ch.ID, "2024-02-02", model.StatusSkipped))
}

func TestReconcile_SameDayCreateNotSkipped(t *testing.T) {
	st := newFakeStore()
	lc := newTestLifecycle(st)
	as := NewAutoSkip(st, lc)
	ctx := context.Background()

	// Created "today" (2024-02-03): the CREATED audit entry counts
	// as acted-upon for that date.
	ch, err := lc.Create(ctx, model.CreateChallengeRequest{
		Title: "fresh", StartDate: "2024-02-01", EndDate: "2024-02-05",
	})
	require.NoError(t, err)

	ids, err := as.Reconcile(ctx, "2024-02-03")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, 0, st.countEvents(ch.ID, "2024-02-03", model.StatusSkipped))
}

func TestReconcile_IgnoresChallengesOutsideRange(t *testing.T) {
	st := newFakeStore()
	lc := newTestLifecycle(st)
	as := NewAutoSkip(st, lc)
	ctx := context.Background()

	_, err := lc.Create(ctx, model.CreateChallengeRequest{
		Title: "future", StartDate: "2024-03-01", EndDate: "2024-03-05",
	})
	require.NoError(t, err)

	ids, err := as.Reconcile(ctx, "2024-02-02")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestReconcile_IgnoresInactiveChallenges(t *testing.T) {
	st := newFakeStore()
	lc := newTestLifecycle(st)
	as := NewAutoSkip(st, lc)
	ctx := context.Background()

	ch, err := lc.Create(ctx, model.CreateChallengeRequest{
		Title: "done", StartDate: "2024-02-01", EndDate: "2024-02-02",
	})
	require.NoError(t, err)
	require.NoError(t, lc.LogDay(ctx, ch.ID, "2024-02-01", model.StatusFollowed, ""))
	require.NoError(t, lc.LogDay(ctx, ch.ID, "2024-02-02", model.StatusFollowed, ""))

	got, err := lc.Get(ctx, ch.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	ids, err := as.Reconcile(ctx, "2024-02-02")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestReconcile_FailureDoesNotAbortBatch(t *testing.T) {
	st := newFakeStore()
	lc := newTestLifecycle(st)
	as := NewAutoSkip(st, lc)
	ctx := context.Background()

	broken, err := lc.Create(ctx, model.CreateChallengeRequest{
		Title: "broken", StartDate: "2024-02-01", EndDate: "2024-02-05",
	})
	require.NoError(t, err)
	healthy, err := lc.Create(ctx, model.CreateChallengeRequest{
		Title: "healthy", StartDate: "2024-02-01", EndDate: "2024-02-05",
	})
	require.NoError(t, err)

	st.failAppendFor[broken.ID] = true

	ids, err := as.Reconcile(ctx, "2024-02-02")
	require.NoError(t, err)
	assert.Equal(t, []int64{healthy.ID}, ids)

	// The failed challenge stays eligible for the next run.
	st.failAppendFor[broken.ID] = false
	ids, err = as.Reconcile(ctx, "2024-02-02")
	require.NoError(t, err)
	assert.Equal(t, []int64{broken.ID}, ids)
}

func TestReconcile_BadTargetDate(t *testing.T) {
	st := newFakeStore()
	as := NewAutoSkip(st, newTestLifecycle(st))

	_, err := as.Reconcile(context.Background(), "02.03.2024")
	assert.ErrorIs(t, err, model.ErrMalformedEvent)
}

func TestReconcile_CancelMidBatch(t *testing.T) {
	st := newFakeStore()
	lc := newTestLifecycle(st)
	as := NewAutoSkip(st, lc)

	_, err := lc.Create(context.Background(), model.CreateChallengeRequest{
		Title: "meditate", StartDate: "2024-02-01", EndDate: "2024-02-05",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ids, err := as.Reconcile(ctx, "2024-02-02")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ids)
}

func TestTargetDate_CutoffBoundary(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		cutoff int
		want   string
	}{
		{"before cutoff settles yesterday", time.Date(2024, 2, 3, 2, 59, 0, 0, time.UTC), 3, "2024-02-02"},
		{"at cutoff settles today", time.Date(2024, 2, 3, 3, 0, 0, 0, time.UTC), 3, "2024-02-03"},
		{"evening settles today", time.Date(2024, 2, 3, 23, 30, 0, 0, time.UTC), 3, "2024-02-03"},
		{"zero cutoff always today", time.Date(2024, 2, 3, 0, 0, 1, 0, time.UTC), 0, "2024-02-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetDate(tt.now, tt.cutoff))
		})
	}
}
