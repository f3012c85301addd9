package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"challenge-monitor/internal/engine"
	"challenge-monitor/internal/logger"
	"challenge-monitor/internal/model"
	"challenge-monitor/internal/store"
)

// Lifecycle is the single choke point between event appends and the
// challenge aggregate fields. Every path that writes to the log
// (create, edit, manual log, auto-skip) routes through it, so
// DaysLogged and IsActive are never stale relative to the log.
type Lifecycle struct {
	store store.Store
	locks *challengeLocks
	now   func() time.Time
}

func NewLifecycle(st store.Store) *Lifecycle {
	return &Lifecycle{store: st, locks: newChallengeLocks(), now: time.Now}
}

func (s *Lifecycle) Create(ctx context.Context, req model.CreateChallengeRequest) (model.Challenge, error) {
	start, err := model.ParseDay(req.StartDate)
	if err != nil {
		return model.Challenge{}, fmt.Errorf("%w: bad start date %q", model.ErrMalformedEvent, req.StartDate)
	}
	end, err := model.ParseDay(req.EndDate)
	if err != nil {
		return model.Challenge{}, fmt.Errorf("%w: bad end date %q", model.ErrMalformedEvent, req.EndDate)
	}
	if end.Before(start) {
		return model.Challenge{}, fmt.Errorf("%w: end before start", model.ErrInvalidDateRange)
	}

	ch := model.Challenge{
		Title:        req.Title,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		DurationDays: model.DaysBetween(start, end) + 1,
		IsActive:     true,
	}
	if err := s.store.InsertChallenge(ctx, &ch); err != nil {
		return model.Challenge{}, err
	}

	unlock := s.locks.lock(ch.ID)
	defer unlock()

	today := model.FormatDay(s.now())
	_, err = s.store.AppendEvent(ctx, &model.DailyLogEvent{
		ChallengeID: ch.ID,
		LogDate:     today,
		Status:      model.StatusCreated,
		Notes:       "Challenge Created",
	})
	if err != nil {
		return ch, err
	}

	// Bookkeeping only: one PENDING marker per day in range. These
	// never score; they exist so every day of the challenge shows
	// up in the log from day one.
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		_, err = s.store.AppendEvent(ctx, &model.DailyLogEvent{
			ChallengeID: ch.ID,
			LogDate:     model.FormatDay(day),
			Status:      model.StatusPending,
		})
		if err != nil {
			return ch, err
		}
	}

	if err := s.recompute(ctx, ch.ID); err != nil {
		return ch, err
	}
	logger.Info("challenge.created", "id", ch.ID, "title", ch.Title, "days", ch.DurationDays)
	return s.store.GetChallenge(ctx, ch.ID)
}

func (s *Lifecycle) Update(ctx context.Context, id int64, req model.UpdateChallengeRequest) (model.Challenge, error) {
	start, err := model.ParseDay(req.StartDate)
	if err != nil {
		return model.Challenge{}, fmt.Errorf("%w: bad start date %q", model.ErrMalformedEvent, req.StartDate)
	}
	end, err := model.ParseDay(req.EndDate)
	if err != nil {
		return model.Challenge{}, fmt.Errorf("%w: bad end date %q", model.ErrMalformedEvent, req.EndDate)
	}
	if end.Before(start) {
		return model.Challenge{}, fmt.Errorf("%w: end before start", model.ErrInvalidDateRange)
	}

	unlock := s.locks.lock(id)
	defer unlock()

	ch, err := s.store.GetChallenge(ctx, id)
	if err != nil {
		return model.Challenge{}, err
	}
	ch.Title = req.Title
	ch.Description = req.Description
	ch.StartDate = req.StartDate
	ch.EndDate = req.EndDate
	ch.DurationDays = model.DaysBetween(start, end) + 1
	if err := s.store.UpdateChallenge(ctx, &ch); err != nil {
		return model.Challenge{}, err
	}

	_, err = s.store.AppendEvent(ctx, &model.DailyLogEvent{
		ChallengeID: ch.ID,
		LogDate:     model.FormatDay(s.now()),
		Status:      model.StatusEdited,
		Notes:       "Challenge Edited: " + ch.Title,
	})
	if err != nil {
		return ch, err
	}
	if err := s.recompute(ctx, ch.ID); err != nil {
		return ch, err
	}
	return s.store.GetChallenge(ctx, ch.ID)
}

func (s *Lifecycle) Delete(ctx context.Context, id int64) error {
	unlock := s.locks.lock(id)
	defer unlock()

	ch, err := s.store.GetChallenge(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.store.AppendEvent(ctx, &model.DailyLogEvent{
		ChallengeID: ch.ID,
		LogDate:     model.FormatDay(s.now()),
		Status:      model.StatusDeleted,
		Notes:       "Challenge Deleted: " + ch.Title,
	})
	if err != nil {
		return err
	}
	return s.store.SoftDeleteChallenge(ctx, id)
}

// LogDay is the manual entry point. Callers may only write scorable
// statuses; audit markers are emitted by the lifecycle itself.
func (s *Lifecycle) LogDay(ctx context.Context, id int64, date string, status model.Status, notes string) error {
	if !status.Scorable() {
		return fmt.Errorf("%w: status %q not allowed for manual logs", model.ErrMalformedEvent, status)
	}
	if _, err := model.ParseDay(date); err != nil {
		return fmt.Errorf("%w: bad date %q", model.ErrMalformedEvent, date)
	}

	unlock := s.locks.lock(id)
	defer unlock()

	ch, err := s.store.GetChallenge(ctx, id)
	if err != nil {
		return err
	}
	if !ch.IsActive {
		return fmt.Errorf("%w: id %d", model.ErrInactiveChallenge, id)
	}
	if !ch.ContainsDay(date) {
		return fmt.Errorf("%w: %s not in [%s, %s]", model.ErrInvalidDateRange, date, ch.StartDate, ch.EndDate)
	}

	_, err = s.store.AppendEvent(ctx, &model.DailyLogEvent{
		ChallengeID: id,
		LogDate:     date,
		Status:      status,
		Notes:       notes,
	})
	if err != nil {
		return err
	}
	return s.recompute(ctx, id)
}

// OnEventAppended recomputes a challenge's aggregates after an
// event was appended outside the usual entry points.
func (s *Lifecycle) OnEventAppended(ctx context.Context, id int64) error {
	unlock := s.locks.lock(id)
	defer unlock()
	return s.recompute(ctx, id)
}

// recompute re-fetches the full event history, derives the
// aggregates, appends the COMPLETED marker when the challenge just
// finished and persists whatever changed. Callers must hold the
// challenge lock.
func (s *Lifecycle) recompute(ctx context.Context, id int64) error {
	ch, err := s.store.GetChallenge(ctx, id)
	if err != nil {
		return err
	}
	events, err := s.store.EventsForChallenge(ctx, id)
	if err != nil {
		return err
	}

	res := engine.RecomputeProgress(ch, events)
	if res.Completed {
		_, err = s.store.AppendEvent(ctx, &model.DailyLogEvent{
			ChallengeID: id,
			LogDate:     model.FormatDay(s.now()),
			Status:      model.StatusCompleted,
			Notes:       "Challenge marked as completed by system.",
		})
		if err != nil {
			return err
		}
		logger.Info("challenge.completed", "id", id, "days_logged", res.DaysLogged)
	}
	if !res.WasModified {
		return nil
	}
	return s.store.UpdateChallengeAggregates(ctx, id, res.DaysLogged, ch.IsActive && !res.Completed)
}

func (s *Lifecycle) Get(ctx context.Context, id int64) (model.Challenge, error) {
	return s.store.GetChallenge(ctx, id)
}

func (s *Lifecycle) List(ctx context.Context) ([]model.Challenge, error) {
	return s.store.ListChallenges(ctx)
}

func (s *Lifecycle) Completed(ctx context.Context) ([]model.Challenge, error) {
	return s.store.CompletedChallenges(ctx)
}

func (s *Lifecycle) Events(ctx context.Context, id int64) ([]model.DailyLogEvent, error) {
	if _, err := s.store.GetChallenge(ctx, id); err != nil {
		return nil, err
	}
	return s.store.EventsForChallenge(ctx, id)
}

func (s *Lifecycle) EventsForDate(ctx context.Context, date string) ([]model.DailyLogEvent, error) {
	if _, err := model.ParseDay(date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", model.ErrMalformedEvent, date)
	}
	return s.store.EventsForDate(ctx, date)
}

// ResolvedStatus answers "what is the authoritative status of this
// challenge on this date". Inactive and deleted challenges stay
// viewable.
func (s *Lifecycle) ResolvedStatus(ctx context.Context, id int64, date string) (model.Status, error) {
	if _, err := model.ParseDay(date); err != nil {
		return "", fmt.Errorf("%w: bad date %q", model.ErrMalformedEvent, date)
	}
	if _, err := s.store.GetChallenge(ctx, id); err != nil {
		return "", err
	}
	events, err := s.store.EventsForChallengeOnDate(ctx, id, date)
	if err != nil {
		return "", err
	}
	return engine.Resolve(events, date), nil
}

func (s *Lifecycle) Streaks(ctx context.Context, id int64) (engine.Streaks, error) {
	ch, err := s.store.GetChallenge(ctx, id)
	if err != nil {
		return engine.Streaks{}, err
	}
	events, err := s.store.EventsForChallenge(ctx, id)
	if err != nil {
		return engine.Streaks{}, err
	}
	return engine.ComputeStreaks(ch, events, model.FormatDay(s.now())), nil
}

// ChallengesForDate returns the challenges matching a day-view
// filter, resolved latest-wins for that date:
//
//	logged      active, in range, day resolves to a scorable status
//	unlogged    active, in range, no scorable event for the day
//	skipped     day resolves to SKIPPED
//	followed    day resolves to FOLLOWED
//	not_followed day resolves to NOT_FOLLOWED
//	concluding  the challenge's last day is this date
//
// skipped/followed/not_followed include inactive challenges, so
// finished challenges still show up in historical views.
func (s *Lifecycle) ChallengesForDate(ctx context.Context, date, filter string) ([]model.Challenge, error) {
	if _, err := model.ParseDay(date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", model.ErrMalformedEvent, date)
	}
	switch filter {
	case "logged", "unlogged", "skipped", "followed", "not_followed", "concluding":
	default:
		return nil, fmt.Errorf("%w: unknown filter %q", model.ErrMalformedEvent, filter)
	}

	challenges, err := s.store.ListChallenges(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Challenge, 0)
	for _, ch := range challenges {
		if filter == "concluding" {
			if ch.StartDate <= date && ch.EndDate == date {
				out = append(out, ch)
			}
			continue
		}

		events, err := s.store.EventsForChallengeOnDate(ctx, ch.ID, date)
		if err != nil {
			return nil, err
		}

		match := false
		switch filter {
		case "logged":
			match = ch.IsActive && ch.ContainsDay(date) && engine.Resolve(events, date).Scorable()
		case "unlogged":
			match = ch.IsActive && ch.ContainsDay(date) && !hasScorable(events)
		case "skipped":
			match = engine.Resolve(events, date) == model.StatusSkipped
		case "followed":
			match = engine.Resolve(events, date) == model.StatusFollowed
		case "not_followed":
			match = engine.Resolve(events, date) == model.StatusNotFollowed
		}
		if match {
			out = append(out, ch)
		}
	}

	switch filter {
	case "followed", "not_followed", "concluding":
		sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	}
	return out, nil
}

func hasScorable(events []model.DailyLogEvent) bool {
	for _, e := range events {
		if e.Status.Scorable() {
			return true
		}
	}
	return false
}

// StreakBoard computes streaks for every listed challenge, best
// current streak first.
func (s *Lifecycle) StreakBoard(ctx context.Context) ([]model.StreakBoardEntry, error) {
	challenges, err := s.store.ListChallenges(ctx)
	if err != nil {
		return nil, err
	}
	today := model.FormatDay(s.now())

	entries := make([]model.StreakBoardEntry, 0, len(challenges))
	for _, ch := range challenges {
		events, err := s.store.EventsForChallenge(ctx, ch.ID)
		if err != nil {
			return nil, err
		}
		st := engine.ComputeStreaks(ch, events, today)
		entries = append(entries, model.StreakBoardEntry{Challenge: ch, Current: st.Current, Longest: st.Longest})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Current != entries[j].Current {
			return entries[i].Current > entries[j].Current
		}
		if entries[i].Longest != entries[j].Longest {
			return entries[i].Longest > entries[j].Longest
		}
		return entries[i].Challenge.Title < entries[j].Challenge.Title
	})
	return entries, nil
}
