// Package engine holds the pure temporal-resolution and
// derived-aggregate calculators. Functions here take an in-memory
// snapshot of events, perform no I/O, and are total over
// well-formed input.
package engine

import "challenge-monitor/internal/model"

// Resolve returns the authoritative status of a challenge on date:
// the status of the event with the greatest (AppendedAt, ID) pair
// among events whose LogDate equals date. When timestamps collide
// the higher id wins, insertion order being authoritative. PENDING
// is implied when no event exists for the date.
func Resolve(events []model.DailyLogEvent, date string) model.Status {
	return latest(events, date, func(model.Status) bool { return true })
}

// ResolveScorable is Resolve restricted to scorable events. Audit
// markers (CREATED, EDITED, ...) appended later in the day must not
// shadow a real FOLLOWED entry when computing progress or streaks.
func ResolveScorable(events []model.DailyLogEvent, date string) model.Status {
	return latest(events, date, model.Status.Scorable)
}

func latest(events []model.DailyLogEvent, date string, keep func(model.Status) bool) model.Status {
	best := -1
	for i, e := range events {
		if e.LogDate != date || !keep(e.Status) {
			continue
		}
		if best < 0 || after(e, events[best]) {
			best = i
		}
	}
	if best < 0 {
		return model.StatusPending
	}
	return events[best].Status
}

func after(a, b model.DailyLogEvent) bool {
	if !a.AppendedAt.Equal(b.AppendedAt) {
		return a.AppendedAt.After(b.AppendedAt)
	}
	return a.ID > b.ID
}
