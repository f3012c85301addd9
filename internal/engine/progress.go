package engine

import "challenge-monitor/internal/model"

// ProgressResult is the outcome of recomputing a challenge's
// cached aggregates from its full event log.
type ProgressResult struct {
	// DaysLogged is the count of distinct dates that resolve to a
	// scorable status.
	DaysLogged int

	// Completed is true when this recompute flipped the challenge
	// inactive. The caller must append a COMPLETED event and
	// persist the new aggregate fields. Guarded by IsActive, so it
	// fires at most once per challenge.
	Completed bool

	// WasModified tells the caller whether anything changed and a
	// persist is needed.
	WasModified bool
}

// RecomputeProgress derives DaysLogged and the completion state
// from the event log. Only scorable events participate; each
// distinct date is resolved latest-wins among its scorable
// candidates. DaysLogged can only grow as events are appended,
// since appends never remove a date's scorable resolution.
func RecomputeProgress(c model.Challenge, events []model.DailyLogEvent) ProgressResult {
	dates := make(map[string]struct{})
	for _, e := range events {
		if e.Status.Scorable() {
			dates[e.LogDate] = struct{}{}
		}
	}

	logged := 0
	for d := range dates {
		if ResolveScorable(events, d) != model.StatusPending {
			logged++
		}
	}

	res := ProgressResult{DaysLogged: logged}
	if logged != c.DaysLogged {
		res.WasModified = true
	}
	if c.IsActive && logged >= c.DurationDays {
		res.Completed = true
		res.WasModified = true
	}
	return res
}
