package engine

import "challenge-monitor/internal/model"

// Streaks holds consecutive-FOLLOWED-day counters for a challenge.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ComputeStreaks walks every calendar day from the challenge start
// to min(end, today) inclusive. A resolved FOLLOWED extends the
// running streak; anything else, including days with no event,
// closes it. Current is the streak still open on the last evaluated
// day, which is not necessarily today for an ended challenge.
// Cost is O(days in range).
func ComputeStreaks(c model.Challenge, events []model.DailyLogEvent, today string) Streaks {
	start, err := model.ParseDay(c.StartDate)
	if err != nil {
		return Streaks{}
	}
	end, err := model.ParseDay(c.EndDate)
	if err != nil {
		return Streaks{}
	}
	now, err := model.ParseDay(today)
	if err != nil {
		return Streaks{}
	}

	if start.After(now) {
		return Streaks{}
	}
	if end.After(now) {
		end = now
	}

	byDate := make(map[string]model.Status)
	for _, e := range events {
		if !e.Status.Scorable() {
			continue
		}
		d := e.LogDate
		if _, ok := byDate[d]; !ok {
			byDate[d] = ResolveScorable(events, d)
		}
	}

	var running, longest int
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if byDate[model.FormatDay(day)] == model.StatusFollowed {
			running++
			continue
		}
		if running > longest {
			longest = running
		}
		running = 0
	}
	// An ongoing streak may itself be the longest.
	if running > longest {
		longest = running
	}

	return Streaks{Current: running, Longest: longest}
}
