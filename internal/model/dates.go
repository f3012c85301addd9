package model

import "time"

// DayFormat is the single canonical calendar-date layout used
// everywhere. Timestamps are stored as time.Time, never re-parsed
// from text.
const DayFormat = "2006-01-02"

func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}

func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// DaysBetween returns the number of whole days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
