package model

// Status is the state recorded by a single daily log event.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusFollowed    Status = "FOLLOWED"
	StatusNotFollowed Status = "NOT_FOLLOWED"
	StatusSkipped     Status = "SKIPPED"
	StatusCreated     Status = "CREATED"
	StatusEdited      Status = "EDITED"
	StatusDeleted     Status = "DELETED"
	StatusCompleted   Status = "COMPLETED"
)

// Scorable reports whether the status counts toward days-logged
// progress and streak evaluation. CREATED/EDITED/DELETED/COMPLETED
// are audit markers and never score.
func (s Status) Scorable() bool {
	switch s {
	case StatusFollowed, StatusNotFollowed, StatusSkipped:
		return true
	}
	return false
}

// Actionable reports whether the presence of this status means the
// date has been acted upon and must not be auto-skipped. A same-day
// CREATED or EDITED entry counts, so an edit does not get skipped
// on top of.
func (s Status) Actionable() bool {
	switch s {
	case StatusFollowed, StatusNotFollowed, StatusSkipped, StatusCreated, StatusEdited:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusFollowed, StatusNotFollowed, StatusSkipped,
		StatusCreated, StatusEdited, StatusDeleted, StatusCompleted:
		return true
	}
	return false
}
