package model

import (
	"time"

	"gorm.io/gorm"
)

type Challenge struct {
	ID           int64          `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	StartDate    string         `gorm:"type:date;not null" json:"start_date"`
	EndDate      string         `gorm:"type:date;not null" json:"end_date"`
	DurationDays int            `gorm:"not null" json:"duration_days"`
	DaysLogged   int            `gorm:"not null" json:"days_logged"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// ContainsDay reports whether day falls inside the challenge's
// inclusive [StartDate, EndDate] range. Dates compare lexically
// because they are canonical YYYY-MM-DD.
func (c *Challenge) ContainsDay(day string) bool {
	return c.StartDate <= day && day <= c.EndDate
}

// DailyLogEvent is one append-only entry in a challenge's log.
// Events are immutable once written; corrections are new events
// with the same LogDate. AppendedAt is stamped by the store at
// write time and, together with ID as tiebreak, orders events
// for latest-wins resolution.
type DailyLogEvent struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	ChallengeID int64     `gorm:"index;not null" json:"challenge_id"`
	LogDate     string    `gorm:"type:date;index;not null" json:"log_date"`
	Status      Status    `gorm:"not null" json:"status"`
	Notes       string    `json:"notes,omitempty"`
	AppendedAt  time.Time `gorm:"not null" json:"appended_at"`
}

type Member struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex" json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
}

func (Challenge) TableName() string     { return "challenges" }
func (DailyLogEvent) TableName() string { return "challenge_daily_log" }
func (Member) TableName() string        { return "members" }
