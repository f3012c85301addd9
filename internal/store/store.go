// Package store is the persistence collaborator: an append-only
// event log plus the challenge table whose aggregate fields the
// lifecycle keeps in sync. The core depends only on the Store
// interface and the typed structs it returns; rows and columns are
// this package's concern alone.
package store

import (
	"context"

	"challenge-monitor/internal/model"
)

type Store interface {
	InsertChallenge(ctx context.Context, c *model.Challenge) error
	UpdateChallenge(ctx context.Context, c *model.Challenge) error
	SoftDeleteChallenge(ctx context.Context, id int64) error

	// GetChallenge also finds soft-deleted challenges: they stay
	// queryable forever, they just drop out of listings.
	GetChallenge(ctx context.Context, id int64) (model.Challenge, error)
	ListChallenges(ctx context.Context) ([]model.Challenge, error)
	CompletedChallenges(ctx context.Context) ([]model.Challenge, error)
	ActiveChallengesInRange(ctx context.Context, date string) ([]model.Challenge, error)
	UpdateChallengeAggregates(ctx context.Context, id int64, daysLogged int, isActive bool) error

	// AppendEvent stamps AppendedAt at write time and returns the
	// new event's id. The log is append-only; there is no update
	// or delete.
	AppendEvent(ctx context.Context, e *model.DailyLogEvent) (int64, error)
	EventsForChallenge(ctx context.Context, challengeID int64) ([]model.DailyLogEvent, error)
	EventsForChallengeOnDate(ctx context.Context, challengeID int64, date string) ([]model.DailyLogEvent, error)
	EventsForDate(ctx context.Context, date string) ([]model.DailyLogEvent, error)
}
