package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"challenge-monitor/internal/model"
)

// fakeStore is an in-memory Store for service tests. AppendedAt is
// stamped from a strictly increasing fake clock so latest-wins
// resolution is deterministic.
type fakeStore struct {
	mu         sync.Mutex
	challenges map[int64]*model.Challenge
	events     []model.DailyLogEvent
	nextChID   int64
	nextEvID   int64
	clock      time.Time

	failAppendFor map[int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		challenges:    make(map[int64]*model.Challenge),
		clock:         time.Date(2024, 2, 3, 8, 0, 0, 0, time.UTC),
		failAppendFor: make(map[int64]bool),
	}
}

func (s *fakeStore) InsertChallenge(_ context.Context, c *model.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextChID++
	c.ID = s.nextChID
	c.CreatedAt = s.clock
	cp := *c
	s.challenges[c.ID] = &cp
	return nil
}

func (s *fakeStore) UpdateChallenge(_ context.Context, c *model.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.challenges[c.ID]; !ok {
		return model.ErrNotFound
	}
	cp := *c
	s.challenges[c.ID] = &cp
	return nil
}

func (s *fakeStore) SoftDeleteChallenge(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.challenges[id]
	if !ok || c.DeletedAt.Valid {
		return model.ErrNotFound
	}
	c.DeletedAt = gorm.DeletedAt{Time: s.clock, Valid: true}
	return nil
}

func (s *fakeStore) GetChallenge(_ context.Context, id int64) (model.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.challenges[id]
	if !ok {
		return model.Challenge{}, model.ErrNotFound
	}
	return *c, nil
}

func (s *fakeStore) ListChallenges(_ context.Context) ([]model.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cs []model.Challenge
	for _, c := range s.challenges {
		if !c.DeletedAt.Valid {
			cs = append(cs, *c)
		}
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
	return cs, nil
}

func (s *fakeStore) CompletedChallenges(_ context.Context) ([]model.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cs []model.Challenge
	for _, c := range s.challenges {
		if !c.DeletedAt.Valid && !c.IsActive {
			cs = append(cs, *c)
		}
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
	return cs, nil
}

func (s *fakeStore) ActiveChallengesInRange(_ context.Context, date string) ([]model.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cs []model.Challenge
	for _, c := range s.challenges {
		if !c.DeletedAt.Valid && c.IsActive && c.ContainsDay(date) {
			cs = append(cs, *c)
		}
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
	return cs, nil
}

func (s *fakeStore) UpdateChallengeAggregates(_ context.Context, id int64, daysLogged int, isActive bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.challenges[id]
	if !ok {
		return model.ErrNotFound
	}
	c.DaysLogged = daysLogged
	c.IsActive = isActive
	return nil
}

func (s *fakeStore) AppendEvent(_ context.Context, e *model.DailyLogEvent) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAppendFor[e.ChallengeID] {
		return 0, fmt.Errorf("append failed for challenge %d", e.ChallengeID)
	}
	s.nextEvID++
	s.clock = s.clock.Add(time.Second)
	e.ID = s.nextEvID
	e.AppendedAt = s.clock
	s.events = append(s.events, *e)
	return e.ID, nil
}

func (s *fakeStore) EventsForChallenge(_ context.Context, challengeID int64) ([]model.DailyLogEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var evs []model.DailyLogEvent
	for _, e := range s.events {
		if e.ChallengeID == challengeID {
			evs = append(evs, e)
		}
	}
	return evs, nil
}

func (s *fakeStore) EventsForChallengeOnDate(_ context.Context, challengeID int64, date string) ([]model.DailyLogEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var evs []model.DailyLogEvent
	for _, e := range s.events {
		if e.ChallengeID == challengeID && e.LogDate == date {
			evs = append(evs, e)
		}
	}
	return evs, nil
}

func (s *fakeStore) EventsForDate(_ context.Context, date string) ([]model.DailyLogEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var evs []model.DailyLogEvent
	for _, e := range s.events {
		if e.LogDate == date {
			evs = append(evs, e)
		}
	}
	return evs, nil
}

func (s *fakeStore) countEvents(challengeID int64, date string, status model.Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if e.ChallengeID == challengeID && (date == "" || e.LogDate == date) && e.Status == status {
			n++
		}
	}
	return n
}

// testToday is the frozen "now" used by lifecycle tests.
var testToday = time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)

func newTestLifecycle(st *fakeStore) *Lifecycle {
	lc := NewLifecycle(st)
	lc.now = func() time.Time { return testToday }
	return lc
}
