package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"challenge-monitor/internal/model"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Challenge{}, &model.DailyLogEvent{}, &model.Member{})
}

func (s *GormStore) InsertChallenge(ctx context.Context, c *model.Challenge) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateChallenge(ctx context.Context, c *model.Challenge) error {
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("update challenge: %w", err)
	}
	return nil
}

func (s *GormStore) SoftDeleteChallenge(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Challenge{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete challenge: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *GormStore) GetChallenge(ctx context.Context, id int64) (model.Challenge, error) {
	var c model.Challenge
	err := s.db.WithContext(ctx).Unscoped().First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Challenge{}, model.ErrNotFound
	}
	if err != nil {
		return model.Challenge{}, fmt.Errorf("query challenge: %w", err)
	}
	return c, nil
}

func (s *GormStore) ListChallenges(ctx context.Context) ([]model.Challenge, error) {
	var cs []model.Challenge
	err := s.db.WithContext(ctx).
		Order("is_active DESC, start_date DESC").
		Find(&cs).Error
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	return cs, nil
}

func (s *GormStore) CompletedChallenges(ctx context.Context) ([]model.Challenge, error) {
	var cs []model.Challenge
	err := s.db.WithContext(ctx).
		Where("is_active = ?", false).
		Order("end_date DESC").
		Find(&cs).Error
	if err != nil {
		return nil, fmt.Errorf("list completed challenges: %w", err)
	}
	return cs, nil
}

func (s *GormStore) ActiveChallengesInRange(ctx context.Context, date string) ([]model.Challenge, error) {
	var cs []model.Challenge
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, date, date).
		Order("start_date DESC").
		Find(&cs).Error
	if err != nil {
		return nil, fmt.Errorf("list active challenges for %s: %w", date, err)
	}
	return cs, nil
}

func (s *GormStore) UpdateChallengeAggregates(ctx context.Context, id int64, daysLogged int, isActive bool) error {
	res := s.db.WithContext(ctx).Model(&model.Challenge{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"days_logged": daysLogged,
			"is_active":   isActive,
		})
	if res.Error != nil {
		return fmt.Errorf("update aggregates: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *GormStore) AppendEvent(ctx context.Context, e *model.DailyLogEvent) (int64, error) {
	if e.AppendedAt.IsZero() {
		e.AppendedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return 0, fmt.Errorf("append event: %w", err)
	}
	return e.ID, nil
}

func (s *GormStore) EventsForChallenge(ctx context.Context, challengeID int64) ([]model.DailyLogEvent, error) {
	var evs []model.DailyLogEvent
	err := s.db.WithContext(ctx).
		Where("challenge_id = ?", challengeID).
		Order("log_date ASC, appended_at ASC, id ASC").
		Find(&evs).Error
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return evs, nil
}

func (s *GormStore) EventsForChallengeOnDate(ctx context.Context, challengeID int64, date string) ([]model.DailyLogEvent, error) {
	var evs []model.DailyLogEvent
	err := s.db.WithContext(ctx).
		Where("challenge_id = ? AND log_date = ?", challengeID, date).
		Order("appended_at ASC, id ASC").
		Find(&evs).Error
	if err != nil {
		return nil, fmt.Errorf("query events for date: %w", err)
	}
	return evs, nil
}

func (s *GormStore) EventsForDate(ctx context.Context, date string) ([]model.DailyLogEvent, error) {
	var evs []model.DailyLogEvent
	err := s.db.WithContext(ctx).
		Where("log_date = ?", date).
		Order("appended_at ASC, id ASC").
		Find(&evs).Error
	if err != nil {
		return nil, fmt.Errorf("query day events: %w", err)
	}
	return evs, nil
}
