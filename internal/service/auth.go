package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"challenge-monitor/internal/logger"
	"challenge-monitor/internal/model"
)

type Auth struct{ db *gorm.DB }

func NewAuth(db *gorm.DB) *Auth { return &Auth{db: db} }

func (s *Auth) Login(ctx context.Context, username, password string) (*model.Member, error) {
	var m model.Member
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("wrong password")
	}
	return &m, nil
}

// EnsureDefaultUser seeds the configured login on first start so
// the API is reachable on a fresh database.
func (s *Auth) EnsureDefaultUser(ctx context.Context, username, password string) error {
	var m model.Member
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("query member: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(&model.Member{
		Username: username,
		Password: string(hash),
		Name:     username,
	}).Error; err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	logger.Info("auth.default_user_created", "username", username)
	return nil
}
