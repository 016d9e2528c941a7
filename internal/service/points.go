package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/repository/postgres"
)

const (
	// DefaultPointTTLDays срок действия начисленных поинтов по умолчанию
	DefaultPointTTLDays = 30

	// expiringSoonWindow окно "скоро истекает" для сводки
	expiringSoonWindow = 7 * 24 * time.Hour

	// historyLimit количество записей истории в сводке
	historyLimit = 10
)

// PointsService реализует единственный путь изменения баланса поинтов
type PointsService struct {
	pointRepo domain.PointRepository
	userRepo  domain.UserRepository
	ttlDays   int
}

// NewPointsService создает новый PointsService
func NewPointsService(pointRepo domain.PointRepository, userRepo domain.UserRepository, ttlDays int) *PointsService {
	if ttlDays <= 0 {
		ttlDays = DefaultPointTTLDays
	}
	return &PointsService{
		pointRepo: pointRepo,
		userRepo:  userRepo,
		ttlDays:   ttlDays,
	}
}

// ApplyEntry атомарно изменяет баланс и добавляет запись в историю.
// Начисления без явного срока получают срок действия по умолчанию;
// списания не истекают никогда
func (s *PointsService) ApplyEntry(ctx context.Context, userID, amount int64, reason domain.PointReason, description string, expiresAt *time.Time) (*domain.PointEntry, error) {
	if amount == 0 {
		return nil, fmt.Errorf("points service: %w: zero amount", ErrInvalidInput)
	}

	// Срок действия по умолчанию только для начислений
	if amount > 0 && expiresAt == nil {
		exp := time.Now().Add(time.Duration(s.ttlDays) * 24 * time.Hour)
		expiresAt = &exp
	}
	if amount < 0 {
		expiresAt = nil
	}

	entry, err := s.pointRepo.ApplyEntryWithLock(ctx, userID, amount, reason, description, expiresAt)
	if err != nil {
		// Не оборачиваем sentinel errors
		if errors.Is(err, postgres.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, postgres.ErrInsufficientPoints) {
			return nil, ErrInsufficientPoints
		}
		return nil, fmt.Errorf("points service: failed to apply entry for user %d: %w", userID, err)
	}

	return entry, nil
}

// GetSummary получает текущий баланс, сумму скоро истекающих поинтов
// и последние записи истории
func (s *PointsService) GetSummary(ctx context.Context, userID int64) (*domain.PointSummary, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("points service: failed to get user %d: %w", userID, err)
	}

	expiringSoon, err := s.pointRepo.SumExpiringWithin(ctx, userID, time.Now().Add(expiringSoonWindow))
	if err != nil {
		return nil, fmt.Errorf("points service: failed to sum expiring points for user %d: %w", userID, err)
	}

	history, err := s.pointRepo.GetRecentHistory(ctx, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("points service: failed to get history for user %d: %w", userID, err)
	}

	return &domain.PointSummary{
		CurrentPoints: user.Points,
		ExpiringSoon:  expiringSoon,
		History:       history,
	}, nil
}
