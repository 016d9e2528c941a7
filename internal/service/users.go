package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/repository/postgres"
)

// UserService реализует чтение пользователей
type UserService struct {
	userRepo domain.UserRepository
}

// NewUserService создает новый UserService
func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetUser получает пользователя по ID
func (s *UserService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user service: failed to get user %d: %w", userID, err)
	}

	return user, nil
}

// ListUsers получает пользователей с пагинацией и поиском (для админки)
func (s *UserService) ListUsers(ctx context.Context, search string, limit, offset int) ([]*domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := s.userRepo.ListUsers(ctx, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("user service: failed to list users: %w", err)
	}

	return users, total, nil
}
