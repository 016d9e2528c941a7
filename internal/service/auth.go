package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/repository/postgres"
	"github.com/avc/point-roulette/internal/utils/jwt"
	"github.com/avc/point-roulette/internal/utils/password"
)

// AuthServiceConfig содержит настройки аутентификации
type AuthServiceConfig struct {
	MinPasswordLength int   // Минимальная длина пароля
	SignupBonus       int64 // Приветственное начисление поинтов
}

// AuthService реализует регистрацию и вход пользователей
type AuthService struct {
	userRepo       domain.UserRepository
	points         PointsLedger
	passwordHasher password.Hasher
	jwtManager     *jwt.Manager
	config         AuthServiceConfig
}

// NewAuthService создает новый AuthService
func NewAuthService(
	userRepo domain.UserRepository,
	points PointsLedger,
	passwordHasher password.Hasher,
	jwtManager *jwt.Manager,
	config AuthServiceConfig,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		points:         points,
		passwordHasher: passwordHasher,
		jwtManager:     jwtManager,
		config:         config,
	}
}

// Register регистрирует нового пользователя и начисляет приветственный бонус.
// Пользователь создается с нулевым балансом, бонус проходит через леджер,
// чтобы баланс всегда равнялся сумме записей истории
func (s *AuthService) Register(ctx context.Context, email, userPassword, nickname string) (string, *domain.User, error) {
	// Валидация входных данных
	email = strings.TrimSpace(strings.ToLower(email))
	nickname = strings.TrimSpace(nickname)
	if email == "" || !strings.Contains(email, "@") || nickname == "" {
		return "", nil, ErrInvalidInput
	}
	if len(userPassword) < s.config.MinPasswordLength {
		return "", nil, ErrInvalidInput
	}

	// Хеширование пароля
	hash, err := s.passwordHasher.Hash(userPassword)
	if err != nil {
		return "", nil, fmt.Errorf("auth service: failed to hash password for user %q: %w", email, err)
	}

	// Создание пользователя
	user, err := s.userRepo.CreateUser(ctx, email, hash, nickname)
	if err != nil {
		// Не оборачиваем sentinel error
		if errors.Is(err, postgres.ErrUserExists) {
			return "", nil, ErrUserExists
		}
		return "", nil, fmt.Errorf("auth service: failed to register user %q: %w", email, err)
	}

	// Приветственный бонус
	if s.config.SignupBonus > 0 {
		_, err = s.points.ApplyEntry(ctx, user.ID, s.config.SignupBonus, domain.PointReasonSignupBonus,
			"Бонус за регистрацию", nil)
		if err != nil {
			return "", nil, fmt.Errorf("auth service: failed to grant signup bonus for user %d: %w", user.ID, err)
		}
		user.Points = s.config.SignupBonus
	}

	// Генерация JWT токена
	token, err := s.jwtManager.Generate(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("auth service: failed to generate token for user %d: %w", user.ID, err)
	}

	return token, user, nil
}

// Login аутентифицирует пользователя
func (s *AuthService) Login(ctx context.Context, email, userPassword string) (string, *domain.User, error) {
	// Валидация входных данных
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || userPassword == "" {
		return "", nil, ErrInvalidInput
	}

	// Получение пользователя по email
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("auth service: failed to get user %q: %w", email, err)
	}

	// Проверка пароля
	if err := s.passwordHasher.Check(user.PasswordHash, userPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	// Генерация JWT токена
	token, err := s.jwtManager.Generate(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("auth service: failed to generate token for user %d: %w", user.ID, err)
	}

	return token, user, nil
}
