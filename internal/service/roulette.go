package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/repository/postgres"
)

// PointsLedger определяет операции с балансом, нужные рулетке
type PointsLedger interface {
	ApplyEntry(ctx context.Context, userID, amount int64, reason domain.PointReason, description string, expiresAt *time.Time) (*domain.PointEntry, error)
}

// BudgetGate определяет операции с бюджетом, нужные рулетке
type BudgetGate interface {
	CheckAndSpendDaily(ctx context.Context, amount int64) error
	RestoreDaily(ctx context.Context, amount int64, day time.Time) error
	DailyRemaining(ctx context.Context) (int64, error)
}

// RouletteServiceConfig содержит настройки рулетки
type RouletteServiceConfig struct {
	RewardMin int64 // Нижняя граница случайной награды
	RewardMax int64 // Верхняя граница случайной награды (включительно)
	SpinCost  int64 // Стоимость участия; 0 — бесплатно
}

// RouletteService реализует ежедневную рулетку наград
type RouletteService struct {
	spinRepo    domain.SpinRepository
	segmentRepo domain.SegmentRepository
	userRepo    domain.UserRepository
	points      PointsLedger
	budget      BudgetGate
	config      RouletteServiceConfig

	// randInt подменяется в тестах для детерминированных розыгрышей
	randInt func(n int64) int64
}

// NewRouletteService создает новый RouletteService
func NewRouletteService(
	spinRepo domain.SpinRepository,
	segmentRepo domain.SegmentRepository,
	userRepo domain.UserRepository,
	points PointsLedger,
	budget BudgetGate,
	config RouletteServiceConfig,
) *RouletteService {
	return &RouletteService{
		spinRepo:    spinRepo,
		segmentRepo: segmentRepo,
		userRepo:    userRepo,
		points:      points,
		budget:      budget,
		config:      config,
		randInt:     rand.Int64N,
	}
}

// Spin выполняет ежедневное вращение рулетки.
// Порядок строгий: запись спина вставляется до любых выплат, бюджет
// резервируется до начисления. Запись спина при исчерпании бюджета
// намеренно не откатывается — попытка считается использованной
func (s *RouletteService) Spin(ctx context.Context, userID int64) (*domain.SpinResult, error) {
	today := dateOf(time.Now())

	// Быстрая проверка: отсеивает большинство повторных запросов,
	// но гонки решает только уникальный индекс при вставке
	alreadySpun, err := s.spinRepo.HasSpunOn(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("roulette service: failed to check spin for user %d: %w", userID, err)
	}
	if alreadySpun {
		return nil, ErrDailyLimitExceeded
	}

	// Розыгрыш награды: взвешенные сегменты, если настроены,
	// иначе равномерный диапазон
	segments, err := s.segmentRepo.ListSegments(ctx)
	if err != nil {
		return nil, fmt.Errorf("roulette service: failed to list segments: %w", err)
	}

	var record *domain.SpinRecord
	if len(segments) > 0 {
		segment := s.pickSegment(segments)
		record = &domain.SpinRecord{
			UserID:       userID,
			SpinDate:     today,
			SegmentID:    segment.ID,
			SegmentLabel: segment.Label,
			RewardAmount: segment.RewardAmount,
			CostAmount:   s.config.SpinCost,
		}
	} else {
		reward := s.config.RewardMin + s.randInt(s.config.RewardMax-s.config.RewardMin+1)
		record = &domain.SpinRecord{
			UserID:       userID,
			SpinDate:     today,
			SegmentLabel: "Случайная награда",
			RewardAmount: reward,
			CostAmount:   s.config.SpinCost,
		}
	}

	// Вставляем запись спина до выдачи награды: уникальный индекс
	// (user_id, spin_date) — арбитр параллельных дублей
	record, err = s.spinRepo.CreateSpin(ctx, record)
	if err != nil {
		if errors.Is(err, postgres.ErrAlreadySpunToday) {
			return nil, ErrDailyLimitExceeded
		}
		return nil, fmt.Errorf("roulette service: failed to create spin for user %d: %w", userID, err)
	}

	// Списываем стоимость участия, если она задана
	if record.CostAmount > 0 {
		_, err = s.points.ApplyEntry(ctx, userID, -record.CostAmount, domain.PointReasonPurchase,
			"Участие в рулетке", nil)
		if err != nil {
			return nil, err
		}
	}

	// Резервируем награду из дневного бюджета
	if record.RewardAmount > 0 {
		if err := s.budget.CheckAndSpendDaily(ctx, record.RewardAmount); err != nil {
			if errors.Is(err, ErrBudgetExceeded) {
				return nil, err
			}
			return nil, fmt.Errorf("roulette service: failed to reserve budget: %w", err)
		}

		// Начисляем награду
		_, err = s.points.ApplyEntry(ctx, userID, record.RewardAmount, domain.PointReasonLotteryWin,
			fmt.Sprintf("Выигрыш в рулетке: %dp", record.RewardAmount), nil)
		if err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("roulette service: failed to get user %d: %w", userID, err)
	}

	return &domain.SpinResult{
		RewardAmount:    record.RewardAmount,
		RemainingPoints: user.Points,
	}, nil
}

// pickSegment выполняет взвешенный выбор сегмента.
// Бросок в [0, totalWeight); веса вычитаются в порядке отображения,
// выигрывает первый сегмент, на котором остаток уходит в минус
func (s *RouletteService) pickSegment(segments []*domain.Segment) *domain.Segment {
	var totalWeight int64
	for _, segment := range segments {
		totalWeight += segment.Weight
	}

	roll := s.randInt(totalWeight)
	for _, segment := range segments {
		roll -= segment.Weight
		if roll < 0 {
			return segment
		}
	}

	// Недостижимо при корректных весах
	return segments[len(segments)-1]
}

// GetStatus получает состояние рулетки для пользователя
func (s *RouletteService) GetStatus(ctx context.Context, userID int64) (*domain.RouletteStatus, error) {
	hasSpun, err := s.spinRepo.HasSpunOn(ctx, userID, dateOf(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("roulette service: failed to check spin for user %d: %w", userID, err)
	}

	remaining, err := s.budget.DailyRemaining(ctx)
	if err != nil {
		return nil, fmt.Errorf("roulette service: failed to get budget remaining: %w", err)
	}

	return &domain.RouletteStatus{
		HasSpunToday:         hasSpun,
		DailyBudgetRemaining: remaining,
		SpinCost:             s.config.SpinCost,
	}, nil
}

// GetConfig получает публичную конфигурацию рулетки
func (s *RouletteService) GetConfig(ctx context.Context) (*domain.RouletteConfig, error) {
	segments, err := s.segmentRepo.ListSegments(ctx)
	if err != nil {
		return nil, fmt.Errorf("roulette service: failed to list segments: %w", err)
	}

	return &domain.RouletteConfig{
		SpinCost: s.config.SpinCost,
		Segments: segments,
	}, nil
}

// GetSpinHistory получает историю спинов с пагинацией (для админки)
func (s *RouletteService) GetSpinHistory(ctx context.Context, limit, offset int) ([]*domain.SpinRecord, int64, error) {
	records, total, err := s.spinRepo.ListSpins(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("roulette service: failed to list spins: %w", err)
	}

	return records, total, nil
}

// ReplaceSegments заменяет конфигурацию сегментов (для админки)
func (s *RouletteService) ReplaceSegments(ctx context.Context, segments []*domain.Segment) ([]*domain.Segment, error) {
	for _, segment := range segments {
		if segment.Weight <= 0 {
			return nil, fmt.Errorf("roulette service: %w: segment %q has non-positive weight", ErrInvalidInput, segment.Label)
		}
		if segment.RewardAmount < 0 {
			return nil, fmt.Errorf("roulette service: %w: segment %q has negative reward", ErrInvalidInput, segment.Label)
		}
	}

	saved, err := s.segmentRepo.ReplaceSegments(ctx, segments)
	if err != nil {
		return nil, fmt.Errorf("roulette service: failed to replace segments: %w", err)
	}

	return saved, nil
}

// CancelSpin отменяет спин: помечает запись, возвращает награду
// компенсирующим списанием и восстанавливает бюджет дня спина.
// Компенсации награды и стоимости независимы
func (s *RouletteService) CancelSpin(ctx context.Context, spinID int64) error {
	spin, err := s.spinRepo.GetSpinByID(ctx, spinID)
	if err != nil {
		if errors.Is(err, postgres.ErrSpinNotFound) {
			return ErrSpinNotFound
		}
		return fmt.Errorf("roulette service: failed to get spin %d: %w", spinID, err)
	}

	if spin.Cancelled {
		return ErrSpinAlreadyCancelled
	}

	if err := s.spinRepo.MarkCancelled(ctx, spinID); err != nil {
		return fmt.Errorf("roulette service: failed to cancel spin %d: %w", spinID, err)
	}

	// Возврат награды + восстановление бюджета
	if spin.RewardAmount > 0 {
		_, err = s.points.ApplyEntry(ctx, spin.UserID, -spin.RewardAmount, domain.PointReasonAdminAdjust,
			"Отмена участия в рулетке: возврат награды", nil)
		if err != nil {
			return fmt.Errorf("roulette service: failed to reclaim reward for spin %d: %w", spinID, err)
		}

		if err := s.budget.RestoreDaily(ctx, spin.RewardAmount, spin.SpinDate); err != nil {
			return fmt.Errorf("roulette service: failed to restore budget for spin %d: %w", spinID, err)
		}
	}

	// Возврат стоимости участия
	if spin.CostAmount > 0 {
		_, err = s.points.ApplyEntry(ctx, spin.UserID, spin.CostAmount, domain.PointReasonAdminAdjust,
			"Отмена участия в рулетке: возврат стоимости", nil)
		if err != nil {
			return fmt.Errorf("roulette service: failed to refund cost for spin %d: %w", spinID, err)
		}
	}

	return nil
}
