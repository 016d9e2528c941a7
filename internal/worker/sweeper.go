package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/service"
	"go.uber.org/zap"
)

// PointStore определяет методы хранилища, нужные сборщику истекших поинтов
type PointStore interface {
	FindExpiredEntries(ctx context.Context, now time.Time) ([]*domain.PointEntry, error)
	ClearExpiry(ctx context.Context, entryIDs []int64) error
}

// Ledger определяет операцию компенсирующего списания
type Ledger interface {
	ApplyEntry(ctx context.Context, userID, amount int64, reason domain.PointReason, description string, expiresAt *time.Time) (*domain.PointEntry, error)
}

// UserStore определяет чтение пользователя для расчета списания
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}

// Sweeper периодически обрабатывает истекшие начисления поинтов.
// Один цикл на одной горутине — запуски не перекрываются
type Sweeper struct {
	pointStore PointStore
	ledger     Ledger
	userStore  UserStore
	logger     *zap.Logger
	interval   time.Duration
	wg         sync.WaitGroup
}

// NewSweeper создает новый Sweeper
func NewSweeper(pointStore PointStore, ledger Ledger, userStore UserStore, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		pointStore: pointStore,
		ledger:     ledger,
		userStore:  userStore,
		logger:     logger,
		interval:   interval,
	}
}

// Start запускает фоновый цикл обработки
func (s *Sweeper) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.run(ctx)
}

// Stop дожидается завершения фонового цикла
func (s *Sweeper) Stop() {
	s.wg.Wait()
}

// run выполняет обработку по таймеру до отмены контекста
func (s *Sweeper) run(ctx context.Context) {
	defer s.wg.Done()

	s.logger.Info("expiry sweeper started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("expiry sweeper stopping")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep обрабатывает все истекшие начисления ровно один раз каждое.
// Ошибка по одному пользователю не прерывает обработку остальных
func (s *Sweeper) Sweep(ctx context.Context) {
	now := time.Now()

	expired, err := s.pointStore.FindExpiredEntries(ctx, now)
	if err != nil {
		s.logger.Error("failed to find expired entries", zap.Error(err))
		return
	}

	if len(expired) == 0 {
		return
	}

	s.logger.Info("processing expired point entries", zap.Int("count", len(expired)))

	// Группируем записи по пользователям
	byUser := make(map[int64][]*domain.PointEntry)
	var userOrder []int64
	for _, entry := range expired {
		if _, ok := byUser[entry.UserID]; !ok {
			userOrder = append(userOrder, entry.UserID)
		}
		byUser[entry.UserID] = append(byUser[entry.UserID], entry)
	}

	for _, userID := range userOrder {
		if err := s.sweepUser(ctx, userID, byUser[userID]); err != nil {
			s.logger.Error("failed to process expired points",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}
}

// sweepUser списывает истекшие поинты одного пользователя и сбрасывает
// срок действия у обработанных записей, исключая их из будущих проходов
func (s *Sweeper) sweepUser(ctx context.Context, userID int64, entries []*domain.PointEntry) error {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	var totalExpired int64
	entryIDs := make([]int64, 0, len(entries))
	for _, entry := range entries {
		totalExpired += entry.Amount
		entryIDs = append(entryIDs, entry.ID)
	}

	// Не уводим баланс в минус: часть истекших поинтов могла быть
	// уже потрачена
	deduction := totalExpired
	if user.Points < deduction {
		deduction = user.Points
	}

	if deduction > 0 {
		_, err = s.ledger.ApplyEntry(ctx, userID, -deduction, domain.PointReasonExpired,
			"Истечение срока действия поинтов", nil)
		if err != nil && !errors.Is(err, service.ErrInsufficientPoints) {
			return err
		}
		if err != nil {
			// Баланс успел уменьшиться после чтения; поинты уже потрачены
			s.logger.Warn("skipping expiry deduction, balance already consumed",
				zap.Int64("user_id", userID),
			)
		}
	}

	// Сбрасываем срок действия независимо от списания — защита
	// от повторной обработки
	if err := s.pointStore.ClearExpiry(ctx, entryIDs); err != nil {
		return err
	}

	s.logger.Info("expired points processed",
		zap.Int64("user_id", userID),
		zap.Int64("total_expired", totalExpired),
		zap.Int64("deducted", deduction),
	)

	return nil
}
