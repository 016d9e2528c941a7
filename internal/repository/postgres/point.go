package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/jackc/pgx/v5"
)

// PointRepository реализует domain.PointRepository
type PointRepository struct {
	db DBTX
}

// NewPointRepository создает новый PointRepository
func NewPointRepository(db DBTX) *PointRepository {
	return &PointRepository{db: db}
}

// ApplyEntryWithLock атомарно изменяет баланс пользователя и добавляет запись в историю.
// Блокировка по user_id сериализует конкурентные изменения одного счета;
// изменения разных счетов друг друга не блокируют.
func (r *PointRepository) ApplyEntryWithLock(ctx context.Context, userID, amount int64, reason domain.PointReason, description string, expiresAt *time.Time) (*domain.PointEntry, error) {
	// Начинаем транзакцию
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction for user %d: %w", userID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	// Используем advisory lock для блокировки по user_id
	// Это предотвращает lost update при параллельных изменениях баланса
	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to acquire lock for user %d: %w", userID, err)
	}

	// Читаем текущий баланс
	var points int64
	err = tx.QueryRow(ctx, `SELECT points FROM users WHERE id = $1`, userID).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: failed to get points for user %d: %w", userID, err)
	}

	// Проверяем достаточность поинтов при списании
	if amount < 0 && points < -amount {
		return nil, ErrInsufficientPoints
	}

	// Обновляем баланс
	_, err = tx.Exec(ctx, `UPDATE users SET points = points + $2 WHERE id = $1`, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to update points for user %d: %w", userID, err)
	}

	// Добавляем запись в историю
	entry := &domain.PointEntry{}
	err = tx.QueryRow(ctx,
		`INSERT INTO point_history (user_id, amount, reason, description, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, amount, reason, description, expires_at, created_at`,
		userID, amount, reason, description, expiresAt,
	).Scan(&entry.ID, &entry.UserID, &entry.Amount, &entry.Reason, &entry.Description, &entry.ExpiresAt, &entry.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert point entry for user %d: %w", userID, err)
	}

	// Коммитим транзакцию
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit point entry: %w", err)
	}

	return entry, nil
}

// GetRecentHistory получает последние записи истории поинтов пользователя
func (r *PointRepository) GetRecentHistory(ctx context.Context, userID int64, limit int) ([]*domain.PointEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, amount, reason, description, expires_at, created_at
		 FROM point_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to get point history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []*domain.PointEntry
	for rows.Next() {
		entry := &domain.PointEntry{}
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Amount, &entry.Reason, &entry.Description, &entry.ExpiresAt, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan point entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating point history: %w", err)
	}

	return entries, nil
}

// SumExpiringWithin получает сумму поинтов, истекающих до указанного времени
func (r *PointRepository) SumExpiringWithin(ctx context.Context, userID int64, until time.Time) (int64, error) {
	var total int64

	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM point_history
		 WHERE user_id = $1 AND amount > 0 AND reason != $2
		   AND expires_at IS NOT NULL AND expires_at <= $3`,
		userID, domain.PointReasonExpired, until,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("repository: failed to sum expiring points for user %d: %w", userID, err)
	}

	return total, nil
}

// FindExpiredEntries находит все неистекшие записи начислений с прошедшим сроком действия
func (r *PointRepository) FindExpiredEntries(ctx context.Context, now time.Time) ([]*domain.PointEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, amount, reason, description, expires_at, created_at
		 FROM point_history
		 WHERE expires_at IS NOT NULL AND expires_at <= $1 AND amount > 0 AND reason != $2
		 ORDER BY user_id, id`,
		now, domain.PointReasonExpired,
	)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to find expired entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.PointEntry
	for rows.Next() {
		entry := &domain.PointEntry{}
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.Amount, &entry.Reason, &entry.Description, &entry.ExpiresAt, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan expired entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating expired entries: %w", err)
	}

	return entries, nil
}

// ClearExpiry сбрасывает срок действия у обработанных записей для защиты от повторной обработки
func (r *PointRepository) ClearExpiry(ctx context.Context, entryIDs []int64) error {
	if len(entryIDs) == 0 {
		return nil
	}

	_, err := r.db.Exec(ctx,
		`UPDATE point_history SET expires_at = NULL WHERE id = ANY($1)`,
		entryIDs,
	)

	if err != nil {
		return fmt.Errorf("repository: failed to clear expiry: %w", err)
	}

	return nil
}
