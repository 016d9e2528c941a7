package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SpinRepository реализует domain.SpinRepository
type SpinRepository struct {
	db DBTX
}

// NewSpinRepository создает новый SpinRepository
func NewSpinRepository(db DBTX) *SpinRepository {
	return &SpinRepository{db: db}
}

// CreateSpin создает запись о спине.
// Частичный уникальный индекс (user_id, spin_date) WHERE NOT cancelled —
// источник истины для правила "один спин в день": при гонке двух запросов
// вставка проигравшего завершается нарушением уникальности
func (r *SpinRepository) CreateSpin(ctx context.Context, record *domain.SpinRecord) (*domain.SpinRecord, error) {
	created := &domain.SpinRecord{}

	err := r.db.QueryRow(ctx,
		`INSERT INTO spin_history (user_id, spin_date, segment_id, segment_label, reward_amount, cost_amount)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, spin_date, segment_id, segment_label, reward_amount, cost_amount, cancelled, created_at`,
		record.UserID, record.SpinDate, record.SegmentID, record.SegmentLabel, record.RewardAmount, record.CostAmount,
	).Scan(&created.ID, &created.UserID, &created.SpinDate, &created.SegmentID, &created.SegmentLabel,
		&created.RewardAmount, &created.CostAmount, &created.Cancelled, &created.CreatedAt)

	if err != nil {
		// Нарушение уникальности — пользователь уже крутил рулетку сегодня
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrAlreadySpunToday
		}
		return nil, fmt.Errorf("repository: failed to create spin for user %d: %w", record.UserID, err)
	}

	return created, nil
}

// HasSpunOn проверяет наличие неотмененного спина пользователя за день.
// Проверка только ускоряет отсев дублей, гонки решает уникальный индекс
func (r *SpinRepository) HasSpunOn(ctx context.Context, userID int64, day time.Time) (bool, error) {
	var exists bool

	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM spin_history
			WHERE user_id = $1 AND spin_date = $2 AND NOT cancelled
		 )`,
		userID, day,
	).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("repository: failed to check spin for user %d: %w", userID, err)
	}

	return exists, nil
}

// GetSpinByID получает спин по идентификатору
func (r *SpinRepository) GetSpinByID(ctx context.Context, id int64) (*domain.SpinRecord, error) {
	record := &domain.SpinRecord{}

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, spin_date, segment_id, segment_label, reward_amount, cost_amount, cancelled, created_at
		 FROM spin_history
		 WHERE id = $1`,
		id,
	).Scan(&record.ID, &record.UserID, &record.SpinDate, &record.SegmentID, &record.SegmentLabel,
		&record.RewardAmount, &record.CostAmount, &record.Cancelled, &record.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSpinNotFound
		}
		return nil, fmt.Errorf("repository: failed to get spin %d: %w", id, err)
	}

	return record, nil
}

// MarkCancelled помечает спин отмененным
func (r *SpinRepository) MarkCancelled(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE spin_history SET cancelled = TRUE WHERE id = $1`,
		id,
	)

	if err != nil {
		return fmt.Errorf("repository: failed to cancel spin %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrSpinNotFound
	}

	return nil
}

// ListSpins получает историю спинов с пагинацией (для админки)
func (r *SpinRepository) ListSpins(ctx context.Context, limit, offset int) ([]*domain.SpinRecord, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM spin_history`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count spins: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, spin_date, segment_id, segment_label, reward_amount, cost_amount, cancelled, created_at
		 FROM spin_history
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to list spins: %w", err)
	}
	defer rows.Close()

	var records []*domain.SpinRecord
	for rows.Next() {
		record := &domain.SpinRecord{}
		err := rows.Scan(&record.ID, &record.UserID, &record.SpinDate, &record.SegmentID, &record.SegmentLabel,
			&record.RewardAmount, &record.CostAmount, &record.Cancelled, &record.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("repository: failed to scan spin: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository: error iterating spins: %w", err)
	}

	return records, total, nil
}

// CountSpinsOn считает неотмененные спины за день (для дашборда)
func (r *SpinRepository) CountSpinsOn(ctx context.Context, day time.Time) (int64, error) {
	var count int64

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM spin_history WHERE spin_date = $1 AND NOT cancelled`,
		day,
	).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("repository: failed to count spins on %s: %w", day.Format("2006-01-02"), err)
	}

	return count, nil
}

// SumRewardsOn считает сумму выданных поинтов за день (для дашборда)
func (r *SpinRepository) SumRewardsOn(ctx context.Context, day time.Time) (int64, error) {
	var total int64

	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(reward_amount), 0) FROM spin_history WHERE spin_date = $1 AND NOT cancelled`,
		day,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("repository: failed to sum rewards on %s: %w", day.Format("2006-01-02"), err)
	}

	return total, nil
}
