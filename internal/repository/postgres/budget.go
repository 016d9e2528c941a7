package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/jackc/pgx/v5"
)

// BudgetRepository реализует domain.BudgetRepository
type BudgetRepository struct {
	db DBTX
}

// NewBudgetRepository создает новый BudgetRepository
func NewBudgetRepository(db DBTX) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// GetBudget получает бюджет на период; отсутствие бюджета — ErrBudgetNotFound
func (r *BudgetRepository) GetBudget(ctx context.Context, periodType domain.PeriodType, periodDate time.Time) (*domain.Budget, error) {
	budget := &domain.Budget{}

	err := r.db.QueryRow(ctx,
		`SELECT id, period_type, period_date, limit_amount, spent_amount
		 FROM budgets
		 WHERE period_type = $1 AND period_date = $2`,
		periodType, periodDate,
	).Scan(&budget.ID, &budget.PeriodType, &budget.PeriodDate, &budget.LimitAmount, &budget.SpentAmount)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("repository: failed to get budget %s/%s: %w", periodType, periodDate.Format("2006-01-02"), err)
	}

	return budget, nil
}

// SetLimit создает бюджет или обновляет лимит существующего.
// При обновлении spent_amount сохраняется
func (r *BudgetRepository) SetLimit(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, limitAmount int64) (*domain.Budget, error) {
	budget := &domain.Budget{}

	err := r.db.QueryRow(ctx,
		`INSERT INTO budgets (period_type, period_date, limit_amount, spent_amount)
		 VALUES ($1, $2, $3, 0)
		 ON CONFLICT (period_type, period_date)
		 DO UPDATE SET limit_amount = EXCLUDED.limit_amount
		 RETURNING id, period_type, period_date, limit_amount, spent_amount`,
		periodType, periodDate, limitAmount,
	).Scan(&budget.ID, &budget.PeriodType, &budget.PeriodDate, &budget.LimitAmount, &budget.SpentAmount)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to set budget limit %s/%s: %w", periodType, periodDate.Format("2006-01-02"), err)
	}

	return budget, nil
}

// TrySpend атомарно резервирует сумму из бюджета.
// Условие проверяется самим UPDATE, поэтому параллельные спины не могут
// совместно превысить лимит: кто не успел — получает rows affected = 0
func (r *BudgetRepository) TrySpend(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, amount int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE budgets
		 SET spent_amount = spent_amount + $3
		 WHERE period_type = $1 AND period_date = $2 AND spent_amount + $3 <= limit_amount`,
		periodType, periodDate, amount,
	)

	if err != nil {
		return false, fmt.Errorf("repository: failed to spend budget %s/%s: %w", periodType, periodDate.Format("2006-01-02"), err)
	}

	return tag.RowsAffected() > 0, nil
}

// Restore возвращает сумму в бюджет (используется при отмене спина).
// Не опускает spent_amount ниже нуля
func (r *BudgetRepository) Restore(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, amount int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE budgets
		 SET spent_amount = GREATEST(spent_amount - $3, 0)
		 WHERE period_type = $1 AND period_date = $2`,
		periodType, periodDate, amount,
	)

	if err != nil {
		return fmt.Errorf("repository: failed to restore budget %s/%s: %w", periodType, periodDate.Format("2006-01-02"), err)
	}

	return nil
}
