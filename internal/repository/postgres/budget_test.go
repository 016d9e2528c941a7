package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetRepository_GetBudget(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBudgetRepository(mock)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "period_type", "period_date", "limit_amount", "spent_amount"}).
			AddRow(int64(1), domain.PeriodTypeDaily, day, int64(10000), int64(2500))

		mock.ExpectQuery(`SELECT id, period_type, period_date, limit_amount, spent_amount`).
			WithArgs(domain.PeriodTypeDaily, day).
			WillReturnRows(rows)

		budget, err := repo.GetBudget(ctx, domain.PeriodTypeDaily, day)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), budget.LimitAmount)
		assert.Equal(t, int64(7500), budget.Remaining())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Budget not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, period_type, period_date, limit_amount, spent_amount`).
			WithArgs(domain.PeriodTypeDaily, day).
			WillReturnError(pgx.ErrNoRows)

		budget, err := repo.GetBudget(ctx, domain.PeriodTypeDaily, day)
		assert.ErrorIs(t, err, ErrBudgetNotFound)
		assert.Nil(t, budget)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBudgetRepository_SetLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBudgetRepository(mock)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Upsert preserves spent amount", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "period_type", "period_date", "limit_amount", "spent_amount"}).
			AddRow(int64(1), domain.PeriodTypeDaily, day, int64(20000), int64(2500))

		mock.ExpectQuery(`INSERT INTO budgets`).
			WithArgs(domain.PeriodTypeDaily, day, int64(20000)).
			WillReturnRows(rows)

		budget, err := repo.SetLimit(ctx, domain.PeriodTypeDaily, day, 20000)
		require.NoError(t, err)
		assert.Equal(t, int64(20000), budget.LimitAmount)
		assert.Equal(t, int64(2500), budget.SpentAmount)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO budgets`).
			WithArgs(domain.PeriodTypeDaily, day, int64(20000)).
			WillReturnError(errors.New("database error"))

		budget, err := repo.SetLimit(ctx, domain.PeriodTypeDaily, day, 20000)
		assert.Error(t, err)
		assert.Nil(t, budget)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBudgetRepository_TrySpend(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBudgetRepository(mock)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Spend within limit", func(t *testing.T) {
		mock.ExpectExec(`UPDATE budgets`).
			WithArgs(domain.PeriodTypeDaily, day, int64(500)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := repo.TrySpend(ctx, domain.PeriodTypeDaily, day, 500)
		require.NoError(t, err)
		assert.True(t, ok)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Limit exceeded", func(t *testing.T) {
		mock.ExpectExec(`UPDATE budgets`).
			WithArgs(domain.PeriodTypeDaily, day, int64(500)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		ok, err := repo.TrySpend(ctx, domain.PeriodTypeDaily, day, 500)
		require.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(`UPDATE budgets`).
			WithArgs(domain.PeriodTypeDaily, day, int64(500)).
			WillReturnError(errors.New("database error"))

		ok, err := repo.TrySpend(ctx, domain.PeriodTypeDaily, day, 500)
		assert.Error(t, err)
		assert.False(t, ok)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBudgetRepository_Restore(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBudgetRepository(mock)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE budgets`).
		WithArgs(domain.PeriodTypeDaily, day, int64(500)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Restore(ctx, domain.PeriodTypeDaily, day, 500)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
