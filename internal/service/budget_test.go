package service

import (
	"context"
	"testing"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetService_SetLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("Daily date truncated to midnight", func(t *testing.T) {
		var gotDate time.Time
		budgetRepo := &stubBudgetRepo{
			setLimit: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, limitAmount int64) (*domain.Budget, error) {
				gotDate = periodDate
				return &domain.Budget{PeriodType: periodType, PeriodDate: periodDate, LimitAmount: limitAmount}, nil
			},
		}

		svc := NewBudgetService(budgetRepo)

		noon := time.Date(2024, 6, 15, 12, 30, 45, 0, time.UTC)
		budget, err := svc.SetLimit(ctx, domain.PeriodTypeDaily, noon, 10000)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), gotDate)
		assert.Equal(t, int64(10000), budget.LimitAmount)
	})

	t.Run("Monthly date pinned to first day", func(t *testing.T) {
		var gotDate time.Time
		budgetRepo := &stubBudgetRepo{
			setLimit: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, limitAmount int64) (*domain.Budget, error) {
				gotDate = periodDate
				return &domain.Budget{}, nil
			},
		}

		svc := NewBudgetService(budgetRepo)

		_, err := svc.SetLimit(ctx, domain.PeriodTypeMonthly, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC), 300000)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), gotDate)
	})

	t.Run("Unknown period type", func(t *testing.T) {
		svc := NewBudgetService(&stubBudgetRepo{})

		budget, err := svc.SetLimit(ctx, domain.PeriodType("WEEKLY"), time.Now(), 100)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, budget)
	})

	t.Run("Negative limit", func(t *testing.T) {
		svc := NewBudgetService(&stubBudgetRepo{})

		budget, err := svc.SetLimit(ctx, domain.PeriodTypeDaily, time.Now(), -1)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, budget)
	})
}

func TestBudgetService_CheckAndSpendDaily(t *testing.T) {
	ctx := context.Background()

	t.Run("No budget configured means no limit", func(t *testing.T) {
		budgetRepo := &stubBudgetRepo{
			getBudget: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time) (*domain.Budget, error) {
				return nil, postgres.ErrBudgetNotFound
			},
			trySpend: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, amount int64) (bool, error) {
				t.Fatal("TrySpend must not be called when budget is unset")
				return false, nil
			},
		}

		svc := NewBudgetService(budgetRepo)

		err := svc.CheckAndSpendDaily(ctx, 500)
		assert.NoError(t, err)
	})

	t.Run("Spend within limit", func(t *testing.T) {
		budgetRepo := &stubBudgetRepo{
			getBudget: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time) (*domain.Budget, error) {
				return &domain.Budget{LimitAmount: 10000, SpentAmount: 0}, nil
			},
			trySpend: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, amount int64) (bool, error) {
				assert.Equal(t, int64(500), amount)
				return true, nil
			},
		}

		svc := NewBudgetService(budgetRepo)

		err := svc.CheckAndSpendDaily(ctx, 500)
		assert.NoError(t, err)
	})

	t.Run("Budget exhausted", func(t *testing.T) {
		budgetRepo := &stubBudgetRepo{
			getBudget: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time) (*domain.Budget, error) {
				return &domain.Budget{LimitAmount: 10000, SpentAmount: 9800}, nil
			},
			trySpend: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, amount int64) (bool, error) {
				return false, nil
			},
		}

		svc := NewBudgetService(budgetRepo)

		err := svc.CheckAndSpendDaily(ctx, 500)
		assert.ErrorIs(t, err, ErrBudgetExceeded)
	})
}

func TestBudgetService_DailyRemaining(t *testing.T) {
	ctx := context.Background()

	t.Run("Budget set", func(t *testing.T) {
		budgetRepo := &stubBudgetRepo{
			getBudget: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time) (*domain.Budget, error) {
				return &domain.Budget{LimitAmount: 10000, SpentAmount: 2500}, nil
			},
		}

		svc := NewBudgetService(budgetRepo)

		remaining, err := svc.DailyRemaining(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(7500), remaining)
	})

	t.Run("Budget unset reports -1", func(t *testing.T) {
		budgetRepo := &stubBudgetRepo{
			getBudget: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time) (*domain.Budget, error) {
				return nil, postgres.ErrBudgetNotFound
			},
		}

		svc := NewBudgetService(budgetRepo)

		remaining, err := svc.DailyRemaining(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(-1), remaining)
	})
}

func TestBudgetService_RestoreDaily(t *testing.T) {
	ctx := context.Background()

	var gotDate time.Time
	var gotAmount int64
	budgetRepo := &stubBudgetRepo{
		restore: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, amount int64) error {
			assert.Equal(t, domain.PeriodTypeDaily, periodType)
			gotDate = periodDate
			gotAmount = amount
			return nil
		},
	}

	svc := NewBudgetService(budgetRepo)

	spinDay := time.Date(2024, 6, 15, 18, 45, 0, 0, time.UTC)
	err := svc.RestoreDaily(ctx, 500, spinDay)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), gotDate)
	assert.Equal(t, int64(500), gotAmount)
}

func TestBudgetService_GetSummary(t *testing.T) {
	ctx := context.Background()

	budgetRepo := &stubBudgetRepo{
		getBudget: func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time) (*domain.Budget, error) {
			if periodType == domain.PeriodTypeDaily {
				return &domain.Budget{PeriodType: periodType, LimitAmount: 10000}, nil
			}
			// Месячный бюджет не задан
			return nil, postgres.ErrBudgetNotFound
		},
	}

	svc := NewBudgetService(budgetRepo)

	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	require.NotNil(t, summary.Daily)
	assert.Equal(t, int64(10000), summary.Daily.LimitAmount)
	assert.Nil(t, summary.Monthly)
}
