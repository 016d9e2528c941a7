package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/repository/postgres"
)

// BudgetService управляет бюджетами на выплаты наград
type BudgetService struct {
	budgetRepo domain.BudgetRepository
}

// NewBudgetService создает новый BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
	}
}

// SetLimit создает бюджет периода или обновляет его лимит
func (s *BudgetService) SetLimit(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, limitAmount int64) (*domain.Budget, error) {
	if periodType != domain.PeriodTypeDaily && periodType != domain.PeriodTypeMonthly {
		return nil, fmt.Errorf("budget service: %w: unknown period type %q", ErrInvalidInput, periodType)
	}
	if limitAmount < 0 {
		return nil, fmt.Errorf("budget service: %w: negative limit %d", ErrInvalidInput, limitAmount)
	}

	// Месячный бюджет привязываем к первому дню месяца
	periodDate = normalizePeriodDate(periodType, periodDate)

	budget, err := s.budgetRepo.SetLimit(ctx, periodType, periodDate, limitAmount)
	if err != nil {
		return nil, fmt.Errorf("budget service: failed to set limit: %w", err)
	}

	return budget, nil
}

// GetSummary получает бюджеты на сегодня и на текущий месяц
func (s *BudgetService) GetSummary(ctx context.Context) (*domain.BudgetSummary, error) {
	now := time.Now()
	today := dateOf(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	summary := &domain.BudgetSummary{}

	daily, err := s.budgetRepo.GetBudget(ctx, domain.PeriodTypeDaily, today)
	if err != nil && !errors.Is(err, postgres.ErrBudgetNotFound) {
		return nil, fmt.Errorf("budget service: failed to get daily budget: %w", err)
	}
	summary.Daily = daily

	monthly, err := s.budgetRepo.GetBudget(ctx, domain.PeriodTypeMonthly, monthStart)
	if err != nil && !errors.Is(err, postgres.ErrBudgetNotFound) {
		return nil, fmt.Errorf("budget service: failed to get monthly budget: %w", err)
	}
	summary.Monthly = monthly

	return summary, nil
}

// DailyRemaining получает остаток дневного бюджета; -1 если бюджет не задан
func (s *BudgetService) DailyRemaining(ctx context.Context) (int64, error) {
	budget, err := s.budgetRepo.GetBudget(ctx, domain.PeriodTypeDaily, dateOf(time.Now()))
	if err != nil {
		// Бюджет не задан — лимит не применяется
		if errors.Is(err, postgres.ErrBudgetNotFound) {
			return -1, nil
		}
		return 0, fmt.Errorf("budget service: failed to get daily budget: %w", err)
	}

	return budget.Remaining(), nil
}

// CheckAndSpendDaily атомарно резервирует сумму из дневного бюджета.
// Отсутствие бюджета трактуется как отсутствие лимита — явная ветка,
// отличная от исчерпания бюджета
func (s *BudgetService) CheckAndSpendDaily(ctx context.Context, amount int64) error {
	today := dateOf(time.Now())

	_, err := s.budgetRepo.GetBudget(ctx, domain.PeriodTypeDaily, today)
	if err != nil {
		// Бюджет не задан — траты не ограничены
		if errors.Is(err, postgres.ErrBudgetNotFound) {
			return nil
		}
		return fmt.Errorf("budget service: failed to get daily budget: %w", err)
	}

	ok, err := s.budgetRepo.TrySpend(ctx, domain.PeriodTypeDaily, today, amount)
	if err != nil {
		return fmt.Errorf("budget service: failed to spend daily budget: %w", err)
	}
	if !ok {
		return ErrBudgetExceeded
	}

	return nil
}

// RestoreDaily возвращает сумму в дневной бюджет указанного дня
func (s *BudgetService) RestoreDaily(ctx context.Context, amount int64, day time.Time) error {
	if err := s.budgetRepo.Restore(ctx, domain.PeriodTypeDaily, dateOf(day), amount); err != nil {
		return fmt.Errorf("budget service: failed to restore daily budget: %w", err)
	}
	return nil
}

// dateOf обрезает время до начала дня
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// normalizePeriodDate приводит дату периода к каноническому началу
func normalizePeriodDate(periodType domain.PeriodType, t time.Time) time.Time {
	if periodType == domain.PeriodTypeMonthly {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	return dateOf(t)
}
