package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/repository/postgres"
)

// DashboardService собирает сводку для админ-дашборда
type DashboardService struct {
	orderRepo   domain.OrderRepository
	userRepo    domain.UserRepository
	productRepo domain.ProductRepository
	budgetRepo  domain.BudgetRepository
	spinRepo    domain.SpinRepository
}

// NewDashboardService создает новый DashboardService
func NewDashboardService(
	orderRepo domain.OrderRepository,
	userRepo domain.UserRepository,
	productRepo domain.ProductRepository,
	budgetRepo domain.BudgetRepository,
	spinRepo domain.SpinRepository,
) *DashboardService {
	return &DashboardService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		budgetRepo:  budgetRepo,
		spinRepo:    spinRepo,
	}
}

// GetSummary собирает сводку за сегодня
func (s *DashboardService) GetSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	now := time.Now()
	today := dateOf(now)

	revenue, err := s.orderRepo.SumPointCostSince(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: failed to sum revenue: %w", err)
	}

	orderCount, err := s.orderRepo.CountOrdersSince(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: failed to count orders: %w", err)
	}

	totalUsers, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: failed to count users: %w", err)
	}

	totalProducts, err := s.productRepo.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: failed to count products: %w", err)
	}

	statusCounts, err := s.orderRepo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: failed to count orders by status: %w", err)
	}

	summary := &domain.DashboardSummary{
		TodayRevenue:      revenue,
		TodayOrderCount:   orderCount,
		TotalUsers:        totalUsers,
		TotalProducts:     totalProducts,
		OrderStatusCounts: statusCounts,
	}

	// Бюджет дня; отсутствие бюджета — нули в сводке
	budget, err := s.budgetRepo.GetBudget(ctx, domain.PeriodTypeDaily, today)
	if err != nil && !errors.Is(err, postgres.ErrBudgetNotFound) {
		return nil, fmt.Errorf("dashboard service: failed to get daily budget: %w", err)
	}
	if budget != nil {
		summary.TodayBudgetLimit = budget.LimitAmount
		summary.TodayBudgetSpent = budget.SpentAmount
		summary.TodayBudgetRemaining = budget.Remaining()
	}

	spinCount, err := s.spinRepo.CountSpinsOn(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: failed to count spins: %w", err)
	}
	summary.TodaySpinCount = spinCount

	distributed, err := s.spinRepo.SumRewardsOn(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("dashboard service: failed to sum rewards: %w", err)
	}
	summary.TodayPointsDistributed = distributed

	return summary, nil
}
