package service

import (
	"context"
	"time"

	"github.com/avc/point-roulette/internal/domain"
)

// Стабы репозиториев на функциях: в тесте задаются только нужные методы

type stubUserRepo struct {
	createUser     func(ctx context.Context, email, passwordHash, nickname string) (*domain.User, error)
	getUserByEmail func(ctx context.Context, email string) (*domain.User, error)
	getUserByID    func(ctx context.Context, id int64) (*domain.User, error)
	listUsers      func(ctx context.Context, search string, limit, offset int) ([]*domain.User, int64, error)
	countUsers     func(ctx context.Context) (int64, error)
}

func (s *stubUserRepo) CreateUser(ctx context.Context, email, passwordHash, nickname string) (*domain.User, error) {
	return s.createUser(ctx, email, passwordHash, nickname)
}

func (s *stubUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUserByEmail(ctx, email)
}

func (s *stubUserRepo) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.getUserByID(ctx, id)
}

func (s *stubUserRepo) ListUsers(ctx context.Context, search string, limit, offset int) ([]*domain.User, int64, error) {
	return s.listUsers(ctx, search, limit, offset)
}

func (s *stubUserRepo) CountUsers(ctx context.Context) (int64, error) {
	return s.countUsers(ctx)
}

type stubPointRepo struct {
	applyEntryWithLock func(ctx context.Context, userID, amount int64, reason domain.PointReason, description string, expiresAt *time.Time) (*domain.PointEntry, error)
	getRecentHistory   func(ctx context.Context, userID int64, limit int) ([]*domain.PointEntry, error)
	sumExpiringWithin  func(ctx context.Context, userID int64, until time.Time) (int64, error)
	findExpiredEntries func(ctx context.Context, now time.Time) ([]*domain.PointEntry, error)
	clearExpiry        func(ctx context.Context, entryIDs []int64) error
}

func (s *stubPointRepo) ApplyEntryWithLock(ctx context.Context, userID, amount int64, reason domain.PointReason, description string, expiresAt *time.Time) (*domain.PointEntry, error) {
	return s.applyEntryWithLock(ctx, userID, amount, reason, description, expiresAt)
}

func (s *stubPointRepo) GetRecentHistory(ctx context.Context, userID int64, limit int) ([]*domain.PointEntry, error) {
	return s.getRecentHistory(ctx, userID, limit)
}

func (s *stubPointRepo) SumExpiringWithin(ctx context.Context, userID int64, until time.Time) (int64, error) {
	return s.sumExpiringWithin(ctx, userID, until)
}

func (s *stubPointRepo) FindExpiredEntries(ctx context.Context, now time.Time) ([]*domain.PointEntry, error) {
	return s.findExpiredEntries(ctx, now)
}

func (s *stubPointRepo) ClearExpiry(ctx context.Context, entryIDs []int64) error {
	return s.clearExpiry(ctx, entryIDs)
}

type stubBudgetRepo struct {
	getBudget func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time) (*domain.Budget, error)
	setLimit  func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, limitAmount int64) (*domain.Budget, error)
	trySpend  func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, amount int64) (bool, error)
	restore   func(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, amount int64) error
}

func (s *stubBudgetRepo) GetBudget(ctx context.Context, periodType domain.PeriodType, periodDate time.Time) (*domain.Budget, error) {
	return s.getBudget(ctx, periodType, periodDate)
}

func (s *stubBudgetRepo) SetLimit(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, limitAmount int64) (*domain.Budget, error) {
	return s.setLimit(ctx, periodType, periodDate, limitAmount)
}

func (s *stubBudgetRepo) TrySpend(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, amount int64) (bool, error) {
	return s.trySpend(ctx, periodType, periodDate, amount)
}

func (s *stubBudgetRepo) Restore(ctx context.Context, periodType domain.PeriodType, periodDate time.Time, amount int64) error {
	return s.restore(ctx, periodType, periodDate, amount)
}

type stubSpinRepo struct {
	createSpin    func(ctx context.Context, record *domain.SpinRecord) (*domain.SpinRecord, error)
	hasSpunOn     func(ctx context.Context, userID int64, day time.Time) (bool, error)
	getSpinByID   func(ctx context.Context, id int64) (*domain.SpinRecord, error)
	markCancelled func(ctx context.Context, id int64) error
	listSpins     func(ctx context.Context, limit, offset int) ([]*domain.SpinRecord, int64, error)
	countSpinsOn  func(ctx context.Context, day time.Time) (int64, error)
	sumRewardsOn  func(ctx context.Context, day time.Time) (int64, error)
}

func (s *stubSpinRepo) CreateSpin(ctx context.Context, record *domain.SpinRecord) (*domain.SpinRecord, error) {
	return s.createSpin(ctx, record)
}

func (s *stubSpinRepo) HasSpunOn(ctx context.Context, userID int64, day time.Time) (bool, error) {
	return s.hasSpunOn(ctx, userID, day)
}

func (s *stubSpinRepo) GetSpinByID(ctx context.Context, id int64) (*domain.SpinRecord, error) {
	return s.getSpinByID(ctx, id)
}

func (s *stubSpinRepo) MarkCancelled(ctx context.Context, id int64) error {
	return s.markCancelled(ctx, id)
}

func (s *stubSpinRepo) ListSpins(ctx context.Context, limit, offset int) ([]*domain.SpinRecord, int64, error) {
	return s.listSpins(ctx, limit, offset)
}

func (s *stubSpinRepo) CountSpinsOn(ctx context.Context, day time.Time) (int64, error) {
	return s.countSpinsOn(ctx, day)
}

func (s *stubSpinRepo) SumRewardsOn(ctx context.Context, day time.Time) (int64, error) {
	return s.sumRewardsOn(ctx, day)
}

type stubSegmentRepo struct {
	listSegments    func(ctx context.Context) ([]*domain.Segment, error)
	replaceSegments func(ctx context.Context, segments []*domain.Segment) ([]*domain.Segment, error)
}

func (s *stubSegmentRepo) ListSegments(ctx context.Context) ([]*domain.Segment, error) {
	return s.listSegments(ctx)
}

func (s *stubSegmentRepo) ReplaceSegments(ctx context.Context, segments []*domain.Segment) ([]*domain.Segment, error) {
	return s.replaceSegments(ctx, segments)
}

type stubProductRepo struct {
	createProduct  func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	getProductByID func(ctx context.Context, id int64) (*domain.Product, error)
	listProducts   func(ctx context.Context, activeOnly bool) ([]*domain.Product, error)
	updateProduct  func(ctx context.Context, product *domain.Product) error
	decrementStock func(ctx context.Context, productID int64) (bool, error)
	incrementStock func(ctx context.Context, productID int64) error
	countProducts  func(ctx context.Context) (int64, error)
}

func (s *stubProductRepo) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return s.createProduct(ctx, product)
}

func (s *stubProductRepo) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.getProductByID(ctx, id)
}

func (s *stubProductRepo) ListProducts(ctx context.Context, activeOnly bool) ([]*domain.Product, error) {
	return s.listProducts(ctx, activeOnly)
}

func (s *stubProductRepo) UpdateProduct(ctx context.Context, product *domain.Product) error {
	return s.updateProduct(ctx, product)
}

func (s *stubProductRepo) DecrementStock(ctx context.Context, productID int64) (bool, error) {
	return s.decrementStock(ctx, productID)
}

func (s *stubProductRepo) IncrementStock(ctx context.Context, productID int64) error {
	return s.incrementStock(ctx, productID)
}

func (s *stubProductRepo) CountProducts(ctx context.Context) (int64, error) {
	return s.countProducts(ctx)
}

type stubOrderRepo struct {
	createOrder        func(ctx context.Context, order *domain.Order) (*domain.Order, error)
	getOrderByID       func(ctx context.Context, id int64) (*domain.Order, error)
	listOrdersByUser   func(ctx context.Context, userID int64, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	listOrders         func(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	updateOrderStatus  func(ctx context.Context, id int64, status domain.OrderStatus) error
	countOrdersSince   func(ctx context.Context, since time.Time) (int64, error)
	sumPointCostSince  func(ctx context.Context, since time.Time) (int64, error)
	countOrdersByState func(ctx context.Context) (map[string]int64, error)
}

func (s *stubOrderRepo) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	return s.createOrder(ctx, order)
}

func (s *stubOrderRepo) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.getOrderByID(ctx, id)
}

func (s *stubOrderRepo) ListOrdersByUser(ctx context.Context, userID int64, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	return s.listOrdersByUser(ctx, userID, status, limit, offset)
}

func (s *stubOrderRepo) ListOrders(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	return s.listOrders(ctx, status, limit, offset)
}

func (s *stubOrderRepo) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	return s.updateOrderStatus(ctx, id, status)
}

func (s *stubOrderRepo) CountOrdersSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countOrdersSince(ctx, since)
}

func (s *stubOrderRepo) SumPointCostSince(ctx context.Context, since time.Time) (int64, error) {
	return s.sumPointCostSince(ctx, since)
}

func (s *stubOrderRepo) CountOrdersByStatus(ctx context.Context) (map[string]int64, error) {
	return s.countOrdersByState(ctx)
}

// ledgerCall фиксирует одно обращение к леджеру
type ledgerCall struct {
	userID int64
	amount int64
	reason domain.PointReason
}

// recordingLedger собирает все обращения для проверки порядка и сумм
type recordingLedger struct {
	calls []ledgerCall
	err   error
}

func (r *recordingLedger) ApplyEntry(ctx context.Context, userID, amount int64, reason domain.PointReason, description string, expiresAt *time.Time) (*domain.PointEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.calls = append(r.calls, ledgerCall{userID: userID, amount: amount, reason: reason})
	return &domain.PointEntry{UserID: userID, Amount: amount, Reason: reason}, nil
}

// stubBudgetGate реализует BudgetGate
type stubBudgetGate struct {
	checkAndSpendDaily func(ctx context.Context, amount int64) error
	restoreDaily       func(ctx context.Context, amount int64, day time.Time) error
	dailyRemaining     func(ctx context.Context) (int64, error)
}

func (s *stubBudgetGate) CheckAndSpendDaily(ctx context.Context, amount int64) error {
	return s.checkAndSpendDaily(ctx, amount)
}

func (s *stubBudgetGate) RestoreDaily(ctx context.Context, amount int64, day time.Time) error {
	return s.restoreDaily(ctx, amount, day)
}

func (s *stubBudgetGate) DailyRemaining(ctx context.Context) (int64, error) {
	return s.dailyRemaining(ctx)
}

// stubHasher реализует password.Hasher без настоящего bcrypt
type stubHasher struct {
	hashErr  error
	checkErr error
}

func (s *stubHasher) Hash(password string) (string, error) {
	if s.hashErr != nil {
		return "", s.hashErr
	}
	return "hashed:" + password, nil
}

func (s *stubHasher) Check(hash, password string) error {
	return s.checkErr
}
