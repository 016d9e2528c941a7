package domain

import (
	"context"
	"time"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash, nickname string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context, search string, limit, offset int) ([]*User, int64, error)
	CountUsers(ctx context.Context) (int64, error)
}

// PointRepository определяет методы для работы с историей поинтов
type PointRepository interface {
	ApplyEntryWithLock(ctx context.Context, userID, amount int64, reason PointReason, description string, expiresAt *time.Time) (*PointEntry, error)
	GetRecentHistory(ctx context.Context, userID int64, limit int) ([]*PointEntry, error)
	SumExpiringWithin(ctx context.Context, userID int64, until time.Time) (int64, error)
	FindExpiredEntries(ctx context.Context, now time.Time) ([]*PointEntry, error)
	ClearExpiry(ctx context.Context, entryIDs []int64) error
}

// BudgetRepository определяет методы для работы с бюджетами
type BudgetRepository interface {
	GetBudget(ctx context.Context, periodType PeriodType, periodDate time.Time) (*Budget, error)
	SetLimit(ctx context.Context, periodType PeriodType, periodDate time.Time, limitAmount int64) (*Budget, error)
	TrySpend(ctx context.Context, periodType PeriodType, periodDate time.Time, amount int64) (bool, error)
	Restore(ctx context.Context, periodType PeriodType, periodDate time.Time, amount int64) error
}

// SpinRepository определяет методы для работы с историей спинов
type SpinRepository interface {
	CreateSpin(ctx context.Context, record *SpinRecord) (*SpinRecord, error)
	HasSpunOn(ctx context.Context, userID int64, day time.Time) (bool, error)
	GetSpinByID(ctx context.Context, id int64) (*SpinRecord, error)
	MarkCancelled(ctx context.Context, id int64) error
	ListSpins(ctx context.Context, limit, offset int) ([]*SpinRecord, int64, error)
	CountSpinsOn(ctx context.Context, day time.Time) (int64, error)
	SumRewardsOn(ctx context.Context, day time.Time) (int64, error)
}

// SegmentRepository определяет методы для работы с сегментами рулетки
type SegmentRepository interface {
	ListSegments(ctx context.Context) ([]*Segment, error)
	ReplaceSegments(ctx context.Context, segments []*Segment) ([]*Segment, error)
}

// ProductRepository определяет методы для работы с товарами
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DecrementStock(ctx context.Context, productID int64) (bool, error)
	IncrementStock(ctx context.Context, productID int64) error
	CountProducts(ctx context.Context) (int64, error)
}

// OrderRepository определяет методы для работы с заказами
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) (*Order, error)
	GetOrderByID(ctx context.Context, id int64) (*Order, error)
	ListOrdersByUser(ctx context.Context, userID int64, status *OrderStatus, limit, offset int) ([]*Order, error)
	ListOrders(ctx context.Context, status *OrderStatus, limit, offset int) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) error
	CountOrdersSince(ctx context.Context, since time.Time) (int64, error)
	SumPointCostSince(ctx context.Context, since time.Time) (int64, error)
	CountOrdersByStatus(ctx context.Context) (map[string]int64, error)
}

// AuthService определяет методы аутентификации
type AuthService interface {
	Register(ctx context.Context, email, password, nickname string) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
}

// PointService определяет методы работы с поинтами пользователя
type PointService interface {
	ApplyEntry(ctx context.Context, userID, amount int64, reason PointReason, description string, expiresAt *time.Time) (*PointEntry, error)
	GetSummary(ctx context.Context, userID int64) (*PointSummary, error)
}

// RouletteManager определяет методы работы с рулеткой
type RouletteManager interface {
	Spin(ctx context.Context, userID int64) (*SpinResult, error)
	GetStatus(ctx context.Context, userID int64) (*RouletteStatus, error)
	GetConfig(ctx context.Context) (*RouletteConfig, error)
	GetSpinHistory(ctx context.Context, limit, offset int) ([]*SpinRecord, int64, error)
	ReplaceSegments(ctx context.Context, segments []*Segment) ([]*Segment, error)
	CancelSpin(ctx context.Context, spinID int64) error
}

// BudgetManager определяет методы управления бюджетами
type BudgetManager interface {
	SetLimit(ctx context.Context, periodType PeriodType, periodDate time.Time, limitAmount int64) (*Budget, error)
	GetSummary(ctx context.Context) (*BudgetSummary, error)
}

// UserService определяет методы работы с пользователями
type UserService interface {
	GetUser(ctx context.Context, userID int64) (*User, error)
	ListUsers(ctx context.Context, search string, limit, offset int) ([]*User, int64, error)
}

// ProductService определяет методы работы с каталогом товаров
type ProductService interface {
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error)
	UpdateProduct(ctx context.Context, product *Product) (*Product, error)
}

// OrderService определяет методы работы с заказами
type OrderService interface {
	CreateExchange(ctx context.Context, userID, productID int64) (*Order, error)
	GetMyOrders(ctx context.Context, userID int64, status *OrderStatus, limit, offset int) ([]*Order, error)
	GetAllOrders(ctx context.Context, status *OrderStatus, limit, offset int) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status OrderStatus) (*Order, error)
}

// DashboardService определяет методы админ-дашборда
type DashboardService interface {
	GetSummary(ctx context.Context) (*DashboardSummary, error)
}
