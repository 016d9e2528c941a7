package domain

import "time"

// Role представляет роль пользователя
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// PointReason представляет причину изменения баланса поинтов
type PointReason string

const (
	PointReasonSignupBonus PointReason = "SIGNUP_BONUS"
	PointReasonLotteryWin  PointReason = "LOTTERY_WIN"
	PointReasonPurchase    PointReason = "PURCHASE"
	PointReasonRefund      PointReason = "REFUND"
	PointReasonAdminAdjust PointReason = "ADMIN_ADJUST"
	PointReasonExpired     PointReason = "EXPIRED"
)

// PeriodType представляет тип бюджетного периода
type PeriodType string

const (
	PeriodTypeDaily   PeriodType = "DAILY"
	PeriodTypeMonthly PeriodType = "MONTHLY"
)

// OrderStatus представляет статус заказа
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// CanTransitionTo проверяет допустимость перехода статуса заказа
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	var allowed []OrderStatus

	switch s {
	case OrderStatusPending:
		allowed = []OrderStatus{OrderStatusConfirmed, OrderStatusCancelled}
	case OrderStatusConfirmed:
		allowed = []OrderStatus{OrderStatusShipped, OrderStatusCancelled}
	case OrderStatusShipped:
		allowed = []OrderStatus{OrderStatusCompleted}
	case OrderStatusCompleted, OrderStatusCancelled:
		// Терминальные статусы
	}

	for _, st := range allowed {
		if st == next {
			return true
		}
	}
	return false
}

// User представляет пользователя системы
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Не отправляем хеш в JSON
	Nickname     string    `json:"nickname"`
	Points       int64     `json:"points"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// PointEntry представляет одну запись в истории поинтов
type PointEntry struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"-"`
	Amount      int64       `json:"amount"`
	Reason      PointReason `json:"reason"`
	Description string      `json:"description"`
	ExpiresAt   *time.Time  `json:"expires_at,omitempty"` // nil — не истекает или уже обработана
	CreatedAt   time.Time   `json:"created_at"`
}

// PointSummary представляет сводку по поинтам пользователя
type PointSummary struct {
	CurrentPoints int64         `json:"current_points"`
	ExpiringSoon  int64         `json:"expiring_soon"`
	History       []*PointEntry `json:"history"`
}

// Budget представляет бюджет на период (день или месяц)
type Budget struct {
	ID          int64      `json:"id"`
	PeriodType  PeriodType `json:"period_type"`
	PeriodDate  time.Time  `json:"period_date"`
	LimitAmount int64      `json:"limit_amount"`
	SpentAmount int64      `json:"spent_amount"`
}

// Remaining возвращает остаток бюджета
func (b *Budget) Remaining() int64 {
	return b.LimitAmount - b.SpentAmount
}

// Segment представляет сегмент рулетки с весом выпадения
type Segment struct {
	ID           int64  `json:"id"`
	Label        string `json:"label"`
	RewardAmount int64  `json:"reward_amount"` // 0 — проигрышный сегмент
	Weight       int64  `json:"weight"`
	DisplayOrder int    `json:"display_order"`
}

// SpinRecord представляет одну попытку вращения рулетки
type SpinRecord struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	SpinDate     time.Time `json:"spin_date"`
	SegmentID    int64     `json:"segment_id"`
	SegmentLabel string    `json:"segment_label"`
	RewardAmount int64     `json:"reward_amount"`
	CostAmount   int64     `json:"cost_amount"`
	Cancelled    bool      `json:"cancelled"`
	CreatedAt    time.Time `json:"created_at"`
}

// SpinResult представляет результат вращения рулетки
type SpinResult struct {
	RewardAmount    int64 `json:"reward_amount"`
	RemainingPoints int64 `json:"remaining_points"`
}

// RouletteStatus представляет состояние рулетки для пользователя
type RouletteStatus struct {
	HasSpunToday         bool  `json:"has_spun_today"`
	DailyBudgetRemaining int64 `json:"daily_budget_remaining"` // -1 если бюджет не задан
	SpinCost             int64 `json:"spin_cost"`
}

// RouletteConfig представляет публичную конфигурацию рулетки
type RouletteConfig struct {
	SpinCost int64      `json:"spin_cost"`
	Segments []*Segment `json:"segments"`
}

// Product представляет товар каталога
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
	PointCost int64     `json:"point_cost"`
	Stock     int64     `json:"stock"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Order представляет заказ на обмен поинтов
type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	ProductID   int64       `json:"product_id"`
	ProductName string      `json:"product_name"`
	PointCost   int64       `json:"point_cost"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// BudgetSummary представляет сводку по бюджетам (сегодня и текущий месяц)
type BudgetSummary struct {
	Daily   *Budget `json:"daily,omitempty"`
	Monthly *Budget `json:"monthly,omitempty"`
}

// DashboardSummary представляет сводку для админ-дашборда
type DashboardSummary struct {
	TodayRevenue           int64            `json:"today_revenue"`
	TodayOrderCount        int64            `json:"today_order_count"`
	TotalUsers             int64            `json:"total_users"`
	TotalProducts          int64            `json:"total_products"`
	OrderStatusCounts      map[string]int64 `json:"order_status_counts"`
	TodayBudgetLimit       int64            `json:"today_budget_limit"`
	TodayBudgetSpent       int64            `json:"today_budget_spent"`
	TodayBudgetRemaining   int64            `json:"today_budget_remaining"`
	TodaySpinCount         int64            `json:"today_spin_count"`
	TodayPointsDistributed int64            `json:"today_points_distributed"`
}
