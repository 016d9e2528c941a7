package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/jackc/pgx/v5"
)

// OrderRepository реализует domain.OrderRepository
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository создает новый OrderRepository
func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder создает новый заказ
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	created := &domain.Order{}

	err := r.db.QueryRow(ctx,
		`INSERT INTO orders (user_id, product_id, product_name, point_cost, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, product_id, product_name, point_cost, status, created_at`,
		order.UserID, order.ProductID, order.ProductName, order.PointCost, domain.OrderStatusPending,
	).Scan(&created.ID, &created.UserID, &created.ProductID, &created.ProductName, &created.PointCost, &created.Status, &created.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to create order for user %d: %w", order.UserID, err)
	}

	return created, nil
}

// GetOrderByID получает заказ по ID
func (r *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	order := &domain.Order{}

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, product_id, product_name, point_cost, status, created_at
		 FROM orders
		 WHERE id = $1`,
		id,
	).Scan(&order.ID, &order.UserID, &order.ProductID, &order.ProductName, &order.PointCost, &order.Status, &order.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to get order %d: %w", id, err)
	}

	return order, nil
}

// ListOrdersByUser получает заказы пользователя с опциональным фильтром по статусу
func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID int64, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	query := `SELECT id, user_id, product_id, product_name, point_cost, status, created_at
		 FROM orders
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`
	args := []any{userID, limit, offset}

	if status != nil {
		query = `SELECT id, user_id, product_id, product_name, point_cost, status, created_at
		 FROM orders
		 WHERE user_id = $1 AND status = $4
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`
		args = append(args, *status)
	}

	return r.queryOrders(ctx, query, args...)
}

// ListOrders получает все заказы с опциональным фильтром по статусу (для админки)
func (r *OrderRepository) ListOrders(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	query := `SELECT id, user_id, product_id, product_name, point_cost, status, created_at
		 FROM orders
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`
	args := []any{limit, offset}

	if status != nil {
		query = `SELECT id, user_id, product_id, product_name, point_cost, status, created_at
		 FROM orders
		 WHERE status = $3
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`
		args = append(args, *status)
	}

	return r.queryOrders(ctx, query, args...)
}

// queryOrders выполняет запрос и сканирует список заказов
func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(&order.ID, &order.UserID, &order.ProductID, &order.ProductName, &order.PointCost, &order.Status, &order.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus обновляет статус заказа
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`,
		id, status,
	)

	if err != nil {
		return fmt.Errorf("repository: failed to update order %d status: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// CountOrdersSince считает заказы с указанного момента (для дашборда)
func (r *OrderRepository) CountOrdersSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE created_at >= $1`,
		since,
	).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("repository: failed to count orders: %w", err)
	}

	return count, nil
}

// SumPointCostSince считает оборот поинтов по заказам с указанного момента
func (r *OrderRepository) SumPointCostSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64

	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(point_cost), 0) FROM orders WHERE created_at >= $1 AND status != $2`,
		since, domain.OrderStatusCancelled,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("repository: failed to sum order point cost: %w", err)
	}

	return total, nil
}

// CountOrdersByStatus считает заказы по статусам (для дашборда)
func (r *OrderRepository) CountOrdersByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to count orders by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("repository: failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating status counts: %w", err)
	}

	return counts, nil
}
