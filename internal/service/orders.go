package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/repository/postgres"
)

// OrderService реализует обмен поинтов на товары
type OrderService struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	points      PointsLedger
}

// NewOrderService создает новый OrderService
func NewOrderService(orderRepo domain.OrderRepository, productRepo domain.ProductRepository, points PointsLedger) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		points:      points,
	}
}

// CreateExchange создает заказ на обмен поинтов: списывает стоимость
// через леджер, уменьшает остаток атомарным условным UPDATE
func (s *OrderService) CreateExchange(ctx context.Context, userID, productID int64) (*domain.Order, error) {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, postgres.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("order service: failed to get product %d: %w", productID, err)
	}

	if !product.Active || product.Stock <= 0 {
		return nil, ErrProductOutOfStock
	}

	// Списание поинтов до уменьшения остатка
	_, err = s.points.ApplyEntry(ctx, userID, -product.PointCost, domain.PointReasonPurchase,
		fmt.Sprintf("Обмен на товар %q", product.Name), nil)
	if err != nil {
		return nil, err
	}

	// Атомарное уменьшение остатка; при проигрыше гонки возвращаем поинты
	ok, err := s.productRepo.DecrementStock(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to decrement stock for product %d: %w", productID, err)
	}
	if !ok {
		_, refundErr := s.points.ApplyEntry(ctx, userID, product.PointCost, domain.PointReasonRefund,
			fmt.Sprintf("Возврат за товар %q: нет в наличии", product.Name), nil)
		if refundErr != nil {
			return nil, fmt.Errorf("order service: failed to refund points for user %d: %w", userID, refundErr)
		}
		return nil, ErrProductOutOfStock
	}

	order, err := s.orderRepo.CreateOrder(ctx, &domain.Order{
		UserID:      userID,
		ProductID:   product.ID,
		ProductName: product.Name,
		PointCost:   product.PointCost,
	})
	if err != nil {
		return nil, fmt.Errorf("order service: failed to create order for user %d: %w", userID, err)
	}

	return order, nil
}

// GetMyOrders получает заказы пользователя
func (s *OrderService) GetMyOrders(ctx context.Context, userID int64, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.orderRepo.ListOrdersByUser(ctx, userID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to list orders for user %d: %w", userID, err)
	}

	return orders, nil
}

// GetAllOrders получает все заказы (для админки)
func (s *OrderService) GetAllOrders(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.orderRepo.ListOrders(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("order service: failed to list orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus переводит заказ в новый статус с проверкой допустимости.
// Перевод в CANCELLED возвращает поинты и остаток товара
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, postgres.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order service: failed to get order %d: %w", orderID, err)
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("order service: failed to update order %d: %w", orderID, err)
	}

	// Отмена заказа: возврат поинтов и остатка
	if status == domain.OrderStatusCancelled {
		_, err = s.points.ApplyEntry(ctx, order.UserID, order.PointCost, domain.PointReasonRefund,
			fmt.Sprintf("Возврат за отмененный заказ %d", order.ID), nil)
		if err != nil {
			return nil, fmt.Errorf("order service: failed to refund order %d: %w", orderID, err)
		}

		if err := s.productRepo.IncrementStock(ctx, order.ProductID); err != nil {
			return nil, fmt.Errorf("order service: failed to restore stock for order %d: %w", orderID, err)
		}
	}

	order.Status = status
	return order, nil
}
