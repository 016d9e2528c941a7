package service

import (
	"context"
	"testing"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeProduct() *domain.Product {
	return &domain.Product{ID: 2, Name: "Кружка", PointCost: 1500, Stock: 10, Active: true}
}

func TestOrderService_CreateExchange(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		productRepo := &stubProductRepo{
			getProductByID: func(ctx context.Context, id int64) (*domain.Product, error) { return activeProduct(), nil },
			decrementStock: func(ctx context.Context, productID int64) (bool, error) { return true, nil },
		}
		orderRepo := &stubOrderRepo{
			createOrder: func(ctx context.Context, order *domain.Order) (*domain.Order, error) {
				order.ID = 5
				order.Status = domain.OrderStatusPending
				return order, nil
			},
		}
		ledger := &recordingLedger{}

		svc := NewOrderService(orderRepo, productRepo, ledger)

		order, err := svc.CreateExchange(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(5), order.ID)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Equal(t, "Кружка", order.ProductName)

		require.Len(t, ledger.calls, 1)
		assert.Equal(t, int64(-1500), ledger.calls[0].amount)
		assert.Equal(t, domain.PointReasonPurchase, ledger.calls[0].reason)
	})

	t.Run("Product not found", func(t *testing.T) {
		productRepo := &stubProductRepo{
			getProductByID: func(ctx context.Context, id int64) (*domain.Product, error) {
				return nil, postgres.ErrProductNotFound
			},
		}

		svc := NewOrderService(&stubOrderRepo{}, productRepo, &recordingLedger{})

		order, err := svc.CreateExchange(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Nil(t, order)
	})

	t.Run("Inactive product", func(t *testing.T) {
		product := activeProduct()
		product.Active = false
		productRepo := &stubProductRepo{
			getProductByID: func(ctx context.Context, id int64) (*domain.Product, error) { return product, nil },
		}

		svc := NewOrderService(&stubOrderRepo{}, productRepo, &recordingLedger{})

		order, err := svc.CreateExchange(ctx, 1, 2)
		assert.ErrorIs(t, err, ErrProductOutOfStock)
		assert.Nil(t, order)
	})

	t.Run("Insufficient points", func(t *testing.T) {
		productRepo := &stubProductRepo{
			getProductByID: func(ctx context.Context, id int64) (*domain.Product, error) { return activeProduct(), nil },
		}
		ledger := &recordingLedger{err: ErrInsufficientPoints}

		svc := NewOrderService(&stubOrderRepo{}, productRepo, ledger)

		order, err := svc.CreateExchange(ctx, 1, 2)
		assert.ErrorIs(t, err, ErrInsufficientPoints)
		assert.Nil(t, order)
	})

	t.Run("Stock race lost refunds points", func(t *testing.T) {
		productRepo := &stubProductRepo{
			getProductByID: func(ctx context.Context, id int64) (*domain.Product, error) { return activeProduct(), nil },
			decrementStock: func(ctx context.Context, productID int64) (bool, error) { return false, nil },
		}
		ledger := &recordingLedger{}

		svc := NewOrderService(&stubOrderRepo{}, productRepo, ledger)

		order, err := svc.CreateExchange(ctx, 1, 2)
		assert.ErrorIs(t, err, ErrProductOutOfStock)
		assert.Nil(t, order)

		// Списание, затем компенсирующий возврат
		require.Len(t, ledger.calls, 2)
		assert.Equal(t, int64(-1500), ledger.calls[0].amount)
		assert.Equal(t, int64(1500), ledger.calls[1].amount)
		assert.Equal(t, domain.PointReasonRefund, ledger.calls[1].reason)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	pendingOrder := func() *domain.Order {
		return &domain.Order{ID: 5, UserID: 1, ProductID: 2, ProductName: "Кружка", PointCost: 1500, Status: domain.OrderStatusPending}
	}

	t.Run("Valid transition", func(t *testing.T) {
		orderRepo := &stubOrderRepo{
			getOrderByID: func(ctx context.Context, id int64) (*domain.Order, error) { return pendingOrder(), nil },
			updateOrderStatus: func(ctx context.Context, id int64, status domain.OrderStatus) error {
				assert.Equal(t, domain.OrderStatusConfirmed, status)
				return nil
			},
		}

		svc := NewOrderService(orderRepo, &stubProductRepo{}, &recordingLedger{})

		order, err := svc.UpdateStatus(ctx, 5, domain.OrderStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	})

	t.Run("Invalid transition", func(t *testing.T) {
		completed := pendingOrder()
		completed.Status = domain.OrderStatusCompleted
		orderRepo := &stubOrderRepo{
			getOrderByID: func(ctx context.Context, id int64) (*domain.Order, error) { return completed, nil },
		}

		svc := NewOrderService(orderRepo, &stubProductRepo{}, &recordingLedger{})

		order, err := svc.UpdateStatus(ctx, 5, domain.OrderStatusPending)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
		assert.Nil(t, order)
	})

	t.Run("Cancellation refunds points and stock", func(t *testing.T) {
		var stockRestored bool
		orderRepo := &stubOrderRepo{
			getOrderByID:      func(ctx context.Context, id int64) (*domain.Order, error) { return pendingOrder(), nil },
			updateOrderStatus: func(ctx context.Context, id int64, status domain.OrderStatus) error { return nil },
		}
		productRepo := &stubProductRepo{
			incrementStock: func(ctx context.Context, productID int64) error {
				assert.Equal(t, int64(2), productID)
				stockRestored = true
				return nil
			},
		}
		ledger := &recordingLedger{}

		svc := NewOrderService(orderRepo, productRepo, ledger)

		order, err := svc.UpdateStatus(ctx, 5, domain.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusCancelled, order.Status)
		assert.True(t, stockRestored)

		require.Len(t, ledger.calls, 1)
		assert.Equal(t, int64(1500), ledger.calls[0].amount)
		assert.Equal(t, domain.PointReasonRefund, ledger.calls[0].reason)
	})

	t.Run("Order not found", func(t *testing.T) {
		orderRepo := &stubOrderRepo{
			getOrderByID: func(ctx context.Context, id int64) (*domain.Order, error) { return nil, postgres.ErrOrderNotFound },
		}

		svc := NewOrderService(orderRepo, &stubProductRepo{}, &recordingLedger{})

		order, err := svc.UpdateStatus(ctx, 99, domain.OrderStatusConfirmed)
		assert.ErrorIs(t, err, ErrOrderNotFound)
		assert.Nil(t, order)
	})
}
