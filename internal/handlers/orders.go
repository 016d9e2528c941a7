package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrdersHandler struct {
	orderService domain.OrderService
	logger       *zap.Logger
}

func NewOrdersHandler(orderService domain.OrderService, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		orderService: orderService,
		logger:       logger,
	}
}

type createOrderRequest struct {
	ProductID int64 `json:"product_id"`
}

// Create создаёт заказ на обмен поинтов на товар
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, CodeUnauthorized, "authorization required")
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid request body")
		return
	}

	order, err := h.orderService.CreateExchange(r.Context(), userID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			writeError(w, h.logger, http.StatusNotFound, CodeProductNotFound, "product not found")
		case errors.Is(err, service.ErrProductOutOfStock):
			writeError(w, h.logger, http.StatusConflict, CodeOutOfStock, "product out of stock")
		case errors.Is(err, service.ErrInsufficientPoints):
			writeError(w, h.logger, http.StatusPaymentRequired, CodeInsufficientPoint, "insufficient points")
		default:
			h.logger.Error("failed to create order", zap.Error(err), zap.Int64("user_id", userID), zap.Int64("product_id", req.ProductID))
			writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		}
		return
	}

	writeOK(w, h.logger, http.StatusCreated, order)
}

// statusFilter извлекает необязательный фильтр по статусу заказа
func statusFilter(r *http.Request) (*domain.OrderStatus, bool) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, true
	}

	status := domain.OrderStatus(raw)
	switch status {
	case domain.OrderStatusPending, domain.OrderStatusConfirmed, domain.OrderStatusShipped,
		domain.OrderStatusCompleted, domain.OrderStatusCancelled:
		return &status, true
	}
	return nil, false
}

// ListMy возвращает заказы текущего пользователя
func (h *OrdersHandler) ListMy(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, CodeUnauthorized, "authorization required")
		return
	}

	status, ok := statusFilter(r)
	if !ok {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid status filter")
		return
	}
	limit, offset := parsePaging(r)

	orders, err := h.orderService.GetMyOrders(r.Context(), userID, status, limit, offset)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err), zap.Int64("user_id", userID))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, orders)
}

// ListAll возвращает все заказы с фильтром по статусу (админ)
func (h *OrdersHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	status, ok := statusFilter(r)
	if !ok {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid status filter")
		return
	}
	limit, offset := parsePaging(r)

	orders, err := h.orderService.GetAllOrders(r.Context(), status, limit, offset)
	if err != nil {
		h.logger.Error("failed to list all orders", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus переводит заказ в новый статус (админ)
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			writeError(w, h.logger, http.StatusNotFound, CodeOrderNotFound, "order not found")
		case errors.Is(err, service.ErrInvalidStatusTransition):
			writeError(w, h.logger, http.StatusConflict, CodeBadTransition, "invalid status transition")
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, err.Error())
		default:
			h.logger.Error("failed to update order status", zap.Error(err), zap.Int64("order_id", orderID))
			writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		}
		return
	}

	writeOK(w, h.logger, http.StatusOK, order)
}
