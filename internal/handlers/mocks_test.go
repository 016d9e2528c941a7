package handlers

import (
	"context"
	"time"

	"github.com/avc/point-roulette/internal/domain"
)

// Стабы сервисов на функциях: в тесте задаются только нужные методы

type stubAuthService struct {
	register func(ctx context.Context, email, password, nickname string) (string, *domain.User, error)
	login    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, nickname string) (string, *domain.User, error) {
	return s.register(ctx, email, password, nickname)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.login(ctx, email, password)
}

type stubPointService struct {
	applyEntry func(ctx context.Context, userID, amount int64, reason domain.PointReason, description string, expiresAt *time.Time) (*domain.PointEntry, error)
	getSummary func(ctx context.Context, userID int64) (*domain.PointSummary, error)
}

func (s *stubPointService) ApplyEntry(ctx context.Context, userID, amount int64, reason domain.PointReason, description string, expiresAt *time.Time) (*domain.PointEntry, error) {
	return s.applyEntry(ctx, userID, amount, reason, description, expiresAt)
}

func (s *stubPointService) GetSummary(ctx context.Context, userID int64) (*domain.PointSummary, error) {
	return s.getSummary(ctx, userID)
}

type stubRouletteManager struct {
	spin            func(ctx context.Context, userID int64) (*domain.SpinResult, error)
	getStatus       func(ctx context.Context, userID int64) (*domain.RouletteStatus, error)
	getConfig       func(ctx context.Context) (*domain.RouletteConfig, error)
	getSpinHistory  func(ctx context.Context, limit, offset int) ([]*domain.SpinRecord, int64, error)
	replaceSegments func(ctx context.Context, segments []*domain.Segment) ([]*domain.Segment, error)
	cancelSpin      func(ctx context.Context, spinID int64) error
}

func (s *stubRouletteManager) Spin(ctx context.Context, userID int64) (*domain.SpinResult, error) {
	return s.spin(ctx, userID)
}

func (s *stubRouletteManager) GetStatus(ctx context.Context, userID int64) (*domain.RouletteStatus, error) {
	return s.getStatus(ctx, userID)
}

func (s *stubRouletteManager) GetConfig(ctx context.Context) (*domain.RouletteConfig, error) {
	return s.getConfig(ctx)
}

func (s *stubRouletteManager) GetSpinHistory(ctx context.Context, limit, offset int) ([]*domain.SpinRecord, int64, error) {
	return s.getSpinHistory(ctx, limit, offset)
}

func (s *stubRouletteManager) ReplaceSegments(ctx context.Context, segments []*domain.Segment) ([]*domain.Segment, error) {
	return s.replaceSegments(ctx, segments)
}

func (s *stubRouletteManager) CancelSpin(ctx context.Context, spinID int64) error {
	return s.cancelSpin(ctx, spinID)
}

type stubOrderService struct {
	createExchange func(ctx context.Context, userID, productID int64) (*domain.Order, error)
	getMyOrders    func(ctx context.Context, userID int64, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	getAllOrders   func(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	updateStatus   func(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error)
}

func (s *stubOrderService) CreateExchange(ctx context.Context, userID, productID int64) (*domain.Order, error) {
	return s.createExchange(ctx, userID, productID)
}

func (s *stubOrderService) GetMyOrders(ctx context.Context, userID int64, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	return s.getMyOrders(ctx, userID, status, limit, offset)
}

func (s *stubOrderService) GetAllOrders(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	return s.getAllOrders(ctx, status, limit, offset)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	return s.updateStatus(ctx, orderID, status)
}
