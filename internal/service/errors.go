package service

import "errors"

// Ошибки аутентификации и ввода
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Ошибки поинтов
var (
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Ошибки рулетки и бюджета
var (
	ErrDailyLimitExceeded   = errors.New("already spun today")
	ErrBudgetExceeded       = errors.New("daily budget exhausted")
	ErrSpinNotFound         = errors.New("spin not found")
	ErrSpinAlreadyCancelled = errors.New("spin already cancelled")
)

// Ошибки каталога и заказов
var (
	ErrProductNotFound         = errors.New("product not found")
	ErrProductOutOfStock       = errors.New("product out of stock")
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)
