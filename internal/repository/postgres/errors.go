package postgres

import "errors"

// Ошибки пользователей
var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// Ошибки поинтов
var (
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Ошибки рулетки
var (
	ErrAlreadySpunToday = errors.New("spin already exists for this day")
	ErrSpinNotFound     = errors.New("spin not found")
)

// Ошибки бюджетов и каталога
var (
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)
