package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Коды ошибок API
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternal          = "INTERNAL"
	CodeDuplicateEmail    = "AUTH_001"
	CodeBadCredentials    = "AUTH_002"
	CodeUserNotFound      = "USER_001"
	CodeInsufficientPoint = "POINT_001"
	CodeDailyLimit        = "ROULETTE_001"
	CodeBudgetExceeded    = "ROULETTE_002"
	CodeSpinNotFound      = "ROULETTE_003"
	CodeSpinCancelled     = "ROULETTE_004"
	CodeProductNotFound   = "PRODUCT_001"
	CodeOutOfStock        = "PRODUCT_002"
	CodeOrderNotFound     = "ORDER_001"
	CodeBadTransition     = "ORDER_002"
)

// ErrorDetail представляет детали ошибки в ответе API
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse представляет единый конверт ответа API
type APIResponse struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// writeJSON сериализует конверт ответа
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeOK отправляет успешный ответ с данными
func writeOK(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	writeJSON(w, logger, status, APIResponse{Success: true, Data: data})
}

// writeError отправляет ответ с ошибкой и стабильным кодом
func writeError(w http.ResponseWriter, logger *zap.Logger, status int, code, message string) {
	writeJSON(w, logger, status, APIResponse{Success: false, Error: &ErrorDetail{Code: code, Message: message}})
}
