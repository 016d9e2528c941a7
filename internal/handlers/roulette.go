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

type RouletteHandler struct {
	rouletteService domain.RouletteManager
	logger          *zap.Logger
}

func NewRouletteHandler(rouletteService domain.RouletteManager, logger *zap.Logger) *RouletteHandler {
	return &RouletteHandler{
		rouletteService: rouletteService,
		logger:          logger,
	}
}

// Spin выполняет вращение рулетки для текущего пользователя
func (h *RouletteHandler) Spin(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, CodeUnauthorized, "authorization required")
		return
	}

	result, err := h.rouletteService.Spin(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDailyLimitExceeded):
			writeError(w, h.logger, http.StatusConflict, CodeDailyLimit, "already spun today")
		case errors.Is(err, service.ErrBudgetExceeded):
			writeError(w, h.logger, http.StatusConflict, CodeBudgetExceeded, "daily budget exhausted")
		case errors.Is(err, service.ErrInsufficientPoints):
			writeError(w, h.logger, http.StatusPaymentRequired, CodeInsufficientPoint, "insufficient points")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, h.logger, http.StatusNotFound, CodeUserNotFound, "user not found")
		default:
			h.logger.Error("failed to spin", zap.Error(err), zap.Int64("user_id", userID))
			writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		}
		return
	}

	writeOK(w, h.logger, http.StatusOK, result)
}

// GetStatus возвращает состояние рулетки для текущего пользователя
func (h *RouletteHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, CodeUnauthorized, "authorization required")
		return
	}

	status, err := h.rouletteService.GetStatus(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get roulette status", zap.Error(err), zap.Int64("user_id", userID))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, status)
}

// GetConfig возвращает публичную конфигурацию рулетки
func (h *RouletteHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.rouletteService.GetConfig(r.Context())
	if err != nil {
		h.logger.Error("failed to get roulette config", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, cfg)
}

type spinListResponse struct {
	Spins []*domain.SpinRecord `json:"spins"`
	Total int64                `json:"total"`
}

// ListSpins возвращает историю вращений (админ)
func (h *RouletteHandler) ListSpins(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePaging(r)

	spins, total, err := h.rouletteService.GetSpinHistory(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list spins", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, spinListResponse{Spins: spins, Total: total})
}

// CancelSpin отменяет вращение и компенсирует начисления (админ)
func (h *RouletteHandler) CancelSpin(w http.ResponseWriter, r *http.Request) {
	spinID, err := strconv.ParseInt(chi.URLParam(r, "spinID"), 10, 64)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid spin id")
		return
	}

	if err := h.rouletteService.CancelSpin(r.Context(), spinID); err != nil {
		switch {
		case errors.Is(err, service.ErrSpinNotFound):
			writeError(w, h.logger, http.StatusNotFound, CodeSpinNotFound, "spin not found")
		case errors.Is(err, service.ErrSpinAlreadyCancelled):
			writeError(w, h.logger, http.StatusConflict, CodeSpinCancelled, "spin already cancelled")
		default:
			h.logger.Error("failed to cancel spin", zap.Error(err), zap.Int64("spin_id", spinID))
			writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		}
		return
	}

	writeOK(w, h.logger, http.StatusOK, nil)
}

type segmentRequest struct {
	Label        string `json:"label"`
	RewardAmount int64  `json:"reward_amount"`
	Weight       int64  `json:"weight"`
}

// ReplaceSegments атомарно заменяет набор сегментов рулетки (админ)
func (h *RouletteHandler) ReplaceSegments(w http.ResponseWriter, r *http.Request) {
	var req []segmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid request body")
		return
	}

	segments := make([]*domain.Segment, 0, len(req))
	for i, s := range req {
		segments = append(segments, &domain.Segment{
			Label:        s.Label,
			RewardAmount: s.RewardAmount,
			Weight:       s.Weight,
			DisplayOrder: i,
		})
	}

	saved, err := h.rouletteService.ReplaceSegments(r.Context(), segments)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, err.Error())
			return
		}
		h.logger.Error("failed to replace segments", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, saved)
}
