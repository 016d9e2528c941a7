package handlers

import (
	"errors"
	"net/http"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/service"
	"go.uber.org/zap"
)

type PointsHandler struct {
	pointService domain.PointService
	logger       *zap.Logger
}

func NewPointsHandler(pointService domain.PointService, logger *zap.Logger) *PointsHandler {
	return &PointsHandler{
		pointService: pointService,
		logger:       logger,
	}
}

// GetSummary возвращает баланс, скоро истекающие поинты и последние операции
func (h *PointsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, CodeUnauthorized, "authorization required")
		return
	}

	summary, err := h.pointService.GetSummary(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, h.logger, http.StatusNotFound, CodeUserNotFound, "user not found")
			return
		}
		h.logger.Error("failed to get point summary", zap.Error(err), zap.Int64("user_id", userID))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, summary)
}
