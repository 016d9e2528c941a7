package handlers

import (
	"net/http"

	"github.com/avc/point-roulette/internal/domain"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService domain.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService domain.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetSummary возвращает агрегированную сводку для админ-дашборда
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.GetSummary(r.Context())
	if err != nil {
		h.logger.Error("failed to get dashboard summary", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, summary)
}
