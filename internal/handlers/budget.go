package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/service"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService domain.BudgetManager
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService domain.BudgetManager, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

type setLimitRequest struct {
	PeriodType  string `json:"period_type"`
	PeriodDate  string `json:"period_date"` // YYYY-MM-DD, пустая строка — сегодня
	LimitAmount int64  `json:"limit_amount"`
}

// SetLimit устанавливает лимит бюджета на период (админ)
func (h *BudgetHandler) SetLimit(w http.ResponseWriter, r *http.Request) {
	var req setLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid request body")
		return
	}

	periodDate := time.Now()
	if req.PeriodDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PeriodDate)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid period_date, expected YYYY-MM-DD")
			return
		}
		periodDate = parsed
	}

	budget, err := h.budgetService.SetLimit(r.Context(), domain.PeriodType(req.PeriodType), periodDate, req.LimitAmount)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, err.Error())
			return
		}
		h.logger.Error("failed to set budget limit", zap.Error(err), zap.String("period_type", req.PeriodType))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, budget)
}

// GetSummary возвращает бюджеты на сегодня и текущий месяц (админ)
func (h *BudgetHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.budgetService.GetSummary(r.Context())
	if err != nil {
		h.logger.Error("failed to get budget summary", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, summary)
}
