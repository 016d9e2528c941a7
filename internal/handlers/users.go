package handlers

import (
	"errors"
	"net/http"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/service"
	"go.uber.org/zap"
)

type UsersHandler struct {
	userService domain.UserService
	logger      *zap.Logger
}

func NewUsersHandler(userService domain.UserService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetMe возвращает профиль текущего пользователя
func (h *UsersHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, CodeUnauthorized, "authorization required")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, h.logger, http.StatusNotFound, CodeUserNotFound, "user not found")
			return
		}
		h.logger.Error("failed to get user", zap.Error(err), zap.Int64("user_id", userID))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, user)
}

type userListResponse struct {
	Users []*domain.User `json:"users"`
	Total int64          `json:"total"`
}

// List возвращает пользователей с поиском по email и nickname (админ)
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	limit, offset := parsePaging(r)

	users, total, err := h.userService.ListUsers(r.Context(), search, limit, offset)
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, userListResponse{Users: users, Total: total})
}
