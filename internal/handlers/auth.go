package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService domain.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService domain.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid request body")
		return
	}

	token, user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Nickname)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			writeError(w, h.logger, http.StatusConflict, CodeDuplicateEmail, "email already registered")
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, err.Error())
			return
		}
		h.logger.Error("failed to register", zap.Error(err), zap.String("email", req.Email))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid request body")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, h.logger, http.StatusUnauthorized, CodeBadCredentials, "invalid email or password")
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, err.Error())
			return
		}
		h.logger.Error("failed to login", zap.Error(err), zap.String("email", req.Email))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, authResponse{Token: token, User: user})
}
