package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"SecureDash/internal/config"
	"SecureDash/internal/service"
)

// AuthHandler обрабатывает вход и выход.
type AuthHandler struct {
	Auth   *service.AuthService
	Logger *zap.SugaredLogger
	Config *config.Config
}

// NewAuthHandler создаёт хендлер аутентификации.
func NewAuthHandler(auth *service.AuthService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger, Config: cfg}
}

type loginRequest struct {
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Expires string `json:"expires"`
}

type lockedResponse struct {
	Success     bool   `json:"success"`
	Error       string `json:"error"`
	Message     string `json:"message"`
	LockedUntil int    `json:"locked_until"`
}

type invalidCredentialsResponse struct {
	Success           bool   `json:"success"`
	Error             string `json:"error"`
	AttemptsRemaining int    `json:"attempts_remaining"`
}

// Login аутентифицирует пользователя и создаёт сессию (с учётом локаута IP).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	ip := clientIP(r)
	token, expires, err := h.Auth.Login(ip, req.Password, req.OTP)
	if err == nil {
		writeJSON(w, http.StatusOK, loginResponse{
			Success: true,
			Token:   token,
			Expires: expires.UTC().Format(time.RFC3339),
		})
		return
	}

	var locked *service.LockedError
	if errors.As(err, &locked) {
		writeJSON(w, http.StatusTooManyRequests, lockedResponse{
			Error:       "LOCKED",
			Message:     lockedMessage(locked.RetryAfterSeconds),
			LockedUntil: locked.RetryAfterSeconds,
		})
		return
	}

	var invalid *service.InvalidCredentialsError
	if errors.As(err, &invalid) {
		writeJSON(w, http.StatusUnauthorized, invalidCredentialsResponse{
			Error:             "Invalid credentials",
			AttemptsRemaining: invalid.AttemptsRemaining,
		})
		return
	}

	h.Logger.Errorw("Login: storage error", "ip", ip, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// Logout отзывает сессию. Всегда success, идемпотентно.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if err := h.Auth.Logout(token); err != nil {
			h.Logger.Errorw("Logout: storage error", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func lockedMessage(remainingSeconds int) string {
	minutes := remainingSeconds / 60
	seconds := remainingSeconds % 60
	return fmt.Sprintf("Too many failed attempts. Locked for %dm %ds", minutes, seconds)
}
