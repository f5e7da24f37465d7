package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"SecureDash/internal/service"
)

// StatsHandler проксирует запросы статистики к внешним сайтам
// (обход CORS на стороне браузера). Требует живую сессию.
type StatsHandler struct {
	Auth   *service.AuthService
	Stats  *service.StatsService
	Logger *zap.SugaredLogger
}

// NewStatsHandler создаёт хендлер прокси статистики.
func NewStatsHandler(auth *service.AuthService, stats *service.StatsService, logger *zap.SugaredLogger) *StatsHandler {
	return &StatsHandler{Auth: auth, Stats: stats, Logger: logger}
}

type proxyRequest struct {
	Domain string `json:"domain"`
	APIKey string `json:"apiKey"`
}

// Proxy запрашивает статистику у внешнего сайта от имени пользователя.
// Сетевые неудачи апстрима отдаются как 200 с isOnline=false.
func (h *StatsHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Auth.ValidateToken(bearerToken(r))
	if err != nil {
		h.Logger.Errorw("Proxy: storage error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired session"})
		return
	}

	var req proxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Domain == "" || req.APIKey == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing domain or apiKey"})
		return
	}

	res := h.Stats.Fetch(req.Domain, req.APIKey)
	if !res.IsOnline {
		writeJSON(w, http.StatusOK, map[string]any{"error": res.Error, "isOnline": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": res.Data, "isOnline": true})
}
