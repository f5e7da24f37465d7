package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"SecureDash/internal/service"
)

// DataHandler обрабатывает чтение и запись зашифрованного списка записей.
type DataHandler struct {
	Auth   *service.AuthService
	Logger *zap.SugaredLogger
}

// NewDataHandler создаёт хендлер данных.
func NewDataHandler(auth *service.AuthService, logger *zap.SugaredLogger) *DataHandler {
	return &DataHandler{Auth: auth, Logger: logger}
}

type saveRequest struct {
	Data []json.RawMessage `json:"data"`
}

// Get возвращает расшифрованные записи владельца токена.
func (h *DataHandler) Get(w http.ResponseWriter, r *http.Request) {
	records, err := h.Auth.ReadData(bearerToken(r))
	if err != nil {
		h.writeDataError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": records})
}

// Save полностью перезаписывает записи владельца токена.
func (h *DataHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Save: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	if err := h.Auth.WriteData(bearerToken(r), req.Data); err != nil {
		h.writeDataError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeDataError переводит исходы сервиса в HTTP-ответы, не раскрывая
// внутренних причин.
func (h *DataHandler) writeDataError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired session"})
	case errors.Is(err, service.ErrDecryptFailed):
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Decryption failed"})
	default:
		h.Logger.Errorw("data operation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
