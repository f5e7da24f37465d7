package handlers

import (
	"net/http"
	"time"
)

// Version отдаётся в /health для проверки выкладки.
const Version = "2.1.0"

// Health — проба живости для оркестратора.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}
