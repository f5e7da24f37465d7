package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// StatsService ходит за статистикой на внешние сайты от имени пользователя
// (обход CORS в браузере). Единственный исходящий сетевой вызов в системе,
// всегда с ограниченным таймаутом.
type StatsService struct {
	client *http.Client
}

// StatsResult — результат опроса внешнего сайта. При сетевых проблемах
// IsOnline=false и заполнен Error; это не ошибка уровня сервиса.
type StatsResult struct {
	Data     json.RawMessage
	IsOnline bool
	Error    string
}

// NewStatsService создаёт сервис с заданным таймаутом исходящих запросов.
func NewStatsService(timeout time.Duration) *StatsService {
	return &StatsService{client: &http.Client{Timeout: timeout}}
}

// Fetch запрашивает <domain>/api/v1/stats с bearer-ключом.
func (s *StatsService) Fetch(domain, apiKey string) StatsResult {
	req, err := http.NewRequest(http.MethodGet, domain+"/api/v1/stats", nil)
	if err != nil {
		return StatsResult{Error: "Connection failed"}
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return StatsResult{Error: "Request timeout"}
		}
		return StatsResult{Error: "Connection failed"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return StatsResult{Error: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return StatsResult{Error: "Connection failed"}
	}
	return StatsResult{Data: body, IsOnline: true}
}
