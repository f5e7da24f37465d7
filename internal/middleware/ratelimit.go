package middleware

import (
	"net/http"

	"github.com/didip/tollbooth/v6"
)

// WithRateLimit — общий троттлинг запросов по IP поверх доменного локаута.
// rps <= 0 выключает лимитер полностью.
func WithRateLimit(rps float64) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	lmt := tollbooth.NewLimiter(rps, nil)
	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}
