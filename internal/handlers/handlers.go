package handlers

import (
	"SecureDash/internal/config"
	"SecureDash/internal/middleware"
	"SecureDash/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	authService *service.AuthService,
	statsService *service.StatsService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.WithRateLimit(cfg.RateLimitRPS))
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithGzip)

	// Handlers
	authHandler := NewAuthHandler(authService, logger, cfg)
	dataHandler := NewDataHandler(authService, logger)
	statsHandler := NewStatsHandler(authService, statsService, logger)

	// Auth routes
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/logout", authHandler.Logout)

	// Data routes
	r.Get("/api/data", dataHandler.Get)
	r.Post("/api/data", dataHandler.Save)

	// Misc
	r.Post("/api/proxy-stats", statsHandler.Proxy)
	r.Get("/health", Health)

	if cfg.StaticDir != "" {
		registerStatic(r, cfg.StaticDir)
	}

	return &Handler{Router: r}
}
