package main

import (
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"SecureDash/internal/config"
	"SecureDash/internal/handlers"
	"SecureDash/internal/middleware"
	"SecureDash/internal/repo"
	"SecureDash/internal/service"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		sugar.Fatalw("failed to create data directory", "dir", cfg.DataDir, "error", err)
	}
	if cfg.UsingDefaultCredentials() {
		sugar.Warnw("Using default credentials! Set DASHBOARD_PASSWORD and DASHBOARD_OTP")
	}

	sessions, err := service.NewSessionStore(
		repo.NewSessionRepository(filepath.Join(cfg.DataDir, "sessions.json")),
		cfg.SessionDuration,
	)
	if err != nil {
		sugar.Fatalw("failed to load sessions", "error", err)
	}

	lockouts, err := service.NewLockoutGuard(
		repo.NewLockoutRepository(filepath.Join(cfg.DataDir, "lockouts.json")),
		repo.NewAuditLog(filepath.Join(cfg.DataDir, "login_attempts.log")),
		cfg.LockoutMax,
		cfg.LockoutDuration,
	)
	if err != nil {
		sugar.Fatalw("failed to load lockouts", "error", err)
	}

	vault := service.NewVault(repo.NewBlobRepository(cfg.DataDir))
	authService := service.NewAuthService(sessions, lockouts, vault, cfg.Password, cfg.OTP, sugar)
	statsService := service.NewStatsService(cfg.StatsTimeout)

	h := handlers.NewHandler(authService, statsService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"DataDir", cfg.DataDir,
		"SessionDuration", cfg.SessionDuration,
		"LockoutMax", cfg.LockoutMax,
		"LockoutDuration", cfg.LockoutDuration,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
