package config

import (
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Пароль и OTP по умолчанию — только для первого запуска; main громко
// предупреждает, если они не переопределены.
const (
	DefaultPassword = "admin123"
	DefaultOTP      = "1234"
)

type Config struct {
	// Credentials
	Password string `env:"DASHBOARD_PASSWORD"`
	OTP      string `env:"DASHBOARD_OTP"`

	// Server settings
	BaseURL   string `env:"BASE_URL"`
	DataDir   string `env:"DATA_DIR"`
	StaticDir string `env:"STATIC_DIR"`

	// Session / lockout settings
	SessionDuration time.Duration `env:"SESSION_DURATION"`
	LockoutMax      int           `env:"MAX_LOGIN_ATTEMPTS"`
	LockoutDuration time.Duration `env:"LOCKOUT_DURATION"`

	// Outbound / throttling
	StatsTimeout time.Duration `env:"STATS_TIMEOUT"`
	RateLimitRPS float64       `env:"RATE_LIMIT_RPS"` // 0 — троттлинг выключен
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.Password, "password", cfg.Password, "операторский пароль входа")
	flag.StringVar(&cfg.OTP, "otp", cfg.OTP, "операторский одноразовый код входа")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес сервера в форме host:port")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "каталог зашифрованных данных")
	flag.StringVar(&cfg.StaticDir, "static-dir", cfg.StaticDir, "каталог статики UI (пусто — не раздаём)")
	flag.DurationVar(&cfg.SessionDuration, "session-duration", cfg.SessionDuration, "время жизни сессии")
	flag.IntVar(&cfg.LockoutMax, "lockout-max", cfg.LockoutMax, "порог неудачных попыток входа")
	flag.DurationVar(&cfg.LockoutDuration, "lockout-duration", cfg.LockoutDuration, "длительность блокировки IP")
	flag.DurationVar(&cfg.StatsTimeout, "stats-timeout", cfg.StatsTimeout, "таймаут проксируемых запросов статистики")
	flag.Float64Var(&cfg.RateLimitRPS, "rate-limit", cfg.RateLimitRPS, "лимит запросов в секунду на IP (0 — выключено)")

	flag.Parse()

	// Defaults
	if cfg.Password == "" {
		cfg.Password = DefaultPassword
	}
	if cfg.OTP == "" {
		cfg.OTP = DefaultOTP
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "secure_data"
	}
	if cfg.SessionDuration <= 0 {
		cfg.SessionDuration = 72 * time.Hour
	}
	if cfg.LockoutMax <= 0 {
		cfg.LockoutMax = 5
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = 15 * time.Minute
	}
	if cfg.StatsTimeout <= 0 {
		cfg.StatsTimeout = 10 * time.Second
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:5001"
	}

	return cfg
}

// UsingDefaultCredentials — true, если операторские credentials не заданы.
func (c *Config) UsingDefaultCredentials() bool {
	return c.Password == DefaultPassword || c.OTP == DefaultOTP
}
