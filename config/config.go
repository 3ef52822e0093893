package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DB      DBConfig
	JWT     JWTConfig
	Storage StorageConfig
	SMTP    SMTPConfig

	RouteTimeout time.Duration
	CORSOrigins  []string

	ThrottleLimit  int
	ThrottleTTL    time.Duration
	RedisAddr      string
	TrustedProxies []string

	// Warnings collects fallbacks taken while loading, for the caller to log.
	Warnings []string
}

type DBConfig struct {
	Driver             string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	Path               string
	SlowQueryThreshold time.Duration
}

type StorageConfig struct {
	Driver        string
	Dir           string
	CloudinaryURL string
	MaxUploadSize int64
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	e := &env{}
	if err := godotenv.Load(); err != nil {
		e.warn("No .env file found")
	}

	cfg := &Config{
		Port:     e.str("PORT", "8080"),
		GinMode:  e.str("GIN_MODE", "debug"),
		LogLevel: e.str("LOG_LEVEL", "info"),
		DB: DBConfig{
			Driver:             e.str("DB_DRIVER", "postgres"),
			Host:               e.str("DB_HOST", "localhost"),
			Port:               e.str("DB_PORT", "5432"),
			User:               e.str("DB_USER", "postgres"),
			Password:           e.str("DB_PASSWORD", "postgres"),
			Name:               e.str("DB_NAME", "blog"),
			Path:               e.str("DB_PATH", "blog.db"),
			SlowQueryThreshold: e.duration("SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
		},
		JWT: loadJWT(e),
		Storage: StorageConfig{
			Driver:        e.str("STORAGE_DRIVER", "local"),
			Dir:           e.str("STORAGE_DIR", "uploads"),
			CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
			MaxUploadSize: int64(e.integer("MAX_UPLOAD_SIZE", 5<<20)),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     e.integer("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     e.str("SMTP_FROM", "noreply@blog.local"),
		},
		RouteTimeout:  e.duration("ROUTE_TIMEOUT", 30*time.Second),
		CORSOrigins:   e.list("CORS_ORIGINS", []string{"http://localhost:3000"}),
		ThrottleLimit: e.integer("THROTTLE_LIMIT", 100),
		ThrottleTTL:   e.duration("THROTTLE_TTL", time.Minute),
		RedisAddr:     os.Getenv("REDIS_ADDR"),

		// empty by default: X-Forwarded-For is ignored unless a proxy is listed
		TrustedProxies: e.list("TRUSTED_PROXIES", nil),
	}
	cfg.Warnings = e.warnings
	return cfg
}

// env reads typed settings and records every fallback it takes.
type env struct {
	warnings []string
}

func (e *env) warn(format string, args ...any) {
	e.warnings = append(e.warnings, fmt.Sprintf(format, args...))
}

func (e *env) str(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (e *env) integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.warn("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// duration accepts Go durations ("30s") or plain milliseconds ("30000").
func (e *env) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	e.warn("invalid %s=%q, using %s", key, v, fallback)
	return fallback
}

func (e *env) boolean(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.warn("invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func (e *env) list(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
