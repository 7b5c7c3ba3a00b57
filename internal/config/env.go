package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Env is the whole runtime configuration. Values come from an optional YAML
// file (CONFIG_FILE) and are then overridden by environment variables.
type Env struct {
	AppAddr string `yaml:"app_addr"`
	GinMode string `yaml:"gin_mode"`

	// BackendAPIURL points the finish page at a remote checkout API. When
	// empty the page is served from the local database.
	BackendAPIURL  string        `yaml:"backend_api_url"`
	BackendTimeout time.Duration `yaml:"-"`

	DBDSN string `yaml:"db_dsn"`

	PaymentFormURL    string        `yaml:"payment_form_url"`
	PaymentFormSecret string        `yaml:"payment_form_secret"`
	PaymentSessionTTL time.Duration `yaml:"-"`

	RedisAddr      string        `yaml:"redis_addr"`
	RedisPassword  string        `yaml:"redis_password"`
	RedisDB        int           `yaml:"redis_db"`
	StatusCacheTTL time.Duration `yaml:"-"`

	PendingRefresh time.Duration `yaml:"-"`
	BookingURL     string        `yaml:"booking_url"`
	CORSOrigins    []string      `yaml:"cors_allowed_origins"`

	// seconds/minutes as written in the YAML file
	BackendTimeoutSeconds    int `yaml:"backend_timeout_seconds"`
	PaymentSessionTTLMinutes int `yaml:"payment_session_ttl_minutes"`
	StatusCacheTTLSeconds    int `yaml:"status_cache_ttl_seconds"`
	PendingRefreshSeconds    int `yaml:"pending_refresh_seconds"`
}

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func defaults() Env {
	return Env{
		AppAddr:                  ":8080",
		BookingURL:               "/",
		CORSOrigins:              defaultCORSOrigins,
		BackendTimeoutSeconds:    10,
		PaymentSessionTTLMinutes: 30,
		StatusCacheTTLSeconds:    300,
		PendingRefreshSeconds:    5,
	}
}

// LoadEnv builds Env from CONFIG_FILE (if any) and the process environment.
// A .env file in the working directory, when present, is loaded first;
// variables already set in the environment win over it.
func LoadEnv() (Env, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Env{}, err
	}
	return loadEnv(os.Getenv)
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func loadEnv(getenv func(string) string) (Env, error) {
	env := defaults()

	if path := strings.TrimSpace(getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Env{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &env); err != nil {
			return Env{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	var intErr error
	num := func(key string, dst *int) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			if intErr == nil {
				intErr = fmt.Errorf("invalid %s: %q", key, v)
			}
			return
		}
		*dst = n
	}

	str("APP_ADDR", &env.AppAddr)
	str("GIN_MODE", &env.GinMode)
	str("BACKEND_API_URL", &env.BackendAPIURL)
	str("DB_DSN", &env.DBDSN)
	str("PAYMENT_FORM_URL", &env.PaymentFormURL)
	str("PAYMENT_FORM_SECRET", &env.PaymentFormSecret)
	str("REDIS_ADDR", &env.RedisAddr)
	str("REDIS_PASSWORD", &env.RedisPassword)
	str("BOOKING_URL", &env.BookingURL)
	num("REDIS_DB", &env.RedisDB)
	num("BACKEND_TIMEOUT_SECONDS", &env.BackendTimeoutSeconds)
	num("PAYMENT_SESSION_TTL_MINUTES", &env.PaymentSessionTTLMinutes)
	num("STATUS_CACHE_TTL_SECONDS", &env.StatusCacheTTLSeconds)
	num("PENDING_REFRESH_SECONDS", &env.PendingRefreshSeconds)
	if intErr != nil {
		return Env{}, intErr
	}

	if v := strings.TrimSpace(getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		env.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	env.BackendAPIURL = strings.TrimRight(env.BackendAPIURL, "/")
	env.BackendTimeout = time.Duration(env.BackendTimeoutSeconds) * time.Second
	env.PaymentSessionTTL = time.Duration(env.PaymentSessionTTLMinutes) * time.Minute
	env.StatusCacheTTL = time.Duration(env.StatusCacheTTLSeconds) * time.Second
	env.PendingRefresh = time.Duration(env.PendingRefreshSeconds) * time.Second

	return env, env.validate()
}

func (e Env) validate() error {
	if e.BackendAPIURL != "" {
		return nil
	}
	// local mode answers the checkout API itself
	if e.DBDSN == "" {
		return fmt.Errorf("either BACKEND_API_URL or DB_DSN must be set")
	}
	if e.PaymentFormURL == "" || e.PaymentFormSecret == "" {
		return fmt.Errorf("PAYMENT_FORM_URL and PAYMENT_FORM_SECRET are required when DB_DSN is used")
	}
	return nil
}

// LocalBackend reports whether checkout calls are answered from the local DB.
func (e Env) LocalBackend() bool {
	return e.BackendAPIURL == ""
}
