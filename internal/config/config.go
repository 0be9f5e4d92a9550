package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session storage backends.
const (
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

// Config holds application level configuration loaded from environment, an
// optional .env file and flags.
type Config struct {
	RunAddress      string
	BackendURL      string
	BackendTimeout  time.Duration
	SessionBackend  string
	DatabaseURI     string
	RedisAddress    string
	RedisPassword   string
	RedisDB         int
	SessionSecret   string
	SessionTTL      time.Duration
	SweepInterval   time.Duration
	ShutdownTimeout time.Duration
	CookieSecure    bool
	MaxRequestBody  int64
	LogLevel        slog.Level
}

// DefaultMaxRequestBody caps a request body, and with it an upload batch.
const DefaultMaxRequestBody int64 = 128 << 20

const (
	defaultRunAddress      = ":8080"
	defaultBackendTimeout  = 10 * time.Second
	defaultSessionBackend  = SessionBackendMemory
	defaultRedisAddress    = "localhost:6379"
	defaultSessionSecret   = "change-me-in-production"
	defaultSessionTTL      = 2 * time.Hour
	defaultSweepInterval   = time.Minute
	defaultShutdownTimeout = 10 * time.Second
	defaultEnvFile         = ".env"
)

// Load parses configuration from flags, environment variables and .env file.
func Load() (*Config, error) {
	lookup, err := withDotEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

// withDotEnv layers values from ENV_FILE (default .env) under the process
// environment. A missing file is not an error.
func withDotEnv(lookup envLookup) (envLookup, error) {
	path := getString(lookup, "ENV_FILE", defaultEnvFile)
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		BackendURL:      getString(lookup, "BACKEND_URL", ""),
		BackendTimeout:  getDuration(lookup, "BACKEND_TIMEOUT", defaultBackendTimeout),
		SessionBackend:  getString(lookup, "SESSION_BACKEND", defaultSessionBackend),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		RedisAddress:    getString(lookup, "REDIS_ADDRESS", defaultRedisAddress),
		RedisPassword:   getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:         getInt(lookup, "REDIS_DB", 0),
		SessionSecret:   getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:      getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		SweepInterval:   getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		CookieSecure:    getBool(lookup, "COOKIE_SECURE", false),
		MaxRequestBody:  getInt64(lookup, "MAX_REQUEST_BODY", DefaultMaxRequestBody),
	}

	flags := flag.NewFlagSet("onboarding", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		backendTimeoutStr  = cfg.BackendTimeout.String()
		sessionTTLStr      = cfg.SessionTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		logLevelStr        = getString(lookup, "LOG_LEVEL", "info")
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "Backend API base URL")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN for the postgres session backend")
	flags.StringVar(&cfg.SessionBackend, "session-backend", cfg.SessionBackend, "Session storage: memory, redis or postgres")
	flags.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the redis session backend")
	flags.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing and sealing sessions")
	flags.StringVar(&backendTimeoutStr, "backend-timeout", backendTimeoutStr, "Backend request timeout")
	flags.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Idle lifetime of a wizard session")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level: debug, info, warn or error")
	flags.BoolVar(&cfg.CookieSecure, "cookie-secure", cfg.CookieSecure, "Mark session cookie as Secure")
	flags.Int64Var(&cfg.MaxRequestBody, "max-body", cfg.MaxRequestBody, "Maximum request body in bytes, upload batches included")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.BackendTimeout, err = time.ParseDuration(backendTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid backend timeout: %w", err)
	}

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	if cfg.BackendTimeout <= 0 {
		cfg.BackendTimeout = defaultBackendTimeout
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MaxRequestBody <= 0 {
		cfg.MaxRequestBody = DefaultMaxRequestBody
	}

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("backend URL must be provided")
	}

	switch cfg.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if cfg.RedisAddress == "" {
			return nil, fmt.Errorf("redis address must be provided for redis session backend")
		}
	case SessionBackendPostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided for postgres session backend")
		}
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
