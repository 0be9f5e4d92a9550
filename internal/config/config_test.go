package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	_, err := load(nil, func(string) (string, bool) { return "", false })
	if err == nil {
		t.Fatalf("expected error due to missing backend url, got nil")
	}

	cfg, err := load(nil, lookupFrom(map[string]string{"BACKEND_URL": "http://backend.local/api"}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != defaultRunAddress {
		t.Errorf("expected default run address %q, got %q", defaultRunAddress, cfg.RunAddress)
	}
	if cfg.SessionBackend != SessionBackendMemory {
		t.Errorf("expected memory session backend, got %q", cfg.SessionBackend)
	}
	if cfg.SessionSecret != defaultSessionSecret {
		t.Errorf("expected default session secret, got %q", cfg.SessionSecret)
	}
	if cfg.BackendTimeout != defaultBackendTimeout {
		t.Errorf("expected default backend timeout %v, got %v", defaultBackendTimeout, cfg.BackendTimeout)
	}
	if cfg.SessionTTL != defaultSessionTTL {
		t.Errorf("expected default session ttl %v, got %v", defaultSessionTTL, cfg.SessionTTL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info log level, got %v", cfg.LogLevel)
	}
	if cfg.MaxRequestBody != DefaultMaxRequestBody {
		t.Errorf("expected default max request body %d, got %d", DefaultMaxRequestBody, cfg.MaxRequestBody)
	}
}

func TestLoadMaxRequestBody(t *testing.T) {
	env := lookupFrom(map[string]string{
		"BACKEND_URL":      "http://backend.local/api",
		"MAX_REQUEST_BODY": "1048576",
	})

	cfg, err := load(nil, env)
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if cfg.MaxRequestBody != 1<<20 {
		t.Fatalf("expected max request body from env, got %d", cfg.MaxRequestBody)
	}

	cfg, err = load([]string{"-max-body", "2048"}, env)
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if cfg.MaxRequestBody != 2048 {
		t.Fatalf("expected flag to override max request body, got %d", cfg.MaxRequestBody)
	}

	cfg, err = load([]string{"-max-body", "0"}, env)
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if cfg.MaxRequestBody != DefaultMaxRequestBody {
		t.Fatalf("expected non-positive max body to fall back to default, got %d", cfg.MaxRequestBody)
	}
}

func TestLoadWithFlagOverrides(t *testing.T) {
	env := map[string]string{
		"BACKEND_URL":     "http://backend.local/api",
		"SESSION_BACKEND": "redis",
		"REDIS_DB":        "3",
		"SESSION_TTL":     "30m",
	}

	args := []string{
		"-a", ":9090",
		"-b", "http://override/api",
		"-d", "postgres://override",
		"--session-backend", "postgres",
		"--backend-timeout", "3s",
		"--session-ttl", "45m",
		"--shutdown-timeout", "20s",
		"--session-secret", "flag-secret",
		"--log-level", "debug",
		"--cookie-secure",
	}

	cfg, err := load(args, lookupFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9090" {
		t.Errorf("expected run address :9090, got %q", cfg.RunAddress)
	}
	if cfg.BackendURL != "http://override/api" {
		t.Errorf("expected backend override, got %q", cfg.BackendURL)
	}
	if cfg.SessionBackend != SessionBackendPostgres {
		t.Errorf("expected postgres backend, got %q", cfg.SessionBackend)
	}
	if cfg.DatabaseURI != "postgres://override" {
		t.Errorf("expected database uri override, got %q", cfg.DatabaseURI)
	}
	if cfg.BackendTimeout != 3*time.Second {
		t.Errorf("expected backend timeout 3s, got %v", cfg.BackendTimeout)
	}
	if cfg.SessionTTL != 45*time.Minute {
		t.Errorf("expected session ttl 45m, got %v", cfg.SessionTTL)
	}
	if cfg.ShutdownTimeout != 20*time.Second {
		t.Errorf("expected shutdown timeout 20s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.SessionSecret != "flag-secret" {
		t.Errorf("expected session secret override, got %q", cfg.SessionSecret)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.RedisDB)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug log level, got %v", cfg.LogLevel)
	}
	if !cfg.CookieSecure {
		t.Errorf("expected secure cookie flag")
	}
}

func TestLoadValidationErrors(t *testing.T) {
	base := map[string]string{"BACKEND_URL": "http://backend.local/api"}

	cases := []struct {
		name string
		args []string
		env  map[string]string
		want string
	}{
		{name: "backend timeout", args: []string{"--backend-timeout", "bad"}, env: base, want: "invalid backend timeout"},
		{name: "session ttl", args: []string{"--session-ttl", "bad"}, env: base, want: "invalid session ttl"},
		{name: "shutdown timeout", args: []string{"--shutdown-timeout", "bad"}, env: base, want: "invalid shutdown timeout"},
		{name: "log level", args: []string{"--log-level", "loud"}, env: base, want: "invalid log level"},
		{name: "unknown backend", args: []string{"--session-backend", "etcd"}, env: base, want: "unknown session backend"},
		{name: "postgres without dsn", args: []string{"--session-backend", "postgres"}, env: base, want: "database URI must be provided"},
		{name: "unknown flag", args: []string{"--nope"}, env: base, want: "parse flags"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(tc.args, lookupFrom(tc.env))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q error, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadNormalizesNonPositiveValues(t *testing.T) {
	env := map[string]string{
		"BACKEND_URL":      "http://backend.local/api",
		"BACKEND_TIMEOUT":  "0",
		"SESSION_TTL":      "-1s",
		"SWEEP_INTERVAL":   "0",
		"SHUTDOWN_TIMEOUT": "0",
	}

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.BackendTimeout != defaultBackendTimeout {
		t.Errorf("expected default backend timeout %v, got %v", defaultBackendTimeout, cfg.BackendTimeout)
	}
	if cfg.SessionTTL != defaultSessionTTL {
		t.Errorf("expected default session ttl %v, got %v", defaultSessionTTL, cfg.SessionTTL)
	}
	if cfg.SweepInterval != defaultSweepInterval {
		t.Errorf("expected default sweep interval %v, got %v", defaultSweepInterval, cfg.SweepInterval)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Errorf("expected default shutdown timeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
	}
}

func TestLoadReadsSecretFromFile(t *testing.T) {
	dir := t.TempDir()
	secretFile := filepath.Join(dir, "secret")
	if err := os.WriteFile(secretFile, []byte("file-secret\n"), 0o600); err != nil {
		t.Fatalf("failed to write secret file: %v", err)
	}

	env := map[string]string{
		"BACKEND_URL":         "http://backend.local/api",
		"SESSION_SECRET_FILE": secretFile,
	}

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.SessionSecret != "file-secret" {
		t.Errorf("expected secret from file, got %q", cfg.SessionSecret)
	}
}

func TestWithDotEnvLayersFileUnderEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	content := "BACKEND_URL=http://from-file/api\nSESSION_BACKEND=redis\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	lookup, err := withDotEnv(lookupFrom(map[string]string{
		"ENV_FILE":        envFile,
		"SESSION_BACKEND": "memory",
	}))
	if err != nil {
		t.Fatalf("withDotEnv returned error: %v", err)
	}

	if v, _ := lookup("BACKEND_URL"); v != "http://from-file/api" {
		t.Errorf("expected backend url from file, got %q", v)
	}
	if v, _ := lookup("SESSION_BACKEND"); v != "memory" {
		t.Errorf("expected environment to win over file, got %q", v)
	}
}

func TestWithDotEnvIgnoresMissingFile(t *testing.T) {
	lookup, err := withDotEnv(lookupFrom(map[string]string{
		"ENV_FILE": filepath.Join(t.TempDir(), "absent.env"),
	}))
	if err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}
	if _, ok := lookup("BACKEND_URL"); ok {
		t.Fatal("did not expect BACKEND_URL to be set")
	}
}
