package main

import (
	"bytes"
	"strings"
	"testing"

	"recipebox/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("production logs JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, &config.Config{Env: "production", LogLevel: "info"})
		logger.Info("hello", "k", "v")

		if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"k":"v"`) {
			t.Errorf("expected a JSON line, got %q", buf.String())
		}
	})

	t.Run("development logs text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, &config.Config{Env: "development", LogLevel: "info"})
		logger.Info("hello")

		if strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected a text line, got %q", buf.String())
		}
	})

	t.Run("level is honored", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, &config.Config{Env: "production", LogLevel: "warn"})
		logger.Info("hidden")

		if buf.Len() != 0 {
			t.Errorf("info should be filtered at warn level, got %q", buf.String())
		}
	})
}

func TestNewRateLimiterOffByDefault(t *testing.T) {
	for _, key := range []string{"RATE_LIMIT", "RATE_BURST", "TRUST_PROXY", "APP_ENV", "DB_PASSWORD"} {
		t.Setenv(key, "")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if limiter := newRateLimiter(cfg); limiter != nil {
		limiter.Stop()
		t.Fatal("default configuration should not rate limit")
	}
}

func TestNewRateLimiterOptIn(t *testing.T) {
	limiter := newRateLimiter(&config.Config{RateLimit: 5, RateBurst: 10})
	if limiter == nil {
		t.Fatal("RATE_LIMIT > 0 should build a limiter")
	}
	limiter.Stop()
}
