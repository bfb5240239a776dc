package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Debug {
		t.Error("debug should default to false")
	}
	if cfg.PreloadTimeout != 10*time.Second {
		t.Errorf("PreloadTimeout = %v, want 10s", cfg.PreloadTimeout)
	}
	if cfg.Retry.MaxRetries != 3 {
		t.Errorf("Retry.MaxRetries = %d, want 3", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.BaseDelay != 500*time.Millisecond {
		t.Errorf("Retry.BaseDelay = %v, want 500ms", cfg.Retry.BaseDelay)
	}
	if cfg.Retry.MaxDelay != 10*time.Second {
		t.Errorf("Retry.MaxDelay = %v, want 10s", cfg.Retry.MaxDelay)
	}
}

func TestLoadReader(t *testing.T) {
	in := `
debug: true
preload_timeout: 5s
retry:
  max_retries: 5
  base_delay: 250ms
`
	cfg, err := LoadReader(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	if !cfg.Debug {
		t.Error("debug should be true")
	}
	if cfg.PreloadTimeout != 5*time.Second {
		t.Errorf("PreloadTimeout = %v, want 5s", cfg.PreloadTimeout)
	}
	if cfg.Retry.MaxRetries != 5 {
		t.Errorf("Retry.MaxRetries = %d, want 5", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.BaseDelay != 250*time.Millisecond {
		t.Errorf("Retry.BaseDelay = %v, want 250ms", cfg.Retry.BaseDelay)
	}
	// Unset fields keep defaults.
	if cfg.Retry.MaxDelay != 10*time.Second {
		t.Errorf("Retry.MaxDelay = %v, want default 10s", cfg.Retry.MaxDelay)
	}
}

func TestLoadReaderEmpty(t *testing.T) {
	cfg, err := LoadReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadReader on empty input: %v", err)
	}
	if cfg.PreloadTimeout != 10*time.Second || cfg.Retry.MaxRetries != 3 {
		t.Errorf("empty input should yield defaults, got %+v", cfg)
	}
}

func TestLoadReaderUnknownField(t *testing.T) {
	_, err := LoadReader(strings.NewReader("no_such_field: 1\n"))
	if err == nil {
		t.Error("unknown fields should be rejected")
	}
}

func TestRetryConfigPolicy(t *testing.T) {
	p := Default().Retry.Policy()
	if p.MaxRetries != 3 || p.BaseDelay != 500*time.Millisecond || p.MaxDelay != 10*time.Second {
		t.Errorf("policy = %+v", p)
	}
	if got := (RetryConfig{MaxRetries: -1}).Policy(); got.MaxRetries != 0 {
		t.Errorf("negative retries should clamp to 0, got %d", got.MaxRetries)
	}
}
