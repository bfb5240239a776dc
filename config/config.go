// Package config holds explicit runtime configuration for the studio
// pipeline. The original builder read its debug switch from ambient page
// state; here every knob is a value loaded from a YAML file or constructed
// in code and threaded into the pipeline entry points.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sitesmith/studio/retry"
)

// Config is the top-level studio configuration.
type Config struct {
	// Debug enables diagnostic behavior across the pipeline: preload
	// status reporting, per-layer render logging.
	Debug bool `yaml:"debug"`

	// PreloadTimeout bounds each individual asset load. Zero means the
	// default of 10 seconds.
	PreloadTimeout time.Duration `yaml:"preload_timeout"`

	// Retry is the policy applied to outbound calls (LLM invocation,
	// asset origin fetches made through retry-aware clients).
	Retry RetryConfig `yaml:"retry"`

	// FontDirs lists directories scanned for font files at startup.
	FontDirs []string `yaml:"font_dirs"`
}

// RetryConfig parameterizes the exponential backoff policy in the retry
// package.
type RetryConfig struct {
	MaxRetries int           `yaml:"max_retries"`
	BaseDelay  time.Duration `yaml:"base_delay"`
	MaxDelay   time.Duration `yaml:"max_delay"`
}

// Policy converts the configuration into the retry package's policy
// value.
func (rc RetryConfig) Policy() retry.Policy {
	n := rc.MaxRetries
	if n < 0 {
		n = 0
	}
	return retry.Policy{
		MaxRetries: uint(n),
		BaseDelay:  rc.BaseDelay,
		MaxDelay:   rc.MaxDelay,
	}
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Debug:          false,
		PreloadTimeout: 10 * time.Second,
		Retry: RetryConfig{
			MaxRetries: 3,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   10 * time.Second,
		},
	}
}

// Load reads a YAML configuration file. Unset fields keep their defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader decodes YAML configuration from r. Unset fields keep their
// defaults.
func LoadReader(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.PreloadTimeout <= 0 {
		cfg.PreloadTimeout = 10 * time.Second
	}
	if cfg.Retry.MaxRetries < 0 {
		cfg.Retry.MaxRetries = 0
	}
	if cfg.Retry.BaseDelay <= 0 {
		cfg.Retry.BaseDelay = 500 * time.Millisecond
	}
	if cfg.Retry.MaxDelay <= 0 {
		cfg.Retry.MaxDelay = 10 * time.Second
	}
	return cfg, nil
}
