// Package config defines service configuration structures and loading hooks.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SeedFile optionally points at a YAML file of events loaded at startup.
	SeedFile string `koanf:"seed_file"`

	// DefaultReviewHours is applied when a recorded event omits its review window.
	DefaultReviewHours float64 `koanf:"default_review_hours"`

	// LookupTimeoutMS bounds a single last-event lookup. Zero disables the bound.
	LookupTimeoutMS int `koanf:"lookup_timeout_ms"`

	// Metrics naming. Namespace and subsystem prefix every metric name.
	MetricsNamespace string            `koanf:"metrics_namespace"`
	MetricsSubsystem string            `koanf:"metrics_subsystem"`
	MetricsPrefix    string            `koanf:"metrics_prefix"`
	MetricsBuckets   []float64         `koanf:"metrics_buckets"`
	MetricsLabels    map[string]string `koanf:"metrics_labels"`
}

// New returns a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		DefaultReviewHours: 24,
		LookupTimeoutMS:    2000,
		MetricsNamespace:   "evstatus",
		MetricsSubsystem:   "checker",
	}
}
