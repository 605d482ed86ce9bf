package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/evstatus/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DefaultReviewHours, convey.ShouldEqual, 24.0)
				convey.So(cfg.LookupTimeoutMS, convey.ShouldEqual, 2000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("EVSTATUS_ADDR", ":8080")
			_ = os.Setenv("EVSTATUS_LOG_LEVEL", "debug")
			_ = os.Setenv("EVSTATUS_SEED_FILE", "/tmp/seed.yaml")
			_ = os.Setenv("EVSTATUS_DEFAULT_REVIEW_HOURS", "1.5")
			_ = os.Setenv("EVSTATUS_LOOKUP_TIMEOUT_MS", "250")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.SeedFile, convey.ShouldEqual, "/tmp/seed.yaml")
				convey.So(cfg.DefaultReviewHours, convey.ShouldEqual, 1.5)
				convey.So(cfg.LookupTimeoutMS, convey.ShouldEqual, 250)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
log_format: json
default_review_hours: 48
lookup_timeout_ms: 500
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("EVSTATUS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.DefaultReviewHours, convey.ShouldEqual, 48.0)
				convey.So(cfg.LookupTimeoutMS, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading metrics settings from a YAML file", func() {
			yamlContent := `
metrics_namespace: acme
metrics_subsystem: events
metrics_prefix: v2
metrics_buckets: [1, 5, 25]
metrics_labels:
  env: staging
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("EVSTATUS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the metrics naming should follow the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "acme")
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "events")
				convey.So(cfg.MetricsPrefix, convey.ShouldEqual, "v2")
				convey.So(cfg.MetricsBuckets, convey.ShouldResemble, []float64{1, 5, 25})
				convey.So(cfg.MetricsLabels, convey.ShouldResemble, map[string]string{"env": "staging"})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
default_review_hours: 48
lookup_timeout_ms: 500
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("EVSTATUS_CONFIG", tmpFile)
			_ = os.Setenv("EVSTATUS_ADDR", ":8080")
			_ = os.Setenv("EVSTATUS_LOOKUP_TIMEOUT_MS", "100")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultReviewHours, convey.ShouldEqual, 48.0)
				convey.So(cfg.LookupTimeoutMS, convey.ShouldEqual, 100)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("EVSTATUS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("EVSTATUS_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("EVSTATUS_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative review window", func() {
			_ = os.Setenv("EVSTATUS_DEFAULT_REVIEW_HOURS", "-2")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("EVSTATUS_LOOKUP_TIMEOUT_MS", "soon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with partial YAML file", func() {
			tmpFile := createTempConfigFile("seed_file: ./events.yaml\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("EVSTATUS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.SeedFile, convey.ShouldEqual, "./events.yaml")
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DefaultReviewHours, convey.ShouldEqual, 24.0)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"EVSTATUS_CONFIG",
		"EVSTATUS_ADDR",
		"EVSTATUS_LOG_LEVEL",
		"EVSTATUS_LOG_FORMAT",
		"EVSTATUS_SEED_FILE",
		"EVSTATUS_DEFAULT_REVIEW_HOURS",
		"EVSTATUS_LOOKUP_TIMEOUT_MS",
		"EVSTATUS_METRICS_NAMESPACE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "evstatus-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
