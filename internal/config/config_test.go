package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/evstatus/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.SeedFile, convey.ShouldEqual, "")
			convey.So(cfg.DefaultReviewHours, convey.ShouldEqual, 24.0)
			convey.So(cfg.LookupTimeoutMS, convey.ShouldEqual, 2000)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "evstatus")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "checker")
		})

		convey.Convey("Then the defaults should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("When addr is blank", func() {
			cfg.Addr = "  "

			convey.Convey("Then validation should fail with ErrInvalidConfig", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When default review hours are negative", func() {
			cfg.DefaultReviewHours = -1

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the lookup timeout is negative", func() {
			cfg.LookupTimeoutMS = -5

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the log format is unknown", func() {
			cfg.LogFormat = "xml"

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When metrics buckets are not increasing", func() {
			cfg.MetricsBuckets = []float64{1, 5, 5}

			convey.Convey("Then validation should fail", func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "metrics_buckets")
			})
		})

		convey.Convey("When the lookup timeout is zero", func() {
			cfg.LookupTimeoutMS = 0

			convey.Convey("Then validation should pass", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})
	})
}
