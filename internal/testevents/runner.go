package testevents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/evstatus/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Shortest review window that leaves room for boundaryMargin on both sides
// of the in-review phase.
const minReviewHours = 1.0

// PercentageMultiplier converts ratios to percentages.
const PercentageMultiplier = 100

// Errors returned by Run.
var (
	ErrInvalidConfig = errors.New("invalid test config")
	ErrVerification  = errors.New("status verification failed")
)

// Validate reports the first unusable field.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base URL must not be empty", ErrInvalidConfig)
	case c.NumGroups <= 0:
		return fmt.Errorf("%w: number of groups must be positive", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case c.ReviewHours < minReviewHours:
		return fmt.Errorf("%w: review hours must be at least %.0f", ErrInvalidConfig, minReviewHours)
	}
	return nil
}

// Run executes the complete event test.
func Run(ctx context.Context, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting event status test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("groups", config.NumGroups),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Float64("reviewHours", config.ReviewHours),
		logger.Bool("verbose", config.Verbose))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	events := generateEvents(config, stats.StartTime)
	stats.EventsGenerated = len(events)

	submitEvents(ctx, config, events, stats)
	if ctx.Err() != nil {
		return fmt.Errorf("event submission interrupted: %w", ctx.Err())
	}

	mismatches := checkStatuses(ctx, config, events, stats)

	if config.OutputFile != "" {
		if err := saveEventsToFile(ctx, config.OutputFile, events); err != nil {
			logger.Get().Warn(ctx, "failed to save events to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if err := verifyResults(ctx, mismatches, stats); err != nil {
		return err
	}

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	resp, err := newHTTPClient(config.Timeout).Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// verifyResults fails the run on any mismatch, failed request or lost event.
func verifyResults(ctx context.Context, mismatches []Mismatch, stats *Stats) error {
	for _, m := range mismatches {
		logger.Get().Error(ctx, "status mismatch",
			logger.String("groupID", m.GroupID),
			logger.String("expected", m.Expected.String()),
			logger.String("got", m.Got.String()))
	}

	switch {
	case len(mismatches) > 0:
		return fmt.Errorf("%w: %d of %d groups reported an unexpected status",
			ErrVerification, len(mismatches), stats.EventsGenerated)
	case stats.EventsFailed > 0:
		return fmt.Errorf("%w: %d event submissions failed", ErrVerification, stats.EventsFailed)
	case stats.StatusesFailed > 0:
		return fmt.Errorf("%w: %d status checks failed", ErrVerification, stats.StatusesFailed)
	case stats.StatusesChecked != stats.EventsGenerated:
		return fmt.Errorf("%w: checked %d of %d groups",
			ErrVerification, stats.StatusesChecked, stats.EventsGenerated)
	}
	return nil
}

// saveEventsToFile saves the generated events to a JSON file.
func saveEventsToFile(ctx context.Context, filename string, events []Event) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "events saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final test statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, eventsPerSecond float64

	if stats.EventsSubmitted > 0 {
		successRate = float64(stats.EventsSuccessful) / float64(stats.EventsSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		eventsPerSecond = float64(stats.EventsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("eventsGenerated", stats.EventsGenerated),
		logger.Int("eventsSubmitted", stats.EventsSubmitted),
		logger.Int("eventsSuccessful", stats.EventsSuccessful),
		logger.Int("eventsFailed", stats.EventsFailed),
		logger.Int("statusesChecked", stats.StatusesChecked),
		logger.Int("statusesFailed", stats.StatusesFailed),
		logger.Int("mismatches", stats.Mismatches),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("eventsPerSecond", eventsPerSecond))
}
