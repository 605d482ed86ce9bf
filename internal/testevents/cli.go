package testevents

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/evstatus/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) (io.Closer, error) {
	if logFile == "" {
		logFile = "test_log_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithOutput(io.MultiWriter(os.Stdout, file))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return file, nil
}

// ShowHelp prints usage information for the test events tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Event Status Test Tool
======================

Records one event per generated group, spread across the active, inReview
and done phases, then checks that every group reports the expected status.

Usage:
  go run cmd/test-events/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -groups int
        Number of groups to generate (default 3000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -review-hours float
        Review window of generated events, at least 1 (default 24)
  -output string
        Write generated events to this JSON file
  -log string
        Log file for test output (default: test_log_TIMESTAMP.log)
  -verbose
        Log every failed request
  -help
        Show this help message

Examples:
  go run cmd/test-events/main.go -groups 10000 -workers 16 -url http://localhost:8080
`)
}
