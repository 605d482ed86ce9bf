package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/evstatus/internal/testevents"
)

// Default configuration constants.
const (
	defaultNumGroups   = 3000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultReviewHours = 24.0
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numGroups   = flag.Int("groups", defaultNumGroups, "Number of groups to generate")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		reviewHours = flag.Float64("review-hours", defaultReviewHours, "Review window of generated events")
		outputFile  = flag.String("output", "", "Write generated events to this JSON file")
		logFile     = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testevents.ShowHelp()
		return
	}

	closer, err := testevents.SetupLogging(*logFile)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &testevents.Config{
		BaseURL:     *baseURL,
		NumGroups:   *numGroups,
		Workers:     *workers,
		Timeout:     *timeout,
		ReviewHours: *reviewHours,
		OutputFile:  *outputFile,
		Verbose:     *verbose,
	}

	if err := testevents.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		_ = closer.Close()
		cancel()
		os.Exit(1)
	}
}
