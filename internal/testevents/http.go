package testevents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/evstatus/internal/domain/status"
	"github.com/okian/evstatus/pkg/logger"
)

// WorkerChannelMultiplier sizes worker input channels relative to the worker count.
const WorkerChannelMultiplier = 2

var errUnexpectedStatus = errors.New("unexpected HTTP status")

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()
	return io.ReadAll(resp.Body)
}

// runPool feeds indices 0..n-1 to workers and waits for them to finish.
func runPool(ctx context.Context, workers, n int, fn func(i int)) {
	indexChan := make(chan int, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexChan {
				if ctx.Err() != nil {
					continue
				}
				fn(i)
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()
}

// submitEvents posts every event concurrently.
func submitEvents(ctx context.Context, config *Config, events []Event, stats *Stats) {
	logger.Get().Info(ctx, "submitting events",
		logger.Int("count", len(events)), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	var submitted, successful, failed int64

	runPool(ctx, minInt(config.Workers, len(events)), len(events), func(i int) {
		atomic.AddInt64(&submitted, 1)
		if err := submitSingleEvent(ctx, client, config.BaseURL, events[i]); err != nil {
			atomic.AddInt64(&failed, 1)
			if config.Verbose {
				logger.Get().Warn(ctx, "event submission failed",
					logger.String("groupID", events[i].GroupID), logger.Error(err))
			}
			return
		}
		atomic.AddInt64(&successful, 1)
	})

	stats.EventsSubmitted = int(submitted)
	stats.EventsSuccessful = int(successful)
	stats.EventsFailed = int(failed)

	logger.Get().Info(ctx, "event submission completed",
		logger.Int("successful", stats.EventsSuccessful), logger.Int("failed", stats.EventsFailed))
}

// submitSingleEvent posts one event to its group.
func submitSingleEvent(ctx context.Context, client *HTTPClient, baseURL string, event Event) error {
	resp, err := client.Post(ctx, baseURL+"/groups/"+event.GroupID+"/events", event)
	if err != nil {
		return err
	}
	if _, err := readResponseBody(resp); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// checkStatuses fetches every group's status and collects mismatches.
func checkStatuses(ctx context.Context, config *Config, events []Event, stats *Stats) []Mismatch {
	logger.Get().Info(ctx, "checking statuses", logger.Int("groups", len(events)))

	client := newHTTPClient(config.Timeout)
	var (
		mu         sync.Mutex
		mismatches []Mismatch
		checked    int64
		failed     int64
	)

	runPool(ctx, minInt(config.Workers, len(events)), len(events), func(i int) {
		ev := events[i]
		got, err := fetchStatus(ctx, client, config.BaseURL, ev.GroupID)
		if err != nil {
			atomic.AddInt64(&failed, 1)
			if config.Verbose {
				logger.Get().Warn(ctx, "status check failed",
					logger.String("groupID", ev.GroupID), logger.Error(err))
			}
			return
		}
		atomic.AddInt64(&checked, 1)
		if got != ev.Expected {
			mu.Lock()
			mismatches = append(mismatches, Mismatch{GroupID: ev.GroupID, Expected: ev.Expected, Got: got})
			mu.Unlock()
		}
	})

	stats.StatusesChecked = int(checked)
	stats.StatusesFailed = int(failed)
	stats.Mismatches = len(mismatches)
	return mismatches
}

// fetchStatus returns the status reported for groupID.
func fetchStatus(ctx context.Context, client *HTTPClient, baseURL, groupID string) (status.Status, error) {
	resp, err := client.Get(ctx, baseURL+"/groups/"+groupID+"/status")
	if err != nil {
		return "", err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	var res status.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("failed to decode status: %w", err)
	}
	if !res.Status.Valid() {
		return "", fmt.Errorf("unknown status %q", res.Status)
	}
	return res.Status, nil
}
