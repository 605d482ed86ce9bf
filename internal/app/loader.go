package service

import (
	"context"
	"time"

	"github.com/okian/evstatus/internal/domain/model"
	"github.com/okian/evstatus/internal/domain/status"
	"github.com/okian/evstatus/pkg/logger"
	"github.com/okian/evstatus/pkg/metrics"
)

// instrumentedLoader decorates a LastEventLoader with an optional per-call
// timeout, latency/error metrics and debug logging. Errors from the inner
// loader pass through untouched.
type instrumentedLoader struct {
	inner   status.LastEventLoader
	timeout time.Duration
	logger  logger.Logger
}

func (l *instrumentedLoader) LoadLast(ctx context.Context, groupID string) (*model.LastEvent, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	ev, err := l.inner.LoadLast(ctx, groupID)
	elapsed := time.Since(start)
	metrics.RecordLoaderLatency(float64(elapsed.Milliseconds()))

	if err != nil {
		metrics.RecordLoaderError()
		metrics.RecordErrorByComponent("loader", "load_failed")
		metrics.RecordErrorLatency("loader", "load_failed", float64(elapsed.Milliseconds()))
		return nil, err
	}

	l.logger.Debug(ctx, "loaded last event",
		logger.String("group_id", groupID),
		logger.Bool("found", ev != nil),
		logger.Duration("took", elapsed),
	)
	return ev, nil
}
