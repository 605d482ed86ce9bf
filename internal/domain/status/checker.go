package status

import (
	"context"
	"time"

	"github.com/okian/evstatus/internal/domain/model"
)

// LastEventLoader fetches the most recent event recorded for a group.
type LastEventLoader interface {
	// LoadLast returns (nil, nil) when the group has no event.
	LoadLast(ctx context.Context, groupID string) (*model.LastEvent, error)
}

// Result is the outcome of a status check.
type Result struct {
	Status Status `json:"status"`
}

// Option applies a configuration option to the Checker.
type Option func(*Checker)

// WithClock overrides the time source used by Check.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		if now != nil {
			c.now = now
		}
	}
}

// Checker resolves the status of a group's last event. It holds no state
// between calls and is safe for concurrent use.
type Checker struct {
	loader LastEventLoader
	now    func() time.Time
}

// NewChecker creates a Checker backed by loader.
func NewChecker(loader LastEventLoader, opts ...Option) *Checker {
	c := &Checker{
		loader: loader,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check loads the last event of groupID and derives its status.
// Loader errors are returned as-is.
func (c *Checker) Check(ctx context.Context, groupID string) (Result, error) {
	ev, err := c.loader.LoadLast(ctx, groupID)
	if err != nil {
		return Result{}, err
	}
	if ev == nil {
		return Result{Status: StatusDone}, nil
	}
	return Result{Status: Derive(c.now(), *ev)}, nil
}
