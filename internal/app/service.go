// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/evstatus/internal/adapters/repository"
	"github.com/okian/evstatus/internal/domain/model"
	"github.com/okian/evstatus/internal/domain/status"
	"github.com/okian/evstatus/pkg/logger"
	"github.com/okian/evstatus/pkg/metrics"
)

const (
	defaultLookupTimeout = 2 * time.Second
	defaultReviewHours   = 24
)

// Service answers status queries and records new events for groups.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	checker *status.Checker

	// Configuration
	now                func() time.Time
	lookupTimeout      time.Duration
	defaultReviewHours float64
	seedFile           string

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the default in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithClock sets the time source used for status derivation and event stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLookupTimeout bounds each last-event lookup. Zero disables the bound.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.lookupTimeout = d
		}
	}
}

// WithDefaultReviewHours sets the review window used when a recorded event
// does not specify one.
func WithDefaultReviewHours(hours float64) Option {
	return func(s *Service) {
		if hours >= 0 {
			s.defaultReviewHours = hours
		}
	}
}

// WithSeedFile loads events from a YAML file when the service starts.
func WithSeedFile(path string) Option {
	return func(s *Service) {
		s.seedFile = path
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		now:                time.Now,
		lookupTimeout:      defaultLookupTimeout,
		defaultReviewHours: defaultReviewHours,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the store and checker. Calling Start twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting event status service...")

	if s.store == nil {
		s.store = repository.NewMemStore(repository.WithClock(s.now))
		s.logger.Info(ctx, "using in-memory store")
	}

	if s.seedFile != "" {
		n, err := repository.LoadSeed(ctx, s.store, s.seedFile)
		if err != nil {
			s.logger.Error(ctx, "seeding store failed",
				logger.String("seed_file", s.seedFile),
				logger.Int("loaded", n),
				logger.Error(err),
			)
			return err
		}
		s.logger.Info(ctx, "seeded store", logger.String("seed_file", s.seedFile), logger.Int("events", n))
	}

	loader := &instrumentedLoader{
		inner:   s.store,
		timeout: s.lookupTimeout,
		logger:  s.logger.Named("loader"),
	}
	s.checker = status.NewChecker(loader, status.WithClock(s.now))

	s.started = true
	s.logger.Info(ctx, "event status service started",
		logger.Duration("lookup_timeout", s.lookupTimeout),
		logger.Float64("default_review_hours", s.defaultReviewHours),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "event status service stopped")
}

func (s *Service) components() (*status.Checker, repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.checker, s.store, nil
}

// CheckStatus returns the status of the last event of groupID. Loader
// errors are returned unchanged.
func (s *Service) CheckStatus(ctx context.Context, groupID string) (status.Result, error) {
	checker, _, err := s.components()
	if err != nil {
		return status.Result{}, err
	}

	start := time.Now()
	res, err := checker.Check(ctx, groupID)
	metrics.RecordStatusCheckLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		s.logger.Warn(ctx, "status check failed",
			logger.String("group_id", groupID),
			logger.Error(err),
		)
		return status.Result{}, err
	}

	metrics.RecordStatusCheck(res.Status.String())
	s.logger.Debug(ctx, "status checked",
		logger.String("group_id", groupID),
		logger.String("status", res.Status.String()),
	)
	return res, nil
}

// RecordEvent stores a new last event for groupID. A nil reviewHours uses
// the configured default.
func (s *Service) RecordEvent(ctx context.Context, groupID string, endDate time.Time, reviewHours *float64) (model.LastEvent, error) {
	_, store, err := s.components()
	if err != nil {
		return model.LastEvent{}, err
	}

	hours := s.defaultReviewHours
	if reviewHours != nil {
		hours = *reviewHours
	}

	saved, err := store.Save(ctx, model.LastEvent{
		GroupID:               groupID,
		EndDate:               endDate,
		ReviewDurationInHours: hours,
	})
	if err != nil {
		return model.LastEvent{}, err
	}

	metrics.RecordEventRecorded()
	s.logger.Info(ctx, "event recorded",
		logger.String("group_id", saved.GroupID),
		logger.String("event_id", saved.ID),
		logger.Time("end_date", saved.EndDate),
		logger.Float64("review_hours", saved.ReviewDurationInHours),
	)
	return saved, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":            s.started,
		"lookupTimeoutMs":    s.lookupTimeout.Milliseconds(),
		"defaultReviewHours": s.defaultReviewHours,
	}

	if s.started {
		groups := s.store.Count(context.Background())
		stats["totalGroups"] = groups
		metrics.UpdateRepositoryGroupsTotal(groups)
	}

	return stats
}
