package repository

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/evstatus/internal/domain/model"
	"github.com/okian/evstatus/pkg/metrics"
)

// MemStore is an in-memory Store that keeps only the latest event per group.
type MemStore struct {
	mu      sync.RWMutex
	byGroup map[string]model.LastEvent

	now   func() time.Time
	newID func() string
}

// NewMemStore constructs an empty MemStore.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		byGroup: make(map[string]model.LastEvent),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadLast implements Store.LoadLast.
func (s *MemStore) LoadLast(ctx context.Context, groupID string) (*model.LastEvent, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load last event: %w", err)
	}

	s.mu.RLock()
	ev, ok := s.byGroup[groupID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

// Save implements Store.Save. A later save replaces the group's previous event.
func (s *MemStore) Save(ctx context.Context, ev model.LastEvent) (model.LastEvent, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositorySaveLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := ctx.Err(); err != nil {
		return model.LastEvent{}, fmt.Errorf("save event: %w", err)
	}
	if strings.TrimSpace(ev.GroupID) == "" {
		metrics.RecordErrorByComponent("repository", "empty_group_id")
		return model.LastEvent{}, ErrEmptyGroupID
	}
	if ev.ReviewDurationInHours < 0 || math.IsNaN(ev.ReviewDurationInHours) || math.IsInf(ev.ReviewDurationInHours, 0) {
		metrics.RecordErrorByComponent("repository", "invalid_review_duration")
		return model.LastEvent{}, fmt.Errorf("%w: %v", ErrInvalidReviewDuration, ev.ReviewDurationInHours)
	}
	if ev.ID == "" {
		ev.ID = s.newID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = s.now()
	}

	s.mu.Lock()
	s.byGroup[ev.GroupID] = ev
	n := len(s.byGroup)
	s.mu.Unlock()

	metrics.UpdateRepositoryGroupsTotal(n)
	return ev, nil
}

// Count implements Store.Count.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byGroup)
}
