// Package repository provides last-event storage adapters.
package repository

import (
	"context"

	"github.com/okian/evstatus/internal/domain/model"
)

// Store provides read/write access to the last event of each group.
type Store interface {
	// LoadLast returns the most recently saved event for groupID, or
	// (nil, nil) when the group has none.
	LoadLast(ctx context.Context, groupID string) (*model.LastEvent, error)

	// Save records ev as the last event of its group and returns the stored
	// copy with ID and CreatedAt populated.
	Save(ctx context.Context, ev model.LastEvent) (model.LastEvent, error)

	// Count returns the number of groups that have an event.
	Count(ctx context.Context) int
}
