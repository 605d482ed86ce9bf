// Package status derives the lifecycle status of a group's last event.
package status

import (
	"time"

	"github.com/okian/evstatus/internal/domain/model"
)

// Status is the lifecycle position of an event relative to the current time.
type Status string

const (
	StatusActive   Status = "active"
	StatusInReview Status = "inReview"
	StatusDone     Status = "done"
)

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInReview, StatusDone:
		return true
	default:
		return false
	}
}

// Derive computes the status of ev at instant now.
//
// Both boundaries belong to the earlier status: now == EndDate is still
// active and now == ReviewEnd() is still in review.
func Derive(now time.Time, ev model.LastEvent) Status {
	if !now.After(ev.EndDate) {
		return StatusActive
	}
	if !now.After(ev.ReviewEnd()) {
		return StatusInReview
	}
	return StatusDone
}
