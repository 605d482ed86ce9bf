// Package model contains domain models passed between layers.
package model

import (
	"math"
	"time"
)

// LastEvent is the most recent time-bounded event recorded for a group.
// Values are treated as immutable once loaded.
type LastEvent struct {
	ID                    string    // store-assigned identifier
	GroupID               string    // owning group
	EndDate               time.Time // end of the primary event period
	ReviewDurationInHours float64   // review window that follows EndDate
	CreatedAt             time.Time // when the event was recorded
}

// MaxReviewWindow is the longest window a time.Duration can hold, about 292 years.
const MaxReviewWindow = time.Duration(math.MaxInt64)

// ReviewWindow converts ReviewDurationInHours into a time.Duration.
// Windows beyond MaxReviewWindow saturate instead of wrapping; zero,
// negative and NaN hours yield an empty window.
func (e LastEvent) ReviewWindow() time.Duration {
	h := e.ReviewDurationInHours
	if !(h > 0) {
		return 0
	}
	w := h * float64(time.Hour)
	if w >= float64(math.MaxInt64) {
		return MaxReviewWindow
	}
	return time.Duration(w)
}

// ReviewEnd returns the instant at which the review window closes.
// time.Time.Add saturates, so a saturated window never lands before EndDate.
func (e LastEvent) ReviewEnd() time.Time {
	return e.EndDate.Add(e.ReviewWindow())
}
