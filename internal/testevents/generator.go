package testevents

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/okian/evstatus/internal/domain/status"
)

const randomFloatDivisor = 1000000

// Every generated end date keeps at least this distance from a status
// boundary, so statuses stay stable for the duration of a run.
const boundaryMargin = 10 * time.Minute

var phases = []status.Status{status.StatusActive, status.StatusInReview, status.StatusDone}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateEvents creates one event per group, cycling through the three
// lifecycle phases relative to now.
func generateEvents(config *Config, now time.Time) []Event {
	events := make([]Event, config.NumGroups)
	window := time.Duration(config.ReviewHours * float64(time.Hour))

	for i := range events {
		phase := phases[i%len(phases)]
		events[i] = Event{
			GroupID:               uuid.NewString(),
			EndDate:               endDateFor(phase, now, window).UTC().Format(time.RFC3339),
			ReviewDurationInHours: config.ReviewHours,
			Expected:              phase,
		}
	}
	return events
}

// endDateFor picks an end date that places an event in phase at now.
// RFC3339 drops sub-second precision, which the margins absorb.
func endDateFor(phase status.Status, now time.Time, window time.Duration) time.Time {
	jitter := time.Duration(getRandomFloat() * float64(time.Hour))
	switch phase {
	case status.StatusActive:
		return now.Add(boundaryMargin + jitter)
	case status.StatusInReview:
		// Stay inside the middle half of the review window.
		offset := window/4 + time.Duration(getRandomFloat()*float64(window/2))
		return now.Add(-offset)
	default:
		return now.Add(-window - boundaryMargin - jitter)
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
