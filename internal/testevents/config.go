package testevents

import (
	"time"

	"github.com/okian/evstatus/internal/domain/status"
)

// Config holds configuration for the event test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumGroups   int           // Number of groups to generate an event for
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	ReviewHours float64       // Review window of every generated event
	OutputFile  string        // Output file for events
	Verbose     bool          // Enable verbose logging
}

// Event is a generated last event together with the status it should
// report while the test runs.
type Event struct {
	GroupID               string        `json:"group_id"`
	EndDate               string        `json:"end_date"`
	ReviewDurationInHours float64       `json:"review_duration_in_hours"`
	Expected              status.Status `json:"expected_status"`
}

// Mismatch records a group whose reported status differs from the expected one.
type Mismatch struct {
	GroupID  string
	Expected status.Status
	Got      status.Status
}

// Stats holds test statistics
type Stats struct {
	EventsGenerated  int
	EventsSubmitted  int
	EventsSuccessful int
	EventsFailed     int
	StatusesChecked  int
	StatusesFailed   int
	Mismatches       int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
