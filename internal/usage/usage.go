package usage

import (
	"time"

	"github.com/google/uuid"
)

// Event is one accounting record for a completed API-key-authenticated
// request. Rows are append-only; the application never updates or deletes
// them.
type Event struct {
	ID             uuid.UUID `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Endpoint       string    `json:"endpoint"`
	ResponseTimeMS float64   `json:"response_time_ms"`
	StatusCode     int       `json:"status_code"`
	OwnerSubject   string    `json:"owner_subject"`
	ProjectID      uuid.UUID `json:"project_id"`
	APIKeyID       uuid.UUID `json:"api_key_id"`
}

// DayStat is one row of the per-day aggregation.
type DayStat struct {
	Date         string  `json:"date"`
	Calls        int64   `json:"calls"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
	SuccessRate  float64 `json:"success_rate"`
}

// Stats summarizes a window of events for one owner or one key.
type Stats struct {
	TotalCalls   int64   `json:"total_calls"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
	SuccessRate  float64 `json:"success_rate"`
}

// Filter narrows a raw-event listing. Nil pointer fields are ignored.
type Filter struct {
	OwnerSubject string
	ProjectID    *uuid.UUID
	APIKeyID     *uuid.UUID
	Start        *time.Time
	End          *time.Time
	Limit        int
	Offset       int
}

// SuccessRate treats an empty window as fully successful rather than
// undefined. A success is any status below 400.
func SuccessRate(calls, successes int64) float64 {
	if calls == 0 {
		return 100.0
	}
	return float64(successes) / float64(calls) * 100
}

// ChangePercent compares two equal-length adjacent windows. A zero previous
// window saturates to 100 instead of dividing by zero, unless both windows
// are empty.
func ChangePercent(previous, current int64) float64 {
	if previous > 0 {
		return float64(current-previous) / float64(previous) * 100
	}
	if current == 0 {
		return 0
	}
	return 100
}
