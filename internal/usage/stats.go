package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"

	errFailedQueryUsageFmt = "failed to query usage: %w"
	errFailedScanUsageFmt  = "failed to scan usage row: %w"
)

// StatsByDay aggregates an owner's events per calendar day over the trailing
// window. Days without traffic produce no row.
func (r *Recorder) StatsByDay(ctx context.Context, ownerSubject string, days int) ([]*DayStat, error) {
	query := `
		SELECT DATE(timestamp), COUNT(*), COALESCE(AVG(response_time_ms), 0),
			COUNT(*) FILTER (WHERE status_code < 400)
		FROM api_usage
		WHERE owner_subject = $1 AND timestamp >= $2
		GROUP BY DATE(timestamp)
		ORDER BY DATE(timestamp)
	`

	since := time.Now().AddDate(0, 0, -days)
	rows, err := r.pool.Query(ctx, query, ownerSubject, since)
	if err != nil {
		return nil, fmt.Errorf(errFailedQueryUsageFmt, err)
	}
	defer rows.Close()

	var stats []*DayStat
	for rows.Next() {
		var (
			date      time.Time
			calls     int64
			avg       float64
			successes int64
		)
		if err := rows.Scan(&date, &calls, &avg, &successes); err != nil {
			return nil, fmt.Errorf(errFailedScanUsageFmt, err)
		}
		stats = append(stats, &DayStat{
			Date:         date.Format(dateLayout),
			Calls:        calls,
			AvgLatencyMS: avg,
			SuccessRate:  SuccessRate(calls, successes),
		})
	}

	return stats, rows.Err()
}

// Details returns raw events newest first. A zero Limit means no paging.
func (r *Recorder) Details(ctx context.Context, filter Filter) ([]*Event, error) {
	query := `
		SELECT id, timestamp, endpoint, response_time_ms, status_code, owner_subject, project_id, api_key_id
		FROM api_usage
		WHERE owner_subject = $1
			AND ($2::uuid IS NULL OR project_id = $2)
			AND ($3::uuid IS NULL OR api_key_id = $3)
			AND ($4::timestamptz IS NULL OR timestamp >= $4)
			AND ($5::timestamptz IS NULL OR timestamp <= $5)
		ORDER BY timestamp DESC
	`
	args := []any{filter.OwnerSubject, filter.ProjectID, filter.APIKeyID, filter.Start, filter.End}

	if filter.Limit > 0 {
		query += " LIMIT $6 OFFSET $7"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf(errFailedQueryUsageFmt, err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Endpoint, &e.ResponseTimeMS, &e.StatusCode, &e.OwnerSubject, &e.ProjectID, &e.APIKeyID); err != nil {
			return nil, fmt.Errorf(errFailedScanUsageFmt, err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// CountInWindow counts an owner's events inside [start, end).
func (r *Recorder) CountInWindow(ctx context.Context, ownerSubject string, start, end time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM api_usage
		WHERE owner_subject = $1 AND timestamp >= $2 AND timestamp < $3
	`

	var count int64
	if err := r.pool.QueryRow(ctx, query, ownerSubject, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf(errFailedQueryUsageFmt, err)
	}

	return count, nil
}

// StatsForKey summarizes one key's trailing window. A window with no events
// reads as zero calls with a 100% success rate.
func (r *Recorder) StatsForKey(ctx context.Context, apiKeyID uuid.UUID, days int) (*Stats, error) {
	query := `
		SELECT COUNT(*), COALESCE(AVG(response_time_ms), 0),
			COUNT(*) FILTER (WHERE status_code < 400)
		FROM api_usage
		WHERE api_key_id = $1 AND timestamp >= $2
	`

	since := time.Now().AddDate(0, 0, -days)

	var (
		calls     int64
		avg       float64
		successes int64
	)
	if err := r.pool.QueryRow(ctx, query, apiKeyID, since).Scan(&calls, &avg, &successes); err != nil {
		return nil, fmt.Errorf(errFailedQueryUsageFmt, err)
	}

	return &Stats{
		TotalCalls:   calls,
		AvgLatencyMS: avg,
		SuccessRate:  SuccessRate(calls, successes),
	}, nil
}
