package usage

import (
	"context"
	"errors"
	"time"

	"openupload/internal/auth"
	apperrors "openupload/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const recordTimeout = 2 * time.Second

// Recorder appends usage events and serves the read-only projections over
// them.
type Recorder struct {
	pool *pgxpool.Pool
}

func NewRecorder(pool *pgxpool.Pool) *Recorder {
	return &Recorder{pool: pool}
}

// Sink is the write half of the Recorder, split out so the middleware can be
// tested without a database.
type Sink interface {
	Record(ctx context.Context, event *Event) error
}

func (r *Recorder) Record(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	query := `
		INSERT INTO api_usage (id, timestamp, endpoint, response_time_ms, status_code, owner_subject, project_id, api_key_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Timestamp,
		event.Endpoint,
		event.ResponseTimeMS,
		event.StatusCode,
		event.OwnerSubject,
		event.ProjectID,
		event.APIKeyID,
	)

	return err
}

// Middleware meters every request that carries a Grant: exactly one event per
// request, with the real elapsed time and the final status code. It runs
// after the API key middleware, so requests rejected there are never metered.
// A recording failure is logged and swallowed; it never alters the response.
func Middleware(sink Sink) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			grant, grantErr := auth.GetGrant(c)
			if grantErr != nil {
				return grantErr
			}

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			event := &Event{
				Endpoint:       c.Request().Method + " " + c.Path(),
				ResponseTimeMS: float64(elapsed) / float64(time.Millisecond),
				StatusCode:     statusOf(c, err),
				OwnerSubject:   grant.User.Subject,
				ProjectID:      grant.Project.ID,
				APIKeyID:       grant.Key.ID,
			}

			// Recorded on a detached context so a cancelled request cannot
			// abort a write already underway.
			recordCtx, cancel := context.WithTimeout(context.Background(), recordTimeout)
			defer cancel()
			if recordErr := sink.Record(recordCtx, event); recordErr != nil {
				c.Logger().Warnf("failed to record usage event for key %s: %v", grant.Key.ID, recordErr)
			}

			return err
		}
	}
}

// statusOf resolves the status code the client will see. When the handler
// returned an error the response is not written yet, so the code comes from
// the error instead of the response.
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return apperrors.StatusOf(err)
}
