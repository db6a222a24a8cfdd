package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound reports a missing blob. Both backends translate their native
// not-found errors to this sentinel.
var ErrNotFound = errors.New("blob not found")

// BlobStore abstracts the byte store behind uploads. Save reports the number
// of bytes it consumed from r.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// BuildKey derives the blob key for an upload: files live under a per-project
// prefix, with an upload timestamp baked into the name so two uploads of the
// same filename never collide.
func BuildKey(projectID uuid.UUID, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%s", projectID, now.UnixNano(), filename)
}
