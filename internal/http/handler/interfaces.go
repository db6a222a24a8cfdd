package handler

import (
	"context"
	"io"
	"time"

	"openupload/internal/domain/apikey"
	"openupload/internal/domain/file"
	"openupload/internal/domain/project"
	"openupload/internal/usage"

	"github.com/google/uuid"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

// ProjectHandler interfaces
type ProjectRepository interface {
	Create(ctx context.Context, input project.CreateProjectInput) (*project.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
	ListByOwner(ctx context.Context, ownerSubject string) ([]*project.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProjectGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
}

type APIKeyLister interface {
	ListByOwner(ctx context.Context, ownerSubject string, projectID *uuid.UUID) ([]*apikey.APIKey, error)
}

// APIKeyHandler interfaces
type APIKeyRepository interface {
	Create(ctx context.Context, input apikey.CreateAPIKeyInput) (*apikey.APIKey, error)
	GetByID(ctx context.Context, id uuid.UUID) (*apikey.APIKey, error)
	GetByHash(ctx context.Context, hash string) (*apikey.APIKey, error)
	ListByOwner(ctx context.Context, ownerSubject string, projectID *uuid.UUID) ([]*apikey.APIKey, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileHandler interfaces
type FileRepository interface {
	Create(ctx context.Context, input file.CreateFileInput) (*file.File, error)
	GetByID(ctx context.Context, id uuid.UUID) (*file.File, error)
	List(ctx context.Context, filter file.ListFilesFilter) ([]*file.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
	StorageKeysByProject(ctx context.Context, projectID uuid.UUID) ([]string, error)
	StatsByProject(ctx context.Context, projectID uuid.UUID) (*project.Stats, error)
	StatsByOwner(ctx context.Context, ownerSubject string) (*project.Stats, error)
}

type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// UsageHandler interfaces
type UsageReader interface {
	StatsByDay(ctx context.Context, ownerSubject string, days int) ([]*usage.DayStat, error)
	Details(ctx context.Context, filter usage.Filter) ([]*usage.Event, error)
	CountInWindow(ctx context.Context, ownerSubject string, start, end time.Time) (int64, error)
	StatsForKey(ctx context.Context, apiKeyID uuid.UUID, days int) (*usage.Stats, error)
}
