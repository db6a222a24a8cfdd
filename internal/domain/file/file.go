package file

import (
	"time"

	"github.com/google/uuid"
)

// File is the database record for an uploaded blob. StorageKey addresses the
// blob in the configured store; a record must never outlive its blob
// (a record whose blob is gone reads as not-found, never as an error).
type File struct {
	ID           uuid.UUID `json:"id"`
	ProjectID    uuid.UUID `json:"project_id"`
	OwnerSubject string    `json:"owner_subject"`
	Filename     string    `json:"filename"`
	SizeBytes    int64     `json:"size_bytes"`
	MimeType     string    `json:"mime_type"`
	StorageKey   string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateFileInput struct {
	ProjectID    uuid.UUID
	OwnerSubject string
	Filename     string
	SizeBytes    int64
	MimeType     string
	StorageKey   string
}

type ListFilesFilter struct {
	ProjectID uuid.UUID
	Limit     int
	Offset    int
}
