package project

import (
	"time"

	"github.com/google/uuid"
)

// Project is the tenancy boundary: every API-key-authenticated operation is
// scoped to exactly one project.
type Project struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	OwnerSubject string    `json:"owner_subject"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateProjectInput struct {
	Name         string
	Description  *string
	OwnerSubject string
}

// Stats holds per-project storage aggregates.
type Stats struct {
	TotalStorage int64 `json:"total_storage"`
	TotalFiles   int64 `json:"total_files"`
}
