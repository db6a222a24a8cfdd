package apikey

import (
	"time"

	"github.com/google/uuid"
)

// APIKey carries the persisted shape of an issued key. The secret token is
// returned to the caller once at creation; only KeyHash and the display
// prefix survive in storage. Keys are deactivated rather than regenerated.
type APIKey struct {
	ID           uuid.UUID  `json:"id"`
	ProjectID    uuid.UUID  `json:"project_id"`
	OwnerSubject string     `json:"owner_subject"`
	KeyHash      string     `json:"-"`
	KeyPrefix    string     `json:"key_prefix"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastUsedAt   *time.Time `json:"last_used_at"`
}

type CreateAPIKeyInput struct {
	ProjectID    uuid.UUID
	OwnerSubject string
	KeyHash      string
	KeyPrefix    string
}
