package repository

import (
	"context"

	"openupload/internal/domain/apikey"
	"openupload/internal/domain/project"
	"openupload/internal/domain/user"

	"github.com/google/uuid"
)

// Repository interfaces used by the auth package
// These are provider-side interfaces that concrete implementations must satisfy

type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetBySubject(ctx context.Context, subject string) (*user.User, error)
}

type ProjectRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
}

type APIKeyRepository interface {
	GetByHash(ctx context.Context, hash string) (*apikey.APIKey, error)
	UpdateLastUsed(ctx context.Context, id uuid.UUID) error
}
