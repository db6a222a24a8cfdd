package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"openupload/internal/domain/apikey"
	"openupload/internal/domain/project"
	"openupload/internal/domain/user"
	"openupload/internal/repository"
	apperrors "openupload/pkg/errors"
	"openupload/pkg/token"
)

// Grant is the full context an accepted API key confers: the key row plus the
// project and owner it is bound to. Every key-authenticated request carries
// exactly one Grant.
type Grant struct {
	User    *user.User
	Project *project.Project
	Key     *apikey.APIKey
}

// KeyAuthority turns a presented API key into a Grant. All rejection paths
// collapse to the same unauthorized error so callers cannot probe whether a
// key exists, is inactive, or is orphaned.
type KeyAuthority struct {
	keys     repository.APIKeyRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
}

func NewKeyAuthority(keys repository.APIKeyRepository, projects repository.ProjectRepository, users repository.UserRepository) *KeyAuthority {
	return &KeyAuthority{keys: keys, projects: projects, users: users}
}

func (a *KeyAuthority) Resolve(ctx context.Context, keyString string) (*Grant, error) {
	if !strings.HasPrefix(keyString, token.APIKeyPrefix) {
		return nil, apperrors.Unauthorized(msgInvalidOrInactiveKey)
	}

	key, err := a.keys.GetByHash(ctx, HashKey(keyString))
	if err != nil {
		return nil, apperrors.Unauthorized(msgInvalidOrInactiveKey)
	}

	if !key.IsActive {
		return nil, apperrors.Unauthorized(msgInvalidOrInactiveKey)
	}

	proj, err := a.projects.GetByID(ctx, key.ProjectID)
	if err != nil {
		return nil, apperrors.Unauthorized(msgInvalidOrInactiveKey)
	}

	u, err := a.users.GetBySubject(ctx, key.OwnerSubject)
	if err != nil {
		return nil, apperrors.Unauthorized(msgInvalidOrInactiveKey)
	}

	return &Grant{User: u, Project: proj, Key: key}, nil
}

func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
