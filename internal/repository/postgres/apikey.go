package postgres

import (
	"context"
	"time"

	"openupload/internal/domain/apikey"
	apperrors "openupload/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type APIKeyRepository struct {
	db *DB
}

func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

func (r *APIKeyRepository) Create(ctx context.Context, input apikey.CreateAPIKeyInput) (*apikey.APIKey, error) {
	query := `
		INSERT INTO api_keys (project_id, owner_subject, key_hash, key_prefix)
		VALUES ($1, $2, $3, $4)
		RETURNING id, project_id, owner_subject, key_hash, key_prefix, is_active, created_at, last_used_at
	`

	k := &apikey.APIKey{}
	err := r.db.Pool.QueryRow(ctx, query, input.ProjectID, input.OwnerSubject, input.KeyHash, input.KeyPrefix).Scan(
		&k.ID, &k.ProjectID, &k.OwnerSubject, &k.KeyHash, &k.KeyPrefix, &k.IsActive, &k.CreatedAt, &k.LastUsedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("API key already exists")
		}
		return nil, errFailedCreateAPIKey(err)
	}

	return k, nil
}

func (r *APIKeyRepository) GetByID(ctx context.Context, id uuid.UUID) (*apikey.APIKey, error) {
	query := `
		SELECT id, project_id, owner_subject, key_hash, key_prefix, is_active, created_at, last_used_at
		FROM api_keys WHERE id = $1
	`

	k := &apikey.APIKey{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&k.ID, &k.ProjectID, &k.OwnerSubject, &k.KeyHash, &k.KeyPrefix, &k.IsActive, &k.CreatedAt, &k.LastUsedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errAPIKeyNotFound)
		}
		return nil, errFailedGetAPIKey(err)
	}

	return k, nil
}

func (r *APIKeyRepository) GetByHash(ctx context.Context, keyHash string) (*apikey.APIKey, error) {
	query := `
		SELECT id, project_id, owner_subject, key_hash, key_prefix, is_active, created_at, last_used_at
		FROM api_keys WHERE key_hash = $1
	`

	k := &apikey.APIKey{}
	err := r.db.Pool.QueryRow(ctx, query, keyHash).Scan(
		&k.ID, &k.ProjectID, &k.OwnerSubject, &k.KeyHash, &k.KeyPrefix, &k.IsActive, &k.CreatedAt, &k.LastUsedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errAPIKeyNotFound)
		}
		return nil, errFailedGetAPIKey(err)
	}

	return k, nil
}

// ListByOwner returns the owner's keys, optionally narrowed to one project
// when projectID is non-nil.
func (r *APIKeyRepository) ListByOwner(ctx context.Context, ownerSubject string, projectID *uuid.UUID) ([]*apikey.APIKey, error) {
	query := `
		SELECT id, project_id, owner_subject, key_hash, key_prefix, is_active, created_at, last_used_at
		FROM api_keys WHERE owner_subject = $1 AND ($2::uuid IS NULL OR project_id = $2)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, ownerSubject, projectID)
	if err != nil {
		return nil, errFailedListAPIKeys(err)
	}
	defer rows.Close()

	var keys []*apikey.APIKey
	for rows.Next() {
		k := &apikey.APIKey{}
		if err := rows.Scan(&k.ID, &k.ProjectID, &k.OwnerSubject, &k.KeyHash, &k.KeyPrefix, &k.IsActive, &k.CreatedAt, &k.LastUsedAt); err != nil {
			return nil, errFailedScanAPIKey(err)
		}
		keys = append(keys, k)
	}

	return keys, rows.Err()
}

func (r *APIKeyRepository) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	query := "UPDATE api_keys SET last_used_at = $1 WHERE id = $2"

	_, err := r.db.Pool.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return errFailedUpdateLastUsed(err)
	}

	return nil
}

func (r *APIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM api_keys WHERE id = $1"

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteAPIKey(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errAPIKeyNotFound)
	}

	return nil
}
