package postgres

import (
	"context"

	"openupload/internal/domain/file"
	"openupload/internal/domain/project"
	apperrors "openupload/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FileRepository struct {
	db *DB
}

func NewFileRepository(db *DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, input file.CreateFileInput) (*file.File, error) {
	query := `
		INSERT INTO files (project_id, owner_subject, filename, size_bytes, mime_type, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, project_id, owner_subject, filename, size_bytes, mime_type, storage_key, created_at
	`

	f := &file.File{}
	err := r.db.Pool.QueryRow(ctx, query, input.ProjectID, input.OwnerSubject, input.Filename, input.SizeBytes, input.MimeType, input.StorageKey).Scan(
		&f.ID, &f.ProjectID, &f.OwnerSubject, &f.Filename, &f.SizeBytes, &f.MimeType, &f.StorageKey, &f.CreatedAt,
	)

	if err != nil {
		return nil, errFailedCreateFile(err)
	}

	return f, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*file.File, error) {
	query := `
		SELECT id, project_id, owner_subject, filename, size_bytes, mime_type, storage_key, created_at
		FROM files WHERE id = $1
	`

	f := &file.File{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.ProjectID, &f.OwnerSubject, &f.Filename, &f.SizeBytes, &f.MimeType, &f.StorageKey, &f.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errFileNotFound)
		}
		return nil, errFailedGetFile(err)
	}

	return f, nil
}

// List returns a project's files newest first. A zero Limit means no paging.
func (r *FileRepository) List(ctx context.Context, filter file.ListFilesFilter) ([]*file.File, error) {
	query := `
		SELECT id, project_id, owner_subject, filename, size_bytes, mime_type, storage_key, created_at
		FROM files WHERE project_id = $1
		ORDER BY created_at DESC
	`
	args := []any{filter.ProjectID}

	if filter.Limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errFailedListFiles(err)
	}
	defer rows.Close()

	var files []*file.File
	for rows.Next() {
		f := &file.File{}
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.OwnerSubject, &f.Filename, &f.SizeBytes, &f.MimeType, &f.StorageKey, &f.CreatedAt); err != nil {
			return nil, errFailedScanFile(err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM files WHERE id = $1"

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteFile(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errFileNotFound)
	}

	return nil
}

// StorageKeysByProject lists every blob key a project owns, for cleanup when
// the project is removed.
func (r *FileRepository) StorageKeysByProject(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	query := "SELECT storage_key FROM files WHERE project_id = $1"

	rows, err := r.db.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, errFailedListFiles(err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errFailedScanFile(err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

func (r *FileRepository) StatsByProject(ctx context.Context, projectID uuid.UUID) (*project.Stats, error) {
	query := `
		SELECT COALESCE(SUM(size_bytes), 0), COUNT(*)
		FROM files WHERE project_id = $1
	`

	s := &project.Stats{}
	if err := r.db.Pool.QueryRow(ctx, query, projectID).Scan(&s.TotalStorage, &s.TotalFiles); err != nil {
		return nil, errFailedGetStats(err)
	}

	return s, nil
}

func (r *FileRepository) StatsByOwner(ctx context.Context, ownerSubject string) (*project.Stats, error) {
	query := `
		SELECT COALESCE(SUM(size_bytes), 0), COUNT(*)
		FROM files WHERE owner_subject = $1
	`

	s := &project.Stats{}
	if err := r.db.Pool.QueryRow(ctx, query, ownerSubject).Scan(&s.TotalStorage, &s.TotalFiles); err != nil {
		return nil, errFailedGetStats(err)
	}

	return s, nil
}
