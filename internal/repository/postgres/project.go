package postgres

import (
	"context"

	"openupload/internal/domain/project"
	apperrors "openupload/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, input project.CreateProjectInput) (*project.Project, error) {
	query := `
		INSERT INTO projects (name, description, owner_subject)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, owner_subject, created_at
	`

	p := &project.Project{}
	err := r.db.Pool.QueryRow(ctx, query, input.Name, input.Description, input.OwnerSubject).Scan(
		&p.ID, &p.Name, &p.Description, &p.OwnerSubject, &p.CreatedAt,
	)

	if err != nil {
		return nil, errFailedCreateProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `
		SELECT id, name, description, owner_subject, created_at
		FROM projects WHERE id = $1
	`

	p := &project.Project{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.OwnerSubject, &p.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errProjectNotFound)
		}
		return nil, errFailedGetProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerSubject string) ([]*project.Project, error) {
	query := `
		SELECT id, name, description, owner_subject, created_at
		FROM projects WHERE owner_subject = $1 ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, ownerSubject)
	if err != nil {
		return nil, errFailedListProjects(err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		p := &project.Project{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerSubject, &p.CreatedAt); err != nil {
			return nil, errFailedScanProject(err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// Delete removes the project row; api_keys, files, and api_usage rows go with
// it via cascade. Blob cleanup is the caller's job.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM projects WHERE id = $1"

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteProject(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errProjectNotFound)
	}

	return nil
}
