package postgres

import (
	"context"

	"openupload/internal/domain/user"
	apperrors "openupload/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	query := `
		INSERT INTO users (subject, email)
		VALUES ($1, $2)
		RETURNING subject, email, created_at
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, input.Subject, input.Email).Scan(
		&u.Subject, &u.Email, &u.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("user already exists")
		}
		return nil, errFailedCreateUser(err)
	}

	return u, nil
}

func (r *UserRepository) GetBySubject(ctx context.Context, subject string) (*user.User, error) {
	query := `
		SELECT subject, email, created_at
		FROM users WHERE subject = $1
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, subject).Scan(
		&u.Subject, &u.Email, &u.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}
