package auth

import (
	"context"
	"errors"

	"openupload/internal/domain/user"
	"openupload/internal/repository"
	apperrors "openupload/pkg/errors"
)

// Principal is an authenticated bearer identity paired with its local user
// row. Roles live only in the token; the row only anchors ownership.
type Principal struct {
	User   *user.User
	Claims *Claims
}

// PrincipalResolver maps verified claims to a local user, creating the row on
// first sight. Existing rows are never updated from the token.
type PrincipalResolver struct {
	users repository.UserRepository
}

func NewPrincipalResolver(users repository.UserRepository) *PrincipalResolver {
	return &PrincipalResolver{users: users}
}

func (r *PrincipalResolver) Resolve(ctx context.Context, claims *Claims) (*Principal, error) {
	u, err := r.users.GetBySubject(ctx, claims.Subject)
	if err == nil {
		return &Principal{User: u, Claims: claims}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.Dependency(msgAccountUnavailable, err)
	}

	u, err = r.users.Create(ctx, user.CreateUserInput{
		Subject: claims.Subject,
		Email:   claims.Email,
	})
	if err == nil {
		return &Principal{User: u, Claims: claims}, nil
	}

	// Lost a creation race with a concurrent first request; the winner's row
	// is authoritative.
	if errors.Is(err, apperrors.ErrConflict) {
		u, err = r.users.GetBySubject(ctx, claims.Subject)
		if err == nil {
			return &Principal{User: u, Claims: claims}, nil
		}
	}

	return nil, apperrors.Dependency(msgAccountUnavailable, err)
}
