package auth

import (
	apperrors "openupload/pkg/errors"

	"github.com/labstack/echo/v4"
)

const msgAccessDenied = "access denied"

// CallerSubject returns the owner subject behind whichever credential
// authenticated the request.
func CallerSubject(c echo.Context) (string, error) {
	switch GetAuthType(c) {
	case AuthTypeBearer:
		principal, err := GetPrincipal(c)
		if err != nil {
			return "", err
		}
		return principal.User.Subject, nil
	case AuthTypeAPIKey:
		grant, err := GetGrant(c)
		if err != nil {
			return "", err
		}
		return grant.User.Subject, nil
	default:
		return "", apperrors.Unauthorized(msgUserNotAuthenticated)
	}
}

// AuthorizeOwner rejects callers that do not own the resource. Callers must
// establish that the resource exists before asking; a missing resource is a
// not-found, never a forbidden.
func AuthorizeOwner(c echo.Context, ownerSubject string) error {
	subject, err := CallerSubject(c)
	if err != nil {
		return err
	}

	if subject != ownerSubject {
		return apperrors.Forbidden(msgAccessDenied)
	}

	return nil
}

func GetAuthType(c echo.Context) AuthType {
	t, _ := c.Get(ContextKeyAuthType).(AuthType)
	return t
}
