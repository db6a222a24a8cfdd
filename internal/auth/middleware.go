package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"openupload/internal/repository"
	apperrors "openupload/pkg/errors"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	verifier     IdentityVerifier
	principals   *PrincipalResolver
	keyAuthority *KeyAuthority
	keyRepo      repository.APIKeyRepository
}

const apiKeyLastUsedUpdateTimeout = 500 * time.Millisecond

func NewMiddleware(verifier IdentityVerifier, principals *PrincipalResolver, keyAuthority *KeyAuthority, keyRepo repository.APIKeyRepository) *Middleware {
	return &Middleware{
		verifier:     verifier,
		principals:   principals,
		keyAuthority: keyAuthority,
		keyRepo:      keyRepo,
	}
}

// RequireBearer authenticates the request with an identity provider token and
// resolves it to a local user, creating the row on first sight.
func (m *Middleware) RequireBearer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken := extractBearerToken(c)
			if rawToken == "" {
				return respondError(c, http.StatusUnauthorized, msgMissingAuthorization)
			}

			claims, err := m.verifier.Verify(c.Request().Context(), rawToken)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			principal, err := m.principals.Resolve(c.Request().Context(), claims)
			if err != nil {
				return err
			}

			c.Set(ContextKeyPrincipal, principal)
			c.Set(ContextKeyAuthType, AuthTypeBearer)

			return next(c)
		}
	}
}

// RequireRoles gates a bearer route on provider roles. Principals holding the
// developer role pass regardless of the required list.
func (m *Middleware) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := GetPrincipal(c)
			if err != nil {
				return err
			}

			if principal.Claims.HasRole(RoleDeveloper) {
				return next(c)
			}

			for _, role := range roles {
				if !principal.Claims.HasRole(role) {
					return respondError(c, http.StatusForbidden, msgRoleRequired)
				}
			}

			return next(c)
		}
	}
}

// RequireAPIKey authenticates the request with an X-API-Key header and binds
// the resulting Grant to the request context.
func (m *Middleware) RequireAPIKey() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			keyString := extractAPIKey(c)
			if keyString == "" {
				return respondError(c, http.StatusUnauthorized, msgMissingAPIKey)
			}

			grant, err := m.keyAuthority.Resolve(c.Request().Context(), keyString)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgInvalidOrInactiveKey)
			}

			c.Set(ContextKeyGrant, grant)
			c.Set(ContextKeyAuthType, AuthTypeAPIKey)

			updateCtx, cancel := context.WithTimeout(context.Background(), apiKeyLastUsedUpdateTimeout)
			defer cancel()
			if err := m.keyRepo.UpdateLastUsed(updateCtx, grant.Key.ID); err != nil {
				c.Logger().Warnf("failed to update API key last_used_at for key %s: %v", grant.Key.ID, err)
			}

			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

func extractAPIKey(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(headerAPIKey))
}

func GetPrincipal(c echo.Context) (*Principal, error) {
	v := c.Get(ContextKeyPrincipal)
	if v == nil {
		return nil, apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	principal, ok := v.(*Principal)
	if !ok {
		return nil, apperrors.InternalServer(msgInvalidPrincipalCtx, nil)
	}

	return principal, nil
}

func GetGrant(c echo.Context) (*Grant, error) {
	v := c.Get(ContextKeyGrant)
	if v == nil {
		return nil, apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	grant, ok := v.(*Grant)
	if !ok {
		return nil, apperrors.InternalServer(msgInvalidGrantCtx, nil)
	}

	return grant, nil
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}
