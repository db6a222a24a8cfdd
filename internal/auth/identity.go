package auth

import (
	"context"
	"fmt"

	"openupload/internal/config"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Claims is what the service needs from a verified identity token. Roles come
// from a provider-specific claim named in configuration.
type Claims struct {
	Subject string
	Email   string
	Name    string
	Roles   []string
}

func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IdentityVerifier checks a raw bearer token against the identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

// OIDCVerifier validates ID tokens via the provider's published keys. Token
// issuance is entirely the provider's concern.
type OIDCVerifier struct {
	verifier   *oidc.IDTokenVerifier
	rolesClaim string
}

func NewOIDCVerifier(ctx context.Context, cfg *config.OIDCConfig) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	return &OIDCVerifier{
		verifier:   provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		rolesClaim: cfg.RolesClaim,
	}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	var raw map[string]any
	if err := idToken.Claims(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse token claims: %w", err)
	}

	claims := &Claims{
		Subject: idToken.Subject,
		Email:   stringClaim(raw, "email"),
		Name:    stringClaim(raw, "name"),
		Roles:   rolesClaim(raw, v.rolesClaim),
	}

	return claims, nil
}

func stringClaim(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func rolesClaim(raw map[string]any, key string) []string {
	values, ok := raw[key].([]any)
	if !ok {
		return nil
	}

	roles := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
