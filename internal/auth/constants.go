package auth

const (
	ContextKeyPrincipal = "principal"
	ContextKeyGrant     = "grant"
	ContextKeyAuthType  = "auth_type"

	jsonKeyError = "error"

	headerAuthorization = "Authorization"
	headerAPIKey        = "X-API-Key"

	bearerScheme    = "bearer"
	authHeaderParts = 2
)

const (
	msgMissingAuthorization  = "missing authorization token"
	msgInvalidOrExpiredToken = "invalid or expired token"
	msgMissingAPIKey         = "missing API key"
	msgInvalidOrInactiveKey  = "Invalid or inactive API key"
	msgRoleRequired          = "account is not whitelisted"
	msgUserNotAuthenticated  = "user not authenticated"
	msgInvalidPrincipalCtx   = "invalid principal in context"
	msgInvalidGrantCtx       = "invalid grant in context"
	msgIdentityUnavailable   = "identity provider unavailable"
	msgAccountUnavailable    = "account lookup failed"
)

// Roles recognized from the identity provider's roles claim.
const (
	RoleWhitelisted = "whitelisted"
	RoleDeveloper   = "developer"
)

type AuthType string

const (
	AuthTypeBearer AuthType = "bearer"
	AuthTypeAPIKey AuthType = "api_key"
)
