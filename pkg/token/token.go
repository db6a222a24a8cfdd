package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	// APIKeyPrefix is the visible prefix on every issued secret token.
	APIKeyPrefix = "ou_sk_"

	apiKeyByteLength          = 20
	displayPrefixLength       = 12
	errGenerateRandomBytesFmt = "failed to generate random bytes: %w"
	errByteLengthPositiveFmt  = "byteLength must be positive"
)

func GenerateHex(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", fmt.Errorf(errByteLengthPositiveFmt)
	}

	bytes := make([]byte, byteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf(errGenerateRandomBytesFmt, err)
	}

	return hex.EncodeToString(bytes), nil
}

// GenerateAPIKey returns a new high-entropy secret token. The full token is
// shown to the caller exactly once; only its hash is persisted.
func GenerateAPIKey() (string, error) {
	suffix, err := GenerateHex(apiKeyByteLength)
	if err != nil {
		return "", err
	}
	return APIKeyPrefix + suffix, nil
}

// DisplayPrefix returns the token fragment that is safe to store and show in
// listings after creation.
func DisplayPrefix(token string) string {
	if len(token) < displayPrefixLength {
		return token
	}
	return token[:displayPrefixLength]
}
