package auth

import (
	"errors"
	"fmt"
	"strings"
)

// minSecretLength is the minimum JWT_SECRET length accepted at startup (256 bits).
const minSecretLength = 32

var weakSecrets = []string{
	"secret",
	"changeme",
	"password",
	"jwt_secret",
	"default",
}

// ValidateSecret checks the JWT signing secret at startup so the admin endpoints are never
// served with an empty or guessable key.
func ValidateSecret(secret string) error {
	if secret == "" {
		return errors.New("jwt secret validation failed: JWT_SECRET must not be empty")
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must be at least %d characters (current length: %d)", minSecretLength, len(secret))
	}

	lower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if strings.HasPrefix(lower, weak) && isRepeatedSuffix(lower[len(weak):]) {
			return errors.New("jwt secret validation failed: JWT_SECRET must not be based on a common default")
		}
	}
	if isRepeatedChar(secret) {
		return errors.New("jwt secret validation failed: JWT_SECRET must not be a single repeated character")
	}
	return nil
}

// isRepeatedChar reports whether s consists of one character repeated.
func isRepeatedChar(s string) bool {
	if s == "" {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// isRepeatedSuffix reports whether the padding after a weak prefix adds no entropy.
func isRepeatedSuffix(s string) bool {
	return s == "" || isRepeatedChar(s)
}
