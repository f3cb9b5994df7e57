package security

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSecret returns 32 random bytes, hex encoded.
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// ResolveSecret turns the configured secret into CSRF key bytes. A hex
// value is decoded, anything else is used as raw bytes, and an empty value
// gets a fresh random secret (generated reports that case).
func ResolveSecret(configured string) (secret []byte, generated bool, err error) {
	if configured != "" {
		if decoded, err := hex.DecodeString(configured); err == nil {
			return decoded, false, nil
		}
		return []byte(configured), false, nil
	}

	fresh, err := GenerateSecret()
	if err != nil {
		return nil, false, err
	}
	secret, _ = hex.DecodeString(fresh)
	return secret, true, nil
}
