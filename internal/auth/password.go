package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Verifier encodes credentials for storage and checks login attempts against
// the stored form. The credential column is opaque to the rest of the system,
// so the scheme is swappable without touching the store.
type Verifier interface {
	Hash(plain string) (string, error)
	Verify(plain, stored string) bool
}

// PlainVerifier stores credentials verbatim and compares them exactly, in
// constant time. This matches legacy deployments where the column already
// holds plaintext passwords.
type PlainVerifier struct{}

func (PlainVerifier) Hash(plain string) (string, error) {
	return plain, nil
}

func (PlainVerifier) Verify(plain, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(plain), []byte(stored)) == 1
}

// argon2id parameters following OWASP recommendations.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Argon2Verifier stores credentials as hex(salt) + "$" + hex(argon2id hash).
type Argon2Verifier struct{}

func (Argon2Verifier) Hash(plain string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func (Argon2Verifier) Verify(plain, stored string) bool {
	var saltHex, hashHex string
	for i := range len(stored) {
		if stored[i] == '$' {
			saltHex = stored[:i]
			hashHex = stored[i+1:]
			break
		}
	}

	if saltHex == "" || hashHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	expected, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return subtle.ConstantTimeCompare(computed, expected) == 1
}
