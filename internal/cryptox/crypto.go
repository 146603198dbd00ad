// Package cryptox hashes and verifies account passwords with argon2id.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of salts produced by NewSalt.
const SaltSize = 16

// HashPassword derives a 32-byte argon2id key from password and salt.
func HashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier is the value stored for an account: a SHA-256 of the derived key.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}
	return salt, nil
}

// Credential is a stored password: salt plus verifier.
type Credential struct {
	Salt     []byte
	Verifier []byte
}

// NewCredential hashes password under a fresh salt.
func NewCredential(password []byte) (Credential, error) {
	salt, err := NewSalt()
	if err != nil {
		return Credential{}, err
	}
	return Credential{Salt: salt, Verifier: MakeVerifier(HashPassword(password, salt))}, nil
}

// Matches reports whether password hashes to the stored verifier.
// The comparison runs in constant time.
func (c Credential) Matches(password []byte) bool {
	candidate := MakeVerifier(HashPassword(password, c.Salt))
	return subtle.ConstantTimeCompare(candidate, c.Verifier) == 1
}
