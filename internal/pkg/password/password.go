// Package password hashes and verifies user passwords with scrypt.
//
// Stored form: hex(derivedKey) + "." + saltHex. The hex-encoded salt string
// itself is the scrypt salt input.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	separator = "."
	saltBytes = 16
	keyLen    = 64

	costN = 16384
	costR = 8
	costP = 1
)

// Scrypt implements ports.PasswordHasher.
type Scrypt struct{}

// Hash derives a key from plaintext using a fresh random salt.
func (Scrypt) Hash(plaintext string) (string, error) {
	return Hash(plaintext)
}

// Verify reports whether plaintext matches stored.
func (Scrypt) Verify(plaintext, stored string) bool {
	return Verify(plaintext, stored)
}

// Hash derives a key from plaintext using a fresh random salt.
func Hash(plaintext string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("password: read salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	key, err := derive(plaintext, salt)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key) + separator + salt, nil
}

// Verify reports whether plaintext matches stored. Malformed stored forms
// never match.
func Verify(plaintext, stored string) bool {
	i := strings.LastIndex(stored, separator)
	if i <= 0 || i == len(stored)-1 {
		return false
	}
	want, err := hex.DecodeString(stored[:i])
	if err != nil || len(want) != keyLen {
		return false
	}

	got, err := derive(plaintext, stored[i+1:])
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(want, got) == 1
}

func derive(plaintext, salt string) ([]byte, error) {
	key, err := scrypt.Key([]byte(plaintext), []byte(salt), costN, costR, costP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("password: derive key: %w", err)
	}
	return key, nil
}
