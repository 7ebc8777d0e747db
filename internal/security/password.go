// Package security implements the password hashing contract:
// PBKDF2-HMAC-SHA256 with a random salt, the work factor stored next to
// the hash so it can be raised without invalidating old records.
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 16
	keySize    = 32
	iterations = 100_000
)

// HashPassword derives a key from password and returns it as
// "iterations.saltB64.keyB64".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)

	return strconv.Itoa(iterations) + "." +
		base64.StdEncoding.EncodeToString(salt) + "." +
		base64.StdEncoding.EncodeToString(key), nil
}

// CheckPassword re-derives the key with the parameters stored in hash
// and compares in constant time. A malformed hash verifies as false.
func CheckPassword(hash, password string) bool {
	parts := strings.SplitN(hash, ".", 3)
	if len(parts) != 3 {
		return false
	}

	iters, err := strconv.Atoi(parts[0])
	if err != nil || iters <= 0 {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	key, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return false
	}

	derived := pbkdf2.Key([]byte(password), salt, iters, len(key), sha256.New)
	return subtle.ConstantTimeCompare(derived, key) == 1
}
