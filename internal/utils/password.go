package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordSaltBytes = 16
	passwordKeyBytes  = 32
	passwordIters     = 210_000
)

// HashPassword derives a PBKDF2-SHA256 hash for the plaintext password and
// returns the hex-encoded hash and salt pair.
func HashPassword(password string) (hash string, salt string, err error) {
	saltBytes := make([]byte, passwordSaltBytes)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate password salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), saltBytes, passwordIters, passwordKeyBytes, sha256.New)
	return hex.EncodeToString(key), hex.EncodeToString(saltBytes), nil
}

// VerifyPassword compares a plaintext password against a stored hash and
// salt. Malformed (non-decodable) or wrong-length inputs verify as false
// rather than erroring.
func VerifyPassword(password, hash, salt string) bool {
	hashBytes, err := hex.DecodeString(hash)
	if err != nil || len(hashBytes) != passwordKeyBytes {
		return false
	}
	saltBytes, err := hex.DecodeString(salt)
	if err != nil || len(saltBytes) != passwordSaltBytes {
		return false
	}
	key := pbkdf2.Key([]byte(password), saltBytes, passwordIters, passwordKeyBytes, sha256.New)
	return subtle.ConstantTimeCompare(key, hashBytes) == 1
}
