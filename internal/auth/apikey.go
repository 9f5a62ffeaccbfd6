package auth

import (
	"errors"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrNotConfigured means the server has no API key provisioned. Protected
// endpoints fail closed in that state, distinct from a wrong key.
var ErrNotConfigured = errors.New("api key not configured")

// LoadKeyHash reads the bcrypt hash of the server API key from the key
// file. Only the hash is ever stored on disk.
func LoadKeyHash(path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotConfigured
	}
	if err != nil {
		return "", err
	}
	hash := strings.TrimSpace(string(b))
	if hash == "" {
		return "", ErrNotConfigured
	}
	return hash, nil
}

// SetKey hashes the plaintext key and writes it to the key file,
// replacing any previous key.
func SetKey(path, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(hash, '\n'), 0o600)
}

// Verify checks a caller-supplied key against the stored hash.
func Verify(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
