package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidKey is returned when an API key does not match any configured
// key.
var ErrInvalidKey = errors.New("invalid API key")

// KeyManager validates API keys against bcrypt hashes. Plaintext keys are
// never stored.
type KeyManager struct {
	hashes [][]byte
	mu     sync.RWMutex
}

// NewKeyManager creates an empty key manager. A manager without keys
// accepts every request.
func NewKeyManager() *KeyManager {
	return &KeyManager{}
}

// AddKey registers an API key. Only its bcrypt hash is retained.
func (km *KeyManager) AddKey(key string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash API key: %w", err)
	}

	km.mu.Lock()
	defer km.mu.Unlock()
	km.hashes = append(km.hashes, hash)
	return nil
}

// GenerateKey creates a random API key, registers it, and returns the
// plaintext for one-time display.
func (km *KeyManager) GenerateKey() (string, error) {
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}
	key := base64.URLEncoding.EncodeToString(keyBytes)
	if err := km.AddKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// Enabled reports whether any key is configured.
func (km *KeyManager) Enabled() bool {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.hashes) > 0
}

// Validate checks a presented key against the configured hashes.
func (km *KeyManager) Validate(key string) error {
	km.mu.RLock()
	defer km.mu.RUnlock()

	for _, hash := range km.hashes {
		if bcrypt.CompareHashAndPassword(hash, []byte(key)) == nil {
			return nil
		}
	}
	return ErrInvalidKey
}

// Middleware rejects requests without a valid X-API-Key header. When no
// key is configured the middleware passes everything through.
func (km *KeyManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if km.Enabled() {
			if err := km.Validate(r.Header.Get("X-API-Key")); err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
