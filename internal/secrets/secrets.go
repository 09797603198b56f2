// Package secrets reads values from SOPS encrypted files.
package secrets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/getsops/sops/v3/decrypt"
	"gopkg.in/yaml.v3"
)

// WebexTokenKey is the key holding the Webex bot token.
const WebexTokenKey = "webex_token"

// DecryptFunc decrypts the file at path stored in the given sops format.
type DecryptFunc func(path, format string) ([]byte, error)

// Store reads top-level string values from encrypted YAML or JSON files.
type Store struct {
	decrypt DecryptFunc
}

// NewStore creates a Store backed by the sops decrypt package, which uses
// the keys available to the process (age, PGP, cloud KMS).
func NewStore() *Store {
	return &Store{decrypt: decrypt.File}
}

// NewStoreWithDecrypter creates a Store with a custom decrypt function.
func NewStoreWithDecrypter(fn DecryptFunc) *Store {
	return &Store{decrypt: fn}
}

// Value decrypts path and returns the string stored under key.
func (s *Store) Value(path, key string) (string, error) {
	plaintext, err := s.decrypt(path, formatFor(path))
	if err != nil {
		return "", fmt.Errorf("sops decrypt failed for %s: %w", path, err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(plaintext, &values); err != nil {
		return "", fmt.Errorf("parse decrypted %s: %w", path, err)
	}

	raw, ok := values[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in %s", key, path)
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", fmt.Errorf("key %q in %s is not a non-empty string", key, path)
	}
	return value, nil
}

// WebexToken returns the Webex token from an encrypted secrets file.
func WebexToken(path string) (string, error) {
	return NewStore().Value(path, WebexTokenKey)
}

// formatFor picks the sops store format from the file extension.
func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "yaml"
}
