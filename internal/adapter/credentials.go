package adapter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "marquee"
	keyringUser    = "api-token"
)

// ResolveToken returns the API token from config/environment, falling back
// to the OS keyring. Returns "" when neither has one.
func ResolveToken(cfg *Config) (string, error) {
	if tok := strings.TrimSpace(cfg.API.Token); tok != "" {
		return tok, nil
	}
	tok, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	return tok, nil
}

// SaveToken stores the API token in the OS keyring
func SaveToken(token string) error {
	if err := keyring.Set(keyringService, keyringUser, strings.TrimSpace(token)); err != nil {
		return fmt.Errorf("failed to save token to keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the stored API token. A missing token is not an error.
func DeleteToken() error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
