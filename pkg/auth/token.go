// Package auth stores the Slack user token outside the shell history:
// system keychain first, an encrypted file as fallback, and the
// SLACK_TOKEN environment variable as last resort.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// DefaultWorkspace labels a token saved without an explicit workspace
const DefaultWorkspace = "default"

// Token is a stored Slack user token
type Token struct {
	Workspace    string    `json:"workspace"`
	Value        string    `json:"value"`
	LastModified time.Time `json:"last_modified"`
}

// TokenStore is the interface for storing and retrieving tokens
type TokenStore interface {
	// Store saves a token for a workspace
	Store(token *Token) error

	// Retrieve gets the token for a workspace
	Retrieve(workspace string) (*Token, error)

	// List returns all stored tokens
	List() ([]*Token, error)

	// Delete removes the token for a workspace
	Delete(workspace string) error

	// Exists checks if a token exists for a workspace
	Exists(workspace string) bool
}

// Manager handles token storage with fallback mechanisms
type Manager struct {
	stores []TokenStore
}

// NewManager creates a token manager with the available backends
func NewManager() (*Manager, error) {
	var stores []TokenStore

	// Try keyring first (system keychain)
	keyringStore, err := NewKeyringStore()
	if err == nil {
		stores = append(stores, keyringStore)
	}

	// Always add encrypted file store as fallback
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "tokens.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	// Add environment store as last resort
	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// Store saves a token using the first store that accepts it
func (m *Manager) Store(token *Token) error {
	if token == nil || token.Value == "" {
		return ErrInvalidToken
	}
	if !looksLikeSlackToken(token.Value) {
		return ErrInvalidToken
	}
	if token.Workspace == "" {
		token.Workspace = DefaultWorkspace
	}

	token.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		if err := store.Store(token); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store token: %w", lastErr)
	}
	return errors.New("no available token stores")
}

// Retrieve gets the token from the first store that has it
func (m *Manager) Retrieve(workspace string) (*Token, error) {
	if workspace == "" {
		workspace = DefaultWorkspace
	}
	for _, store := range m.stores {
		if token, err := store.Retrieve(workspace); err == nil && token != nil {
			return token, nil
		}
	}
	return nil, fmt.Errorf("token not found for workspace: %s", workspace)
}

// RetrieveDefault gets the environment token if set, otherwise the
// first stored one
func (m *Manager) RetrieveDefault() (*Token, error) {
	if envStore, ok := m.stores[len(m.stores)-1].(*EnvironmentStore); ok {
		if token, err := envStore.Retrieve(""); err == nil && token != nil {
			return token, nil
		}
	}

	tokens, err := m.List()
	if err == nil && len(tokens) > 0 {
		return tokens[0], nil
	}

	return nil, ErrTokenNotFound
}

// List returns all stored tokens from all stores
func (m *Manager) List() ([]*Token, error) {
	tokenMap := make(map[string]*Token)

	for _, store := range m.stores {
		tokens, err := store.List()
		if err != nil {
			continue
		}
		for _, token := range tokens {
			// Use the most recently modified version
			if existing, ok := tokenMap[token.Workspace]; !ok || token.LastModified.After(existing.LastModified) {
				tokenMap[token.Workspace] = token
			}
		}
	}

	var result []*Token
	for _, token := range tokenMap {
		result = append(result, token)
	}

	return result, nil
}

// Delete removes the token from all stores
func (m *Manager) Delete(workspace string) error {
	if workspace == "" {
		workspace = DefaultWorkspace
	}

	var deleted bool
	var lastErr error
	for _, store := range m.stores {
		if err := store.Delete(workspace); err == nil {
			deleted = true
		} else {
			lastErr = err
		}
	}

	if !deleted && lastErr != nil {
		return fmt.Errorf("failed to delete token: %w", lastErr)
	}
	if !deleted {
		return fmt.Errorf("token not found for workspace: %s", workspace)
	}

	return nil
}

// looksLikeSlackToken checks the well-known token prefixes. Search
// requires a user token, but bot and app tokens are still accepted
// so the API can report the missing scope itself.
func looksLikeSlackToken(value string) bool {
	for _, prefix := range []string{"xoxp-", "xoxb-", "xoxa-", "xoxs-"} {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// Mask hides all but the prefix and last 4 characters of a token
func Mask(value string) string {
	if len(value) <= 12 {
		return "********"
	}
	return value[:8] + "..." + value[len(value)-4:]
}

// getConfigDir returns the configuration directory path
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "emojiusage")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "emojiusage")
	default: // Linux and others
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "emojiusage")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "emojiusage")
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// Errors
var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrStoreUnavailable = errors.New("token store unavailable")
)
