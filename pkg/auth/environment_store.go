package auth

import (
	"os"
	"time"
)

// EnvironmentStore implements TokenStore using the SLACK_TOKEN
// environment variable. Read-only, kept for .env compatibility.
type EnvironmentStore struct{}

// NewEnvironmentStore creates an environment-based token store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(token *Token) error {
	return ErrStoreUnavailable
}

// Retrieve gets the token from the environment
func (e *EnvironmentStore) Retrieve(workspace string) (*Token, error) {
	value := os.Getenv("SLACK_TOKEN")
	if value == "" {
		return nil, ErrTokenNotFound
	}

	// The environment carries no workspace label
	if workspace == "" {
		workspace = DefaultWorkspace
	}

	return &Token{
		Workspace:    workspace,
		Value:        value,
		LastModified: time.Now(),
	}, nil
}

// List returns a single token if the environment variable is set
func (e *EnvironmentStore) List() ([]*Token, error) {
	token, err := e.Retrieve("")
	if err != nil {
		return []*Token{}, nil
	}
	return []*Token{token}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(workspace string) error {
	return ErrStoreUnavailable
}

// Exists checks if the environment token is set
func (e *EnvironmentStore) Exists(workspace string) bool {
	return os.Getenv("SLACK_TOKEN") != ""
}
