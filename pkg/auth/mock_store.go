package auth

import "sync"

// MockStore is an in-memory TokenStore for testing
type MockStore struct {
	mu     sync.RWMutex
	tokens map[string]*Token

	// StoreErr, RetrieveErr and DeleteErr force failures
	StoreErr    error
	RetrieveErr error
	DeleteErr   error
}

// NewMockStore creates an in-memory token store
func NewMockStore() *MockStore {
	return &MockStore{
		tokens: make(map[string]*Token),
	}
}

// Store saves a token in memory
func (m *MockStore) Store(token *Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.StoreErr != nil {
		return m.StoreErr
	}
	if token == nil || token.Workspace == "" {
		return ErrInvalidToken
	}

	copy := *token
	m.tokens[token.Workspace] = &copy
	return nil
}

// Retrieve gets a token from memory
func (m *MockStore) Retrieve(workspace string) (*Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.RetrieveErr != nil {
		return nil, m.RetrieveErr
	}

	token, exists := m.tokens[workspace]
	if !exists {
		return nil, ErrTokenNotFound
	}

	copy := *token
	return &copy, nil
}

// List returns all tokens from memory
func (m *MockStore) List() ([]*Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var tokens []*Token
	for _, token := range m.tokens {
		copy := *token
		tokens = append(tokens, &copy)
	}
	return tokens, nil
}

// Delete removes a token from memory
func (m *MockStore) Delete(workspace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	if _, exists := m.tokens[workspace]; !exists {
		return ErrTokenNotFound
	}
	delete(m.tokens, workspace)
	return nil
}

// Exists checks if a token exists in memory
func (m *MockStore) Exists(workspace string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.tokens[workspace]
	return exists
}
