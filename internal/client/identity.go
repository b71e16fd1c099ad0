package client

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// IdentityStore persists the one value that survives a restart: the
// authenticated user's identifier, used for silent re-authentication.
type IdentityStore interface {
	Load() (string, error)
	Save(userID string) error
	Clear() error
}

// fileIdentityStore keeps the identifier in a plain file.
type fileIdentityStore struct {
	path string
}

// NewFileIdentityStore persists the identifier at the given path. The parent
// directory is created on first save.
func NewFileIdentityStore(path string) IdentityStore {
	return &fileIdentityStore{path: path}
}

func (s *fileIdentityStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func (s *fileIdentityStore) Save(userID string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(userID+"\n"), 0o600)
}

func (s *fileIdentityStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// memoryIdentityStore is an in-process store used by tests and throwaway
// sessions.
type memoryIdentityStore struct {
	mu sync.Mutex
	id string
}

// NewMemoryIdentityStore returns a store that forgets on process exit.
func NewMemoryIdentityStore() IdentityStore {
	return &memoryIdentityStore{}
}

func (s *memoryIdentityStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, nil
}

func (s *memoryIdentityStore) Save(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = userID
	return nil
}

func (s *memoryIdentityStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
	return nil
}
