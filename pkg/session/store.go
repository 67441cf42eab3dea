package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/you/healthportal/domain"
)

// State is a persisted session snapshot: the bearer token and the cached
// public user view.
type State struct {
	Token string             `json:"token"`
	User  *domain.PublicUser `json:"user,omitempty"`
}

// Store is the durable holder of session state, surviving process restarts
// the way browser localStorage survives reloads.
type Store interface {
	Load() (*State, error)
	Save(state *State) error
	Clear() error
}

// ErrNoSession is returned by Load when no session has been saved.
var ErrNoSession = errors.New("no stored session")

// FileStore keeps the session in a JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed session store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements Store
func (s *FileStore) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Token == "" {
		return nil, ErrNoSession
	}
	return &state, nil
}

// Save implements Store
func (s *FileStore) Save(state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear implements Store
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryStore keeps the session in process memory; useful in tests.
type MemoryStore struct {
	mu    sync.Mutex
	state *State
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store
func (s *MemoryStore) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil || s.state.Token == "" {
		return nil, ErrNoSession
	}
	copied := *s.state
	return &copied, nil
}

// Save implements Store
func (s *MemoryStore) Save(state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *state
	s.state = &copied
	return nil
}

// Clear implements Store
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	return nil
}
