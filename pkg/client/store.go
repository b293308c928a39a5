package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// State is the durable part of a session: what survives a process restart.
type State struct {
	Identity *Identity `json:"identity,omitempty"`
	Token    string    `json:"token,omitempty"`
}

// Store persists session state between runs.
type Store interface {
	Load() (State, error)
	Save(State) error
	Clear() error
}

// FileStore keeps session state as a JSON file, the desktop analog of the
// browser's local storage.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path. The parent directory is created
// on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStore places the session file under the user config directory.
func DefaultFileStore() (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewFileStore(filepath.Join(dir, "restaurant", "session.json")), nil
}

// Load reads the stored state. A missing file is an empty state, not an error.
func (s *FileStore) Load() (State, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, nil
		}
		return State{}, err
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		// A corrupt file is treated as logged out rather than wedging the app.
		return State{}, nil
	}
	return state, nil
}

// Save writes the state with owner-only permissions: the file holds a live
// bearer token.
func (s *FileStore) Save(state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Clear removes the stored state. Clearing an absent file is a no-op.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
