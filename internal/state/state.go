// Package state persists the small amount of client-side state the CLI
// keeps between runs: the session flag and an API URL override.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SessionAuthenticated is the session flag value for a logged-in user.
const SessionAuthenticated = "authenticated"

// ErrNotAuthenticated is returned by RequireAuth when no session is active.
var ErrNotAuthenticated = errors.New("not logged in: run 'freelance_desk login' first")

// State is the persisted file content.
type State struct {
	SessionKey string `json:"session_key,omitempty"`
	APIBaseURL string `json:"api_base_url,omitempty"`
}

// Store reads and writes State at a fixed path.
type Store struct {
	path string
}

// DefaultPath returns the state file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "freelance_desk", "state.json"), nil
}

// NewStore creates a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the state. A missing file is an empty state.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("failed to read state file %s: %w", s.path, err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("failed to parse state file %s: %w", s.path, err)
	}
	return st, nil
}

// Save writes the state, creating the parent directory when needed.
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

func (s *Store) update(fn func(*State)) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	fn(&st)
	return s.Save(st)
}

// CheckAuth reports whether the session flag is set.
func (s *Store) CheckAuth() (bool, error) {
	st, err := s.Load()
	if err != nil {
		return false, err
	}
	return st.SessionKey == SessionAuthenticated, nil
}

// RequireAuth returns ErrNotAuthenticated unless the session flag is set.
func (s *Store) RequireAuth() error {
	ok, err := s.CheckAuth()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAuthenticated
	}
	return nil
}

// Login sets the session flag.
func (s *Store) Login() error {
	return s.update(func(st *State) {
		st.SessionKey = SessionAuthenticated
	})
}

// Logout clears the session flag. The API URL override is kept.
func (s *Store) Logout() error {
	return s.update(func(st *State) {
		st.SessionKey = ""
	})
}

// APIBaseURL returns the stored override, or "" when none is set.
func (s *Store) APIBaseURL() (string, error) {
	st, err := s.Load()
	if err != nil {
		return "", err
	}
	return st.APIBaseURL, nil
}

// SetAPIBaseURL stores an override. An empty url clears it.
func (s *Store) SetAPIBaseURL(url string) error {
	url = strings.TrimSpace(url)
	return s.update(func(st *State) {
		st.APIBaseURL = url
	})
}
