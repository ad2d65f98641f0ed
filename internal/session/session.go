// Package session holds the client's authenticated context: the bearer token,
// the resolved user profile and the selected branch. It is the counterpart of
// the web client's localStorage keys token/user/selectedBranch, persisted in a
// JSON file so it survives restarts on the same device.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"qrdine/internal/models"
)

type Session struct {
	mu       sync.Mutex
	path     string
	token    string
	user     *models.User
	branchID uint

	loggedOut bool
	onLogout  func()
}

// fileState is the persisted shape of a session.
type fileState struct {
	Token          string       `json:"token"`
	User           *models.User `json:"user,omitempty"`
	SelectedBranch uint         `json:"selected_branch,omitempty"`
}

// Load reads the session file at path, returning an empty session when the
// file does not exist yet.
func Load(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	s.token = state.Token
	s.user = state.User
	s.branchID = state.SelectedBranch
	return s, nil
}

// OnLogout registers the hook fired when the session is torn down. The hook
// runs at most once per authenticated session (no logout loop when several
// in-flight requests fail together).
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = fn
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// BranchID returns the selected branch id, 0 meaning "all branches".
func (s *Session) BranchID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.branchID
}

// SetToken stores a fresh bearer token and re-arms the logout hook.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.loggedOut = false
	return s.save()
}

func (s *Session) SetUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return s.save()
}

// SetBranch persists the branch selection immediately so it survives reloads.
func (s *Session) SetBranch(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branchID = id
	return s.save()
}

// ClearBranch removes the selection, reverting to "all branches combined".
func (s *Session) ClearBranch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branchID = 0
	return s.save()
}

// Logout clears the persisted session and fires the registered hook. Auth
// failure is fatal for the session: there is no retry path back from here
// short of logging in again.
func (s *Session) Logout() {
	s.mu.Lock()
	if s.loggedOut {
		s.mu.Unlock()
		return
	}
	s.loggedOut = true
	s.token = ""
	s.user = nil
	s.branchID = 0
	os.Remove(s.path)
	hook := s.onLogout
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// Authenticated reports whether a bearer token is held.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

func (s *Session) save() error {
	state := fileState{
		Token:          s.token,
		User:           s.user,
		SelectedBranch: s.branchID,
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
