// Package session holds the authenticated identity for the running
// client: bearer token, member id, and normalized role. A single
// session exists per process. Mutations go through the program's update
// loop; reads may come from any view.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/promanager/promanager/internal/credential"
	"github.com/promanager/promanager/internal/model"
)

// ErrNoSession is returned by Restore when no persisted session exists.
var ErrNoSession = errors.New("no stored session")

const identityKey = "identity"

// State is the wire form of a session, as issued by login or restored
// from the keyring. The role is the raw backend value.
type State struct {
	Token    string `json:"token"`
	Refresh  string `json:"refresh"`
	MembreID int64  `json:"membre_id"`
	Role     string `json:"role"`
}

// Session is the in-memory session context. The role is normalized
// once when the session is established; an unrecognized role is kept
// raw and reported by Known so downstream permission checks fail
// closed instead of guessing.
type Session struct {
	mu        sync.RWMutex
	token     string
	refresh   string
	membreID  int64
	role      model.Role
	rawRole   string
	roleKnown bool
}

func New() *Session {
	return &Session{}
}

// Establish replaces the session with the given identity. The raw role
// is normalized here, at the boundary, so every later read sees the
// canonical value.
func (s *Session) Establish(st State) {
	role, known := model.NormalizeRole(st.Role)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = st.Token
	s.refresh = st.Refresh
	s.membreID = st.MembreID
	s.role = role
	s.rawRole = st.Role
	s.roleKnown = known
}

// Clear wipes the session. Subsequent reads see an unauthenticated
// state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.refresh = ""
	s.membreID = 0
	s.role = ""
	s.rawRole = ""
	s.roleKnown = false
}

// Active reports whether a token is present.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) MembreID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.membreID
}

// Role returns the normalized role and whether the backend value was
// recognized. Callers must treat an unknown role as having no
// permissions.
func (s *Session) Role() (model.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role, s.roleKnown
}

// Snapshot returns the persistable form of the session. The raw role
// is kept so a future release with a wider vocabulary can still
// recognize it.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Token:    s.token,
		Refresh:  s.refresh,
		MembreID: s.membreID,
		Role:     s.rawRole,
	}
}

// Save persists the session to the system keyring so the next run can
// resume without logging in again.
func Save(s *Session) error {
	st := s.Snapshot()

	if err := credential.Set(credential.KeyAccessToken, st.Token); err != nil {
		return err
	}
	if err := credential.Set(credential.KeyRefreshToken, st.Refresh); err != nil {
		return err
	}

	identity, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding session identity: %w", err)
	}
	return credential.Set(identityKey, string(identity))
}

// Restore loads a previously saved session from the system keyring.
// Returns ErrNoSession when nothing was saved.
func Restore() (*Session, error) {
	raw, err := credential.Get(identityKey)
	if err != nil {
		if errors.Is(err, credential.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, fmt.Errorf("decoding stored session: %w", err)
	}
	if st.Token == "" {
		return nil, ErrNoSession
	}

	s := New()
	s.Establish(st)
	return s, nil
}

// Forget removes any persisted session from the keyring. Used on
// logout together with Clear.
func Forget() error {
	for _, key := range []string{credential.KeyAccessToken, credential.KeyRefreshToken, identityKey} {
		if err := credential.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
