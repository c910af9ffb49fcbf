// Package session holds the login token for the lifetime of the client
// process and defines how it may be persisted between runs.
//
// A Session is created empty, started on a successful login and cleared on
// logout. The HTTP client reads the token from it on every request, so there
// is no process-wide token state.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoSession is returned by Store.Load when nothing was saved.
var ErrNoSession = errors.New("no saved session")

// State is the persistable part of a session.
type State struct {
	Email     string
	Token     string
	StartedAt time.Time
}

// Store persists a session between runs.
type Store interface {
	Save(ctx context.Context, s State) error
	Load(ctx context.Context) (State, error)
	Clear(ctx context.Context) error
}

// Session is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	state State
	now   func() time.Time
}

func New() *Session {
	return &Session{now: time.Now}
}

// Start records a successful login.
func (s *Session) Start(email, token string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Email: email, Token: token, StartedAt: s.now().UTC()}
	return s.state
}

// Resume installs a previously saved state.
func (s *Session) Resume(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

// Clear forgets the token.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Email
}

// Active reports whether a token is held.
func (s *Session) Active() bool {
	return s.Token() != ""
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
