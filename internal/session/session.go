// Package session owns the client's authenticated identity: the user
// profile plus the bearer token, persisted across restarts through a kv.Store.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/oceanlens/oceanlens/internal/kv"
)

// Persisted key layout. Both keys are absent when logged out.
const (
	keyUser  = "user"
	keyToken = "token"
)

// User is the authenticated user's profile. An empty ID means no
// authenticated user.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Session is the client's belief about the current authenticated identity.
// Token is non-empty exactly when User.ID is non-empty.
type Session struct {
	User  User
	Token string
}

// LoggedIn reports whether the session holds an authenticated identity.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// Store is the single source of truth for "who is logged in". Every mutator
// writes through to the durable store before updating the in-memory copy, so
// a reopened Store always reflects the last completed mutation.
type Store struct {
	mu  sync.Mutex
	cur Session
	kv  kv.Store
}

// Open hydrates a Store from the durable store. A missing or malformed
// snapshot yields the empty session; hydration never fails.
func Open(store kv.Store) *Store {
	s := &Store{kv: store}

	token, ok, err := store.Get(keyToken)
	if err != nil || !ok {
		return s
	}
	raw, ok, err := store.Get(keyUser)
	if err != nil || !ok {
		return s
	}

	var u User
	if json.Unmarshal([]byte(raw), &u) != nil {
		return s
	}
	// A snapshot violating the token/identity invariant is treated the same
	// as no session at all.
	if token == "" || u.ID == "" {
		return s
	}

	s.cur = Session{User: u, Token: token}
	return s
}

// Current returns the in-memory session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Establish sets the identity and token together after a successful login.
// Both are persisted before the in-memory session changes.
func (s *Store) Establish(u User, token string) error {
	if token == "" {
		return fmt.Errorf("establish session: empty token")
	}
	if u.ID == "" {
		return fmt.Errorf("establish session: empty user id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := s.kv.Set(keyUser, string(raw)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	if err := s.kv.Set(keyToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.cur = Session{User: u, Token: token}
	return nil
}

// UpdateProfile replaces the user profile after a successful account update.
// The token is left untouched.
func (s *Store) UpdateProfile(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur.Token == "" {
		return fmt.Errorf("update profile: no active session")
	}
	if u.ID == "" {
		u.ID = s.cur.User.ID
	}

	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := s.kv.Set(keyUser, string(raw)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}

	s.cur.User = u
	return nil
}

// Clear resets the session to empty and removes both persisted keys. Used on
// explicit logout and when the server rejects the token.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(keyUser); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	if err := s.kv.Delete(keyToken); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}

	s.cur = Session{}
	return nil
}
