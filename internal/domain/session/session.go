// Package session holds the runtime record of the single authenticated
// account. It is a passive holder: only the services mutate it.
package session

import (
	"sync"
)

// Session is the state handed around by the rules engine: which handle, if
// any, is logged in, and the display-sort toggle.
type Session struct {
	Handle string `json:"handle"`
	Sorted bool   `json:"sorted"`
}

// Store guards the single live session. A new login replaces the previous
// session; closure clears it.
type Store struct {
	mu      sync.Mutex
	current *Session
}

func NewStore() *Store {
	return &Store{}
}

// Start begins a session for the given handle with the sort toggle reset
func (s *Store) Start(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Session{Handle: handle, Sorted: false}
}

// Clear ends the current session, if any
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns the logged-in handle and whether a session is live
func (s *Store) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", false
	}
	return s.current.Handle, true
}

// Sorted reports the sort toggle for the live session
func (s *Store) Sorted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.Sorted
}

// ToggleSorted flips the sort toggle and returns the new value. It is a
// no-op returning false when no session is live.
func (s *Store) ToggleSorted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	s.current.Sorted = !s.current.Sorted
	return s.current.Sorted
}
