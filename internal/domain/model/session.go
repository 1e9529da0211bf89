package model

import (
	"sync"

	"github.com/google/uuid"
)

// SessionState tracks one physical connection through its lifecycle.
type SessionState int8

const (
	SessionConnecting SessionState = iota + 1
	SessionAuthenticating
	SessionRejected // terminal
	SessionIdle     // authenticated, presence not yet announced
	SessionActive   // registered in the presence registry
	SessionClosed   // terminal
)

func (s SessionState) String() string {
	switch s {
	case SessionConnecting:
		return "connecting"
	case SessionAuthenticating:
		return "authenticating"
	case SessionRejected:
		return "rejected"
	case SessionIdle:
		return "idle"
	case SessionActive:
		return "active"
	case SessionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is the per-connection state machine:
//
//	connecting -> authenticating -> {idle, rejected}
//	idle -> active (announce matching the authenticated identity)
//	{idle, active} -> closed
//
// Rejected and Closed are terminal. Every transition is guarded; an illegal
// transition is a no-op returning false so a misbehaving client cannot move
// a connection into an inconsistent state.
type Session struct {
	id uuid.UUID

	mu     sync.Mutex
	state  SessionState
	userID string // set by Authenticate, never changes afterwards
}

func NewSession() *Session {
	return &Session{
		id:    uuid.New(),
		state: SessionConnecting,
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

// UserID returns the authenticated identity, empty until Authenticate.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BeginAuth moves connecting -> authenticating.
func (s *Session) BeginAuth() bool {
	return s.transition(SessionConnecting, SessionAuthenticating)
}

// Authenticate binds the verified identity and moves to idle.
func (s *Session) Authenticate(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionAuthenticating || userID == "" {
		return false
	}
	s.state = SessionIdle
	s.userID = userID
	return true
}

// Reject terminates an unauthenticated connection attempt.
func (s *Session) Reject() bool {
	return s.transition(SessionAuthenticating, SessionRejected)
}

// Activate moves idle -> active, but only when the announced identity
// matches the authenticated one. A mismatch leaves the session idle.
func (s *Session) Activate(announcedID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionIdle || announcedID == "" || announcedID != s.userID {
		return false
	}
	s.state = SessionActive
	return true
}

// IsActive reports whether the session may originate messages.
func (s *Session) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == SessionActive
}

// Close terminates the session. Returns true when the session was Active,
// i.e. when the caller must deregister presence and broadcast the change.
func (s *Session) Close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	wasActive := s.state == SessionActive
	if s.state != SessionRejected {
		s.state = SessionClosed
	}
	return wasActive
}

func (s *Session) transition(from, to SessionState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != from {
		return false
	}
	s.state = to
	return true
}
