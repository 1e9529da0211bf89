package model

import "testing"

func authedSession(t *testing.T, userID string) *Session {
	t.Helper()
	s := NewSession()
	if !s.BeginAuth() {
		t.Fatal("BeginAuth() failed on fresh session")
	}
	if !s.Authenticate(userID) {
		t.Fatal("Authenticate() failed")
	}
	return s
}

func TestSession_HappyPath(t *testing.T) {
	s := authedSession(t, "u1")

	if got := s.State(); got != SessionIdle {
		t.Fatalf("state after authenticate = %v, want idle", got)
	}
	if !s.Activate("u1") {
		t.Fatal("Activate() with matching identity failed")
	}
	if !s.IsActive() {
		t.Error("IsActive() = false after activation")
	}
	if !s.Close() {
		t.Error("Close() on active session did not report active")
	}
	if got := s.State(); got != SessionClosed {
		t.Errorf("state after close = %v, want closed", got)
	}
}

func TestSession_MismatchedAnnounceIgnored(t *testing.T) {
	s := authedSession(t, "u1")

	if s.Activate("u2") {
		t.Fatal("Activate() with mismatched identity succeeded")
	}
	if got := s.State(); got != SessionIdle {
		t.Errorf("state after mismatched announce = %v, want idle", got)
	}

	// The genuine identity still works afterwards.
	if !s.Activate("u1") {
		t.Error("Activate() with matching identity failed after a mismatch")
	}
}

func TestSession_RejectIsTerminal(t *testing.T) {
	s := NewSession()
	s.BeginAuth()

	if !s.Reject() {
		t.Fatal("Reject() failed in authenticating state")
	}
	if s.Authenticate("u1") {
		t.Error("Authenticate() succeeded on rejected session")
	}
	if s.Activate("u1") {
		t.Error("Activate() succeeded on rejected session")
	}
	if got := s.State(); got != SessionRejected {
		t.Errorf("state = %v, want rejected", got)
	}
}

func TestSession_CloseFromIdleReportsInactive(t *testing.T) {
	s := authedSession(t, "u1")

	if s.Close() {
		t.Error("Close() on idle session reported active")
	}
	if s.Activate("u1") {
		t.Error("Activate() succeeded on closed session")
	}
}

func TestSession_AuthenticateRequiresBeginAuth(t *testing.T) {
	s := NewSession()
	if s.Authenticate("u1") {
		t.Error("Authenticate() succeeded without BeginAuth")
	}
}

func TestSession_EmptyIdentityRejected(t *testing.T) {
	s := NewSession()
	s.BeginAuth()
	if s.Authenticate("") {
		t.Error("Authenticate(\"\") succeeded")
	}
}
