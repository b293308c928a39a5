package client

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session holds the current identity and token, mirrored to a Store so the
// session survives restarts. Login, Logout and Restore are mutually
// exclusive: a logout firing while a login is still in flight cannot leave a
// half-written state behind.
//
// Invariant: token is non-empty iff identity is non-nil.
type Session struct {
	client *Client
	store  Store

	mu       sync.Mutex
	identity *Identity
	token    string

	readyOnce sync.Once
	ready     chan struct{}
}

// NewSession creates a Session bound to the given API client and store.
// Call Restore before the first Guard check.
func NewSession(client *Client, store Store) *Session {
	return &Session{
		client: client,
		store:  store,
		ready:  make(chan struct{}),
	}
}

// Restore loads the persisted session, if any. A token whose expiry has
// already passed is discarded locally; a live-looking token is trusted
// without a server round-trip, so a revoked-elsewhere session is only
// noticed on the next API call.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.markReady()

	state, err := s.store.Load()
	if err != nil {
		return err
	}

	if state.Token == "" || state.Identity == nil || tokenExpired(state.Token) {
		s.identity = nil
		s.token = ""
		_ = s.store.Clear()
		return nil
	}

	s.identity = state.Identity
	s.token = state.Token
	return nil
}

// Login authenticates against the backend and persists the session on
// success. On failure the session stays unauthenticated and the server's
// message is surfaced unchanged.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.markReady()

	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.identity = &result.Identity
	s.token = result.Token
	return s.store.Save(State{Identity: s.identity, Token: s.token})
}

// Register creates an account. It deliberately does not authenticate the
// session; the caller directs the user to log in.
func (s *Session) Register(ctx context.Context, username, email, password string) error {
	_, err := s.client.Register(ctx, username, email, password)
	return err
}

// Logout clears the session in memory and on disk. Idempotent: logging out
// of a logged-out session is a no-op.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	s.token = ""
	return s.store.Clear()
}

// Identity returns the current identity, or nil when unauthenticated.
func (s *Session) Identity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// Token returns the current bearer token, empty when unauthenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether the session holds an identity.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil
}

// Ready is closed once the initial Restore (or first Login) has completed.
// Guards wait on it to avoid deciding against a not-yet-loaded session.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Client returns the underlying API client.
func (s *Session) Client() *Client {
	return s.client
}

func (s *Session) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

// tokenExpired decodes the claims without verifying the signature — the
// client does not hold the signing secret — purely to drop tokens that are
// already past their expiry. The server remains the authority.
func tokenExpired(tokenString string) bool {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return time.Now().After(exp.Time)
}
