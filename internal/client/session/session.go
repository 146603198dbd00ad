// Package session holds the signed-in administrator's bearer credential.
//
// A single *Session is created at startup and handed to every component that
// talks to the API; nothing reads the credential from ambient storage.
// While a save is in flight the session is held (see Hold) and cannot be
// replaced or cleared; an invalidation that arrives during a hold is applied
// when the last hold is released.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrBusy is returned by Set and Clear while the session is held.
	ErrBusy = errors.New("session is held by an operation in progress")
)

type Session struct {
	mu       sync.RWMutex
	token    string
	identity *models.Identity
	holds    int
	stale    bool
	store    Persister
	logger   logging.Logger
	now      func() time.Time
}

type Option func(*Session)

// WithLogger sets where failures of background clears are reported.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates an empty session. store may be nil for a memory-only session.
func New(store Persister, opts ...Option) *Session {
	s := &Session{store: store, logger: logging.Nop(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Restore loads a previously persisted session, if any.
func (s *Session) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	token, identity, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.identity = identity
	return nil
}

// Token returns the bearer credential, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns a copy of the signed-in identity.
func (s *Session) Identity() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

// ExpiresAt reads the exp claim of a JWT token without verifying it. Tokens
// that are not JWTs, or carry no exp, report ok=false.
func (s *Session) ExpiresAt() (time.Time, bool) {
	return tokenExpiry(s.Token())
}

// Authenticated reports whether a token is present and not known to be expired.
func (s *Session) Authenticated() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	if exp, ok := tokenExpiry(token); ok && !s.now().Before(exp) {
		return false
	}
	return true
}

// Set replaces the credential and persists it.
func (s *Session) Set(ctx context.Context, token string, identity models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holds > 0 {
		return ErrBusy
	}

	if s.store != nil {
		if err := s.store.Save(ctx, token, identity); err != nil {
			return err
		}
	}
	s.token = token
	s.identity = &identity
	s.stale = false
	return nil
}

// Clear signs out, removing the persisted copy as well.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holds > 0 {
		return ErrBusy
	}
	return s.clearLocked(ctx)
}

// Invalidate drops a credential the server rejected. During a hold it is
// deferred until release.
func (s *Session) Invalidate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holds > 0 {
		s.stale = true
		return
	}
	s.clearLogged(ctx)
}

// Hold pins the current credential until the returned release func is
// called. Release is idempotent.
func (s *Session) Hold() (release func()) {
	s.mu.Lock()
	s.holds++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.holds--
			if s.holds == 0 && s.stale {
				s.clearLogged(context.Background())
			}
		})
	}
}

// clearLogged is clearLocked for paths with no caller to return to. The
// in-memory credential is gone either way; a persisted copy that survives is
// rejected again on the next restore.
func (s *Session) clearLogged(ctx context.Context) {
	if err := s.clearLocked(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear persisted session", "error", err)
	}
}

func (s *Session) clearLocked(ctx context.Context) error {
	s.token = ""
	s.identity = nil
	s.stale = false
	if s.store != nil {
		return s.store.Clear(ctx)
	}
	return nil
}

func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
