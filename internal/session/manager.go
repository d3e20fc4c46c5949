package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"staffkeeper/internal/logging"
	"staffkeeper/internal/models"
)

// Manager owns the current session. It keeps the in-memory snapshot and
// the durable store in sync and is safe for concurrent use. Components
// that need authentication state receive the Manager explicitly; there
// is no package-level singleton.
type Manager struct {
	mu           sync.RWMutex
	current      Session
	store        *Store
	log          logging.Logger
	onInvalidate func(reason string)
}

// NewManager creates a Manager over the given store.
func NewManager(store *Store, log logging.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// OnInvalidate registers the hook called after Invalidate has torn the
// session down. The console uses it to land back on the login view.
func (m *Manager) OnInvalidate(fn func(reason string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onInvalidate = fn
}

// Resume loads the persisted session, if any, into memory. Damaged
// local state comes back as an absent session, never as an error.
func (m *Manager) Resume(ctx context.Context) error {
	sess, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()

	if sess.IsAuthenticated() {
		m.log.Info(ctx, "session resumed", "user", sess.User.Username)
	}
	return nil
}

// Current returns a snapshot of the session. The snapshot is a deep
// copy; mutating it does not affect the Manager.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.clone()
}

// IsAuthenticated reports whether both an access token and a user
// profile are present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.IsAuthenticated()
}

// AccessToken returns the current access token, or "" when absent.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Tokens.AccessToken
}

// RefreshToken returns the current refresh token, or "" when absent.
func (m *Manager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Tokens.RefreshToken
}

// StoreTokens replaces both tokens in memory and on disk.
func (m *Manager) StoreTokens(ctx context.Context, tokens models.TokenPair) error {
	if err := m.store.SaveTokens(ctx, tokens); err != nil {
		return err
	}

	m.mu.Lock()
	m.current.Tokens = tokens
	m.mu.Unlock()
	return nil
}

// SetUser replaces the signed-in user profile in memory and on disk.
func (m *Manager) SetUser(ctx context.Context, user *models.UserProfile) error {
	if err := m.store.SaveUser(ctx, user); err != nil {
		return err
	}

	m.mu.Lock()
	m.current.User = user
	m.mu.Unlock()
	return nil
}

// Clear tears the session down in memory and on disk.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = Session{}
	m.mu.Unlock()
	return nil
}

// Invalidate clears the session and notifies the registered hook. It is
// idempotent: once the session is gone further calls do nothing, so a
// burst of failures tears the session down exactly once.
func (m *Manager) Invalidate(ctx context.Context, reason string) {
	m.mu.Lock()
	if m.current.Empty() {
		m.mu.Unlock()
		return
	}
	m.current = Session{}
	hook := m.onInvalidate
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear session store", "error", err)
	}
	m.log.Warn(ctx, "session invalidated", "reason", reason)

	if hook != nil {
		hook(reason)
	}
}

// AccessTokenExpiry reads the expiry claim from the access token without
// verifying the signature. Verification is the server's job; the client
// only uses the claim for status display.
func (m *Manager) AccessTokenExpiry() (time.Time, bool) {
	token := m.AccessToken()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
