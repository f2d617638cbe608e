// Package session implements server-side sessions binding an opaque cookie
// token to an authenticated account id, plus one-shot flash notices.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

type entry struct {
	accountID int64
	expiresAt time.Time
	flashes   []string
}

// Manager stores sessions in memory, keyed by an opaque token. A session
// created with account id 0 is anonymous: it can carry flash notices (for
// example on the login page before authentication) but never grants access
// to protected routes.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*entry
}

// NewManager creates a Manager whose sessions expire after ttl.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		sessions: make(map[string]*entry),
	}
}

// Create starts a new session bound to accountID and returns its token.
// Pass 0 for an anonymous session.
func (m *Manager) Create(accountID int64) string {
	token := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = &entry{
		accountID: accountID,
		expiresAt: time.Now().Add(m.ttl),
	}
	return token
}

// Resolve returns the account id bound to token. The second return value is
// false when the token is unknown or the session has expired; expired
// sessions are removed on access.
func (m *Manager) Resolve(token string) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[token]
	if !ok {
		return 0, false
	}
	if time.Now().After(e.expiresAt) {
		delete(m.sessions, token)
		return 0, false
	}
	return e.accountID, true
}

// Destroy removes the session for token. Destroying an unknown token is a
// no-op.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Flash queues a one-shot notice on the session for token. Flashing onto an
// unknown or expired session is silently dropped.
func (m *Manager) Flash(token, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[token]
	if !ok || time.Now().After(e.expiresAt) {
		return
	}
	e.flashes = append(e.flashes, msg)
}

// PopFlashes drains and returns all queued notices for token, oldest first.
func (m *Manager) PopFlashes(token string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[token]
	if !ok {
		return nil
	}
	flashes := e.flashes
	e.flashes = nil
	return flashes
}

// StartSweeper launches a background goroutine that drops expired sessions
// every interval until ctx is cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := m.sweep(time.Now()); removed > 0 {
					log.Info("swept expired sessions", zap.Int("removed", removed))
				}
			}
		}
	}()
}

func (m *Manager) sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for token, e := range m.sessions {
		if now.After(e.expiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}
