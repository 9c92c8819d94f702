package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultCookieName is used when the manager is given no cookie name.
const DefaultCookieName = "brandradar_session"

// Manager binds HTTP requests to sessions through a cookie holding a
// random session id.
type Manager struct {
	store         Store
	cookieName    string
	ttl           time.Duration
	defaultWindow Window
	now           func() time.Time
}

// NewManager returns a manager over store. def is the window a new session
// starts with; an invalid def falls back to DefaultWindow.
func NewManager(store Store, cookieName string, ttl time.Duration, def Window) *Manager {
	if store == nil {
		store = NewMemoryStore(ttl)
	}
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if !def.Valid() {
		def = DefaultWindow
	}
	return &Manager{
		store:         store,
		cookieName:    cookieName,
		ttl:           ttl,
		defaultWindow: def,
		now:           time.Now,
	}
}

// Load returns the session for r, issuing a new id cookie on w when the
// request carries none (or a malformed one). With a TTL set, an existing
// cookie is re-issued so its expiry slides with the store's idle timeout.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(m.cookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			if m.ttl > 0 {
				m.setCookie(w, c.Value)
			}
			return m.Get(c.Value)
		}
	}

	id := uuid.NewString()
	m.setCookie(w, id)
	return m.Get(id)
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	cookie := &http.Cookie{
		Name:     m.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if m.ttl > 0 {
		cookie.MaxAge = int(m.ttl.Seconds())
	}
	http.SetCookie(w, cookie)
}

// Get returns the session bound to id. The id is not validated.
func (m *Manager) Get(id string) *Session {
	return &Session{id: id, m: m}
}

// Store returns the backing store.
func (m *Manager) Store() Store { return m.store }

// RunCleanup evicts idle sessions every interval until ctx is done.
func (m *Manager) RunCleanup(ctx context.Context, interval time.Duration, onEvict func(n int)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.store.Cleanup(m.now()); n > 0 && onEvict != nil {
				onEvict(n)
			}
		}
	}
}

// Session is the per-user context handed to page handlers.
type Session struct {
	id string
	m  *Manager
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Window returns the current window, creating the session with the
// default window on first access.
func (s *Session) Window() Window {
	st, ok := s.m.store.Get(s.id)
	if !ok || !st.Window.Valid() {
		st = State{Window: s.m.defaultWindow}
	}
	st.UpdatedAt = s.m.now()
	s.m.store.Put(s.id, st)
	return st.Window
}

// SetWindow is the only way to change the window. Values outside the
// defined set are rejected and leave the session untouched.
func (s *Session) SetWindow(w Window) error {
	if !w.Valid() {
		return ErrInvalidWindow
	}
	s.m.store.Put(s.id, State{Window: w, UpdatedAt: s.m.now()})
	return nil
}
