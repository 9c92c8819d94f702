package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in      string
		want    Window
		wantErr bool
	}{
		{"90", Window3M, false},
		{"180", Window6M, false},
		{"365", Window12M, false},
		{"3m", Window3M, false},
		{" 6M ", Window6M, false},
		{"12m", Window12M, false},
		{"30", 0, true},
		{"0", 0, true},
		{"", 0, true},
		{"year", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseWindow(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("ParseWindow(%q) err = %v, want ErrInvalidWindow", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseWindow(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestWindowLabels(t *testing.T) {
	want := map[Window]string{Window3M: "3 kk", Window6M: "6 kk", Window12M: "12 kk"}
	for _, w := range Windows {
		if w.Label() != want[w] {
			t.Errorf("%d label = %q, want %q", w, w.Label(), want[w])
		}
		back, err := ParseWindow(w.Key())
		if err != nil || back != w {
			t.Errorf("Key round trip for %d: %v, %v", w, back, err)
		}
	}
}

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(NewMemoryStore(ttl), "", ttl, DefaultWindow)
}

func TestSessionDefaultAndTransitions(t *testing.T) {
	m := newTestManager(0)
	s := m.Get("abc")

	if w := s.Window(); w != Window6M {
		t.Fatalf("initial window = %d, want 180", w)
	}
	for _, w := range []Window{Window12M, Window3M, Window6M, Window12M} {
		if err := s.SetWindow(w); err != nil {
			t.Fatal(err)
		}
		if got := m.Get("abc").Window(); got != w {
			t.Errorf("after SetWindow(%d) got %d", w, got)
		}
	}
}

func TestSetWindowRejectsInvalid(t *testing.T) {
	m := newTestManager(0)
	s := m.Get("abc")
	_ = s.SetWindow(Window12M)

	if err := s.SetWindow(Window(30)); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("err = %v", err)
	}
	if s.Window() != Window12M {
		t.Error("invalid SetWindow must not change state")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	m := newTestManager(0)
	_ = m.Get("a").SetWindow(Window3M)
	if w := m.Get("b").Window(); w != DefaultWindow {
		t.Errorf("session b window = %d, want default", w)
	}
}

func TestLoadIssuesCookie(t *testing.T) {
	m := newTestManager(time.Hour)

	rec := httptest.NewRecorder()
	s := m.Load(rec, httptest.NewRequest(http.MethodGet, "/comparison", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != DefaultCookieName {
		t.Fatalf("cookies = %v", cookies)
	}
	if cookies[0].Value != s.ID() || !cookies[0].HttpOnly || cookies[0].MaxAge != 3600 {
		t.Errorf("unexpected cookie %+v", cookies[0])
	}
	_ = s.SetWindow(Window12M)

	// Second request with the cookie sees the same state, and the same id
	// is re-issued with a fresh expiry.
	req := httptest.NewRequest(http.MethodGet, "/comparison", nil)
	req.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	s2 := m.Load(rec2, req)
	if s2.ID() != s.ID() || s2.Window() != Window12M {
		t.Errorf("second load: id %s window %d", s2.ID(), s2.Window())
	}
	refreshed := rec2.Result().Cookies()
	if len(refreshed) != 1 || refreshed[0].Value != s.ID() || refreshed[0].MaxAge != 3600 {
		t.Errorf("existing session cookie should be refreshed, got %v", refreshed)
	}
}

func TestActiveSessionOutlivesTTL(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	m := NewManager(store, "", time.Hour, DefaultWindow)
	clock := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	store.now = m.now

	rec := httptest.NewRecorder()
	s := m.Load(rec, httptest.NewRequest(http.MethodGet, "/comparison", nil))
	if err := s.SetWindow(Window12M); err != nil {
		t.Fatal(err)
	}
	cookie := rec.Result().Cookies()[0]

	// Visit every 40 minutes for four hours: each visit is inside the idle
	// TTL, so neither the cookie nor the stored state may lapse.
	for i := 0; i < 6; i++ {
		clock = clock.Add(40 * time.Minute)
		if n := m.Store().Cleanup(clock); n != 0 {
			t.Fatalf("visit %d: active session evicted", i)
		}
		req := httptest.NewRequest(http.MethodGet, "/comparison", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		got := m.Load(rec, req)
		if got.ID() != s.ID() || got.Window() != Window12M {
			t.Fatalf("visit %d: id %s window %d", i, got.ID(), got.Window())
		}
		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].MaxAge != 3600 {
			t.Fatalf("visit %d: cookie not refreshed: %v", i, cookies)
		}
		cookie = cookies[0]
	}
}

func TestLoadWithoutTTLKeepsCookie(t *testing.T) {
	m := newTestManager(0)
	rec := httptest.NewRecorder()
	s := m.Load(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != 0 {
		t.Fatalf("expected a browser-session cookie, got %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	if m.Load(rec2, req).ID() != s.ID() {
		t.Error("session id changed")
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Error("a cookie without expiry needs no refresh")
	}
}

func TestLoadRejectsMalformedCookie(t *testing.T) {
	m := newTestManager(0)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	s := m.Load(rec, req)
	if s.ID() == "not-a-uuid" {
		t.Error("malformed id should be replaced")
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Error("expected a fresh cookie")
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	st := NewMemoryStore(time.Minute)
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return base }

	st.Put("old", State{Window: Window3M, UpdatedAt: base.Add(-2 * time.Minute)})
	st.Put("fresh", State{Window: Window12M})

	if _, ok := st.Get("old"); ok {
		t.Error("expired entry should be absent")
	}
	if s, ok := st.Get("fresh"); !ok || s.Window != Window12M {
		t.Error("fresh entry missing")
	}
	if n := st.Cleanup(base); n != 1 {
		t.Errorf("Cleanup removed %d, want 1", n)
	}
	if st.Len() != 1 {
		t.Errorf("Len = %d, want 1", st.Len())
	}
	st.Delete("fresh")
	if st.Len() != 0 {
		t.Error("Delete failed")
	}
}

func TestRunCleanupStops(t *testing.T) {
	m := newTestManager(time.Nanosecond)
	_ = m.Get("x").SetWindow(Window3M)

	ctx, cancel := context.WithCancel(context.Background())
	evicted := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		m.RunCleanup(ctx, time.Millisecond, func(n int) {
			select {
			case evicted <- n:
			default:
			}
		})
		close(done)
	}()

	select {
	case n := <-evicted:
		if n != 1 {
			t.Errorf("evicted %d, want 1", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup never ran")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunCleanup did not return after cancel")
	}
}
