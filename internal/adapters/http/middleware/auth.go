package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"frontdesk/internal/domain/view"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const tabContextKey contextKey = "tab"

// TabTTL is how long an idle tab state is kept.
const TabTTL = 24 * time.Hour

// SecureCookies marks the tab cookie Secure. Set in production.
var SecureCookies bool

// Tab is the server-side state of one browser tab: the view controller,
// the rendered result slots, and the set of actions currently in flight.
type Tab struct {
	mu         sync.Mutex
	controller *view.Controller
	board      *view.Board
	inflight   map[string]bool
	lastSeen   atomic.Int64 // unix nanoseconds
}

// NewTab creates a logged-out tab. refresh is bound to the new tab's board
// and becomes the controller's employee refresher.
func NewTab(refresh func(ctx context.Context, board *view.Board) error) *Tab {
	t := &Tab{
		board:    view.NewBoard(),
		inflight: make(map[string]bool),
	}
	t.lastSeen.Store(time.Now().UnixNano())
	var refresher view.EmployeeRefresher
	if refresh != nil {
		board := t.board
		refresher = view.RefresherFunc(func(ctx context.Context) error {
			return refresh(ctx, board)
		})
	}
	t.controller = view.NewController(refresher)
	return t
}

// Apply runs fn with exclusive access to the tab's controller and board.
// State changes from concurrent requests on the same tab are serialised here.
func (t *Tab) Apply(fn func(c *view.Controller, b *view.Board)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.controller, t.board)
}

// Begin marks action as in flight. It returns false if the same action is
// already running for this tab.
// POST: on true, the caller must call End(action)
func (t *Tab) Begin(action string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inflight[action] {
		slog.Info("view_event", "event", "duplicate_submission", "action", action)
		return false
	}
	t.inflight[action] = true
	return true
}

// End clears the in-flight mark set by Begin.
func (t *Tab) End(action string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inflight, action)
}

// IsAdmin reports whether the tab has an admin session.
func (t *Tab) IsAdmin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.controller.Session()
	return ok && s.IsAdmin()
}

// IsLoggedIn reports whether the tab has any session.
func (t *Tab) IsLoggedIn() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.controller.Session()
	return ok
}

// DefaultMaxTabs caps how many tab states a store holds at once.
const DefaultMaxTabs = 10000

// TabStore is an in-memory map of tab states keyed by cookie token.
type TabStore struct {
	mu      sync.RWMutex
	tabs    map[string]*Tab
	refresh func(ctx context.Context, board *view.Board) error
	max     int
	now     func() time.Time
}

// NewTabStore creates an empty store. refresh is handed to every new tab.
func NewTabStore(refresh func(ctx context.Context, board *view.Board) error) *TabStore {
	ts := &TabStore{
		tabs:    make(map[string]*Tab),
		refresh: refresh,
		max:     DefaultMaxTabs,
		now:     time.Now,
	}
	// Drop idle tabs every minute
	go func() {
		for {
			time.Sleep(time.Minute)
			ts.sweep()
		}
	}()
	return ts
}

func (ts *TabStore) sweep() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.sweepLocked()
}

func (ts *TabStore) sweepLocked() {
	now := ts.now()
	for token, tab := range ts.tabs {
		if now.Sub(time.Unix(0, tab.lastSeen.Load())) > TabTTL {
			delete(ts.tabs, token)
		}
	}
}

// evictOldestLocked drops the least recently seen tab.
func (ts *TabStore) evictOldestLocked() {
	var oldest string
	var oldestSeen int64
	for token, tab := range ts.tabs {
		if seen := tab.lastSeen.Load(); oldest == "" || seen < oldestSeen {
			oldest, oldestSeen = token, seen
		}
	}
	if oldest != "" {
		delete(ts.tabs, oldest)
		slog.Warn("view_event", "event", "tab_evicted", "live_tabs", len(ts.tabs))
	}
}

// Create stores a new tab and returns its token. A full store first drops
// idle tabs, then the least recently seen one.
// POST: the tab is logged out with an empty board
// INVARIANT: Len() never exceeds the store's cap
func (ts *TabStore) Create() (string, *Tab, error) {
	token, err := generateToken()
	if err != nil {
		return "", nil, err
	}
	tab := NewTab(ts.refresh)
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if len(ts.tabs) >= ts.max {
		ts.sweepLocked()
	}
	for len(ts.tabs) >= ts.max {
		ts.evictOldestLocked()
	}
	tab.lastSeen.Store(ts.now().UnixNano())
	ts.tabs[token] = tab
	return token, tab, nil
}

// Get returns the tab for token unless it has been idle longer than TabTTL.
func (ts *TabStore) Get(token string) (*Tab, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	tab, ok := ts.tabs[token]
	if !ok {
		return nil, false
	}
	now := ts.now()
	if now.Sub(time.Unix(0, tab.lastSeen.Load())) > TabTTL {
		delete(ts.tabs, token)
		return nil, false
	}
	tab.lastSeen.Store(now.UnixNano())
	return tab, true
}

// Len returns the number of live tabs.
func (ts *TabStore) Len() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.tabs)
}

const tabCookieName = "frontdesk_tab"

// startsTab reports whether a request without a live tab gets a new one.
// Page renders and form posts do; health checks and snapshots do not.
func startsTab(r *http.Request) bool {
	return r.Method == http.MethodPost || (r.Method == http.MethodGet && r.URL.Path == "/")
}

// Tabs returns middleware that attaches the caller's tab state to the
// request context. A tab (and its cookie) is created on the first page
// render or form post; other requests without one pass through bare.
func Tabs(store *TabStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tab *Tab
			if cookie, err := r.Cookie(tabCookieName); err == nil && cookie.Value != "" {
				tab, _ = store.Get(cookie.Value)
			}
			if tab == nil {
				if !startsTab(r) {
					next.ServeHTTP(w, r)
					return
				}
				token, created, err := store.Create()
				if err != nil {
					slog.Error("internal_error", "error", err.Error())
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}
				SetTabCookie(w, token)
				tab = created
			}
			next.ServeHTTP(w, r.WithContext(ContextWithTab(r.Context(), tab)))
		})
	}
}

// RequireLogin blocks requests from tabs without a session.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tab, ok := TabFromContext(r.Context())
		if !ok || !tab.IsLoggedIn() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin blocks requests from tabs without an admin session.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tab, ok := TabFromContext(r.Context())
		if !ok || !tab.IsLoggedIn() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if !tab.IsAdmin() {
			slog.Warn("auth_event", "event", "admin_required", "path", r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TabFromContext extracts the tab state from the request context.
func TabFromContext(ctx context.Context) (*Tab, bool) {
	tab, ok := ctx.Value(tabContextKey).(*Tab)
	return tab, ok
}

// ContextWithTab returns a context carrying tab.
func ContextWithTab(ctx context.Context, tab *Tab) context.Context {
	return context.WithValue(ctx, tabContextKey, tab)
}

// SetTabCookie sets the tab cookie on the response.
func SetTabCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tabCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(TabTTL.Seconds()),
	})
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
