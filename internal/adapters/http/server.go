package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"frontdesk/internal/adapters/email"
	"frontdesk/internal/adapters/http/middleware"
	"frontdesk/internal/adapters/http/perf"
	"frontdesk/internal/domain/session"
	"frontdesk/internal/domain/view"
)

//go:embed templates/index.html
var templatesFS embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var pageTmpl = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"renderMarkdown": func(md string) template.HTML {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
			return template.HTML(template.HTMLEscapeString(md))
		}
		return template.HTML(buf.String())
	},
}).ParseFS(templatesFS, "templates/index.html"))

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

type server struct {
	backend   Backend
	sender    email.Sender
	emailFrom string
	collector *perf.Collector
	now       func() time.Time
	tabs      *middleware.TabStore
}

func newServer(deps Deps) *server {
	s := &server{
		backend:   deps.Backend,
		sender:    deps.Sender,
		emailFrom: deps.EmailFrom,
		collector: deps.Collector,
		now:       deps.Now,
	}
	if s.sender == nil {
		s.sender = email.NewNoopSender()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.tabs = middleware.NewTabStore(s.refreshEmployees)
	return s
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	login := func(h http.HandlerFunc) http.Handler { return middleware.RequireLogin(h) }
	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(h) }

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/view", s.handleViewSnapshot)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /debug/perf", admin(s.handlePerf))

	mux.HandleFunc("POST /login/tab", s.handleLoginTab)
	mux.HandleFunc("POST /login/employee", s.handleLoginEmployee)
	mux.HandleFunc("POST /login/admin", s.handleLoginAdmin)
	mux.HandleFunc("POST /register/admin", s.handleRegisterAdmin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("POST /alert/dismiss", s.handleDismissAlert)
	mux.Handle("POST /nav", login(s.handleNav))
	mux.Handle("POST /nav/admin", login(s.handleNavAdmin))

	mux.Handle("POST /members", login(s.handleCreateMember))
	mux.Handle("POST /members/load", login(s.handleLoadMembers))
	mux.Handle("POST /members/import", login(s.handleImportMembers))

	mux.Handle("POST /attendance/checkin", login(s.handleCheckIn))
	mux.Handle("POST /attendance/checkout", login(s.handleCheckOut))
	mux.Handle("POST /attendance/load", login(s.handleLoadAttendance))
	mux.Handle("POST /attendance/summary/load", login(s.handleLoadSummary))
	mux.Handle("GET /attendance/summary.xlsx", login(s.handleExportSummary))
	mux.Handle("POST /attendance/summary/email", admin(s.handleEmailSummary))

	mux.Handle("POST /reservations", admin(s.handleCreateReservation))
	mux.Handle("POST /reservations/load", admin(s.handleLoadReservations))
	mux.Handle("POST /reservations/sync", admin(s.handleSyncReservations))

	mux.Handle("POST /sales", admin(s.handleCreateSale))
	mux.Handle("POST /sales/load", admin(s.handleLoadSales))
	mux.Handle("POST /sales/total", admin(s.handleSalesTotal))

	mux.Handle("POST /employees", admin(s.handleCreateEmployee))
	mux.Handle("POST /employees/load", admin(s.handleLoadEmployees))
	return mux
}

// refreshEmployees reloads the employee selector. It is the controller's
// navigation refresher and runs with the tab lock held.
func (s *server) refreshEmployees(ctx context.Context, b *view.Board) error {
	names, err := s.employeeNames(ctx)
	if err != nil {
		return err
	}
	b.SetOptions(view.SlotEmployeeRadio, names)
	return nil
}

func (s *server) employeeNames(ctx context.Context) ([]string, error) {
	employees, err := s.backend.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(employees))
	for _, e := range employees {
		names = append(names, e.Name)
	}
	return names, nil
}

// pageData is a consistent copy of one tab, taken under its lock.
type pageData struct {
	State     string
	Session   session.Session
	LoggedIn  bool
	IsAdmin   bool
	Alert     string
	CSRFField template.HTML
	visible   map[view.RegionID]bool
	slots     map[view.SlotID]view.Slot
}

// Visible reports whether a region is shown.
func (p pageData) Visible(id string) bool { return p.visible[view.RegionID(id)] }

// Slot returns a result slot's contents.
func (p pageData) Slot(id string) view.Slot { return p.slots[view.SlotID(id)] }

func snapshot(tab *middleware.Tab) pageData {
	var p pageData
	tab.Apply(func(c *view.Controller, b *view.Board) {
		p.State = c.State().String()
		p.Session, p.LoggedIn = c.Session()
		p.IsAdmin = p.LoggedIn && p.Session.IsAdmin()
		p.Alert = b.PendingAlert()
		p.visible = make(map[view.RegionID]bool)
		for _, id := range c.Visible() {
			p.visible[id] = true
		}
		p.slots = b.Slots()
	})
	return p
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	tab, ok := middleware.TabFromContext(r.Context())
	if !ok {
		internalError(w, errors.New("no tab state on request"))
		return
	}
	data := snapshot(tab)
	data.CSRFField = csrf.TemplateField(r)

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

type viewSnapshot struct {
	State   string          `json:"state"`
	Session *sessionJSON    `json:"session"`
	Visible []view.RegionID `json:"visible"`
	Alert   string          `json:"alert"`
}

type sessionJSON struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// handleViewSnapshot reports the tab's login phase and visible regions as JSON.
// A caller without a tab sees the logged-out view; no tab is stored for it.
func (s *server) handleViewSnapshot(w http.ResponseWriter, r *http.Request) {
	tab, ok := middleware.TabFromContext(r.Context())
	if !ok {
		tab = middleware.NewTab(nil)
	}
	var snap viewSnapshot
	tab.Apply(func(c *view.Controller, b *view.Board) {
		snap.State = c.State().String()
		if sess, ok := c.Session(); ok {
			snap.Session = &sessionJSON{Role: sess.Role, Name: sess.Name}
		}
		snap.Visible = c.Visible()
		snap.Alert = b.PendingAlert()
	})
	writeJSON(w, http.StatusOK, snap)
}

func (s *server) handlePerf(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.collector.Snapshot(s.now().Add(-time.Hour), 10))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("internal_error", "error", err.Error())
	}
}
