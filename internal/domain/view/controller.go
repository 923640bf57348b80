package view

import (
	"context"
	"log/slog"

	"frontdesk/internal/domain/session"
)

// LoginTab selects one of the pre-login forms.
type LoginTab string

// Login tabs
const (
	TabEmployee      LoginTab = "employee"
	TabAdmin         LoginTab = "admin"
	TabRegisterAdmin LoginTab = "registerAdmin"
)

var loginForms = map[LoginTab]RegionID{
	TabEmployee:      EmployeeLoginForm,
	TabAdmin:         AdminLoginForm,
	TabRegisterAdmin: AdminRegisterForm,
}

// State is the login phase of a controller.
type State int

// States
const (
	StateLoggedOut State = iota
	StateLoggedInEmployee
	StateLoggedInAdmin
)

// String returns the state name used in logs and the view snapshot.
func (s State) String() string {
	switch s {
	case StateLoggedInEmployee:
		return "logged_in_employee"
	case StateLoggedInAdmin:
		return "logged_in_admin"
	default:
		return "logged_out"
	}
}

// EmployeeRefresher reloads the employee selector shown in the attendance section.
type EmployeeRefresher interface {
	RefreshEmployees(ctx context.Context) error
}

// RefresherFunc adapts a function to EmployeeRefresher.
type RefresherFunc func(ctx context.Context) error

// RefreshEmployees calls f.
func (f RefresherFunc) RefreshEmployees(ctx context.Context) error {
	return f(ctx)
}

// Controller owns the session and decides which regions are visible.
// A Controller is not safe for concurrent use; callers serialise access.
type Controller struct {
	registry  *Registry
	session   *session.Session
	refresher EmployeeRefresher
}

// NewController creates a controller in the logged out state.
// refresher may be nil, in which case navigation has no side effects.
func NewController(refresher EmployeeRefresher) *Controller {
	return &Controller{
		registry:  NewRegistry(),
		refresher: refresher,
	}
}

// Registry exposes the region registry for read access.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Session returns the current session, if any.
func (c *Controller) Session() (session.Session, bool) {
	if c.session == nil {
		return session.Session{}, false
	}
	return *c.session, true
}

// State derives the login phase from the session.
func (c *Controller) State() State {
	switch {
	case c.session == nil:
		return StateLoggedOut
	case c.session.IsAdmin():
		return StateLoggedInAdmin
	default:
		return StateLoggedInEmployee
	}
}

// IsVisible reports whether id is shown.
func (c *Controller) IsVisible(id RegionID) bool {
	return c.registry.IsVisible(id)
}

// Visible returns the shown regions in page order.
func (c *Controller) Visible() []RegionID {
	return c.registry.Visible()
}

// SelectLoginTab shows exactly one pre-login form.
// PRE: none
// POST: the form for tab is the only visible login form; session untouched.
// Unknown tabs are ignored and false is returned.
func (c *Controller) SelectLoginTab(tab LoginTab) bool {
	id, ok := loginForms[tab]
	if !ok {
		return false
	}
	return c.registry.Show(id)
}

// CompleteLogin stores s and reveals the main app for its role.
// A call while logged in replaces the session.
// PRE: s comes from a successful login response
// POST: login-section hidden; main-nav and main-content visible;
// admin-only entries visible iff s is an admin session
func (c *Controller) CompleteLogin(s session.Session) {
	s.Role = session.NormalizeRole(s.Role)
	c.session = &s

	c.registry.Hide(LoginSection)
	c.registry.Show(MainNav)
	c.registry.Show(MainContent)

	if s.IsAdmin() {
		c.registry.Show(ReservationNav)
		c.registry.Show(AdminNavLink)
		c.registry.Show(AdminPanelSection)
		c.registry.Show(AdminSalesSection)
	} else {
		c.registry.Hide(ReservationNav)
		c.registry.Hide(AdminNavLink)
		c.registry.HideGroup(GroupAdminSub)
		c.registry.Show(AttendanceSection)
	}
	slog.Info("view_event", "event", "login_complete", "role", s.Role, "name", s.Name)
}

// NavigateTo shows one content section and hides the others.
// Navigating to the attendance section refreshes the employee selector;
// a refresh failure is returned after the visibility change has been applied.
// PRE: none
// POST: if allowed, id is the only visible content region; otherwise nothing changes.
// Returns whether the navigation was applied.
func (c *Controller) NavigateTo(ctx context.Context, id RegionID) (bool, error) {
	if !c.allowed(id, GroupContent) {
		return false, nil
	}
	c.registry.Show(id)
	if id == AttendanceSection && c.refresher != nil {
		if err := c.refresher.RefreshEmployees(ctx); err != nil {
			return true, err
		}
	}
	return true, nil
}

// NavigateAdminSubSection shows one admin sub-section and hides its siblings.
// PRE: none
// POST: if allowed, id is the only visible admin sub-section; content group untouched.
func (c *Controller) NavigateAdminSubSection(id RegionID) bool {
	if !c.allowed(id, GroupAdminSub) {
		return false
	}
	return c.registry.Show(id)
}

// Logout clears the session and returns to the login screen.
// It is idempotent: calling it while logged out changes nothing and returns false.
func (c *Controller) Logout() bool {
	if c.session == nil {
		return false
	}
	name := c.session.Name
	c.session = nil
	c.registry.Hide(MainNav)
	c.registry.Hide(MainContent)
	c.registry.Show(LoginSection)
	slog.Info("view_event", "event", "logout", "name", name)
	return true
}

// allowed decides whether navigation to id within g may proceed.
// Unknown ids, ids outside g, navigation while logged out, and
// admin-only targets for an employee session are all refused.
func (c *Controller) allowed(id RegionID, g Group) bool {
	if !c.registry.Known(id) || c.registry.GroupOf(id) != g {
		return false
	}
	if c.session == nil {
		return false
	}
	if c.registry.AdminOnly(id) && !c.session.IsAdmin() {
		slog.Warn("view_event", "event", "navigation_refused", "region", string(id), "role", c.session.Role)
		return false
	}
	return true
}
