package session

import (
	"log/slog"
	"strings"
)

// Role constants
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Session is the identity established by a successful login.
// It lives only as long as the tab state that owns it.
type Session struct {
	Role string
	Name string
}

// New builds a Session, normalising the role.
// A missing or unrecognised role becomes RoleEmployee so the caller never
// gains admin-only regions from a malformed login response.
// PRE: none
// POST: Role is RoleEmployee or RoleAdmin
func New(role, name string) Session {
	return Session{Role: NormalizeRole(role), Name: strings.TrimSpace(name)}
}

// NormalizeRole maps a backend-supplied role to a known role.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleEmployee:
		return RoleEmployee
	default:
		slog.Warn("auth_event", "event", "unknown_role", "role", role, "applied", RoleEmployee)
		return RoleEmployee
	}
}

// IsAdmin returns true if the session has the admin role.
// INVARIANT: Session fields are not mutated
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
