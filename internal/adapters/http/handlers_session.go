package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"frontdesk/internal/adapters/apiclient"
	"frontdesk/internal/domain/session"
	"frontdesk/internal/domain/view"
)

func credentialsFrom(r *http.Request) apiclient.Credentials {
	return apiclient.Credentials{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Password: r.FormValue("password"),
	}
}

func (s *server) handleLoginTab(w http.ResponseWriter, r *http.Request) {
	tab := view.LoginTab(r.FormValue("tab"))
	s.mutate(w, r, func(c *view.Controller, _ *view.Board) {
		c.SelectLoginTab(tab)
	})
}

// handleLoginEmployee logs in an employee. The employee selector is loaded as
// part of the login so the attendance section opens populated.
func (s *server) handleLoginEmployee(w http.ResponseWriter, r *http.Request) {
	creds := credentialsFrom(r)
	s.perform(w, r, actLoginEmployee, func(ctx context.Context) (result, error) {
		resp, err := s.backend.LoginEmployee(ctx, creds)
		if err != nil {
			slog.Warn("auth_event", "event", "login_failed", "role", session.RoleEmployee, "name", creds.Name)
			return nil, err
		}
		names, refreshErr := s.employeeNames(ctx)
		return func(c *view.Controller, b *view.Board) {
			completeLogin(c, b, resp)
			if refreshErr != nil {
				fail(b, actEmployeeOptions, refreshErr)
				return
			}
			b.SetOptions(view.SlotEmployeeRadio, names)
		}, nil
	})
}

func (s *server) handleLoginAdmin(w http.ResponseWriter, r *http.Request) {
	creds := credentialsFrom(r)
	s.perform(w, r, actLoginAdmin, func(ctx context.Context) (result, error) {
		resp, err := s.backend.LoginAdmin(ctx, creds)
		if err != nil {
			slog.Warn("auth_event", "event", "login_failed", "role", session.RoleAdmin, "name", creds.Name)
			return nil, err
		}
		return func(c *view.Controller, b *view.Board) {
			completeLogin(c, b, resp)
		}, nil
	})
}

func completeLogin(c *view.Controller, b *view.Board, resp apiclient.LoginResponse) {
	c.CompleteLogin(session.New(resp.Role, resp.Name))
	b.Set(view.SlotLogin, view.Slot{Message: resp.Message, Markdown: true})
	slog.Info("auth_event", "event", "login_success", "role", resp.Role, "name", resp.Name)
}

func (s *server) handleRegisterAdmin(w http.ResponseWriter, r *http.Request) {
	creds := credentialsFrom(r)
	s.perform(w, r, actRegisterAdmin, func(ctx context.Context) (result, error) {
		admin, err := s.backend.RegisterAdmin(ctx, creds)
		if err != nil {
			return nil, err
		}
		return func(c *view.Controller, b *view.Board) {
			b.SetMessage(view.SlotLogin, "Admin registered: "+admin.Name)
			c.SelectLoginTab(view.TabAdmin)
		}, nil
	})
}

// handleLogout ends the session and clears every result slot.
func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(c *view.Controller, b *view.Board) {
		if c.Logout() {
			b.Reset()
		}
	})
}

func (s *server) handleDismissAlert(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(_ *view.Controller, b *view.Board) {
		b.DismissAlert()
	})
}

// handleNav switches the content section. Moving to the attendance section
// refreshes the employee selector inside the transition.
func (s *server) handleNav(w http.ResponseWriter, r *http.Request) {
	target := view.RegionID(r.FormValue("section"))
	ctx := r.Context()
	s.mutate(w, r, func(c *view.Controller, b *view.Board) {
		if _, err := c.NavigateTo(ctx, target); err != nil {
			fail(b, actEmployeeOptions, err)
		}
	})
}

func (s *server) handleNavAdmin(w http.ResponseWriter, r *http.Request) {
	target := view.RegionID(r.FormValue("section"))
	s.mutate(w, r, func(c *view.Controller, _ *view.Board) {
		c.NavigateAdminSubSection(target)
	})
}
