package view_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"frontdesk/internal/domain/session"
	"frontdesk/internal/domain/view"
)

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) RefreshEmployees(ctx context.Context) error {
	r.calls++
	return r.err
}

// assertExclusive fails if any exclusivity group has more than one visible region.
func assertExclusive(t *testing.T, c *view.Controller) {
	t.Helper()
	for _, g := range []view.Group{view.GroupLoginForms, view.GroupContent, view.GroupAdminSub} {
		if visible := c.Registry().VisibleIn(g); len(visible) > 1 {
			t.Errorf("group %s has %d visible regions: %v", g, len(visible), visible)
		}
	}
}

// TestSelectLoginTab_ExactlyOneForm drives random tab sequences and checks the login-forms invariant.
func TestSelectLoginTab_ExactlyOneForm(t *testing.T) {
	tabs := []view.LoginTab{view.TabEmployee, view.TabAdmin, view.TabRegisterAdmin}
	forms := map[view.LoginTab]view.RegionID{
		view.TabEmployee:      view.EmployeeLoginForm,
		view.TabAdmin:         view.AdminLoginForm,
		view.TabRegisterAdmin: view.AdminRegisterForm,
	}
	rng := rand.New(rand.NewSource(7))
	c := view.NewController(nil)

	for i := 0; i < 200; i++ {
		tab := tabs[rng.Intn(len(tabs))]
		if !c.SelectLoginTab(tab) {
			t.Fatalf("SelectLoginTab(%s) returned false", tab)
		}
		visible := c.Registry().VisibleIn(view.GroupLoginForms)
		if len(visible) != 1 || visible[0] != forms[tab] {
			t.Fatalf("after %s: visible forms = %v", tab, visible)
		}
		if _, ok := c.Session(); ok {
			t.Fatal("SelectLoginTab must not create a session")
		}
	}
}

// TestSelectLoginTab_UnknownIsNoop verifies an unknown tab changes nothing.
func TestSelectLoginTab_UnknownIsNoop(t *testing.T) {
	c := view.NewController(nil)
	c.SelectLoginTab(view.TabAdmin)
	before := c.Visible()
	if c.SelectLoginTab("bogus") {
		t.Error("SelectLoginTab(bogus) = true, want false")
	}
	if got := c.Visible(); len(got) != len(before) || !c.IsVisible(view.AdminLoginForm) {
		t.Errorf("visible changed: %v -> %v", before, got)
	}
}

// TestEmployeeLogin_NavigateToAttendance checks the employee path end to end.
func TestEmployeeLogin_NavigateToAttendance(t *testing.T) {
	ref := &countingRefresher{}
	c := view.NewController(ref)
	c.CompleteLogin(session.New(session.RoleEmployee, "Bob"))

	if c.State() != view.StateLoggedInEmployee {
		t.Fatalf("State = %v, want logged_in_employee", c.State())
	}
	if !c.IsVisible(view.AttendanceSection) {
		t.Error("attendance section should be visible by default")
	}

	c.NavigateTo(context.Background(), view.MemberSection)
	applied, err := c.NavigateTo(context.Background(), view.AttendanceSection)
	if !applied || err != nil {
		t.Fatalf("NavigateTo = %v, %v", applied, err)
	}
	if !c.IsVisible(view.AttendanceSection) || c.IsVisible(view.MemberSection) {
		t.Error("attendance should be the only visible content region")
	}
	if ref.calls != 1 {
		t.Errorf("refresh calls = %d, want 1", ref.calls)
	}
	for _, id := range []view.RegionID{view.ReservationNav, view.AdminNavLink, view.AdminPanelSection, view.LoginSection} {
		if c.IsVisible(id) {
			t.Errorf("%s should be hidden for an employee", id)
		}
	}
	if !c.IsVisible(view.MainNav) || !c.IsVisible(view.MainContent) {
		t.Error("main nav and content should be visible")
	}
	assertExclusive(t, c)
}

// TestAdminLogin_ShowsAllNavAndSales checks the admin defaults.
func TestAdminLogin_ShowsAllNavAndSales(t *testing.T) {
	c := view.NewController(nil)
	c.CompleteLogin(session.New(session.RoleAdmin, "Kim"))

	if c.State() != view.StateLoggedInAdmin {
		t.Fatalf("State = %v, want logged_in_admin", c.State())
	}
	for _, id := range []view.RegionID{view.ReservationNav, view.AdminNavLink, view.AdminPanelSection, view.AdminSalesSection, view.MainNav, view.MainContent} {
		if !c.IsVisible(id) {
			t.Errorf("%s should be visible for an admin", id)
		}
	}
	if got := c.Registry().VisibleIn(view.GroupAdminSub); len(got) != 1 || got[0] != view.AdminSalesSection {
		t.Errorf("admin sub-sections = %v, want [admin-sales-section]", got)
	}
	assertExclusive(t, c)
}

// TestCompleteLogin_UnknownRoleIsEmployee verifies least-privilege fallback.
func TestCompleteLogin_UnknownRoleIsEmployee(t *testing.T) {
	for _, role := range []string{"", "owner", "Administrator"} {
		c := view.NewController(nil)
		c.CompleteLogin(session.Session{Role: role, Name: "X"})
		if c.State() != view.StateLoggedInEmployee {
			t.Errorf("role %q: State = %v, want logged_in_employee", role, c.State())
		}
		if c.IsVisible(view.AdminNavLink) {
			t.Errorf("role %q: admin nav must be hidden", role)
		}
	}
}

// TestLogout_Idempotent verifies logout from any state and repeated logout.
func TestLogout_Idempotent(t *testing.T) {
	for _, role := range []string{session.RoleEmployee, session.RoleAdmin} {
		c := view.NewController(nil)
		c.CompleteLogin(session.New(role, "X"))
		if !c.Logout() {
			t.Errorf("%s: first Logout = false, want true", role)
		}
		snapshot := c.Visible()
		if c.Logout() {
			t.Errorf("%s: second Logout = true, want false", role)
		}
		if got := c.Visible(); len(got) != len(snapshot) {
			t.Errorf("%s: second Logout changed visibility: %v -> %v", role, snapshot, got)
		}
		if c.State() != view.StateLoggedOut {
			t.Errorf("%s: State = %v", role, c.State())
		}
		if c.IsVisible(view.MainNav) || c.IsVisible(view.MainContent) || !c.IsVisible(view.LoginSection) {
			t.Errorf("%s: wrong visibility after logout: %v", role, c.Visible())
		}
	}

	fresh := view.NewController(nil)
	if fresh.Logout() {
		t.Error("Logout on a fresh controller should be a no-op")
	}
}

// TestNavigateTo_Refusals covers unknown ids, logged-out navigation and role gating.
func TestNavigateTo_Refusals(t *testing.T) {
	ctx := context.Background()

	loggedOut := view.NewController(nil)
	if applied, _ := loggedOut.NavigateTo(ctx, view.MemberSection); applied {
		t.Error("navigation while logged out should be refused")
	}

	c := view.NewController(nil)
	c.CompleteLogin(session.New(session.RoleEmployee, "Bob"))
	before := c.Visible()
	for _, id := range []view.RegionID{"no-such-section", view.ReservationSection, view.AdminPanelSection, view.MainNav, view.AdminSalesSection} {
		if applied, err := c.NavigateTo(ctx, id); applied || err != nil {
			t.Errorf("NavigateTo(%s) = %v, %v; want refused", id, applied, err)
		}
	}
	if got := c.Visible(); len(got) != len(before) {
		t.Errorf("visibility changed by refused navigation: %v -> %v", before, got)
	}
}

// TestNavigateTo_RefreshFailureKeepsVisibility verifies the region still switches.
func TestNavigateTo_RefreshFailureKeepsVisibility(t *testing.T) {
	ref := &countingRefresher{err: errors.New("backend down")}
	c := view.NewController(ref)
	c.CompleteLogin(session.New(session.RoleAdmin, "Kim"))

	applied, err := c.NavigateTo(context.Background(), view.AttendanceSection)
	if !applied || err == nil {
		t.Fatalf("NavigateTo = %v, %v; want applied with error", applied, err)
	}
	if !c.IsVisible(view.AttendanceSection) || c.IsVisible(view.AdminPanelSection) {
		t.Error("attendance should be visible despite refresh failure")
	}
}

// TestNavigateAdminSubSection_IndependentGroup verifies sub-navigation leaves content alone.
func TestNavigateAdminSubSection_IndependentGroup(t *testing.T) {
	c := view.NewController(nil)
	c.CompleteLogin(session.New(session.RoleAdmin, "Kim"))

	if !c.NavigateAdminSubSection(view.AdminEmployeeSection) {
		t.Fatal("NavigateAdminSubSection returned false")
	}
	if !c.IsVisible(view.AdminEmployeeSection) || c.IsVisible(view.AdminSalesSection) {
		t.Error("employee sub-section should replace sales")
	}
	if !c.IsVisible(view.AdminPanelSection) {
		t.Error("content group should be untouched")
	}
	if c.NavigateAdminSubSection(view.MemberSection) {
		t.Error("content region is not an admin sub-section")
	}

	emp := view.NewController(nil)
	emp.CompleteLogin(session.New(session.RoleEmployee, "Bob"))
	if emp.NavigateAdminSubSection(view.AdminReportsSection) {
		t.Error("employee must not reach admin sub-sections")
	}
}

// TestRandomWalk_InvariantsHold applies random operations and checks group exclusivity throughout.
func TestRandomWalk_InvariantsHold(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	c := view.NewController(&countingRefresher{})
	regions := c.Registry().Regions()
	roles := []string{session.RoleEmployee, session.RoleAdmin, "unknown"}
	tabs := []view.LoginTab{view.TabEmployee, view.TabAdmin, view.TabRegisterAdmin}

	for i := 0; i < 1000; i++ {
		switch rng.Intn(5) {
		case 0:
			c.SelectLoginTab(tabs[rng.Intn(len(tabs))])
		case 1:
			c.CompleteLogin(session.New(roles[rng.Intn(len(roles))], "X"))
		case 2:
			c.NavigateTo(ctx, regions[rng.Intn(len(regions))])
		case 3:
			c.NavigateAdminSubSection(regions[rng.Intn(len(regions))])
		case 4:
			c.Logout()
		}
		assertExclusive(t, c)
		if c.State() == view.StateLoggedInEmployee {
			for _, id := range []view.RegionID{view.ReservationNav, view.AdminNavLink, view.ReservationSection, view.AdminPanelSection} {
				if c.IsVisible(id) {
					t.Fatalf("step %d: %s visible for employee", i, id)
				}
			}
		}
		if c.State() == view.StateLoggedOut && c.IsVisible(view.MainNav) {
			t.Fatalf("step %d: main nav visible while logged out", i)
		}
	}
}
