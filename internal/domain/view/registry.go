package view

// RegionID names a display slot on the page. The values match the element
// ids rendered by the page template.
type RegionID string

// Region ids
const (
	LoginSection RegionID = "login-section"
	MainNav      RegionID = "main-nav"
	MainContent  RegionID = "main-content"

	EmployeeLoginForm RegionID = "employee-login-form-div"
	AdminLoginForm    RegionID = "admin-login-form-div"
	AdminRegisterForm RegionID = "admin-register-form-div"

	ReservationNav RegionID = "reservation-nav"
	AdminNavLink   RegionID = "admin-nav-link"

	MemberSection      RegionID = "member-section"
	AttendanceSection  RegionID = "attendance-section"
	ReservationSection RegionID = "reservation-section"
	AdminPanelSection  RegionID = "admin-panel-section"

	AdminSalesSection    RegionID = "admin-sales-section"
	AdminEmployeeSection RegionID = "admin-employee-section"
	AdminReportsSection  RegionID = "admin-reports-section"
)

// Group names an exclusivity group. At most one region of a group is visible.
type Group string

// Groups
const (
	GroupNone       Group = ""
	GroupLoginForms Group = "login-forms"
	GroupContent    Group = "content"
	GroupAdminSub   Group = "admin-sub"
)

type region struct {
	group     Group
	adminOnly bool
	visible   bool
}

// definitions is the fixed page layout, in render order.
var definitions = []struct {
	id        RegionID
	group     Group
	adminOnly bool
}{
	{LoginSection, GroupNone, false},
	{EmployeeLoginForm, GroupLoginForms, false},
	{AdminLoginForm, GroupLoginForms, false},
	{AdminRegisterForm, GroupLoginForms, false},
	{MainNav, GroupNone, false},
	{ReservationNav, GroupNone, true},
	{AdminNavLink, GroupNone, true},
	{MainContent, GroupNone, false},
	{MemberSection, GroupContent, false},
	{AttendanceSection, GroupContent, false},
	{ReservationSection, GroupContent, true},
	{AdminPanelSection, GroupContent, true},
	{AdminSalesSection, GroupAdminSub, true},
	{AdminEmployeeSection, GroupAdminSub, true},
	{AdminReportsSection, GroupAdminSub, true},
}

// Registry tracks the visibility of every region.
// INVARIANT: for each group other than GroupNone, at most one region is visible
type Registry struct {
	regions map[RegionID]*region
	order   []RegionID
}

// NewRegistry builds the registry in its initial (logged out) layout:
// the login section and the employee login form are visible, nothing else is.
func NewRegistry() *Registry {
	r := &Registry{regions: make(map[RegionID]*region, len(definitions))}
	for _, d := range definitions {
		r.regions[d.id] = &region{group: d.group, adminOnly: d.adminOnly}
		r.order = append(r.order, d.id)
	}
	r.Show(LoginSection)
	r.Show(EmployeeLoginForm)
	return r
}

// Known reports whether id is a registered region.
func (r *Registry) Known(id RegionID) bool {
	_, ok := r.regions[id]
	return ok
}

// GroupOf returns the exclusivity group of id, or GroupNone.
func (r *Registry) GroupOf(id RegionID) Group {
	if reg, ok := r.regions[id]; ok {
		return reg.group
	}
	return GroupNone
}

// AdminOnly reports whether id may only be shown to an admin session.
func (r *Registry) AdminOnly(id RegionID) bool {
	if reg, ok := r.regions[id]; ok {
		return reg.adminOnly
	}
	return false
}

// IsVisible reports whether id is currently shown. Unknown ids are never visible.
func (r *Registry) IsVisible(id RegionID) bool {
	if reg, ok := r.regions[id]; ok {
		return reg.visible
	}
	return false
}

// Show makes id visible and hides its group siblings.
// PRE: none
// POST: id is visible; if grouped, it is the only visible member of its group.
// Unknown ids are ignored and false is returned.
func (r *Registry) Show(id RegionID) bool {
	reg, ok := r.regions[id]
	if !ok {
		return false
	}
	if reg.group != GroupNone {
		r.HideGroup(reg.group)
	}
	reg.visible = true
	return true
}

// Hide makes id invisible. Unknown ids are ignored.
func (r *Registry) Hide(id RegionID) {
	if reg, ok := r.regions[id]; ok {
		reg.visible = false
	}
}

// HideGroup hides every region in g.
func (r *Registry) HideGroup(g Group) {
	if g == GroupNone {
		return
	}
	for _, reg := range r.regions {
		if reg.group == g {
			reg.visible = false
		}
	}
}

// VisibleIn returns the visible regions of g in page order.
func (r *Registry) VisibleIn(g Group) []RegionID {
	var out []RegionID
	for _, id := range r.order {
		reg := r.regions[id]
		if reg.group == g && reg.visible {
			out = append(out, id)
		}
	}
	return out
}

// Visible returns all visible regions in page order.
func (r *Registry) Visible() []RegionID {
	var out []RegionID
	for _, id := range r.order {
		if r.regions[id].visible {
			out = append(out, id)
		}
	}
	return out
}

// Regions returns every registered region id in page order.
func (r *Registry) Regions() []RegionID {
	out := make([]RegionID, len(r.order))
	copy(out, r.order)
	return out
}
