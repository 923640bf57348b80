package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"frontdesk/internal/domain/summary"
)

// RegisterAdmin creates an admin account.
func (c *Client) RegisterAdmin(ctx context.Context, creds Credentials) (Admin, error) {
	var out Admin
	err := c.do(ctx, http.MethodPost, "/register/admin", nil, creds, &out)
	return out, err
}

// LoginEmployee authenticates an employee.
func (c *Client) LoginEmployee(ctx context.Context, creds Credentials) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/login/employee", nil, creds, &out)
	return out, err
}

// LoginAdmin authenticates an admin.
func (c *Client) LoginAdmin(ctx context.Context, creds Credentials) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/login/admin", nil, creds, &out)
	return out, err
}

// ListEmployees returns every employee.
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	err := c.do(ctx, http.MethodGet, "/admin/employees/", nil, nil, &out)
	return out, err
}

// CreateEmployee registers an employee.
func (c *Client) CreateEmployee(ctx context.Context, in NewEmployee) (Employee, error) {
	var out Employee
	err := c.do(ctx, http.MethodPost, "/admin/employees/", nil, in, &out)
	return out, err
}

// CreateMember registers a member.
func (c *Client) CreateMember(ctx context.Context, in NewMember) (Member, error) {
	var out Member
	err := c.do(ctx, http.MethodPost, "/members/", nil, in, &out)
	return out, err
}

// ListMembers returns a window of members.
func (c *Client) ListMembers(ctx context.Context, opts ListOptions) ([]Member, error) {
	var out []Member
	err := c.do(ctx, http.MethodGet, "/members/", listQuery(opts), nil, &out)
	return out, err
}

// CheckIn opens a shift for the named employee.
func (c *Client) CheckIn(ctx context.Context, name string) (AttendanceRecord, error) {
	var out AttendanceRecord
	err := c.do(ctx, http.MethodPost, "/attendance/", nil, employeeName{EmployeeName: name}, &out)
	return out, err
}

// CheckOut closes the named employee's most recent open shift.
func (c *Client) CheckOut(ctx context.Context, name string) (AttendanceRecord, error) {
	var out AttendanceRecord
	err := c.do(ctx, http.MethodPut, "/attendance/checkout_by_name", nil, employeeName{EmployeeName: name}, &out)
	return out, err
}

// CheckOutByID closes a shift by record id.
func (c *Client) CheckOutByID(ctx context.Context, id ID) (AttendanceRecord, error) {
	var out AttendanceRecord
	err := c.do(ctx, http.MethodPut, "/attendance/"+url.PathEscape(string(id))+"/checkout", nil, nil, &out)
	return out, err
}

// ListAttendance returns a window of attendance records.
func (c *Client) ListAttendance(ctx context.Context, opts ListOptions) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	err := c.do(ctx, http.MethodGet, "/attendance/", listQuery(opts), nil, &out)
	return out, err
}

// AttendanceSummary fetches per-employee daily and monthly hours.
// A structurally invalid summary is reported as a *DecodeError wrapping
// a *summary.MalformedSummaryError.
func (c *Client) AttendanceSummary(ctx context.Context) (summary.Summary, error) {
	var out summary.Summary
	err := c.do(ctx, http.MethodGet, "/attendance/summary", nil, nil, &out)
	return out, err
}

// CreateReservation books a reservation.
func (c *Client) CreateReservation(ctx context.Context, in NewReservation) (Reservation, error) {
	var out Reservation
	err := c.do(ctx, http.MethodPost, "/reservations/", nil, in, &out)
	return out, err
}

// ListReservations returns a window of reservations.
func (c *Client) ListReservations(ctx context.Context, opts ListOptions) ([]Reservation, error) {
	var out []Reservation
	err := c.do(ctx, http.MethodGet, "/reservations/", listQuery(opts), nil, &out)
	return out, err
}

// SyncReservations triggers the external booking sync.
func (c *Client) SyncReservations(ctx context.Context) (SyncResult, error) {
	var out SyncResult
	err := c.do(ctx, http.MethodGet, "/naver-sync/", nil, nil, &out)
	return out, err
}

// CreateSale records a sale.
func (c *Client) CreateSale(ctx context.Context, in NewSale) (Sale, error) {
	var out Sale
	err := c.do(ctx, http.MethodPost, "/sales/", nil, in, &out)
	return out, err
}

// ListSales returns a window of sales.
func (c *Client) ListSales(ctx context.Context, opts ListOptions) ([]Sale, error) {
	var out []Sale
	err := c.do(ctx, http.MethodGet, "/sales/", listQuery(opts), nil, &out)
	return out, err
}

// SalesTotal returns the sum of all sales.
func (c *Client) SalesTotal(ctx context.Context) (float64, error) {
	var out salesTotal
	err := c.do(ctx, http.MethodGet, "/sales/total", nil, nil, &out)
	return out.TotalSales, err
}
