package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"frontdesk/internal/adapters/apiclient"
	"frontdesk/internal/adapters/email"
	"frontdesk/internal/adapters/http/middleware"
	"frontdesk/internal/domain/summary"
)

// fakeBackend is an in-memory Backend. Methods named in fail return that error.
type fakeBackend struct {
	mu         sync.Mutex
	calls      map[string]int
	fail       map[string]error
	role       string
	employees  []apiclient.Employee
	members    []apiclient.Member
	attendance []apiclient.AttendanceRecord
	summary    summary.Summary
	sales      []apiclient.Sale
	// gate, when set, blocks CreateMember until closed; started is signalled first.
	gate    chan struct{}
	started chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		calls:     map[string]int{},
		fail:      map[string]error{},
		employees: []apiclient.Employee{{ID: "1", Name: "Kim", Email: "kim@example.com", Position: "front"}},
		summary: summary.Summary{
			Daily:   []summary.Breakdown{{Employee: "Kim", Entries: []summary.Entry{{Key: "2024-01-01", Hours: 8.005}}}},
			Monthly: []summary.Breakdown{{Employee: "Kim", Entries: []summary.Entry{{Key: "2024-01", Hours: 160.1}}}},
		},
	}
}

func (f *fakeBackend) enter(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.fail[op]
}

func (f *fakeBackend) setFail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeBackend) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeBackend) RegisterAdmin(_ context.Context, c apiclient.Credentials) (apiclient.Admin, error) {
	if err := f.enter("RegisterAdmin"); err != nil {
		return apiclient.Admin{}, err
	}
	return apiclient.Admin{ID: "a1", Name: c.Name}, nil
}

func (f *fakeBackend) login(op string, c apiclient.Credentials, role string) (apiclient.LoginResponse, error) {
	if err := f.enter(op); err != nil {
		return apiclient.LoginResponse{}, err
	}
	if f.role != "" {
		role = f.role
	}
	return apiclient.LoginResponse{Message: "Welcome, **" + c.Name + "**", Role: role, Name: c.Name}, nil
}

func (f *fakeBackend) LoginEmployee(_ context.Context, c apiclient.Credentials) (apiclient.LoginResponse, error) {
	return f.login("LoginEmployee", c, "employee")
}

func (f *fakeBackend) LoginAdmin(_ context.Context, c apiclient.Credentials) (apiclient.LoginResponse, error) {
	return f.login("LoginAdmin", c, "admin")
}

func (f *fakeBackend) ListEmployees(context.Context) ([]apiclient.Employee, error) {
	if err := f.enter("ListEmployees"); err != nil {
		return nil, err
	}
	return f.employees, nil
}

func (f *fakeBackend) CreateEmployee(_ context.Context, in apiclient.NewEmployee) (apiclient.Employee, error) {
	if err := f.enter("CreateEmployee"); err != nil {
		return apiclient.Employee{}, err
	}
	return apiclient.Employee{ID: "e2", Name: in.Name, Email: in.Email, Position: in.Position}, nil
}

func (f *fakeBackend) CreateMember(_ context.Context, in apiclient.NewMember) (apiclient.Member, error) {
	if err := f.enter("CreateMember"); err != nil {
		return apiclient.Member{}, err
	}
	if f.gate != nil {
		f.started <- struct{}{}
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m := apiclient.Member{ID: apiclient.ID(fmt.Sprint(len(f.members) + 1)), NewMember: in}
	f.members = append(f.members, m)
	return m, nil
}

func (f *fakeBackend) ListMembers(context.Context, apiclient.ListOptions) ([]apiclient.Member, error) {
	if err := f.enter("ListMembers"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiclient.Member(nil), f.members...), nil
}

func (f *fakeBackend) CheckIn(_ context.Context, name string) (apiclient.AttendanceRecord, error) {
	if err := f.enter("CheckIn"); err != nil {
		return apiclient.AttendanceRecord{}, err
	}
	return apiclient.AttendanceRecord{ID: "41", EmployeeName: name, CheckIn: "2024-01-01T09:00:00"}, nil
}

func (f *fakeBackend) CheckOut(_ context.Context, name string) (apiclient.AttendanceRecord, error) {
	if err := f.enter("CheckOut"); err != nil {
		return apiclient.AttendanceRecord{}, err
	}
	out := "2024-01-01T17:30:00"
	return apiclient.AttendanceRecord{ID: "41", EmployeeName: name, CheckIn: "2024-01-01T09:00:00", CheckOut: &out}, nil
}

func (f *fakeBackend) ListAttendance(context.Context, apiclient.ListOptions) ([]apiclient.AttendanceRecord, error) {
	if err := f.enter("ListAttendance"); err != nil {
		return nil, err
	}
	return f.attendance, nil
}

func (f *fakeBackend) AttendanceSummary(context.Context) (summary.Summary, error) {
	if err := f.enter("AttendanceSummary"); err != nil {
		return summary.Summary{}, err
	}
	return f.summary, nil
}

func (f *fakeBackend) CreateReservation(_ context.Context, in apiclient.NewReservation) (apiclient.Reservation, error) {
	if err := f.enter("CreateReservation"); err != nil {
		return apiclient.Reservation{}, err
	}
	return apiclient.Reservation{ID: "r1", CustomerName: in.CustomerName, ReservationDate: in.ReservationDate, Status: "booked"}, nil
}

func (f *fakeBackend) ListReservations(context.Context, apiclient.ListOptions) ([]apiclient.Reservation, error) {
	if err := f.enter("ListReservations"); err != nil {
		return nil, err
	}
	return []apiclient.Reservation{{ID: "r1", CustomerName: "Park", ReservationDate: "2024-02-01T10:00:00", Status: "booked"}}, nil
}

func (f *fakeBackend) SyncReservations(context.Context) (apiclient.SyncResult, error) {
	if err := f.enter("SyncReservations"); err != nil {
		return apiclient.SyncResult{}, err
	}
	return apiclient.SyncResult{Detail: "Synced **2** reservations"}, nil
}

func (f *fakeBackend) CreateSale(_ context.Context, in apiclient.NewSale) (apiclient.Sale, error) {
	if err := f.enter("CreateSale"); err != nil {
		return apiclient.Sale{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s := apiclient.Sale{ID: apiclient.ID(fmt.Sprint(len(f.sales) + 1)), SaleDate: in.SaleDate, Amount: in.Amount}
	f.sales = append(f.sales, s)
	return s, nil
}

func (f *fakeBackend) ListSales(context.Context, apiclient.ListOptions) ([]apiclient.Sale, error) {
	if err := f.enter("ListSales"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiclient.Sale(nil), f.sales...), nil
}

func (f *fakeBackend) SalesTotal(context.Context) (float64, error) {
	if err := f.enter("SalesTotal"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0.0
	for _, s := range f.sales {
		total += s.Amount
	}
	return total, nil
}

// testApp serves the routes behind the tab middleware only; CSRF is covered separately.
type testApp struct {
	server  *server
	backend *fakeBackend
	sender  *email.NoopSender
	client  *http.Client
	base    string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	fb := newFakeBackend()
	sender := email.NewNoopSender()
	s := newServer(Deps{
		Backend: fb,
		Sender:  sender,
		Now:     func() time.Time { return time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC) },
	})
	ts := httptest.NewServer(middleware.Tabs(s.tabs)(s.routes()))
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &testApp{server: s, backend: fb, sender: sender, client: &http.Client{Jar: jar}, base: ts.URL}
}

// post submits a form, follows the redirect, and returns the final status and body.
func (a *testApp) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.base+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func (a *testApp) page(t *testing.T) string {
	t.Helper()
	resp, err := a.client.Get(a.base + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

func (a *testApp) view(t *testing.T) viewSnapshot {
	t.Helper()
	resp, err := a.client.Get(a.base + "/api/view")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var snap viewSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return snap
}

func (a *testApp) loginAdmin(t *testing.T) {
	t.Helper()
	a.post(t, "/login/admin", url.Values{"name": {"boss"}, "password": {"pw"}})
}

func (a *testApp) loginEmployee(t *testing.T) {
	t.Helper()
	a.post(t, "/login/employee", url.Values{"name": {"Kim"}, "password": {"pw"}})
}

func visibleSet(s viewSnapshot) map[string]bool {
	out := map[string]bool{}
	for _, id := range s.Visible {
		out[string(id)] = true
	}
	return out
}

func contains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("page does not contain %q", want)
	}
}
