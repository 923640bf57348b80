package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"frontdesk/internal/adapters/http/perf"
	"frontdesk/internal/application/listutil"
	"frontdesk/internal/application/orchestrators"
	"frontdesk/internal/application/projections"
	"frontdesk/internal/domain/sale"
)

// maxBodyBytes caps a JSON request body.
const maxBodyBytes = 1 << 20

type server struct {
	stores    Stores
	source    orchestrators.ReservationSource
	collector *perf.Collector
	now       func() time.Time
	debugPerf bool
}

func newServer(deps Deps) *server {
	s := &server{
		stores:    deps.Stores,
		source:    deps.Source,
		collector: deps.Collector,
		now:       deps.Now,
		debugPerf: deps.DebugPerf,
	}
	if s.source == nil {
		s.source = orchestrators.SampleReservationSource{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	if s.debugPerf {
		mux.HandleFunc("GET /debug/perf", s.handlePerf)
	}

	mux.HandleFunc("POST /register/admin", s.handleRegisterAdmin)
	mux.HandleFunc("POST /login/employee", s.handleLoginEmployee)
	mux.HandleFunc("POST /login/admin", s.handleLoginAdmin)

	mux.HandleFunc("POST /admin/employees/{$}", s.handleCreateEmployee)
	mux.HandleFunc("GET /admin/employees/{$}", s.handleListEmployees)

	mux.HandleFunc("POST /members/{$}", s.handleCreateMember)
	mux.HandleFunc("GET /members/{$}", s.handleListMembers)

	mux.HandleFunc("POST /attendance/{$}", s.handleCheckIn)
	mux.HandleFunc("GET /attendance/{$}", s.handleListAttendance)
	mux.HandleFunc("PUT /attendance/{id}/checkout", s.handleCheckOutByID)
	mux.HandleFunc("PUT /attendance/checkout_by_name", s.handleCheckOutByName)
	mux.HandleFunc("GET /attendance/summary", s.handleAttendanceSummary)

	mux.HandleFunc("POST /reservations/{$}", s.handleCreateReservation)
	mux.HandleFunc("GET /reservations/{$}", s.handleListReservations)
	mux.HandleFunc("GET /naver-sync/{$}", s.handleSyncReservations)

	mux.HandleFunc("POST /sales/{$}", s.handleCreateSale)
	mux.HandleFunc("GET /sales/{$}", s.handleListSales)
	mux.HandleFunc("GET /sales/total", s.handleSalesTotal)
	return mux
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detailOut{Detail: "invalid JSON body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("internal_error", "error", err.Error())
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handlePerf(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.collector.Snapshot(s.now().Add(-time.Hour), 10))
}

func (s *server) loginDeps() orchestrators.LoginDeps {
	return orchestrators.LoginDeps{Employees: s.stores.Employees, Admins: s.stores.Admins}
}

// handleRegisterAdmin handles POST /register/admin
func (s *server) handleRegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var in credentialsIn
	if !strictDecode(w, r, &in) {
		return
	}
	a, err := orchestrators.ExecuteRegisterAdmin(r.Context(), orchestrators.LoginInput{Name: in.Name, Password: in.Password}, s.loginDeps())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adminOut{ID: a.ID, Name: a.Name})
}

// handleLoginEmployee handles POST /login/employee
func (s *server) handleLoginEmployee(w http.ResponseWriter, r *http.Request) {
	var in credentialsIn
	if !strictDecode(w, r, &in) {
		return
	}
	res, err := orchestrators.ExecuteEmployeeLogin(r.Context(), orchestrators.LoginInput{Name: in.Name, Password: in.Password}, s.loginDeps())
	if err != nil {
		writeCredentialsError(w, err, "employee")
		return
	}
	writeJSON(w, http.StatusOK, loginOut(res))
}

// handleLoginAdmin handles POST /login/admin
func (s *server) handleLoginAdmin(w http.ResponseWriter, r *http.Request) {
	var in credentialsIn
	if !strictDecode(w, r, &in) {
		return
	}
	res, err := orchestrators.ExecuteAdminLogin(r.Context(), orchestrators.LoginInput{Name: in.Name, Password: in.Password}, s.loginDeps())
	if err != nil {
		writeCredentialsError(w, err, "admin")
		return
	}
	writeJSON(w, http.StatusOK, loginOut(res))
}

func (s *server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in employeeIn
	if !strictDecode(w, r, &in) {
		return
	}
	e, err := orchestrators.ExecuteCreateEmployee(r.Context(), orchestrators.CreateEmployeeInput(in), orchestrators.CreateEmployeeDeps{EmployeeStore: s.stores.Employees})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeOut(e))
}

func (s *server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := projections.QueryListEmployees(r.Context(), s.stores.Employees)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(employees, toEmployeeOut))
}

func (s *server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var in memberIn
	if !strictDecode(w, r, &in) {
		return
	}
	m, err := orchestrators.ExecuteRegisterMember(r.Context(), orchestrators.RegisterMemberInput(in), orchestrators.RegisterMemberDeps{MemberStore: s.stores.Members})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberOut(m))
}

func (s *server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	window, err := listutil.ParseWindow(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	members, err := projections.QueryListMembers(r.Context(), window, s.stores.Members)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(members, toMemberOut))
}

func (s *server) shiftDeps() orchestrators.ShiftDeps {
	return orchestrators.ShiftDeps{AttendanceStore: s.stores.Attendance, Now: s.now}
}

// handleCheckIn handles POST /attendance/
func (s *server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var in employeeNameIn
	if !strictDecode(w, r, &in) {
		return
	}
	rec, err := orchestrators.ExecuteCheckIn(r.Context(), in.EmployeeName, s.shiftDeps())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAttendanceOut(rec))
}

// handleCheckOutByName handles PUT /attendance/checkout_by_name
func (s *server) handleCheckOutByName(w http.ResponseWriter, r *http.Request) {
	var in employeeNameIn
	if !strictDecode(w, r, &in) {
		return
	}
	rec, err := orchestrators.ExecuteCheckOutByName(r.Context(), in.EmployeeName, s.shiftDeps())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAttendanceOut(rec))
}

// handleCheckOutByID handles PUT /attendance/{id}/checkout
func (s *server) handleCheckOutByID(w http.ResponseWriter, r *http.Request) {
	rec, err := orchestrators.ExecuteCheckOutByID(r.Context(), r.PathValue("id"), s.shiftDeps())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAttendanceOut(rec))
}

func (s *server) handleListAttendance(w http.ResponseWriter, r *http.Request) {
	window, err := listutil.ParseWindow(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := projections.QueryListAttendance(r.Context(), window, s.stores.Attendance)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(records, toAttendanceOut))
}

func (s *server) handleAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := projections.QueryAttendanceSummary(r.Context(), s.stores.Attendance)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var in reservationIn
	if !strictDecode(w, r, &in) {
		return
	}
	res, err := orchestrators.ExecuteCreateReservation(r.Context(), orchestrators.CreateReservationInput(in), s.stores.Reservations)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationOut(res))
}

func (s *server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	window, err := listutil.ParseWindow(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := projections.QueryListReservations(r.Context(), window, s.stores.Reservations)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toReservationOut))
}

// handleSyncReservations handles GET /naver-sync/
func (s *server) handleSyncReservations(w http.ResponseWriter, r *http.Request) {
	res, err := orchestrators.ExecuteSyncReservations(r.Context(), s.source, s.stores.Reservations)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detailOut{Detail: res.Detail()})
}

func (s *server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var in saleIn
	if !strictDecode(w, r, &in) {
		return
	}
	if in.Amount == nil {
		writeJSON(w, http.StatusUnprocessableEntity, detailOut{Detail: sale.ErrInvalidAmount.Error()})
		return
	}
	sl, err := orchestrators.ExecuteRecordSale(r.Context(), orchestrators.RecordSaleInput{SaleDate: in.SaleDate, Amount: *in.Amount}, s.stores.Sales)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleOut(sl))
}

func (s *server) handleListSales(w http.ResponseWriter, r *http.Request) {
	window, err := listutil.ParseWindow(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := projections.QueryListSales(r.Context(), window, s.stores.Sales)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toSaleOut))
}

func (s *server) handleSalesTotal(w http.ResponseWriter, r *http.Request) {
	total, err := projections.QuerySalesTotal(r.Context(), s.stores.Sales)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, salesTotalOut{TotalSales: total})
}
