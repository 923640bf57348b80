package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"frontdesk/internal/adapters/apiclient"
	"frontdesk/internal/adapters/http/middleware"
	"frontdesk/internal/application/orchestrators"
	"frontdesk/internal/domain/summary"
	"frontdesk/internal/domain/view"
)

// Action names. They key the in-flight guard and the failure channel table.
const (
	actLoginEmployee     = "login_employee"
	actLoginAdmin        = "login_admin"
	actRegisterAdmin     = "register_admin"
	actCreateMember      = "create_member"
	actLoadMembers       = "load_members"
	actImportMembers     = "import_members"
	actEmployeeOptions   = "employee_options"
	actCheckIn           = "check_in"
	actCheckOut          = "check_out"
	actLoadAttendance    = "load_attendance"
	actLoadSummary       = "load_summary"
	actExportSummary     = "export_summary"
	actEmailSummary      = "email_summary"
	actCreateReservation = "create_reservation"
	actLoadReservations  = "load_reservations"
	actSyncReservations  = "sync_reservations"
	actCreateSale        = "create_sale"
	actLoadSales         = "load_sales"
	actSalesTotal        = "sales_total"
	actCreateEmployee    = "create_employee"
	actLoadEmployees     = "load_employees"
)

// channel is where an action reports failure: an inline slot, or the
// blocking notification when slot is empty.
type channel struct {
	label string
	slot  view.SlotID
}

var channels = map[string]channel{
	actLoginEmployee:     {"Employee login", view.SlotLogin},
	actLoginAdmin:        {"Admin login", view.SlotLogin},
	actRegisterAdmin:     {"Admin registration", view.SlotLogin},
	actCreateMember:      {"Member registration", view.SlotMember},
	actLoadMembers:       {"Loading members", ""},
	actImportMembers:     {"Member import", view.SlotMemberImport},
	actEmployeeOptions:   {"Loading employees", ""},
	actCheckIn:           {"Check-in", ""},
	actCheckOut:          {"Check-out", ""},
	actLoadAttendance:    {"Loading attendance", ""},
	actLoadSummary:       {"Loading attendance summary", ""},
	actExportSummary:     {"Summary export", ""},
	actEmailSummary:      {"Summary email", view.SlotReport},
	actCreateReservation: {"Reservation", view.SlotReservation},
	actLoadReservations:  {"Loading reservations", ""},
	actSyncReservations:  {"Reservation sync", view.SlotSync},
	actCreateSale:        {"Sale registration", view.SlotSale},
	actLoadSales:         {"Loading sales", ""},
	actSalesTotal:        {"Loading total sales", ""},
	actCreateEmployee:    {"Employee registration", view.SlotEmployee},
	actLoadEmployees:     {"Loading employees", ""},
}

var errInProgress = errors.New("already in progress")

// fail writes "<label> failed: <cause>" to the action's channel and nowhere else.
func fail(b *view.Board, action string, err error) {
	ch := channels[action]
	msg := ch.label + " failed: " + failureCause(err)
	slog.Info("action_failed", "action", action, "error", err)
	if ch.slot == "" {
		b.Alert(msg)
		return
	}
	b.SetFailure(ch.slot, msg)
}

// failureCause shortens err to what the user needs to see.
func failureCause(err error) string {
	var (
		se *apiclient.StatusError
		te *apiclient.TransportError
		de *apiclient.DecodeError
		me *summary.MalformedSummaryError
		ve *orchestrators.ImportMembersValidationError
	)
	switch {
	case errors.As(err, &se):
		if se.Detail != "" {
			return se.Detail
		}
		return fmt.Sprintf("status %d", se.StatusCode)
	case errors.As(err, &te):
		if errors.Is(err, context.DeadlineExceeded) {
			return "backend timed out"
		}
		return "backend unreachable"
	case errors.As(err, &de), errors.As(err, &me):
		return "malformed response"
	case errors.As(err, &ve):
		return ve.Message
	default:
		return err.Error()
	}
}

// result is applied to the tab under its lock once a backend call returns.
type result func(c *view.Controller, b *view.Board)

// perform runs one action for the caller's tab and redirects back to the page.
// call runs outside the tab lock. A second submit of the same action while the
// first is in flight is reported on the action's channel without calling call.
func (s *server) perform(w http.ResponseWriter, r *http.Request, action string, call func(ctx context.Context) (result, error)) {
	tab, ok := middleware.TabFromContext(r.Context())
	if !ok {
		internalError(w, errors.New("no tab state on request"))
		return
	}
	if !tab.Begin(action) {
		tab.Apply(func(_ *view.Controller, b *view.Board) { fail(b, action, errInProgress) })
		redirectHome(w, r)
		return
	}
	defer tab.End(action)

	apply, err := call(r.Context())
	tab.Apply(func(c *view.Controller, b *view.Board) {
		if err != nil {
			fail(b, action, err)
			return
		}
		if apply != nil {
			apply(c, b)
		}
	})
	redirectHome(w, r)
}

// mutate applies a purely local state change and redirects back to the page.
func (s *server) mutate(w http.ResponseWriter, r *http.Request, fn result) {
	tab, ok := middleware.TabFromContext(r.Context())
	if !ok {
		internalError(w, errors.New("no tab state on request"))
		return
	}
	tab.Apply(fn)
	redirectHome(w, r)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
