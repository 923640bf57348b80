package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"frontdesk/internal/adapters/apiclient"
	"frontdesk/internal/adapters/http/middleware"
	"frontdesk/internal/adapters/spreadsheet"
	"frontdesk/internal/application/orchestrators"
	"frontdesk/internal/domain/attendance"
	"frontdesk/internal/domain/summary"
	"frontdesk/internal/domain/view"
)

// attendanceTimeLayout renders check-in and check-out times in the table.
const attendanceTimeLayout = "2006-01-02 15:04"

var attendanceColumns = []string{"ID", "Employee", "Check-in", "Check-out", "Worked"}

func (s *server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	s.shift(w, r, actCheckIn, "Select an employee to check in.", s.backend.CheckIn, "Check-in complete, record ID: ")
}

func (s *server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	s.shift(w, r, actCheckOut, "Select an employee to check out.", s.backend.CheckOut, "Check-out complete, record ID: ")
}

// shift opens or closes a shift for the selected employee. Without a
// selection it raises the notification and makes no backend call.
func (s *server) shift(w http.ResponseWriter, r *http.Request, action, prompt string,
	call func(ctx context.Context, name string) (apiclient.AttendanceRecord, error), done string) {
	name := strings.TrimSpace(r.FormValue("employee"))
	if name == "" {
		s.mutate(w, r, func(_ *view.Controller, b *view.Board) { b.Alert(prompt) })
		return
	}
	s.perform(w, r, action, func(ctx context.Context) (result, error) {
		rec, err := call(ctx, name)
		if err != nil {
			return nil, err
		}
		return func(_ *view.Controller, b *view.Board) {
			b.Alert(done + string(rec.ID))
		}, nil
	})
}

// handleLoadAttendance fills the attendance table and then refreshes the
// summary tables. Each step reports failure on its own channel.
func (s *server) handleLoadAttendance(w http.ResponseWriter, r *http.Request) {
	opts := listOptionsFrom(r)
	s.perform(w, r, actLoadAttendance, func(ctx context.Context) (result, error) {
		records, err := s.backend.ListAttendance(ctx, opts)
		if err != nil {
			return nil, err
		}
		table, err := attendanceTable(records)
		if err != nil {
			return nil, err
		}
		tables, summaryErr := s.summaryTables(ctx)
		return func(_ *view.Controller, b *view.Board) {
			b.SetTable(view.SlotAttendanceTable, table)
			if summaryErr != nil {
				fail(b, actLoadSummary, summaryErr)
				return
			}
			setSummary(b, tables)
		}, nil
	})
}

func attendanceTable(records []apiclient.AttendanceRecord) (view.Table, error) {
	t := view.Table{Columns: attendanceColumns, Rows: make([][]string, 0, len(records))}
	for _, wire := range records {
		rec, err := wire.Record()
		if err != nil {
			return view.Table{}, &apiclient.DecodeError{Op: "GET /attendance/", Err: err}
		}
		t.Rows = append(t.Rows, []string{
			rec.ID,
			rec.EmployeeName,
			rec.CheckIn.Format(attendanceTimeLayout),
			checkOutText(rec),
			rec.DisplayDuration(),
		})
	}
	return t, nil
}

func checkOutText(rec attendance.Record) string {
	if !rec.IsCheckedOut() {
		return "-"
	}
	return rec.CheckOut.Format(attendanceTimeLayout)
}

func (s *server) handleLoadSummary(w http.ResponseWriter, r *http.Request) {
	s.perform(w, r, actLoadSummary, func(ctx context.Context) (result, error) {
		tables, err := s.summaryTables(ctx)
		if err != nil {
			return nil, err
		}
		return func(_ *view.Controller, b *view.Board) { setSummary(b, tables) }, nil
	})
}

func (s *server) summaryTables(ctx context.Context) (summary.Tables, error) {
	sum, err := s.backend.AttendanceSummary(ctx)
	if err != nil {
		return summary.Tables{}, err
	}
	return summary.Render(sum)
}

func setSummary(b *view.Board, t summary.Tables) {
	cols, rows := summary.Table(summary.DailyColumns, t.Daily)
	b.SetTable(view.SlotDailySummary, view.Table{Columns: cols, Rows: rows})
	cols, rows = summary.Table(summary.MonthlyColumns, t.Monthly)
	b.SetTable(view.SlotMonthlySummary, view.Table{Columns: cols, Rows: rows})
}

// handleExportSummary downloads the summary as a workbook. Failures go to
// the notification and the browser is sent back to the page.
func (s *server) handleExportSummary(w http.ResponseWriter, r *http.Request) {
	tab, ok := middleware.TabFromContext(r.Context())
	if !ok {
		internalError(w, errors.New("no tab state on request"))
		return
	}
	if !tab.Begin(actExportSummary) {
		tab.Apply(func(_ *view.Controller, b *view.Board) { fail(b, actExportSummary, errInProgress) })
		redirectHome(w, r)
		return
	}
	defer tab.End(actExportSummary)

	var buf bytes.Buffer
	tables, err := s.summaryTables(r.Context())
	if err == nil {
		err = spreadsheet.WriteSummary(&buf, tables)
	}
	if err != nil {
		tab.Apply(func(_ *view.Controller, b *view.Board) { fail(b, actExportSummary, err) })
		redirectHome(w, r)
		return
	}
	w.Header().Set("Content-Type", spreadsheet.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="attendance-summary-`+s.now().Format("2006-01-02")+`.xlsx"`)
	_, _ = buf.WriteTo(w)
}

func (s *server) handleEmailSummary(w http.ResponseWriter, r *http.Request) {
	to := r.FormValue("email")
	requester := ""
	if tab, ok := middleware.TabFromContext(r.Context()); ok {
		tab.Apply(func(c *view.Controller, _ *view.Board) {
			if sess, ok := c.Session(); ok {
				requester = sess.Name
			}
		})
	}
	s.perform(w, r, actEmailSummary, func(ctx context.Context) (result, error) {
		_, err := orchestrators.ExecuteEmailSummary(ctx,
			orchestrators.EmailSummaryInput{To: to, Requester: requester},
			orchestrators.EmailSummaryDeps{Summary: s.backend, Sender: s.sender, From: s.emailFrom, Now: s.now},
		)
		if err != nil {
			return nil, err
		}
		return func(_ *view.Controller, b *view.Board) {
			b.SetMessage(view.SlotReport, "Summary sent to "+strings.TrimSpace(to))
		}, nil
	})
}
