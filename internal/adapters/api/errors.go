package api

import (
	"errors"
	"log/slog"
	"net/http"

	"frontdesk/internal/application/listutil"
	"frontdesk/internal/application/orchestrators"
)

// errorStatus maps use-case errors to a status and the detail sent to the client.
var errorStatus = []struct {
	err    error
	status int
	detail string
}{
	{orchestrators.ErrAdminExists, http.StatusBadRequest, "Admin already exists"},
	{orchestrators.ErrMemberEmailTaken, http.StatusBadRequest, "Email already registered"},
	{orchestrators.ErrEmployeeEmailTaken, http.StatusBadRequest, "Employee email already registered"},
	{orchestrators.ErrAlreadyCheckedOut, http.StatusBadRequest, "Attendance record already checked out"},
	{orchestrators.ErrNoOpenShift, http.StatusNotFound, "No active check-in record found for employee"},
	{orchestrators.ErrAttendanceNotFound, http.StatusNotFound, "Attendance record not found"},
}

// writeError sends err as {"detail": ...}. Unknown errors are logged and
// reported as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			writeJSON(w, e.status, detailOut{Detail: e.detail})
			return
		}
	}
	switch {
	case errors.Is(err, orchestrators.ErrInvalidInput):
		writeJSON(w, http.StatusUnprocessableEntity, detailOut{Detail: validationDetail(err)})
	case errors.Is(err, listutil.ErrInvalidWindow):
		writeJSON(w, http.StatusUnprocessableEntity, detailOut{Detail: err.Error()})
	default:
		internalError(w, err)
	}
}

// writeCredentialsError reports a failed login for role.
func writeCredentialsError(w http.ResponseWriter, err error, role string) {
	if errors.Is(err, orchestrators.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, detailOut{Detail: "Invalid " + role + " credentials"})
		return
	}
	writeError(w, err)
}

// validationDetail drops the ErrInvalidInput marker and keeps the cause.
func validationDetail(err error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if e != orchestrators.ErrInvalidInput {
				return e.Error()
			}
		}
	}
	return err.Error()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeJSON(w, http.StatusInternalServerError, detailOut{Detail: "internal server error"})
}
